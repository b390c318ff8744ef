package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IceFireDB/vredis/store"
	"github.com/IceFireDB/vredis/value"
)

func TestHandlerPingPong(t *testing.T) {
	h := NewHandler(pingHandler{})
	h.HandleData([]byte("*1\r\n$4\r\nPING\r\n"))
	op := h.GetOperation()
	require.NotNil(t, op.Send)
	assert.Equal(t, "$4\r\nPONG\r\n", string(op.Send))
}

func TestHandlerAgainstStoreSetGet(t *testing.T) {
	db := store.New()
	h := NewHandler(db)
	h.HandleData([]byte("*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n"))
	op := h.GetOperation()
	require.NotNil(t, op.Send)
	assert.Equal(t, "$2\r\nOK\r\n", string(op.Send))

	op2 := h.GetOperation()
	assert.Nil(t, op2.Send)
	assert.False(t, op2.Close)

	h.HandleData([]byte("*2\r\n$3\r\nGET\r\n$1\r\nk\r\n"))
	op3 := h.GetOperation()
	require.NotNil(t, op3.Send)
	assert.Equal(t, "$1\r\nv\r\n", string(op3.Send))
}

func TestHandlerNonArrayTopLevelIsError(t *testing.T) {
	db := store.New()
	h := NewHandler(db)
	h.HandleData([]byte("+hello\r\n"))
	op := h.GetOperation()
	require.NotNil(t, op.Send)
	assert.Equal(t, byte('-'), op.Send[0])
}

func TestHandlerShortFormInput(t *testing.T) {
	db := store.New()
	h := NewHandler(db)
	h.HandleData([]byte("set foo bar\r\n"))
	op := h.GetOperation()
	require.NotNil(t, op.Send)
	assert.Equal(t, "$2\r\nOK\r\n", string(op.Send))
}

func TestHandlerSyntaxErrorFailsSession(t *testing.T) {
	db := store.New()
	h := NewHandler(db)
	h.HandleData([]byte(":abc\r\n"))
	op := h.GetOperation()
	assert.True(t, op.Close)
}

// pingHandler is a minimal command.Handler used to test the ProtocolHandler
// in isolation from the real database.
type pingHandler struct{}

func (pingHandler) Call(seg *value.Segment) (value.Value, error) {
	return value.String("PONG"), nil
}

func (pingHandler) CallVoid(seg *value.Segment) error {
	_, err := pingHandler{}.Call(seg)
	return err
}
