// Package session implements the ProtocolHandler that bridges a RESP
// byte stream to a command.Handler: consume bytes, parse, dispatch,
// serialize the response, with send-queue backpressure and failure
// handling. It is single-threaded — HandleData and GetOperation must
// not be called concurrently on the same Handler.
package session

import (
	"github.com/IceFireDB/vredis/command"
	"github.com/IceFireDB/vredis/respio"
	"github.com/IceFireDB/vredis/value"
)

const invalidOperationText = "ERR request must be an array"

type sessionState int

const (
	stateIdle sessionState = iota
	stateSending
	stateFailed
)

// Operation is what GetOperation tells the transport to do next.
type Operation struct {
	// Send, if non-nil, is the next buffer the transport should write.
	Send []byte
	// Close requests the transport tear down the connection.
	Close bool
}

// Handler is the ProtocolHandler: an in-progress RESP parser (short-form
// enabled, matching interactive/telnet-style command entry), a FIFO
// queue of serialized response buffers, and a state flag tracking
// whether the transport is currently draining the head of the queue.
type Handler struct {
	parser  *respio.Parser
	backend command.Handler
	queue   [][]byte
	state   sessionState
}

// NewHandler returns a Handler dispatching parsed requests to backend.
func NewHandler(backend command.Handler) *Handler {
	p := respio.NewParser()
	p.SetAcceptShortForm(true)
	return &Handler{parser: p, backend: backend}
}

// GetOperation reports what the transport should do next: if the
// previously-handed-out buffer has been sent, pop it and go Idle; if
// Idle and the queue is non-empty, hand out the head buffer and go
// Sending; request a close if the session has Failed; otherwise there is
// nothing to do.
func (h *Handler) GetOperation() Operation {
	if h.state == stateSending {
		if len(h.queue) > 0 {
			h.queue = h.queue[1:]
		}
		h.state = stateIdle
	}
	if h.state == stateIdle && len(h.queue) > 0 {
		h.state = stateSending
		return Operation{Send: h.queue[0]}
	}
	if h.state == stateFailed {
		return Operation{Close: true}
	}
	return Operation{}
}

// HandleData feeds bytes to the parser in a loop; each time the parser
// completes a Value, HandleData dispatches it. Any error transitions the
// session to Failed rather than propagating, since the RESP parser does
// not auto-resynchronize after a syntax violation.
func (h *Handler) HandleData(data []byte) {
	for len(data) > 0 {
		done, err := h.parser.HandleData(&data)
		if err != nil {
			h.state = stateFailed
			return
		}
		if !done {
			return
		}
		h.handleNewValue(h.parser.Extract())
	}
}

// HandleSendTimeout transitions the session to Failed; the next
// GetOperation will request the connection be closed.
func (h *Handler) HandleSendTimeout() {
	h.state = stateFailed
}

// HandleConnectionClose is a no-op: the session holds no resources that
// need releasing beyond what the transport itself owns.
func (h *Handler) HandleConnectionClose() {}

func (h *Handler) handleNewValue(v value.Value) {
	vec, ok := v.(*value.Vector)
	if !ok {
		h.enqueue(h.encodeError(invalidOperationText))
		return
	}
	result, err := h.backend.Call(vec.Segment())
	if err != nil {
		h.enqueue(h.encodeError(errorText(err)))
		return
	}
	buf, encErr := respio.Encode(nil, result)
	if encErr != nil {
		h.enqueue(h.encodeError(errorText(encErr)))
		return
	}
	h.enqueue(buf)
}

func (h *Handler) encodeError(text string) []byte {
	return respio.AppendSimpleLine(nil, '-', text)
}

func (h *Handler) enqueue(buf []byte) {
	h.queue = append(h.queue, buf)
}

func errorText(err error) string {
	switch e := err.(type) {
	case *value.RemoteError:
		return e.Text
	case *value.InvalidData:
		return e.Text
	case *value.FileFormat:
		return e.Text
	default:
		return err.Error()
	}
}
