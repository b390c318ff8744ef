package respio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IceFireDB/vredis/value"
)

func feedAll(t *testing.T, p *Parser, chunks ...string) value.Value {
	t.Helper()
	for _, c := range chunks {
		data := []byte(c)
		for len(data) > 0 {
			done, err := p.HandleData(&data)
			require.NoError(t, err)
			if done {
				return p.Extract()
			}
		}
	}
	t.Fatal("parser never completed")
	return nil
}

func TestParserArrayOfIntegers(t *testing.T) {
	p := NewParser()
	v := feedAll(t, p, "*3\r\n:1\r\n:2\r\n:3\r\n")
	vec, ok := v.(*value.Vector)
	require.True(t, ok)
	require.Equal(t, 3, vec.Len())
	assert.Equal(t, value.Integer(1), vec.Get(0))
	assert.Equal(t, value.Integer(2), vec.Get(1))
	assert.Equal(t, value.Integer(3), vec.Get(2))
}

func TestParserSplitAcrossChunks(t *testing.T) {
	p := NewParser()
	v := feedAll(t, p, "*2\r\n$3\r\nfo", "o\r\n$-1\r\n")
	vec := v.(*value.Vector)
	require.Equal(t, 2, vec.Len())
	assert.Equal(t, value.String("foo"), vec.Get(0))
	assert.True(t, value.IsNull(vec.Get(1)))
}

func TestParserZeroLengthBulk(t *testing.T) {
	p := NewParser()
	v := feedAll(t, p, "$0\r\n\r\n")
	assert.Equal(t, value.String(""), v)
}

func TestParserEmptyArray(t *testing.T) {
	p := NewParser()
	v := feedAll(t, p, "*0\r\n")
	vec := v.(*value.Vector)
	assert.Equal(t, 0, vec.Len())
}

func TestParserSimpleStringAndError(t *testing.T) {
	p := NewParser()
	v := feedAll(t, p, "+OK\r\n")
	assert.Equal(t, value.String("OK"), v)

	p2 := NewParser()
	v2 := feedAll(t, p2, "-ERR bad\r\n")
	e, ok := v2.(*value.Error)
	require.True(t, ok)
	assert.Equal(t, "ERR bad", e.Message)
}

func TestParserIntegerOutOfRange(t *testing.T) {
	p := NewParser()
	data := []byte(":99999999999\r\n")
	_, err := p.HandleData(&data)
	require.Error(t, err)
}

func TestParserShortForm(t *testing.T) {
	p := NewParser()
	p.SetAcceptShortForm(true)
	v := feedAll(t, p, "set foo bar\r\n")
	vec := v.(*value.Vector)
	require.Equal(t, 3, vec.Len())
	assert.Equal(t, value.String("set"), vec.Get(0))
	assert.Equal(t, value.String("foo"), vec.Get(1))
	assert.Equal(t, value.String("bar"), vec.Get(2))
}

func TestParserReusableAfterExtract(t *testing.T) {
	p := NewParser()
	v1 := feedAll(t, p, "+a\r\n")
	assert.Equal(t, value.String("a"), v1)
	v2 := feedAll(t, p, "+b\r\n")
	assert.Equal(t, value.String("b"), v2)
}

func TestEncodeVectorMixedTypes(t *testing.T) {
	vec := value.VectorOf(value.Integer(99), value.Boolean(true), value.Null, value.NewString("x"))
	buf, err := Encode(nil, vec)
	require.NoError(t, err)
	assert.Equal(t, "*4\r\n$2\r\n99\r\n$1\r\n1\r\n$-1\r\n$1\r\nx\r\n", string(buf))
}

func TestEncodeThenParseRoundTrip(t *testing.T) {
	vec := value.VectorOf(value.NewString("a"), value.Integer(7), value.Null)
	buf, err := Encode(nil, vec)
	require.NoError(t, err)

	p := NewParser()
	got := feedAll(t, p, string(buf))
	gotVec := got.(*value.Vector)
	require.Equal(t, 3, gotVec.Len())
	assert.Equal(t, value.String("a"), gotVec.Get(0))
	assert.Equal(t, value.String("7"), gotVec.Get(1))
	assert.True(t, value.IsNull(gotVec.Get(2)))
}

func TestWriterSendErrorTruncatesAtNewline(t *testing.T) {
	sink := &BufferSink{}
	w := NewWriter(sink)
	require.NoError(t, w.SendError("bad thing\r\nextra"))
	assert.Equal(t, "-bad thing\r\n", string(sink.Bytes()))
}
