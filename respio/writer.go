package respio

import (
	"strconv"
	"strings"

	"github.com/IceFireDB/vredis/value"
)

// AppendBulk appends b as a RESP bulk string: $<len>\r\n<bytes>\r\n.
func AppendBulk(dst []byte, b []byte) []byte {
	dst = append(dst, '$')
	dst = strconv.AppendInt(dst, int64(len(b)), 10)
	dst = append(dst, '\r', '\n')
	dst = append(dst, b...)
	dst = append(dst, '\r', '\n')
	return dst
}

// AppendBulkString is AppendBulk for a Go string.
func AppendBulkString(dst []byte, s string) []byte {
	return AppendBulk(dst, []byte(s))
}

// AppendInteger appends n as a RESP bulk string of its decimal form, the
// wire form this writer always uses for Integer values (RESP `:` frames
// are not emitted by this writer, since the servers this package talks
// to only accept arrays of bulk strings as requests).
func AppendInteger(dst []byte, n int32) []byte {
	return AppendBulkString(dst, strconv.FormatInt(int64(n), 10))
}

// AppendFloat appends f as a RESP bulk string of its "%.25g" form.
func AppendFloat(dst []byte, f float64) []byte {
	return AppendBulkString(dst, strconv.FormatFloat(f, 'g', 25, 64))
}

// AppendBoolean appends b as a RESP bulk string, "1" or "0".
func AppendBoolean(dst []byte, b bool) []byte {
	if b {
		return AppendBulkString(dst, "1")
	}
	return AppendBulkString(dst, "0")
}

// AppendNullBulk appends the null-bulk form, $-1\r\n.
func AppendNullBulk(dst []byte) []byte {
	return append(dst, '$', '-', '1', '\r', '\n')
}

// AppendNullArray appends the null-array form, *-1\r\n, deliberately
// distinct from the null-bulk form so a peer can tell an unknown
// extension variant from an absent value.
func AppendNullArray(dst []byte) []byte {
	return append(dst, '*', '-', '1', '\r', '\n')
}

// AppendArrayHeader appends *<n>\r\n.
func AppendArrayHeader(dst []byte, n int) []byte {
	dst = append(dst, '*')
	dst = strconv.AppendInt(dst, int64(n), 10)
	dst = append(dst, '\r', '\n')
	return dst
}

// AppendSimpleLine appends a one-line simple form (+ or -), truncating
// text at its first CR or LF.
func AppendSimpleLine(dst []byte, prefix byte, text string) []byte {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	dst = append(dst, prefix)
	dst = append(dst, text...)
	dst = append(dst, '\r', '\n')
	return dst
}

// Writer serializes Values to the canonical RESP wire form and flushes
// completed messages to a DataSink.
type Writer struct {
	sink DataSink
}

// NewWriter returns a Writer that flushes to sink.
func NewWriter(sink DataSink) *Writer {
	return &Writer{sink: sink}
}

// WriteValue encodes val and flushes it to the sink in one call.
func (w *Writer) WriteValue(val value.Value) error {
	buf, err := Encode(nil, val)
	if err != nil {
		return err
	}
	return w.sink.HandleData(buf)
}

// SendError writes the one-line error form, -text\r\n.
func (w *Writer) SendError(text string) error {
	return w.sink.HandleData(AppendSimpleLine(nil, '-', text))
}

// SendSuccess writes the one-line simple-string form, +text\r\n.
func (w *Writer) SendSuccess(text string) error {
	return w.sink.HandleData(AppendSimpleLine(nil, '+', text))
}

// Encode appends val's RESP encoding to dst and returns the result,
// without requiring a Writer or a DataSink.
func Encode(dst []byte, val value.Value) ([]byte, error) {
	enc := &encoder{buf: dst}
	if err := value.Visit(val, enc); err != nil {
		return nil, err
	}
	return enc.buf, nil
}

// encoder is the Visitor that drives Encode; errors only arise from
// nested Vector/Hash elements failing to encode, which cannot happen for
// well-formed Values but is still threaded through for forward-compatible
// extension variants.
type encoder struct {
	buf []byte
}

func (e *encoder) VisitString(s value.String) error {
	e.buf = AppendBulk(e.buf, s)
	return nil
}

func (e *encoder) VisitInteger(i value.Integer) error {
	e.buf = AppendInteger(e.buf, int32(i))
	return nil
}

func (e *encoder) VisitFloat(f value.Float) error {
	e.buf = AppendFloat(e.buf, float64(f))
	return nil
}

func (e *encoder) VisitBoolean(b value.Boolean) error {
	e.buf = AppendBoolean(e.buf, bool(b))
	return nil
}

func (e *encoder) VisitNull() error {
	e.buf = AppendNullBulk(e.buf)
	return nil
}

func (e *encoder) VisitError(err *value.Error) error {
	e.buf = AppendSimpleLine(e.buf, '-', err.Message)
	return nil
}

func (e *encoder) VisitVector(v *value.Vector) error {
	e.buf = AppendArrayHeader(e.buf, v.Len())
	for i := 0; i < v.Len(); i++ {
		if err := value.Visit(v.Get(i), e); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) VisitHash(h *value.Hash) error {
	keys := h.Keys()
	e.buf = AppendArrayHeader(e.buf, len(keys)*2)
	for _, k := range keys {
		e.buf = AppendBulkString(e.buf, k)
		v, _ := h.Get(k)
		if err := value.Visit(v, e); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) VisitOther(value.Value) error {
	e.buf = AppendNullArray(e.buf)
	return nil
}
