// Package jsonio implements a JSON writer over the value model,
// indentation- and line-length-aware the way the RESP writer is
// byte-exact: both serialize the same Value sum type, just to different
// wire forms.
package jsonio

import (
	"strconv"
	"strings"

	"github.com/IceFireDB/vredis/value"
)

// Writer emits canonical JSON for a Value. SetLineLength installs a soft
// line-length limit: newlines are inserted at permitted break points
// (before `}`/`]`, after `,`) once the current line would exceed it.
// SetIndentStep, if nonzero, always breaks at those points and indents
// each nesting level by that many spaces (pretty print); it takes
// precedence over the soft line-length policy.
type Writer struct {
	buf        []byte
	lineLength int
	indentStep int
	depth      int
	lineLen    int
}

// NewWriter returns a Writer with no wrapping configured: everything is
// emitted on one line.
func NewWriter() *Writer {
	return &Writer{}
}

// SetLineLength installs the soft line-length limit described above.
func (w *Writer) SetLineLength(n int) {
	w.lineLength = n
}

// SetIndentStep installs the pretty-print indent width described above.
func (w *Writer) SetIndentStep(k int) {
	w.indentStep = k
}

// Bytes returns everything written so far.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reset clears the buffer (but not the line-length/indent configuration)
// so the Writer can be reused for another value.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.depth = 0
	w.lineLen = 0
}

func (w *Writer) raw(s string) {
	w.buf = append(w.buf, s...)
	w.lineLen += len(s)
}

func (w *Writer) newline() {
	w.buf = append(w.buf, '\n')
	w.lineLen = 0
	if w.indentStep > 0 && w.depth > 0 {
		ind := strings.Repeat(" ", w.depth*w.indentStep)
		w.buf = append(w.buf, ind...)
		w.lineLen = len(ind)
	}
}

// breakPoint is called at each point the policy permits a line break:
// after a comma, and before a closing `}`/`]`.
func (w *Writer) breakPoint() {
	if w.indentStep > 0 {
		w.newline()
		return
	}
	if w.lineLength > 0 && w.lineLen > w.lineLength {
		w.newline()
	}
}

// WriteValue encodes val as JSON into the Writer's buffer.
func (w *Writer) WriteValue(val value.Value) error {
	return value.Visit(val, (*jsonVisitor)(w))
}

// Encode is a convenience wrapper producing a single JSON document with
// no line-length limit and the given indent step (0 for compact form).
func Encode(val value.Value, indentStep int) ([]byte, error) {
	w := NewWriter()
	w.SetIndentStep(indentStep)
	if err := w.WriteValue(val); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

type jsonVisitor Writer

func (v *jsonVisitor) w() *Writer { return (*Writer)(v) }

func (v *jsonVisitor) VisitNull() error {
	v.w().raw("null")
	return nil
}

func (v *jsonVisitor) VisitInteger(i value.Integer) error {
	v.w().raw(strconv.FormatInt(int64(i), 10))
	return nil
}

func (v *jsonVisitor) VisitFloat(f value.Float) error {
	v.w().raw(strconv.FormatFloat(float64(f), 'g', -1, 64))
	return nil
}

func (v *jsonVisitor) VisitBoolean(b value.Boolean) error {
	if b {
		v.w().raw("true")
	} else {
		v.w().raw("false")
	}
	return nil
}

func (v *jsonVisitor) VisitString(s value.String) error {
	v.w().raw(QuoteString(string(s)))
	return nil
}

// Error and unrecognized extension variants both write the literal null,
// matching the policy in the protocol description: a JSON consumer never
// sees a remote-error payload, only its absence.
func (v *jsonVisitor) VisitError(*value.Error) error {
	v.w().raw("null")
	return nil
}

func (v *jsonVisitor) VisitOther(value.Value) error {
	v.w().raw("null")
	return nil
}

func (v *jsonVisitor) VisitVector(vec *value.Vector) error {
	w := v.w()
	w.raw("[")
	w.depth++
	for i := 0; i < vec.Len(); i++ {
		if i > 0 {
			w.raw(",")
			w.breakPoint()
		}
		if err := w.WriteValue(vec.Get(i)); err != nil {
			return err
		}
	}
	w.depth--
	if vec.Len() > 0 {
		w.breakPoint()
	}
	w.raw("]")
	return nil
}

func (v *jsonVisitor) VisitHash(h *value.Hash) error {
	w := v.w()
	keys := h.Keys()
	w.raw("{")
	w.depth++
	for i, k := range keys {
		if i > 0 {
			w.raw(",")
			w.breakPoint()
		}
		w.raw(QuoteString(k))
		w.raw(":")
		val, _ := h.Get(k)
		if err := w.WriteValue(val); err != nil {
			return err
		}
	}
	w.depth--
	if len(keys) > 0 {
		w.breakPoint()
	}
	w.raw("}")
	return nil
}

// QuoteString renders s as a JSON string literal: `\`, `"`, `\n`, `\r`,
// `\b`, `\t`, `\f` are backslash-escaped, every other control byte (< 32)
// becomes `\u00XX`, and every byte >= 32 is passed through literally so
// the caller's source encoding survives unchanged.
func QuoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch b {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if b < 32 {
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigit(b >> 4))
				sb.WriteByte(hexDigit(b & 0xf))
			} else {
				sb.WriteByte(b)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'a' + (n - 10)
}
