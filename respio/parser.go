// Package respio implements the RESP wire codec over the value model: a
// push-mode streaming parser that consumes arbitrary byte chunks and
// yields completed values, and a Writer that serializes values back to
// the canonical wire form.
package respio

import (
	"github.com/IceFireDB/vredis/value"
)

const parserSource = "<Parser>"

// Parser is a push-mode streaming RESP parser. A single instance may be
// reused for many values serially: call HandleData repeatedly until it
// returns true, call Extract to take ownership of the parsed Value, then
// start feeding the next value.
type Parser struct {
	acceptShortForm bool
	st              parserState
	ready           bool
	result          value.Value
}

// NewParser returns a Parser in its initial state.
func NewParser() *Parser {
	p := &Parser{}
	p.reset()
	return p
}

func (p *Parser) reset() {
	p.st = &rootState{}
	p.ready = false
	p.result = nil
}

// SetAcceptShortForm enables the interactive extension: a top-level
// token beginning with an ASCII letter is parsed as whitespace-split
// words, each becoming a String, the whole becoming a Vector.
func (p *Parser) SetAcceptShortForm(flag bool) {
	p.acceptShortForm = flag
}

// HandleData consumes as many bytes as possible from *data, advancing
// the slice past whatever it consumes. It returns true iff a complete
// top-level value has been accumulated, in which case the caller should
// call Extract before feeding more data.
func (p *Parser) HandleData(data *[]byte) (bool, error) {
	for !p.ready && len(*data) > 0 {
		done, err := p.st.feed(p, data)
		if err != nil {
			return false, err
		}
		if done {
			p.ready = true
		}
	}
	return p.ready, nil
}

// Extract returns ownership of the parsed Value and resets the parser to
// its initial state. Must not be called before HandleData returned true.
func (p *Parser) Extract() value.Value {
	v := p.result
	p.reset()
	return v
}

func (p *Parser) emit(v value.Value) {
	p.result = v
}

// parserState is one node of the state machine described in the parser's
// design notes. feed must consume at least one byte from *data whenever
// it is invoked with non-empty input, or transition to a state that
// will on a subsequent call within the same HandleData loop.
type parserState interface {
	feed(p *Parser, data *[]byte) (bool, error)
}

// --- Root: selects the successor state from the first byte. ---

type rootState struct{}

func (rootState) feed(p *Parser, data *[]byte) (bool, error) {
	b := (*data)[0]
	*data = (*data)[1:]
	switch b {
	case '+':
		p.st = &lineState{kind: lineSimpleString}
		return false, nil
	case '-':
		p.st = &lineState{kind: lineError}
		return false, nil
	case ':':
		p.st = &integerState{kind: intPlain}
		return false, nil
	case '$':
		p.st = &integerState{kind: intBulkLength}
		return false, nil
	case '*':
		p.st = &integerState{kind: intArrayLength}
		return false, nil
	default:
		if p.acceptShortForm && isShortFormLead(b) {
			st := &shortState{}
			st.acc = append(st.acc, b)
			p.st = st
			return false, nil
		}
		return false, value.NewFileFormat(parserSource, "syntax error: unexpected leading byte")
	}
}

func isShortFormLead(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// --- line-terminated states: simple strings and errors. ---

type lineKind int

const (
	lineSimpleString lineKind = iota
	lineError
)

type lineState struct {
	kind lineKind
	acc  []byte
}

func (s *lineState) feed(p *Parser, data *[]byte) (bool, error) {
	for len(*data) > 0 {
		b := (*data)[0]
		*data = (*data)[1:]
		if b == '\r' {
			continue
		}
		if b == '\n' {
			switch s.kind {
			case lineSimpleString:
				p.emit(value.String(append([]byte(nil), s.acc...)))
			case lineError:
				p.emit(value.NewError(parserSource, string(s.acc)))
			}
			return true, nil
		}
		s.acc = append(s.acc, b)
	}
	return false, nil
}

// --- Integer: decimal literal with optional sign, terminated by LF. ---

type intKind int

const (
	intPlain intKind = iota
	intBulkLength
	intArrayLength
)

type integerState struct {
	kind      intKind
	negative  bool
	sawSign   bool
	sawDigit  bool
	magnitude int64
	overflow  bool
}

const int32Max = int64(1) << 31

func (s *integerState) feed(p *Parser, data *[]byte) (bool, error) {
	for len(*data) > 0 {
		b := (*data)[0]
		*data = (*data)[1:]
		switch {
		case b == '\r':
			continue
		case b == '\n':
			if err := s.finish(p); err != nil {
				return false, err
			}
			// finish either emitted a value or moved on to a bulk, array or
			// terminator state that still has bytes to read.
			return p.st == s, nil
		case (b == '+' || b == '-') && !s.sawSign && !s.sawDigit:
			s.sawSign = true
			s.negative = b == '-'
		case b >= '0' && b <= '9':
			s.sawDigit = true
			s.magnitude = s.magnitude*10 + int64(b-'0')
			if s.magnitude > int32Max {
				s.overflow = true
			}
		default:
			return false, value.NewFileFormat(parserSource, "syntax error: invalid integer literal")
		}
	}
	return false, nil
}

func (s *integerState) finish(p *Parser) error {
	if s.overflow {
		return value.NewFileFormat(parserSource, "syntax error: integer out of range")
	}
	n := s.magnitude
	if s.negative {
		n = -n
	}
	if n > int64(int32Max-1) || n < -int64(int32Max) {
		return value.NewFileFormat(parserSource, "syntax error: integer out of range")
	}
	switch s.kind {
	case intPlain:
		p.emit(value.Integer(int32(n)))
		return nil
	case intBulkLength:
		switch {
		case n == -1:
			p.emit(value.Null)
			return nil
		case n == 0:
			p.st = &skipCRLFThenEmitState{value: value.String([]byte{})}
			return nil
		default:
			p.st = &bulkState{remaining: int(n)}
			return nil
		}
	case intArrayLength:
		switch {
		case n == -1:
			p.emit(value.Null)
			return nil
		case n == 0:
			p.emit(value.NewVector())
			return nil
		default:
			p.st = &arrayState{remaining: int(n), acc: value.NewVector(), nested: NewParser()}
			return nil
		}
	}
	return nil
}

// skipCRLFThenEmitState handles the zero-length bulk string: the length
// has already been consumed, only the trailing CRLF remains, and the
// result is known in advance so no further state with nothing to
// consume is ever constructed.
type skipCRLFThenEmitState struct {
	value value.Value
	sawCR bool
}

func (s *skipCRLFThenEmitState) feed(p *Parser, data *[]byte) (bool, error) {
	for len(*data) > 0 {
		b := (*data)[0]
		*data = (*data)[1:]
		if b == '\r' {
			s.sawCR = true
			continue
		}
		if b == '\n' {
			p.emit(s.value)
			return true, nil
		}
		return false, value.NewFileFormat(parserSource, "syntax error: malformed bulk terminator")
	}
	return false, nil
}

// --- Bulk(N): N raw bytes followed by CRLF. ---

type bulkState struct {
	remaining int
	acc       []byte
	readingCR bool
}

func (s *bulkState) feed(p *Parser, data *[]byte) (bool, error) {
	for s.remaining > 0 && len(*data) > 0 {
		n := s.remaining
		if n > len(*data) {
			n = len(*data)
		}
		s.acc = append(s.acc, (*data)[:n]...)
		*data = (*data)[n:]
		s.remaining -= n
	}
	if s.remaining > 0 {
		return false, nil
	}
	for len(*data) > 0 {
		b := (*data)[0]
		*data = (*data)[1:]
		if b == '\r' {
			continue
		}
		if b == '\n' {
			p.emit(value.String(s.acc))
			return true, nil
		}
		return false, value.NewFileFormat(parserSource, "syntax error: malformed bulk terminator")
	}
	return false, nil
}

// --- Array(N, nested): N nested RESP values. ---

type arrayState struct {
	remaining int
	acc       *value.Vector
	nested    *Parser
}

func (s *arrayState) feed(p *Parser, data *[]byte) (bool, error) {
	for s.remaining > 0 && len(*data) > 0 {
		done, err := s.nested.HandleData(data)
		if err != nil {
			return false, err
		}
		if !done {
			return false, nil
		}
		s.acc.PushBack(s.nested.Extract())
		s.remaining--
	}
	if s.remaining == 0 {
		p.emit(s.acc)
		return true, nil
	}
	return false, nil
}

// --- Short form: whitespace-split words terminated by LF. ---

type shortState struct {
	acc     []byte
	words   []value.Value
	inWord  bool
}

func (s *shortState) feed(p *Parser, data *[]byte) (bool, error) {
	for len(*data) > 0 {
		b := (*data)[0]
		*data = (*data)[1:]
		switch b {
		case '\n':
			s.flushWord()
			p.emit(value.VectorOf(s.words...))
			return true, nil
		case '\r':
			continue
		case ' ', '\t':
			s.flushWord()
		default:
			s.acc = append(s.acc, b)
			s.inWord = true
		}
	}
	return false, nil
}

func (s *shortState) flushWord() {
	if s.inWord && len(s.acc) > 0 {
		s.words = append(s.words, value.String(append([]byte(nil), s.acc...)))
	}
	s.acc = s.acc[:0]
	s.inWord = false
}
