package value

// Factory is an injectable abstract constructor for Values, allowing a
// parser or command dispatcher to be built against an interface rather
// than this package's concrete constructors directly.
type Factory interface {
	NewString(s []byte) Value
	NewInteger(i int32) Value
	NewFloat(f float64) Value
	NewBoolean(b bool) Value
	NewVector() *Vector
	NewHash() *Hash
	NewError(source, message string) Value
}

// DefaultFactory is the straightforward Factory backed by this package's
// own constructors.
type DefaultFactory struct{}

func (DefaultFactory) NewString(s []byte) Value       { return String(append([]byte(nil), s...)) }
func (DefaultFactory) NewInteger(i int32) Value       { return Integer(i) }
func (DefaultFactory) NewFloat(f float64) Value       { return Float(f) }
func (DefaultFactory) NewBoolean(b bool) Value        { return Boolean(b) }
func (DefaultFactory) NewVector() *Vector             { return NewVector() }
func (DefaultFactory) NewHash() *Hash                 { return NewHash() }
func (DefaultFactory) NewError(source, msg string) Value { return NewError(source, msg) }
