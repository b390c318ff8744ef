package value

import "fmt"

// RemoteError signals that a peer (or a local command dispatcher acting
// as one) reported a failure.
type RemoteError struct {
	Source string
	Text   string
}

func (e *RemoteError) Error() string { return fmt.Sprintf("%s: %s", e.Source, e.Text) }

// NewRemoteError builds a RemoteError.
func NewRemoteError(source, text string) *RemoteError {
	return &RemoteError{Source: source, Text: text}
}

// InvalidData signals that a peer sent malformed data, or that a fuzzy
// Access conversion failed.
type InvalidData struct {
	Text string
}

func (e *InvalidData) Error() string { return e.Text }

// NewInvalidData builds an InvalidData error.
func NewInvalidData(text string) *InvalidData {
	return &InvalidData{Text: text}
}

// FileFormat signals a RESP syntax violation detected by the parser. It
// is not recoverable within a session.
type FileFormat struct {
	Source string
	Text   string
}

func (e *FileFormat) Error() string { return fmt.Sprintf("%s: %s", e.Source, e.Text) }

// NewFileFormat builds a FileFormat error.
func NewFileFormat(source, text string) *FileFormat {
	return &FileFormat{Source: source, Text: text}
}

// AssertionFailed is an invariant-violation panic value used by tests.
type AssertionFailed struct {
	Text     string
	Location string
}

func (e *AssertionFailed) Error() string { return fmt.Sprintf("%s (%s)", e.Text, e.Location) }
