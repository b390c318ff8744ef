// Package command defines the synchronous request/response contract that
// the in-memory database implements and the ProtocolHandler drives.
package command

import "github.com/IceFireDB/vredis/value"

// Handler is a synchronous RPC contract over a Segment of Values: a
// request is a verb followed by its arguments, a response is a single
// Value (possibly null).
type Handler interface {
	// Call executes the command described by segment and returns its
	// result. It fails with *value.RemoteError if the server signals an
	// error, *value.InvalidData if the request itself was malformed.
	Call(segment *value.Segment) (value.Value, error)

	// CallVoid is Call with the result discarded; implementations may
	// optimise this (e.g. pipeline-and-forget) provided errors still
	// surface.
	CallVoid(segment *value.Segment) error
}

// CallInt invokes h.Call and funnels the result through Access.ToInteger.
func CallInt(h Handler, segment *value.Segment) (int32, error) {
	result, err := h.Call(segment)
	if err != nil {
		return 0, err
	}
	return value.NewAccess(result).ToInteger()
}

// CallString invokes h.Call and funnels the result through
// Access.ToString.
func CallString(h Handler, segment *value.Segment) (string, error) {
	result, err := h.Call(segment)
	if err != nil {
		return "", err
	}
	return value.NewAccess(result).ToString()
}

// CallOptionalInt invokes h.Call and funnels the result through
// Access.ToInteger, additionally reporting whether the result was null.
func CallOptionalInt(h Handler, segment *value.Segment) (n int32, ok bool, err error) {
	result, err := h.Call(segment)
	if err != nil {
		return 0, false, err
	}
	if value.IsNull(result) {
		return 0, false, nil
	}
	n, err = value.NewAccess(result).ToInteger()
	return n, err == nil, err
}

// DefaultCallVoid implements CallVoid in terms of Call, the
// minimally-correct fallback spec.md allows any Handler to use.
func DefaultCallVoid(h Handler, segment *value.Segment) error {
	_, err := h.Call(segment)
	return err
}
