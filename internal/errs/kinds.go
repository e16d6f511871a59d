package errs

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrConfiguration marks a missing or invalid setting.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound marks an absent object. It is the only kind recovered locally.
	ErrNotFound = errors.New("not found")

	// ErrTransport marks a network or storage failure.
	ErrTransport = errors.New("transport error")

	// ErrDataFormat marks a malformed structured document.
	ErrDataFormat = errors.New("data format error")
)

// Error carries the operation and object that failed along with its kind.
type Error struct {
	Op   string
	Key  string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Key != "" && e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
	case e.Key != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func Config(op string, err error) *Error {
	return &Error{Op: op, Kind: ErrConfiguration, Err: err}
}

func NotFound(op, key string) *Error {
	return &Error{Op: op, Key: key, Kind: ErrNotFound}
}

func Transport(op, key string, err error) *Error {
	return &Error{Op: op, Key: key, Kind: ErrTransport, Err: err}
}

func DataFormat(op, key string, err error) *Error {
	return &Error{Op: op, Key: key, Kind: ErrDataFormat, Err: err}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
