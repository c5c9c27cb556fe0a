package streamio

import (
	"errors"
	"fmt"
)

// ErrorKind is the coarse classification of an I/O failure.
type ErrorKind uint8

const (
	// Interrupted is transient; the operation should be retried.
	Interrupted ErrorKind = iota
	// InvalidInput reports a bad argument passed by the caller.
	InvalidInput
	// InvalidData reports malformed data found in a stream.
	InvalidData
	// Other is anything that fits none of the above.
	Other
	// WriteZero means a writer accepted no bytes while input remained.
	WriteZero
	// UnexpectedEOF means a source ran dry before a buffer was filled.
	UnexpectedEOF

	numKinds
)

var kindLabels = [numKinds]string{
	Interrupted:   "operation interrupted",
	InvalidInput:  "invalid input parameter",
	InvalidData:   "invalid data",
	Other:         "other error",
	WriteZero:     "write zero",
	UnexpectedEOF: "unexpected end of file",
}

// String returns the fixed label of the kind.
func (k ErrorKind) String() string {
	if k >= numKinds {
		return "unknown error kind"
	}
	return kindLabels[k]
}

// simpleErrors holds one payload-free Error per kind, so that Err never
// allocates.
var simpleErrors = [numKinds]Error{
	{kind: Interrupted},
	{kind: InvalidInput},
	{kind: InvalidData},
	{kind: Other},
	{kind: WriteZero},
	{kind: UnexpectedEOF},
}

// Err returns the payload-free Error of kind k. The returned value is shared
// and must not be modified.
func (k ErrorKind) Err() *Error {
	if k >= numKinds {
		return &simpleErrors[Other]
	}
	return &simpleErrors[k]
}

// Payload-free errors, one per kind.
var (
	ErrInterrupted   = Interrupted.Err()
	ErrInvalidInput  = InvalidInput.Err()
	ErrInvalidData   = InvalidData.Err()
	ErrOther         = Other.Err()
	ErrWriteZero     = WriteZero.Err()
	ErrUnexpectedEOF = UnexpectedEOF.Err()
)

// Error is the error type of every operation in this package. It is either
// simple (a kind only) or custom (a kind plus an owned payload error).
type Error struct {
	kind    ErrorKind
	payload error
}

// NewError builds a custom Error. The payload may be a string, an error, a
// fmt.Stringer or any value printable with %v.
func NewError(kind ErrorKind, payload interface{}) *Error {
	var err error
	switch p := payload.(type) {
	case error:
		err = p
	case string:
		err = errors.New(p)
	case fmt.Stringer:
		err = errors.New(p.String())
	default:
		err = fmt.Errorf("%v", p)
	}
	return &Error{kind: kind, payload: err}
}

// Kind returns the classification of e.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// Error renders the payload text for a custom error and the kind label
// otherwise.
func (e *Error) Error() string {
	if e.payload != nil {
		return e.payload.Error()
	}
	return e.kind.String()
}

// Unwrap returns the payload of a custom error, nil for a simple one.
func (e *Error) Unwrap() error {
	return e.payload
}

// Is reports whether target is the simple Error of the same kind, which lets
// errors.Is(err, ErrUnexpectedEOF) match custom errors as well.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.payload == nil && t.kind == e.kind
}

// Format implements fmt.Formatter. %+v prints the debug form.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if e.payload != nil {
				fmt.Fprintf(s, "Custom { kind: %s, error: %+v }", e.kind, e.payload)
			} else {
				fmt.Fprintf(s, "Kind(%s)", e.kind)
			}
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// KindOf returns the kind of the first *Error in err's chain, Other if there
// is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Other
}

// IsInterrupted reports whether err is classified as Interrupted.
func IsInterrupted(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == Interrupted
}
