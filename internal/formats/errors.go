package formats

import "fmt"

// DecodeError reports malformed input for a declared format. It is always
// fatal to the operation that triggered the decode; codecs never return a
// partial DecodedDeck alongside one.
type DecodeError struct {
	Format Format
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s payload: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s payload: %s", e.Format, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(format Format, reason string, err error) *DecodeError {
	return &DecodeError{Format: format, Reason: reason, Err: err}
}
