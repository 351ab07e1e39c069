package domain

import (
	"errors"
	"fmt"
)

// Parse failures. Each is returned wrapped in a *FieldError naming the tag.
var (
	ErrMissingField        = errors.New("missing field")
	ErrMalformedTimestamp  = errors.New("malformed timestamp")
	ErrMalformedEventCode  = errors.New("malformed event code")
	ErrMalformedFieldValue = errors.New("malformed field value")
	ErrFieldOutOfRange     = errors.New("field out of range")
)

// FieldError reports which tag a parse failure came from.
type FieldError struct {
	Tag   string
	Value string // raw tag text, empty when the tag was absent
	Err   error  // one of the Err* sentinels above
	Cause error  // underlying conversion error, may be nil
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Err, e.Tag)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FieldError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// Field returns the field kind the error refers to, if the tag is one of the ten field tags.
func (e *FieldError) Field() (Field, bool) {
	return FieldByTag(e.Tag)
}
