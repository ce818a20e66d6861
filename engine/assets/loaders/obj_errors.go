package loaders

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrShortFace       = errors.New("face has fewer than 3 corners")
)

// ObjParseError reports the line and token that caused an OBJ parse to fail.
type ObjParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ObjParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("[line %d] %s", e.Line, e.Err.Error())
	}
	return fmt.Sprintf("[line %d] %s (token %q)", e.Line, e.Err.Error(), e.Token)
}

func (e *ObjParseError) Unwrap() error {
	return e.Err
}
