package tomldoc

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ParseError is returned by Parse for malformed input. Err is the underlying
// error; for syntax errors it is a toml.ParseError.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid TOML at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("invalid TOML: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(err error) *ParseError {
	perr := &ParseError{Err: err}
	var terr toml.ParseError
	if errors.As(err, &terr) {
		perr.Line = terr.Position.Line
	}
	return perr
}
