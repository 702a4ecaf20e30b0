// Package errorx implements coded errors for the HTTP API. Every
// user-visible failure carries a registered Coder that maps the business
// error code to an HTTP status and a safe external message.
package errorx

import (
	"fmt"
	"sync"
)

// Coder describes an error code's external representation.
type Coder interface {
	// Code returns the business error code.
	Code() int
	// HTTPStatus returns the HTTP status this code maps to.
	HTTPStatus() int
	// String returns the external, user-safe message.
	String() string
	// Reference returns an optional documentation link.
	Reference() string
}

var (
	codesMu sync.RWMutex
	codes   = map[int]Coder{}
)

// Register registers a Coder, replacing any previous registration.
func Register(coder Coder) {
	codesMu.Lock()
	defer codesMu.Unlock()
	codes[coder.Code()] = coder
}

// MustRegister registers a Coder and panics on code collision.
// Intended for init() blocks.
func MustRegister(coder Coder) {
	codesMu.Lock()
	defer codesMu.Unlock()
	if _, ok := codes[coder.Code()]; ok {
		panic(fmt.Sprintf("error code %d already registered", coder.Code()))
	}
	codes[coder.Code()] = coder
}

// ParseCoder resolves the Coder for err. Errors that do not carry a code
// resolve to unknownCoder.
func ParseCoder(err error) Coder {
	if err == nil {
		return nil
	}
	if v, ok := err.(*withCode); ok {
		codesMu.RLock()
		defer codesMu.RUnlock()
		if coder, ok := codes[v.code]; ok {
			return coder
		}
	}
	return unknownCoder
}

// IsCode reports whether err carries the given business code.
func IsCode(err error, code int) bool {
	if v, ok := err.(*withCode); ok {
		return v.code == code
	}
	return false
}

// withCode is an error annotated with a business error code.
type withCode struct {
	err   error
	code  int
	cause error
}

func (w *withCode) Error() string { return w.err.Error() }

func (w *withCode) Unwrap() error { return w.cause }

// WithCode creates a coded error from a format string.
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{
		err:  fmt.Errorf(format, args...),
		code: code,
	}
}

// WrapC wraps an existing error with a business code and context message.
func WrapC(err error, code int, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withCode{
		err:   fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err),
		code:  code,
		cause: err,
	}
}

type defaultCoder struct {
	code int
	http int
	msg  string
}

func (c defaultCoder) Code() int         { return c.code }
func (c defaultCoder) HTTPStatus() int   { return c.http }
func (c defaultCoder) String() string    { return c.msg }
func (c defaultCoder) Reference() string { return "" }

// unknownCoder is the fallback for uncoded errors: internal server error,
// no detail leaked.
var unknownCoder Coder = defaultCoder{code: 1, http: 500, msg: "An internal server error occurred"}
