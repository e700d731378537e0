// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the zukou client runtime.

package api

import (
	"errors"
	"fmt"
)

// ErrRetry is returned by Display.PrepareRead while already-read events are
// still waiting to be dispatched.
var ErrRetry = errors.New("pending events must be dispatched first")

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeInvalidState
	ErrCodeConnection
	ErrCodeUnsupportedServer
	ErrCodeResource
	ErrCodeIOFault
	ErrCodeProtocol
	ErrCodeInternal
)

// String returns the short name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid argument"
	case ErrCodeInvalidState:
		return "invalid state"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeUnsupportedServer:
		return "unsupported server"
	case ErrCodeResource:
		return "resource"
	case ErrCodeIOFault:
		return "io fault"
	case ErrCodeProtocol:
		return "protocol"
	default:
		return "internal"
	}
}

// Sentinels matched by code through errors.Is.
var (
	ErrInvalidArgument   = &Error{Code: ErrCodeInvalidArgument, Message: "invalid argument"}
	ErrInvalidState      = &Error{Code: ErrCodeInvalidState, Message: "invalid state"}
	ErrConnection        = &Error{Code: ErrCodeConnection, Message: "connection failed"}
	ErrUnsupportedServer = &Error{Code: ErrCodeUnsupportedServer, Message: "unsupported server"}
	ErrResource          = &Error{Code: ErrCodeResource, Message: "resource acquisition failed"}
	ErrIOFault           = &Error{Code: ErrCodeIOFault, Message: "i/o fault"}
	ErrProtocol          = &Error{Code: ErrCodeProtocol, Message: "protocol error"}
)

// Error represents a structured error with code, context and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if len(e.Context) != 0 {
		msg = fmt.Sprintf("%s (context: %+v)", msg, e.Context)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WrapError creates a structured error around cause. Returns nil for a nil cause.
func WrapError(code ErrorCode, message string, cause error) error {
	if cause == nil {
		return nil
	}
	e := NewError(code, message)
	e.Err = cause
	return e
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the code of the first *Error in err's chain.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
