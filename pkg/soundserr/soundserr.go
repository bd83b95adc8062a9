// Package soundserr holds the engine's error taxonomy as concrete types
// rather than opaque strings, so callers can errors.As into the kind
// they care about. Only parsing and resource loading ever return an
// error from this package — the matcher and applier are total
// functions over well-formed inputs (see the propagation policy this
// mirrors).
package soundserr

import "fmt"

// ParseError reports an ill-formed rule or sequence text, always with
// the offending token's index so callers can point at it.
type ParseError struct {
	Text       string
	TokenIndex int
	Msg        string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at token %d in %q: %s", e.TokenIndex, e.Text, e.Msg)
}

// NewParseError builds a ParseError.
func NewParseError(text string, tokenIndex int, msg string) *ParseError {
	return &ParseError{Text: text, TokenIndex: tokenIndex, Msg: msg}
}

// ResourceError reports a missing, malformed, or duplicate-keyed
// resource table.
type ResourceError struct {
	Resource string
	Msg      string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource error in %q: %s", e.Resource, e.Msg)
}

// NewResourceError builds a ResourceError.
func NewResourceError(resource, msg string) *ResourceError {
	return &ResourceError{Resource: resource, Msg: msg}
}

// UnknownSystemError reports a registry lookup for a feature-system
// name that was never registered.
type UnknownSystemError struct {
	Name string
}

func (e *UnknownSystemError) Error() string {
	return fmt.Sprintf("unknown feature system %q", e.Name)
}

// NewUnknownSystemError builds an UnknownSystemError.
func NewUnknownSystemError(name string) *UnknownSystemError {
	return &UnknownSystemError{Name: name}
}
