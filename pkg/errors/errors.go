// Package errors provides structured error handling for the Ident framework.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a configuration error.
	KindConfig
	// KindTraversal indicates a tree-traversal bookkeeping error.
	KindTraversal
	// KindGeneration indicates an identifier generation error.
	KindGeneration
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindBuild indicates a build-time widget error.
	KindBuild
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTraversal:
		return "traversal"
	case KindGeneration:
		return "generation"
	case KindPanic:
		return "panic"
	case KindBuild:
		return "build"
	default:
		return "unknown"
	}
}

// IdentError represents a structured error in the Ident framework.
type IdentError struct {
	// Op is the operation that failed (e.g., "identity.LoadOptions").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *IdentError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *IdentError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "widgets.AutoID.Rebuild").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// TraversalError represents a breadcrumb bookkeeping violation: a scope was
// exited out of LIFO order, or exited twice. This always signals a bug in the
// traversal integration, never a recoverable runtime condition.
type TraversalError struct {
	// Op is the operation that detected the violation.
	Op string
	// Segment describes the path segment whose scope was mishandled.
	Segment string
	// Depth is the depth the scope was entered at.
	Depth int
	// CurrentDepth is the tracker depth observed at exit time.
	CurrentDepth int
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("%s: scope for %q entered at depth %d exited at depth %d (LIFO violation)",
		e.Op, e.Segment, e.Depth, e.CurrentDepth)
}

// BuildError represents a failure during widget build.
type BuildError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Element is the element type (StatelessElement, StatefulElement, etc.).
	Element string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.Build(): %v", e.Widget, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.Build(): %v", e.Widget, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.Build()", e.Widget)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the Ident framework.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *IdentError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when a widget build fails.
	HandleBuildError(err *BuildError)
}
