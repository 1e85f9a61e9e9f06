// Package errors provides error wrapping with slog annotations and source locations.
//
// It is a drop-in replacement for the stdlib errors package with the addition of
// [Wrap], [SlogError], and [DecoratePanic].
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// AnnotatedError carries a message, an optional cause, slog attributes, and the
// program counter of the call site where it was created.
type AnnotatedError struct {
	msg   string
	cause error
	attrs []slog.Attr
	pc    uintptr
}

// Error implements the error interface by joining the message chain with ": ".
func (e *AnnotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

// Unwrap returns the wrapped cause.
func (e *AnnotatedError) Unwrap() error {
	return e.cause
}

// callerPC captures the program counter skip+2 frames up the stack, i.e. the
// caller of the exported function that invoked callerPC.
func callerPC(skip int) uintptr {
	var pcs [1]uintptr
	// skip runtime.Callers and callerPC itself in addition to the requested frames.
	runtime.Callers(skip+2, pcs[:])
	return pcs[0]
}

// New creates an error annotated with the caller's source location.
func New(msg string, attrs ...slog.Attr) error {
	return &AnnotatedError{msg: msg, cause: nil, attrs: attrs, pc: callerPC(1)}
}

// NewSentinel creates a plain error without source annotation. Use it for
// package-level sentinel errors where the definition site is meaningless.
func NewSentinel(msg string) error {
	return errors.New(msg) //nolint:err113 // sentinel constructor.
}

// Wrap annotates err with a contextual message and optional slog attributes.
// The source location of the Wrap call is recorded for logging with [SlogError].
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &AnnotatedError{msg: msg, cause: err, attrs: attrs, pc: callerPC(1)}
}

// DecoratePanic converts a value recovered from a panic into an annotated error
// pointing at the panic site.
func DecoratePanic(recovered any) error {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:]) //nolint:mnd // skip runtime.Callers and DecoratePanic.

	// The panic site is the frame right below runtime.gopanic in the stack.
	var pc uintptr
	frames := runtime.CallersFrames(pcs[:n])
	sawGopanic := false
	for {
		frame, more := frames.Next()
		if sawGopanic {
			pc = frame.PC
			break
		}
		if frame.Function == "runtime.gopanic" {
			sawGopanic = true
		}
		if !more {
			break
		}
	}
	if pc == 0 && n > 0 {
		pc = pcs[0]
	}

	return &AnnotatedError{msg: fmt.Sprintf("panic: %v", recovered), cause: nil, attrs: nil, pc: pc}
}

// SlogError renders err as a grouped [slog.Attr] containing the error message,
// all annotations collected from the error chain, and the source location of
// the deepest annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{} //nolint:exhaustruct // empty attr is ignored by slog.
	}

	var (
		annotations []slog.Attr
		source      string
	)
	collectAnnotations(err, &annotations, &source)

	args := []any{slog.String("msg", err.Error())}
	if source != "" {
		args = append(args, slog.String("source", source))
	}
	if len(annotations) > 0 {
		annotationArgs := make([]any, 0, len(annotations))
		for _, attr := range annotations {
			annotationArgs = append(annotationArgs, attr)
		}
		args = append(args, slog.Group("annotations", annotationArgs...))
	}
	return slog.Group("error", args...)
}

// collectAnnotations walks the error tree depth-first gathering annotations.
// The source location of the outermost annotated error wins since it has the
// most call context.
func collectAnnotations(err error, annotations *[]slog.Attr, source *string) {
	if err == nil {
		return
	}

	var annotated *AnnotatedError
	if errors.As(err, &annotated) {
		// As finds the first AnnotatedError in the chain; record it and recurse
		// into its cause for deeper annotations.
		*annotations = append(*annotations, annotated.attrs...)
		if *source == "" && annotated.pc != 0 {
			frames := runtime.CallersFrames([]uintptr{annotated.pc})
			frame, _ := frames.Next()
			if frame.File != "" {
				*source = fmt.Sprintf("%s:%d", frame.File, frame.Line)
			}
		}
		collectAnnotations(annotated.cause, annotations, source)
		return
	}

	// Multi-error produced by Join.
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collectAnnotations(e, annotations, source)
		}
		return
	}

	collectAnnotations(errors.Unwrap(err), annotations, source)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join wraps the given errors into a single error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap returns the result of calling the Unwrap method on err if available.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
