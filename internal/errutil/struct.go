package errutil

import "errors"

// Class tells a worker how to react to a failure.
type Class int

const (
	// retry with backoff, the condition should clear on its own
	ClassTransient Class = iota
	// give up on the work item, keep the worker running
	ClassPermanent
	// stop the owning pipeline
	ClassFatal
)

type InternalError struct {
	err   error
	class Class
}

func NewInternalError(msg string) InternalError {
	return InternalError{err: errors.New(msg), class: ClassTransient}
}

func NewPermanentError(msg string) InternalError {
	return InternalError{err: errors.New(msg), class: ClassPermanent}
}

func NewFatalError(msg string) InternalError {
	return InternalError{err: errors.New(msg), class: ClassFatal}
}

func (e InternalError) Error() string {
	return e.err.Error()
}

func (e InternalError) Class() Class {
	return e.class
}

// ClassOf returns the class of the first InternalError in err's chain.
// Unclassified errors count as transient.
func ClassOf(err error) Class {
	var ie InternalError
	if errors.As(err, &ie) {
		return ie.class
	}
	return ClassTransient
}
