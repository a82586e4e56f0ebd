package extract

import (
	"errors"
	"fmt"
)

// Kind classifies why a document produced no output.
type Kind int

const (
	KindUnknown Kind = iota
	KindInputNotFound
	KindOpenFailure
	KindMissingCredential
	KindMissingDependency
	KindEmptyResult
	KindWriteFailure
)

func (k Kind) String() string {
	switch k {
	case KindInputNotFound:
		return "input not found"
	case KindOpenFailure:
		return "cannot open document"
	case KindMissingCredential:
		return "missing credential"
	case KindMissingDependency:
		return "missing dependency"
	case KindEmptyResult:
		return "no text extracted"
	case KindWriteFailure:
		return "cannot write output"
	default:
		return "error"
	}
}

// Error is a document-scoped failure. It never aborts the remaining inputs.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func docError(kind Kind, path string, err error) error {
	return &Error{Kind: kind, Path: path, Err: err}
}
