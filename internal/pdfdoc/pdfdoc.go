// Package pdfdoc opens PDF files for page-wise native text extraction.
//
// Two parser engines are available. ledongthuc is the default; rsc is the
// stricter upstream parser and is kept as a fallback for files the fork
// handles poorly.
package pdfdoc

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Document is an opened, read-only PDF. Pages are numbered from 1.
type Document interface {
	Path() string
	NumPages() int
	// PageText returns the raw native text of page i, untrimmed.
	PageText(i int) (string, error)
	Close() error
}

// Engine selects the parser used to open documents.
type Engine string

const (
	EngineLedongthuc Engine = "ledongthuc"
	EngineRSC        Engine = "rsc"
)

// ErrUnknownEngine is returned by ParseEngine for unsupported names.
var ErrUnknownEngine = eris.New("pdfdoc: unknown engine")

// ParseEngine maps a flag value to an Engine. Empty selects the default.
func ParseEngine(s string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(s))) {
	case "", EngineLedongthuc:
		return EngineLedongthuc, nil
	case EngineRSC:
		return EngineRSC, nil
	default:
		return "", eris.Wrapf(ErrUnknownEngine, "%q", s)
	}
}

// Opener opens a document at path.
type Opener interface {
	Open(path string) (Document, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(path string) (Document, error)

func (f OpenerFunc) Open(path string) (Document, error) { return f(path) }

// NewOpener returns the Opener for engine.
func NewOpener(engine Engine) Opener {
	if engine == EngineRSC {
		return OpenerFunc(OpenRSC)
	}
	return OpenerFunc(OpenLedongthuc)
}

func checkPage(path string, i, n int) error {
	if i < 1 || i > n {
		return eris.Errorf("pdfdoc: %s: page %d out of range 1..%d", path, i, n)
	}
	return nil
}

// recovered turns a parser panic into an error. Both parsers panic on some
// malformed inputs instead of returning errors.
func recovered(path string, r interface{}) error {
	return eris.Errorf("pdfdoc: %s: malformed pdf: %v", path, r)
}
