package language

import (
	"context"
	"errors"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/structural"
)

// ErrNotSupported is a sentinel error returned by a Processor that cannot build a syntax tree
// for a file, e.g. because no parser exists for its language.
var ErrNotSupported = errors.New("syntax tree not supported for this language")

// Processor defines the contract for all language-specific logic.
type Processor interface {
	// Name returns the unique, human-readable name of the processor (e.g., "JavaScript").
	Name() string

	// Detect checks if this processor should be used for a given source file path.
	Detect(filePath string) bool

	// Parse builds the syntax tree of a source file. Node offsets are UTF-16 code units and
	// the root spans the whole text. If the language has no parser, it must return
	// language.ErrNotSupported.
	Parse(ctx context.Context, source string) (structural.Node, error)
}

var registeredProcessors []Processor

// RegisterProcessor adds a processor to the list of available processors.
// This should be called by each processor implementation in its init() function.
func RegisterProcessor(p Processor) {
	registeredProcessors = append(registeredProcessors, p)
}

// FindProcessorForFile iterates through registered processors to find one that
// can handle the given file path. It is guaranteed to return a valid processor,
// falling back to the "Default" processor.
func FindProcessorForFile(filePath string) Processor {
	var defaultProcessor Processor

	for _, p := range registeredProcessors {
		if p.Name() == "Default" {
			defaultProcessor = p
			continue
		}
		if p.Detect(filePath) {
			return p
		}
	}

	if defaultProcessor != nil {
		return defaultProcessor
	}

	panic("FATAL: Default language processor was not registered.")
}
