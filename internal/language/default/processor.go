package defaultProcessor

import (
	"context"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/language"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/structural"
)

// DefaultProcessor implements the language.Processor interface.
// It serves as a fallback for files no other processor detects. It has no parser, so
// such files can only be converted at line granularity.
type DefaultProcessor struct{}

func init() {
	// Register this default processor with the central factory.
	language.RegisterProcessor(NewDefaultProcessor())
}

// NewDefaultProcessor creates a new, stateless DefaultProcessor.
func NewDefaultProcessor() language.Processor {
	return &DefaultProcessor{}
}

// Name returns the unique, human-readable name of the processor.
func (p *DefaultProcessor) Name() string {
	return "Default"
}

// Detect always returns false. The factory logic is responsible for choosing
// this processor as a fallback if no other specific processor detects a match.
func (p *DefaultProcessor) Detect(filePath string) bool {
	return false
}

// Parse returns an error indicating this feature is not supported.
func (p *DefaultProcessor) Parse(ctx context.Context, source string) (structural.Node, error) {
	return nil, language.ErrNotSupported
}
