package extract

import (
	"context"
	"log/slog"

	"github.com/testplanhq/testplan/pkg/domain/ai"
	"github.com/testplanhq/testplan/pkg/domain/model"
)

// Strategy identifies which extraction approach handles a document.
// The set is closed; Select always returns exactly one of these.
type Strategy int

const (
	StrategyStructured Strategy = iota
	StrategyNarrative
	StrategyPDF
	StrategyLLM
)

func (s Strategy) String() string {
	switch s {
	case StrategyNarrative:
		return "narrative"
	case StrategyPDF:
		return "pdf"
	case StrategyLLM:
		return "llm"
	default:
		return "structured"
	}
}

// Source is one input document handed to an extractor. Text carries the
// readable content for plain-text documents; Data carries raw bytes for
// binary containers such as PDF.
type Source struct {
	Name string
	Text string
	Data []byte
}

// Extractor turns one document into normalized records. Implementations
// never return an error: unusable input yields empty slices.
type Extractor interface {
	Requirements(ctx context.Context, src Source) []model.Requirement
	Components(ctx context.Context, src Source) []model.DesignComponent
}

// Options configures strategy selection for one extraction call.
type Options struct {
	// UseLLM requests AI-assisted extraction.
	UseLLM bool
	// LLMAvailable gates UseLLM on credentials actually being present.
	LLMAvailable bool
	// Provider is the AI backend used when the LLM strategy is selected.
	Provider ai.Provider
	// Logger receives pass-level warnings. Defaults to slog.Default.
	Logger *slog.Logger
}

// Select picks the extraction strategy for a classified document and builds
// the extractor for it. AI-assisted extraction, when requested and
// available, wins over classification because it accepts any textual
// content. Selection happens once per document per extraction call;
// requirements and components may reselect independently.
func Select(kind DocKind, opts Options) (Strategy, Extractor) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.UseLLM && opts.LLMAvailable && opts.Provider != nil {
		return StrategyLLM, NewLLMExtractor(opts.Provider, logger)
	}

	switch kind {
	case KindBinaryPDF:
		return StrategyPDF, NewPDFExtractor(logger)
	case KindNarrative:
		return StrategyNarrative, NewNarrativeExtractor(logger)
	default:
		return StrategyStructured, NewStructuredExtractor(logger)
	}
}
