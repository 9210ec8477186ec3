// Package extract converts heterogeneous input documents into normalized
// Requirement and DesignComponent records.
//
// A document is classified by name and content, a strategy is selected for
// it, and the matching extractor runs one or more heuristic passes. Every
// extractor is best-effort: unreadable input or a failing pass yields zero
// records, never an error to the caller.
package extract

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DocKind is the classifier's verdict about a document.
type DocKind int

const (
	KindUnknown DocKind = iota
	KindStructured
	KindNarrative
	KindBinaryPDF
)

func (k DocKind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindNarrative:
		return "narrative"
	case KindBinaryPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

var narrativeNameTokens = []string{"narrative", "press", "announcement", "product"}

// Classify decides the kind of a document from its file name and content.
// It is a pure function of its inputs. For PDF files only the name matters;
// the content heuristic applies after text has been extracted from the
// container.
func Classify(name string, content string) DocKind {
	lower := strings.ToLower(filepath.Base(name))

	if strings.HasSuffix(lower, ".pdf") {
		return KindBinaryPDF
	}

	for _, token := range narrativeNameTokens {
		if strings.Contains(lower, token) {
			return KindNarrative
		}
	}

	if strings.HasSuffix(lower, ".txt") || strings.HasSuffix(lower, ".md") {
		if IsNarrativeContent(content) {
			return KindNarrative
		}
	}

	return KindStructured
}

// ClassifyFile reads the file at path and classifies it. A file that cannot
// be read is treated as structured, the safe default, with a logged warning.
func ClassifyFile(path string, logger *slog.Logger) DocKind {
	if logger == nil {
		logger = slog.Default()
	}

	lower := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(lower, ".pdf") {
		return KindBinaryPDF
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("could not read file for classification, assuming structured",
			"path", path, "error", err)
		return KindStructured
	}

	return Classify(path, string(data))
}

// IsNarrativeContent reports whether text reads like a press release, FAQ,
// or product description rather than an explicitly tagged requirement or
// design document. Structured markers always win over narrative phrasing.
func IsNarrativeContent(content string) bool {
	lower := strings.ToLower(content)

	hasPress := strings.Contains(lower, "press release") ||
		strings.Contains(lower, "for immediate release") ||
		strings.Contains(lower, "announces")

	hasQA := strings.Contains(lower, "frequently asked questions") ||
		(strings.Contains(lower, "q:") && strings.Contains(lower, "a:"))

	hasProductLanguage := strings.Contains(lower, "features") ||
		strings.Contains(lower, "capabilities") ||
		strings.Contains(lower, "benefits")

	hasStructuredMarkers := strings.Contains(lower, "requirement:") ||
		strings.Contains(lower, "design:")

	return (hasPress || hasQA || hasProductLanguage) && !hasStructuredMarkers
}
