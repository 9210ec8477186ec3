package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/testplanhq/testplan/pkg/domain/model"
)

// PDFExtractor pulls plain text out of a PDF container and routes it
// through the narrative or structured extractor, escalating to the
// aggressive scans in scan.go when the primary pass under-yields.
//
// Every stage of the chain is guarded: a stage that panics or errors
// contributes zero records and the remaining stages still run.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

// minNarrativeYield is the requirement count below which the narrative
// path escalates to the enhanced pass.
const minNarrativeYield = 3

func (e *PDFExtractor) Requirements(ctx context.Context, src Source) []model.Requirement {
	text := e.extractText(src)
	if text == "" {
		return nil
	}

	if IsNarrativeContent(text) {
		narrative := Source{Name: src.Name, Text: text}
		reqs := guard(e.logger, "narrative requirements", func() []model.Requirement {
			return NewNarrativeExtractor(e.logger).Requirements(ctx, narrative)
		})

		if len(reqs) < minNarrativeYield {
			e.logger.Debug("narrative pass under-yielded, running enhanced scan",
				"source", src.Name, "yield", len(reqs))
			enhanced := guard(e.logger, "enhanced requirements", func() []model.Requirement {
				return enhancedRequirements(text)
			})
			reqs = append(reqs, enhanced...)
		}

		return reqs
	}

	reqs := guard(e.logger, "structured requirements", func() []model.Requirement {
		return structuredRequirements(text)
	})
	if len(reqs) == 0 {
		e.logger.Debug("no anchored blocks found, running line scan", "source", src.Name)
		reqs = guard(e.logger, "requirement line scan", func() []model.Requirement {
			return scanRequirementLines(text)
		})
	}

	return reqs
}

func (e *PDFExtractor) Components(ctx context.Context, src Source) []model.DesignComponent {
	text := e.extractText(src)
	if text == "" {
		return nil
	}

	if IsNarrativeContent(text) {
		narrative := Source{Name: src.Name, Text: text}
		comps := guard(e.logger, "narrative components", func() []model.DesignComponent {
			return NewNarrativeExtractor(e.logger).Components(ctx, narrative)
		})

		if len(comps) == 0 {
			comps = guard(e.logger, "default components", func() []model.DesignComponent {
				return pdfDefaultComponents(text)
			})
		}

		return comps
	}

	comps := guard(e.logger, "structured components", func() []model.DesignComponent {
		return structuredComponents(text)
	})
	if len(comps) == 0 {
		comps = guard(e.logger, "component line scan", func() []model.DesignComponent {
			return scanComponentLines(text)
		})
	}

	return comps
}

// extractText returns the plain text of the source, decoding the PDF
// container when the source carries raw bytes. Failures are logged and
// yield empty text.
func (e *PDFExtractor) extractText(src Source) string {
	if src.Text != "" {
		return src.Text
	}

	text, err := pdfPlainText(src.Data, e.logger)
	if err != nil {
		e.logger.Warn("pdf text extraction failed", "source", src.Name, "error", err)
		return ""
	}
	return text
}

// pdfPlainText walks the document pages collecting their text. Malformed
// PDFs make the decoder panic on some inputs, so both the reader setup and
// each page walk are recover-guarded; a broken page is skipped, a broken
// document yields an error.
func pdfPlainText(data []byte, logger *slog.Logger) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf decode panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		pageText, pageErr := pagePlainText(reader, i)
		if pageErr != nil {
			logger.Warn("skipping unreadable pdf page", "page", i, "error", pageErr)
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func pagePlainText(reader *pdf.Reader, number int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page decode panic: %v", r)
		}
	}()

	page := reader.Page(number)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// guard runs one chain stage, converting a panic into a logged zero yield.
func guard[T any](logger *slog.Logger, stage string, fn func() []T) (records []T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("extraction stage failed, contributing no records",
				"stage", stage, "panic", r)
			records = nil
		}
	}()
	return fn()
}

// pdfDefaultComponents synthesizes components keyed on content themes when
// the narrative path finds none at all in a PDF document.
func pdfDefaultComponents(content string) []model.DesignComponent {
	lower := strings.ToLower(content)
	var comps []model.DesignComponent
	nextID := 1

	if strings.Contains(lower, "voice") || strings.Contains(lower, "speech") {
		comps = append(comps, model.DesignComponent{
			ID:            formatID("COMP", nextID),
			Name:          "Voice Recognition System",
			Type:          model.TypeService,
			Description:   "Handles voice command processing and natural language understanding",
			Interfaces:    []string{"Voice Command API"},
			Dependencies:  []string{"Speech-to-Text Service", "Natural Language Processing Engine"},
			BusinessRules: []string{"Must handle various accents and speech patterns"},
		})
		nextID++
	}

	if strings.Contains(lower, "appliance") || strings.Contains(lower, "device") ||
		strings.Contains(lower, "smart") {
		comps = append(comps, model.DesignComponent{
			ID:            formatID("COMP", nextID),
			Name:          "Smart Device Integration",
			Type:          model.TypeIntegration,
			Description:   "Manages connections and control of smart devices",
			Interfaces:    []string{"Device Control API"},
			Dependencies:  []string{"IoT Device Manager", "Device Communication Protocol", "Device Status Monitor"},
			BusinessRules: []string{"Must handle device connectivity failures gracefully"},
		})
		nextID++
	}

	if strings.Contains(lower, "recipe") || strings.Contains(lower, "content") ||
		strings.Contains(lower, "catalog") {
		comps = append(comps, model.DesignComponent{
			ID:            formatID("COMP", nextID),
			Name:          "Content Data Service",
			Type:          model.TypeService,
			Description:   "Manages domain content and list functionality",
			Interfaces:    []string{"Content Search API", "List Management API"},
			Dependencies:  []string{"Content Database", "External Data Providers"},
			BusinessRules: []string{"Must provide accurate and current information"},
		})
		nextID++
	}

	return comps
}
