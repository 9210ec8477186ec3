package extract_test

import (
	"context"
	"strings"
	"testing"

	"github.com/testplanhq/testplan/pkg/domain/model"
	"github.com/testplanhq/testplan/pkg/extract"
)

func TestPDFExtractor_NarrativeUnderYieldEscalates(t *testing.T) {
	text := "FOR IMMEDIATE RELEASE.\n" +
		"The platform provides real-time inventory tracking, automated reorder suggestions, and smart shopping lists to shoppers everywhere."

	e := extract.NewPDFExtractor(nil)
	reqs := e.Requirements(context.Background(), extract.Source{Name: "launch.pdf", Text: text})

	if len(reqs) != 4 {
		t.Fatalf("expected 4 requirements from the enhanced pass, got %d: %v", len(reqs), reqs)
	}

	if reqs[0].ID != "PDF-REQ-001" {
		t.Errorf("expected PDF-REQ-001, got %s", reqs[0].ID)
	}
	if reqs[0].Title != "real-time inventory tracking" {
		t.Errorf("unexpected first feature title %q", reqs[0].Title)
	}
	if reqs[0].Priority != model.PriorityHigh {
		t.Errorf("expected High priority for listed feature, got %s", reqs[0].Priority)
	}
	if reqs[3].ID != "PDF-REQ-004" {
		t.Errorf("expected capability sentence as PDF-REQ-004, got %s", reqs[3].ID)
	}
}

func TestPDFExtractor_NarrativeAdequateYieldSkipsEscalation(t *testing.T) {
	text := "FOR IMMEDIATE RELEASE\n" +
		"Key Features:\n" +
		"• Smart Predictions: Uses AI to predict needs\n" +
		"• Low Stock Alerts: Sends a notification when items run low\n" +
		"• Voice Control: Works hands-free in the kitchen\n"

	e := extract.NewPDFExtractor(nil)
	reqs := e.Requirements(context.Background(), extract.Source{Name: "launch.pdf", Text: text})

	if len(reqs) != 3 {
		t.Fatalf("expected 3 narrative requirements, got %d", len(reqs))
	}
	for _, r := range reqs {
		if strings.HasPrefix(r.ID, "PDF-REQ") {
			t.Errorf("enhanced pass ran despite adequate yield: %s", r.ID)
		}
	}
}

func TestPDFExtractor_StructuredFallsBackToLineScan(t *testing.T) {
	text := "3.1 User login.\n" +
		"The portal shall validate credentials on submit.\n" +
		"- Reject invalid passwords\n" +
		"- Lock after five attempts\n" +
		"The session database stores tokens.\n"

	e := extract.NewPDFExtractor(nil)
	src := extract.Source{Name: "srs.pdf", Text: text}

	reqs := e.Requirements(context.Background(), src)
	if len(reqs) != 3 {
		t.Fatalf("expected 3 scanned requirements, got %d: %v", len(reqs), reqs)
	}
	if reqs[0].ID != "REQ-001" || reqs[0].Title != "User login." {
		t.Errorf("unexpected first scan record: %s %q", reqs[0].ID, reqs[0].Title)
	}
	if len(reqs[1].AcceptanceCriteria) != 2 {
		t.Errorf("expected 2 criteria from following bullets, got %v", reqs[1].AcceptanceCriteria)
	}
	if reqs[1].AcceptanceCriteria[0] != "Reject invalid passwords" {
		t.Errorf("bullet marker not stripped: %q", reqs[1].AcceptanceCriteria[0])
	}

	comps := e.Components(context.Background(), src)
	if len(comps) != 1 {
		t.Fatalf("expected 1 scanned component, got %d: %v", len(comps), comps)
	}
	if comps[0].ID != "COMP-001" || comps[0].Type != model.TypeDatabase {
		t.Errorf("unexpected component: %s type %s", comps[0].ID, comps[0].Type)
	}
}

func TestPDFExtractor_AnchoredTextUsesStructuredExtractor(t *testing.T) {
	text := "REQUIREMENT REQ-007: Exports run nightly\nPriority: High\n"

	e := extract.NewPDFExtractor(nil)
	reqs := e.Requirements(context.Background(), extract.Source{Name: "srs.pdf", Text: text})

	if len(reqs) != 1 {
		t.Fatalf("expected 1 anchored requirement, got %d", len(reqs))
	}
	if reqs[0].ID != "REQ-007" {
		t.Errorf("expected document ID REQ-007, got %s", reqs[0].ID)
	}
}

func TestPDFExtractor_CorruptPDFYieldsNothing(t *testing.T) {
	e := extract.NewPDFExtractor(nil)
	src := extract.Source{Name: "broken.pdf", Data: []byte("definitely not a pdf")}

	if reqs := e.Requirements(context.Background(), src); len(reqs) != 0 {
		t.Errorf("expected no requirements from corrupt pdf, got %d", len(reqs))
	}
	if comps := e.Components(context.Background(), src); len(comps) != 0 {
		t.Errorf("expected no components from corrupt pdf, got %d", len(comps))
	}
}
