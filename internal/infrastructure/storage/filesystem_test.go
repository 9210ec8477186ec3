package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/testplanhq/testplan/internal/infrastructure/storage"
	"github.com/testplanhq/testplan/pkg/domain/model"
)

func TestResolvePath_RejectsTraversal(t *testing.T) {
	repo := storage.NewFilesystemRepository(t.TempDir())

	for _, filename := range []string{"", "../escape.json", "sub/dir.json", "../../etc/passwd"} {
		if _, err := repo.ResolvePath(filename); err == nil {
			t.Errorf("expected error for %q", filename)
		}
	}

	if _, err := repo.ResolvePath("requirements.json"); err != nil {
		t.Errorf("unexpected error for plain filename: %v", err)
	}
}

func TestInitialize_CreatesWorkspaceDir(t *testing.T) {
	root := t.TempDir()
	repo := storage.NewFilesystemRepository(root)

	if repo.IsInitialized() {
		t.Error("expected fresh root to be uninitialized")
	}
	if err := repo.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.IsInitialized() {
		t.Error("expected initialized workspace")
	}
	if _, err := os.Stat(filepath.Join(root, ".testplan")); err != nil {
		t.Errorf("expected .testplan directory: %v", err)
	}
}

func TestSaveAndLoadExtraction(t *testing.T) {
	repo := storage.NewFilesystemRepository(t.TempDir())

	reqs := []model.Requirement{
		{ID: "REQ-001", Title: "Login", Priority: model.PriorityHigh, Category: model.CategorySecurity},
	}
	comps := []model.DesignComponent{
		{ID: "COMP-001", Name: "Session Store", Type: model.TypeDatabase},
	}

	if err := repo.SaveExtraction(reqs, comps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotReqs, err := repo.LoadRequirements()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotReqs) != 1 || gotReqs[0].ID != "REQ-001" || gotReqs[0].Priority != model.PriorityHigh {
		t.Errorf("unexpected requirements %+v", gotReqs)
	}

	gotComps, err := repo.LoadComponents()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotComps) != 1 || gotComps[0].Type != model.TypeDatabase {
		t.Errorf("unexpected components %+v", gotComps)
	}
}

func TestLoadExtraction_AbsentFilesYieldNothing(t *testing.T) {
	repo := storage.NewFilesystemRepository(t.TempDir())

	reqs, err := repo.LoadRequirements()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("expected no requirements, got %v", reqs)
	}
}

func TestRecordRun_AppendsAndFillsDefaults(t *testing.T) {
	repo := storage.NewFilesystemRepository(t.TempDir())

	if err := repo.RecordRun(storage.Run{Source: "doc.txt", Strategy: "narrative", Requirements: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.RecordRun(storage.Run{Source: "srs.pdf", Strategy: "pdf", Components: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runs, err := repo.LoadRuns()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID == "" || runs[0].Timestamp.IsZero() {
		t.Errorf("expected generated ID and timestamp, got %+v", runs[0])
	}
	if runs[0].ID == runs[1].ID {
		t.Error("expected distinct run IDs")
	}
	if runs[1].Source != "srs.pdf" || runs[1].Strategy != "pdf" {
		t.Errorf("unexpected second run %+v", runs[1])
	}
}

func TestLoadRuns_SkipsMalformedLines(t *testing.T) {
	root := t.TempDir()
	repo := storage.NewFilesystemRepository(root)

	if err := repo.RecordRun(storage.Run{Source: "doc.txt"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(root, ".testplan", "runs.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatalf("open run log: %v", err)
	}
	if _, err := f.WriteString("{not json}\n"); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	f.Close()

	runs, err := repo.LoadRuns()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected malformed line skipped, got %d runs", len(runs))
	}
}

func TestLoadRuns_AbsentLogIsEmpty(t *testing.T) {
	repo := storage.NewFilesystemRepository(t.TempDir())

	runs, err := repo.LoadRuns()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty run list, got %v", runs)
	}
}
