// Package storage persists extraction artifacts in a per-project
// .testplan directory.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"

	"github.com/testplanhq/testplan/pkg/domain/model"
)

const TestplanDir = ".testplan"
const RequirementsFile = "requirements.json"
const ComponentsFile = "components.json"
const RunsFile = "runs.jsonl"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path stays within the .testplan directory and
// prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, TestplanDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, TestplanDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .testplan directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, TestplanDir))
	return err == nil
}

// SaveExtraction persists the latest extraction results, replacing any
// previous ones.
func (r *FilesystemRepository) SaveExtraction(reqs []model.Requirement, comps []model.DesignComponent) error {
	if err := r.Initialize(); err != nil {
		return err
	}
	if err := saveJSON(r, RequirementsFile, reqs); err != nil {
		return err
	}
	return saveJSON(r, ComponentsFile, comps)
}

func (r *FilesystemRepository) LoadRequirements() ([]model.Requirement, error) {
	return loadJSON[[]model.Requirement](r, RequirementsFile)
}

func (r *FilesystemRepository) LoadComponents() ([]model.DesignComponent, error) {
	return loadJSON[[]model.DesignComponent](r, ComponentsFile)
}

func saveJSON(r *FilesystemRepository, filename string, v any) error {
	path, err := r.ResolvePath(filename)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}

	return os.WriteFile(path, data, 0600)
}

// loadJSON reads a stored artifact, retrying transient read failures.
// A missing file is not an error; it yields the zero value.
func loadJSON[T any](r *FilesystemRepository, filename string) (T, error) {
	retryer := retry.New[T](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (T, error) {
		var v T

		path, err := r.ResolvePath(filename)
		if err != nil {
			return v, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return v, nil
			}
			return v, fmt.Errorf("failed to read %s: %w", filename, err)
		}

		if err := json.Unmarshal(data, &v); err != nil {
			return v, fmt.Errorf("failed to unmarshal %s: %w", filename, err)
		}
		return v, nil
	})
}
