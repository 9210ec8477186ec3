package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	infraAI "github.com/testplanhq/testplan/internal/infrastructure/ai"
	"github.com/testplanhq/testplan/internal/infrastructure/config"
	"github.com/testplanhq/testplan/internal/infrastructure/storage"
	"github.com/testplanhq/testplan/pkg/domain/model"
	"github.com/testplanhq/testplan/pkg/extract"
)

var (
	extractAI        bool
	extractProvider  string
	extractModel     string
	requirementsOnly bool
	componentsOnly   bool
	extractJSON      bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract requirements and design components from a document",
	Long: `Extract normalized requirements and design components from a
requirements document, design document, press release, or PDF.

The document kind is detected from its name and content. Use --ai to route
extraction through a configured AI provider; without credentials the
rule-based extractors run instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runExtraction(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		repo := storage.NewFilesystemRepository(cwd)
		if err := repo.SaveExtraction(result.Requirements, result.Components); err != nil {
			return fmt.Errorf("save extraction: %w", err)
		}
		if err := repo.RecordRun(storage.Run{
			Source:       args[0],
			Strategy:     result.Strategy,
			Requirements: len(result.Requirements),
			Components:   len(result.Components),
		}); err != nil {
			return fmt.Errorf("record run: %w", err)
		}

		if extractJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Fprint(cmd.OutOrStdout(), renderExtractSummary(args[0], result.Strategy, result.Requirements, result.Components))
		return nil
	},
}

// extractionResult is the JSON output shape of the extract command.
type extractionResult struct {
	Source       string                  `json:"source"`
	Strategy     string                  `json:"strategy"`
	Requirements []model.Requirement     `json:"requirements"`
	Components   []model.DesignComponent `json:"components"`
}

// runExtraction loads a document, selects a strategy, and runs the
// requested extraction passes.
func runExtraction(ctx context.Context, path string) (*extractionResult, error) {
	src, err := loadSource(path)
	if err != nil {
		return nil, err
	}

	logger := slog.Default()
	opts, err := extractionOptions(logger)
	if err != nil {
		return nil, err
	}

	kind := extract.Classify(src.Name, src.Text)
	strategy, extractor := extract.Select(kind, opts)

	result := &extractionResult{Source: path, Strategy: strategy.String()}
	if !componentsOnly {
		result.Requirements = extractor.Requirements(ctx, src)
	}
	if !requirementsOnly {
		result.Components = extractor.Components(ctx, src)
	}

	return result, nil
}

// loadSource reads the document. PDF files stay as raw bytes for the PDF
// extractor; everything else is treated as text.
func loadSource(path string) (extract.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return extract.Source{}, fmt.Errorf("read document: %w", err)
	}

	src := extract.Source{Name: path}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		src.Data = data
	} else {
		src.Text = string(data)
	}
	return src, nil
}

// extractionOptions resolves the AI settings from flags, falling back to the
// stored workspace config; the TESTPLAN_AI_PROVIDER and TESTPLAN_AI_MODEL
// environment overrides win over both. Missing credentials quietly disable
// AI assist.
func extractionOptions(logger *slog.Logger) (extract.Options, error) {
	opts := extract.Options{Logger: logger}
	if !extractAI {
		return opts, nil
	}

	providerName := extractProvider
	modelName := extractModel
	if providerName == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return opts, err
		}
		cfg, err := config.LoadAIConfig(cwd)
		if err != nil {
			return opts, err
		}
		if cfg != nil {
			providerName = cfg.Provider
			if modelName == "" {
				modelName = cfg.Model
			}
		}
	}

	providerName, modelName = infraAI.DefaultProviderSelection(providerName, modelName)

	opts.UseLLM = true
	opts.LLMAvailable = infraAI.CredentialsPresent(providerName)
	if !opts.LLMAvailable {
		logger.Warn("ai requested but provider credentials are missing, using rule-based extraction",
			"provider", providerName)
		return opts, nil
	}

	provider, err := infraAI.GetDefaultProvider(providerName, modelName)
	if err != nil {
		return opts, err
	}
	opts.Provider = infraAI.NewResilientProvider(provider)
	return opts, nil
}

func init() {
	extractCmd.Flags().BoolVar(&extractAI, "ai", false, "Use AI-assisted extraction")
	extractCmd.Flags().StringVar(&extractProvider, "provider", "", "AI provider (anthropic, openai, ollama, mock)")
	extractCmd.Flags().StringVar(&extractModel, "model", "", "AI model name")
	extractCmd.Flags().BoolVar(&requirementsOnly, "requirements-only", false, "Extract requirements only")
	extractCmd.Flags().BoolVar(&componentsOnly, "components-only", false, "Extract components only")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(extractCmd)
}
