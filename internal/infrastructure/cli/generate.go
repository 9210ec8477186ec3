package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/testplanhq/testplan/pkg/export"
	"github.com/testplanhq/testplan/pkg/generate"
)

var (
	generateProject string
	generateVersion string
	generateOut     string
)

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate a complete test plan from a document",
	Long: `Extract requirements and design components from the document, then
generate a test plan with functional, integration, boundary, and negative
test cases, exported as a plain-text document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runExtraction(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		project := generateProject
		if project == "" {
			base := filepath.Base(args[0])
			project = strings.TrimSuffix(base, filepath.Ext(base))
		}

		plan := generate.Plan(generate.PlanOptions{
			Project: project,
			Version: generateVersion,
		}, result.Requirements, result.Components)

		if errs := plan.Validate(); len(errs) > 0 {
			return fmt.Errorf("generated plan is invalid: %v", errs)
		}

		out := cmd.OutOrStdout()
		if generateOut != "" {
			f, err := os.Create(generateOut)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := export.Text(out, &plan); err != nil {
			return err
		}

		if generateOut != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d test cases)\n",
				headerStyle.Render("Test plan written:"), generateOut, len(plan.TestCases))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateProject, "project", "", "Project name (defaults to the document name)")
	generateCmd.Flags().StringVar(&generateVersion, "version", "1.0", "Test plan version")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "Output file (defaults to stdout)")
	generateCmd.Flags().BoolVar(&extractAI, "ai", false, "Use AI-assisted extraction")
	generateCmd.Flags().StringVar(&extractProvider, "provider", "", "AI provider (anthropic, openai, ollama, mock)")
	generateCmd.Flags().StringVar(&extractModel, "model", "", "AI model name")
	RootCmd.AddCommand(generateCmd)
}
