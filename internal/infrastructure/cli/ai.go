package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	infraAI "github.com/testplanhq/testplan/internal/infrastructure/ai"
	"github.com/testplanhq/testplan/internal/infrastructure/config"
)

var (
	aiProviderFlag string
	aiModelFlag    string
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Manage AI provider settings",
}

var aiConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Persist the default AI provider for this workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		if aiProviderFlag == "" {
			return fmt.Errorf("--provider is required")
		}
		if _, err := infraAI.NewProvider(aiProviderFlag, aiModelFlag); err != nil {
			return err
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg := &config.AIConfig{Provider: aiProviderFlag, Model: aiModelFlag}
		if err := config.SaveAIConfig(cwd, cfg); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "AI provider configured: %s", aiProviderFlag)
		if aiModelFlag != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " (%s)", aiModelFlag)
		}
		fmt.Fprintln(cmd.OutOrStdout())

		if !infraAI.CredentialsPresent(aiProviderFlag) {
			fmt.Fprintln(cmd.OutOrStdout(),
				warnStyle.Render("Credentials missing: extraction will fall back to rule-based passes."))
		}
		return nil
	},
}

var aiStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured provider and credential availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err := config.LoadAIConfig(cwd)
		if err != nil {
			return err
		}

		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No AI provider configured. Run 'testplan ai configure'.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Provider: %s\n", cfg.Provider)
		if cfg.Model != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Model: %s\n", cfg.Model)
		}
		if infraAI.CredentialsPresent(cfg.Provider) {
			fmt.Fprintln(cmd.OutOrStdout(), "Credentials: available")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Credentials: missing")
		}
		return nil
	},
}

func init() {
	aiConfigureCmd.Flags().StringVar(&aiProviderFlag, "provider", "", "AI provider (anthropic, openai, ollama, mock)")
	aiConfigureCmd.Flags().StringVar(&aiModelFlag, "model", "", "AI model name")
	aiCmd.AddCommand(aiConfigureCmd)
	aiCmd.AddCommand(aiStatusCmd)
	RootCmd.AddCommand(aiCmd)
}
