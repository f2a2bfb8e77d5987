package cmd

import (
	"github.com/chris-regnier/wellnessctl/internal/shell"
	"github.com/spf13/cobra"
)

var initShellCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Output shell integration script",
	Long: `Output shell integration script for eval.

Generates shell-specific initialization code that sets up:
- Shell completions
- Prompt hook for check-in status env vars
- wellnessctl_prompt_info and wellnessctl_remind helper functions

Supported shells: bash, zsh`,
	Example: `  # Add to ~/.bashrc
  eval "$(wellnessctl init bash)"

  # Add to ~/.zshrc
  eval "$(wellnessctl init zsh)"`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: shell.Shells,
	RunE: func(cmd *cobra.Command, args []string) error {
		return shell.WriteInit(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(initShellCmd)
}
