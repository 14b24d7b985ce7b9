package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Scripts go to Out
// like any other artifact.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for fcblocks.

To load completions:

Bash:
  $ source <(fcblocks completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ fcblocks completion bash > /etc/bash_completion.d/fcblocks
  # macOS:
  $ fcblocks completion bash > $(brew --prefix)/etc/bash_completion.d/fcblocks

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ fcblocks completion zsh > "${fpath[1]}/_fcblocks"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ fcblocks completion fish | source

  # To load completions for each session, execute once:
  $ fcblocks completion fish > ~/.config/fish/completions/fcblocks.fish

PowerShell:
  PS> fcblocks completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> fcblocks completion powershell > fcblocks.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.Out)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.Out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.Out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.Out)
			}
			return nil
		},
	}

	return cmd
}
