package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cratelink/pkg/links"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for cratelink, including the --link values.

  $ source <(cratelink completion bash)
  $ cratelink completion zsh > "${fpath[1]}/_cratelink"
  $ cratelink completion fish > ~/.config/fish/completions/cratelink.fish
  PS> cratelink completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := c.stdout
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// completeLinks offers the --link values with their descriptions.
func completeLinks(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, 0, len(links.Destinations))
	for _, d := range links.Destinations {
		out = append(out, d.String()+"\t"+d.Label())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
