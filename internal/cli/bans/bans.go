package bans

import (
	"github.com/spf13/cobra"

	"github.com/steviee/go-byond/internal/centcom"
	"github.com/steviee/go-byond/internal/cli/settings"
)

// NewCommand creates the bans command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bans",
		Short: "Search the CentCom ban database",
		Long: `Search bans aggregated by CentCom across participating servers.

By default the JSON response is pretty-printed with four-space indentation.
Use --raw to print the body exactly as received, or --summary for a
human-readable list.`,
		Example: `  # Pretty-printed JSON
  go-byond bans search someguy

  # Raw response body
  go-byond bans search someguy --raw

  # Only bans still in force, as a summary
  go-byond bans search someguy --summary --active`,
		Aliases: []string{"ban"},
	}

	cmd.AddCommand(NewSearchCommand())

	return cmd
}

func newClient() (*centcom.Client, error) {
	cfg, err := settings.Current()
	if err != nil {
		return nil, err
	}
	return centcom.NewClient(cfg.CentComClientConfig()), nil
}

func jsonFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
