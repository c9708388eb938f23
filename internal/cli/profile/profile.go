package profile

import (
	"github.com/spf13/cobra"

	"github.com/steviee/go-byond/internal/byond"
	"github.com/steviee/go-byond/internal/cli/settings"
)

// NewCommand creates the profile command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Look up BYOND members directory profiles",
		Long: `Look up public BYOND profiles from the members directory.

Keys are normalized to ckeys (lowercase, letters, digits and @ only)
before the lookup, so "Some Guy" and "someguy" address the same profile.`,
		Example: `  # Show every public field
  go-byond profile show "Some Guy"

  # Print a single field
  go-byond profile get someguy joined

  # Check that a ckey exists
  go-byond profile validate someguy

  # Dump the raw plain-text page
  go-byond profile page someguy`,
		Aliases: []string{"member"},
	}

	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewGetCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewPageCommand())

	return cmd
}

func newClient() (*byond.Client, error) {
	cfg, err := settings.Current()
	if err != nil {
		return nil, err
	}
	return byond.NewClient(cfg.ByondClientConfig()), nil
}

func jsonFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
