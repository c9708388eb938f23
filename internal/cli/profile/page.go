package profile

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steviee/go-byond/internal/byond"
	"github.com/steviee/go-byond/internal/cli/output"
)

// NewPageCommand creates the profile page command.
func NewPageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "page <key>",
		Short: "Print the raw plain-text profile page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput := jsonFlag(cmd)
			client, err := newClient()
			if err != nil {
				return output.Error(cmd.OutOrStdout(), jsonOutput, err)
			}
			return runPage(cmd.Context(), cmd.OutOrStdout(), client, args[0], jsonOutput)
		},
	}
}

func runPage(ctx context.Context, w io.Writer, client *byond.Client, key string, jsonOutput bool) error {
	ckey := byond.NormalizeCkey(key)
	page, err := client.FetchProfilePage(ctx, ckey)
	if err != nil {
		return output.Error(w, jsonOutput, err)
	}

	if jsonOutput {
		return output.Success(w, map[string]interface{}{
			"ckey":  ckey,
			"valid": byond.IsValidProfilePage(page),
			"page":  page,
		}, "")
	}

	_, err = io.WriteString(w, page)
	if err == nil && !strings.HasSuffix(page, "\n") {
		_, err = io.WriteString(w, "\n")
	}
	return err
}
