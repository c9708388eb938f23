package profile

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steviee/go-byond/internal/byond"
	"github.com/steviee/go-byond/internal/cli/output"
)

// Fields lists the names accepted by "profile get".
var Fields = []string{"key", "gender", "joined", "desc", "home_page"}

// NewGetCommand creates the profile get command.
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key> <field>",
		Short: "Print a single profile field",
		Long: fmt.Sprintf(`Print one field of a profile page.

Valid fields: %s`, strings.Join(Fields, ", ")),
		Args:      cobra.ExactArgs(2),
		ValidArgs: Fields,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput := jsonFlag(cmd)
			client, err := newClient()
			if err != nil {
				return output.Error(cmd.OutOrStdout(), jsonOutput, err)
			}
			return runGet(cmd.Context(), cmd.OutOrStdout(), client, args[0], args[1], jsonOutput)
		},
	}
}

func runGet(ctx context.Context, w io.Writer, client *byond.Client, key, field string, jsonOutput bool) error {
	var get func(context.Context, string) (string, error)
	switch strings.ToLower(field) {
	case "key":
		get = client.GetKey
	case "gender":
		get = client.GetGender
	case "joined":
		get = client.GetJoined
	case "desc", "description":
		get = client.GetDesc
	case "home_page", "homepage":
		get = client.GetHomePage
	default:
		return output.Error(w, jsonOutput, fmt.Errorf("unknown field %q (valid: %s)", field, strings.Join(Fields, ", ")))
	}

	ckey := byond.NormalizeCkey(key)
	value, err := get(ctx, ckey)
	if err != nil {
		return output.Error(w, jsonOutput, fmt.Errorf("get %s for %q: %w", field, ckey, err))
	}

	if jsonOutput {
		return output.Success(w, map[string]string{
			"ckey":  ckey,
			"field": field,
			"value": value,
		}, "")
	}

	_, _ = fmt.Fprintln(w, value)
	return nil
}
