package profile

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/steviee/go-byond/internal/byond"
	"github.com/steviee/go-byond/internal/cli/output"
)

// NewValidateCommand creates the profile validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <key>",
		Short: "Check that a ckey has a members directory profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput := jsonFlag(cmd)
			client, err := newClient()
			if err != nil {
				return output.Error(cmd.OutOrStdout(), jsonOutput, err)
			}
			return runValidate(cmd.Context(), cmd.OutOrStdout(), client, args[0], jsonOutput)
		},
	}
}

func runValidate(ctx context.Context, w io.Writer, client *byond.Client, key string, jsonOutput bool) error {
	ckey := byond.NormalizeCkey(key)
	valid := ckey != "" && client.IsValidCkey(ctx, ckey, "")

	if jsonOutput {
		out := output.Output{
			Status: "success",
			Data: map[string]interface{}{
				"ckey":  ckey,
				"valid": valid,
			},
		}
		if !valid {
			out.Status = "error"
			out.Error = fmt.Sprintf("ckey %q has no profile", ckey)
		}
		if err := output.JSON(w, out); err != nil {
			return err
		}
	} else if valid {
		_, _ = fmt.Fprintf(w, "%s %s\n", ckey, output.OK("is a valid ckey"))
	}

	if !valid {
		return fmt.Errorf("ckey %q has no profile", ckey)
	}
	return nil
}
