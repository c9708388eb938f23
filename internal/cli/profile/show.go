package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/steviee/go-byond/internal/byond"
	"github.com/steviee/go-byond/internal/cli/output"
)

// NewShowCommand creates the profile show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Show all public profile fields",
		Long: `Fetch the profile page once and print every public field.

Fields the user never filled in are left blank. The account age is
derived from the joined date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput := jsonFlag(cmd)
			client, err := newClient()
			if err != nil {
				return output.Error(cmd.OutOrStdout(), jsonOutput, err)
			}
			return runShow(cmd.Context(), cmd.OutOrStdout(), client, args[0], jsonOutput, time.Now())
		},
	}
}

func runShow(ctx context.Context, w io.Writer, client *byond.Client, key string, jsonOutput bool, now time.Time) error {
	ckey := byond.NormalizeCkey(key)
	if ckey == "" {
		return output.Error(w, jsonOutput, fmt.Errorf("%w: %q has no ckey characters", byond.ErrInvalidCkey, key))
	}

	profile, err := client.GetProfile(ctx, ckey)
	if err != nil {
		if errors.Is(err, byond.ErrInvalidProfile) {
			err = fmt.Errorf("no BYOND profile for %q", ckey)
		}
		return output.Error(w, jsonOutput, err)
	}

	if jsonOutput {
		return output.Success(w, profile, fmt.Sprintf("Profile for %s", profile.Key))
	}

	output.Field(w, "Key", profile.Key)
	output.Field(w, "Ckey", profile.Ckey)
	output.Field(w, "Gender", profile.Gender)
	output.Field(w, "Joined", joinedText(profile, now))
	output.Field(w, "Desc", profile.Desc)
	output.Field(w, "Home page", profile.HomePage)

	return nil
}

// joinedText renders the joined date with the account age when it parses.
func joinedText(profile *byond.Profile, now time.Time) string {
	joined, ok := profile.JoinedTime()
	if !ok || joined.After(now) {
		return profile.Joined
	}
	return fmt.Sprintf("%s (%s ago)", profile.Joined, units.HumanDuration(now.Sub(joined)))
}
