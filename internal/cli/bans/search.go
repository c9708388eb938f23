package bans

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/steviee/go-byond/internal/byond"
	"github.com/steviee/go-byond/internal/centcom"
	"github.com/steviee/go-byond/internal/cli/output"
)

// NewSearchCommand creates the bans search command.
func NewSearchCommand() *cobra.Command {
	var (
		raw        bool
		summary    bool
		activeOnly bool
	)

	cmd := &cobra.Command{
		Use:   "search <key>",
		Short: "Search bans for a ckey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput := jsonFlag(cmd)
			client, err := newClient()
			if err != nil {
				return output.Error(cmd.OutOrStdout(), jsonOutput, err)
			}

			ckey := byond.NormalizeCkey(args[0])
			if summary || activeOnly {
				return runSummary(cmd.Context(), cmd.OutOrStdout(), client, ckey, activeOnly, jsonOutput, time.Now())
			}
			return runSearch(cmd.Context(), cmd.OutOrStdout(), client, ckey, raw, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the response body unmodified")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a human-readable summary")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only include bans still in force (implies --summary)")
	cmd.MarkFlagsMutuallyExclusive("raw", "summary")
	cmd.MarkFlagsMutuallyExclusive("raw", "active")

	return cmd
}

func runSearch(ctx context.Context, w io.Writer, client *centcom.Client, ckey string, raw, jsonOutput bool) error {
	body, err := client.BanSearch(ctx, ckey, !raw && !jsonOutput)
	if err != nil {
		return output.Error(w, jsonOutput, err)
	}

	if jsonOutput {
		return output.Success(w, json.RawMessage(body), fmt.Sprintf("Ban search for %s", ckey))
	}

	_, err = io.WriteString(w, body)
	if err == nil && !strings.HasSuffix(body, "\n") {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

func runSummary(ctx context.Context, w io.Writer, client *centcom.Client, ckey string, activeOnly, jsonOutput bool, now time.Time) error {
	found, err := client.Search(ctx, ckey)
	if err != nil {
		return output.Error(w, jsonOutput, err)
	}

	bans := found
	if activeOnly {
		bans = make([]centcom.Ban, 0, len(found))
		for _, ban := range found {
			if ban.Active(now) {
				bans = append(bans, ban)
			}
		}
	}

	if jsonOutput {
		return output.Success(w, bans, fmt.Sprintf("Found %d ban(s) for %s", len(bans), ckey))
	}

	if len(bans) == 0 {
		_, _ = fmt.Fprintf(w, "No bans found for %s\n", ckey)
		return nil
	}

	_, _ = fmt.Fprintf(w, "%s\n", output.Header(fmt.Sprintf("Bans for %s (%d)", ckey, len(bans))))
	for _, ban := range bans {
		writeBan(w, ban, now)
	}

	return nil
}

func writeBan(w io.Writer, ban centcom.Ban, now time.Time) {
	state := output.Inactive("inactive")
	if ban.Active(now) {
		state = output.Active("ACTIVE")
	}

	_, _ = fmt.Fprintf(w, "\n#%d %s (%s) %s\n", ban.ID, ban.SourceName, ban.Type, state)
	output.Field(w, "Banned", fmt.Sprintf("%s by %s", ban.BannedOn, ban.BannedBy))
	output.Field(w, "Expires", expiryText(ban, now))
	output.Field(w, "Reason", ban.Reason)
	if len(ban.Jobs) > 0 {
		output.Field(w, "Jobs", strings.Join(ban.Jobs, ", "))
	}
	if ban.Lifted() {
		output.Field(w, "Lifted by", *ban.UnbannedBy)
	}
}

func expiryText(ban centcom.Ban, now time.Time) string {
	if ban.Permanent() {
		return "never"
	}

	expires, ok := ban.ExpiresAt()
	if !ok {
		return *ban.Expires
	}

	if expires.After(now) {
		return fmt.Sprintf("%s (in %s)", *ban.Expires, units.HumanDuration(expires.Sub(now)))
	}
	return fmt.Sprintf("%s (%s ago)", *ban.Expires, units.HumanDuration(now.Sub(expires)))
}
