package timestamp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/steviee/go-byond/internal/byond"
	"github.com/steviee/go-byond/internal/cli/output"
)

// Result is a single conversion result.
type Result struct {
	Ticks   float64 `json:"ticks"`
	Unix    float64 `json:"unix"`
	ISO8601 string  `json:"iso8601"`
}

// NewCommand creates the time command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Convert between BYOND ticks and Unix/ISO-8601 time",
		Long: `Convert BYOND timestamps to and from Unix and ISO-8601 time.

BYOND counts time in ticks of one decisecond since 2000-01-01T00:00:00Z.
Conversions to ticks are rounded to the nearest tick; conversions from
ticks are exact, and ISO-8601 output is truncated to whole seconds.`,
		Example: `  # Unix timestamp to ticks
  go-byond time to-byond 1641038400

  # ISO-8601 timestamp to ticks
  go-byond time to-byond 2022-01-01T12:00:00+00:00

  # Ticks to Unix and ISO-8601, rendered in a timezone
  go-byond time from-byond 6943536000 --tz Europe/Berlin

  # Current time in ticks
  go-byond time now`,
		Aliases: []string{"ts"},
	}

	cmd.AddCommand(newToByondCommand())
	cmd.AddCommand(newFromByondCommand())
	cmd.AddCommand(newNowCommand())

	return cmd
}

func newToByondCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "to-byond <unix|iso8601>",
		Short: "Convert a Unix or ISO-8601 timestamp to BYOND ticks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToByond(cmd.OutOrStdout(), args[0], jsonFlag(cmd))
		},
	}
}

func newFromByondCommand() *cobra.Command {
	var tz string

	cmd := &cobra.Command{
		Use:   "from-byond <ticks>",
		Short: "Convert BYOND ticks to Unix and ISO-8601 time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFromByond(cmd.OutOrStdout(), args[0], tz, jsonFlag(cmd))
		},
	}

	cmd.Flags().StringVar(&tz, "tz", "UTC", "IANA timezone for the ISO-8601 output")

	return cmd
}

func newNowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print the current time in BYOND ticks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNow(cmd.OutOrStdout(), time.Now(), jsonFlag(cmd))
		},
	}
}

func jsonFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func runToByond(w io.Writer, arg string, jsonOutput bool) error {
	var ticks float64
	if unix, err := strconv.ParseFloat(strings.TrimSpace(arg), 64); err == nil && byond.IsFinite(unix) {
		ticks = byond.ByondFromUnix(unix)
	} else {
		ticks, err = byond.ByondFromISO8601(arg)
		if err != nil {
			return output.Error(w, jsonOutput, err)
		}
	}

	return writeResult(w, resultFor(ticks, time.UTC), jsonOutput)
}

func runFromByond(w io.Writer, arg, tz string, jsonOutput bool) error {
	ticks, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return output.Error(w, jsonOutput, fmt.Errorf("invalid tick count %q: %w", arg, err))
	}
	if !byond.IsFinite(ticks) {
		return output.Error(w, jsonOutput, fmt.Errorf("invalid tick count %q: not a finite number", arg))
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return output.Error(w, jsonOutput, fmt.Errorf("invalid timezone %q: %w", tz, err))
	}

	return writeResult(w, resultFor(ticks, loc), jsonOutput)
}

func runNow(w io.Writer, now time.Time, jsonOutput bool) error {
	return writeResult(w, resultFor(byond.ByondFromTime(now), time.UTC), jsonOutput)
}

func resultFor(ticks float64, loc *time.Location) Result {
	return Result{
		Ticks:   ticks,
		Unix:    byond.UnixFromByond(ticks),
		ISO8601: byond.ISO8601FromByondIn(ticks, loc),
	}
}

func writeResult(w io.Writer, res Result, jsonOutput bool) error {
	if jsonOutput {
		return output.Success(w, res, "")
	}

	output.Field(w, "Ticks", strconv.FormatFloat(res.Ticks, 'f', -1, 64))
	output.Field(w, "Unix", strconv.FormatFloat(res.Unix, 'f', -1, 64))
	output.Field(w, "ISO-8601", res.ISO8601)
	return nil
}
