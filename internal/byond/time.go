package byond

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// Epoch is the BYOND epoch (2000-01-01T00:00:00Z) as a Unix timestamp.
	Epoch = 946684800

	// TicksPerSecond is the number of BYOND ticks (deciseconds) in a second.
	TicksPerSecond = 10

	// ISO8601Layout formats an offset as +hh:mm, so UTC prints as +00:00.
	ISO8601Layout = "2006-01-02T15:04:05-07:00"
)

// isoLayouts are tried in order by ByondFromISO8601.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// ByondFromUnix converts a Unix timestamp to BYOND ticks, rounded to the
// nearest whole tick.
func ByondFromUnix(unix float64) float64 {
	return math.Round((unix - Epoch) * TicksPerSecond)
}

// ByondFromTime converts t to BYOND ticks.
func ByondFromTime(t time.Time) float64 {
	// UnixNano overflows outside 1678-2262; keep seconds and nanos apart.
	return ByondFromUnix(float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second))
}

// ByondFromISO8601 parses an ISO-8601 style timestamp and converts it to
// BYOND ticks. Text without a zone is read as UTC. A leading "@" accepts a
// raw Unix timestamp.
func ByondFromISO8601(text string) (float64, error) {
	t, err := ParseTimestamp(text)
	if err != nil {
		return 0, err
	}
	return ByondFromTime(t), nil
}

// ParseTimestamp parses text with the layouts ByondFromISO8601 accepts.
func ParseTimestamp(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: empty text", ErrParse)
	}

	if raw, ok := strings.CutPrefix(text, "@"); ok {
		unix, err := strconv.ParseFloat(raw, 64)
		if err != nil || !IsFinite(unix) {
			return time.Time{}, fmt.Errorf("%w: %q", ErrParse, text)
		}
		return unixToTime(unix), nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrParse, text)
}

// UnixFromByond converts BYOND ticks to a Unix timestamp. No rounding is
// applied.
func UnixFromByond(ticks float64) float64 {
	return Epoch + ticks*0.1
}

// TimeFromByond converts BYOND ticks to a UTC time.
func TimeFromByond(ticks float64) time.Time {
	return unixToTime(UnixFromByond(ticks))
}

// ISO8601FromByond converts BYOND ticks to an ISO-8601 timestamp in UTC,
// truncated to whole seconds.
func ISO8601FromByond(ticks float64) string {
	return ISO8601FromByondIn(ticks, time.UTC)
}

// ISO8601FromByondIn is ISO8601FromByond rendered in loc.
func ISO8601FromByondIn(ticks float64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	sec := int64(UnixFromByond(ticks))
	return time.Unix(sec, 0).In(loc).Format(ISO8601Layout)
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func unixToTime(unix float64) time.Time {
	sec, frac := math.Modf(unix)
	return time.Unix(int64(sec), int64(math.Round(frac*float64(time.Second)))).UTC()
}
