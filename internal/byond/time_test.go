package byond

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByondFromUnix(t *testing.T) {
	tests := []struct {
		name string
		unix float64
		want float64
	}{
		{name: "epoch is zero", unix: Epoch, want: 0},
		{name: "one second", unix: Epoch + 1, want: 10},
		{name: "before epoch", unix: Epoch - 1, want: -10},
		{name: "rounds up", unix: Epoch + 0.06, want: 1},
		{name: "rounds down", unix: Epoch + 0.04, want: 0},
		{name: "unix zero", unix: 0, want: -9466848000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ByondFromUnix(tt.unix))
		})
	}
}

func TestUnixFromByond(t *testing.T) {
	ticks := 123456789.0
	assert.Equal(t, Epoch+(ticks*0.1), UnixFromByond(ticks))
	assert.Equal(t, float64(Epoch), UnixFromByond(0))
}

func TestRoundTrip(t *testing.T) {
	stamps := []float64{
		Epoch,
		Epoch + 0.1,
		1234567890.3,
		1641038400,
		1700000000.5,
		900000000.7,
	}

	for _, unix := range stamps {
		got := UnixFromByond(ByondFromUnix(unix))
		assert.InDelta(t, unix, got, 0.1, "round trip of %v", unix)
	}
}

func TestByondFromISO8601(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    float64
		wantErr error
	}{
		{
			name: "rfc3339 with offset",
			text: "2022-01-01T12:00:00+00:00",
			want: (1641038400 - Epoch) * 10,
		},
		{
			name: "zulu",
			text: "2022-01-01T12:00:00Z",
			want: (1641038400 - Epoch) * 10,
		},
		{
			name: "non-utc offset",
			text: "2022-01-01T14:00:00+02:00",
			want: (1641038400 - Epoch) * 10,
		},
		{
			name: "compact offset",
			text: "2022-01-01T14:00:00+0200",
			want: (1641038400 - Epoch) * 10,
		},
		{
			name: "fractional seconds",
			text: "2000-01-01T00:00:00.5Z",
			want: 5,
		},
		{
			name: "no zone is utc",
			text: "2022-01-01 12:00:00",
			want: (1641038400 - Epoch) * 10,
		},
		{
			name: "date only",
			text: "2000-01-01",
			want: 0,
		},
		{
			name: "unix form",
			text: "@946684801",
			want: 10,
		},
		{
			name: "after 2262",
			text: "2300-01-01T00:00:00Z",
			want: 94671072000,
		},
		{
			name: "before 1678",
			text: "1600-01-01T00:00:00Z",
			want: -126227808000,
		},
		{
			name: "large unix form",
			text: "@10000000000",
			want: 90533152000,
		},
		{
			name:    "nan unix form",
			text:    "@NaN",
			wantErr: ErrParse,
		},
		{
			name:    "infinite unix form",
			text:    "@-Inf",
			wantErr: ErrParse,
		},
		{
			name:    "garbage",
			text:    "not a timestamp",
			wantErr: ErrParse,
		},
		{
			name:    "empty",
			text:    "   ",
			wantErr: ErrParse,
		},
		{
			name:    "bad unix form",
			text:    "@soon",
			wantErr: ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByondFromISO8601(tt.text)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestISO8601FromByond(t *testing.T) {
	ticks, err := ByondFromISO8601("2022-01-01T12:00:00+00:00")
	require.NoError(t, err)

	assert.Equal(t, "2022-01-01T12:00:00+00:00", ISO8601FromByond(ticks))
	assert.Equal(t, "2000-01-01T00:00:00+00:00", ISO8601FromByond(0))

	// Sub-second ticks are truncated.
	assert.Equal(t, "2000-01-01T00:00:01+00:00", ISO8601FromByond(19))
}

func TestISO8601FromByondIn(t *testing.T) {
	ticks, err := ByondFromISO8601("2022-01-01T12:00:00Z")
	require.NoError(t, err)

	loc := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, "2022-01-01T14:00:00+02:00", ISO8601FromByondIn(ticks, loc))
	assert.Equal(t, "2022-01-01T12:00:00+00:00", ISO8601FromByondIn(ticks, nil))
}

func TestTimeConversions(t *testing.T) {
	want := time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC)

	ticks := ByondFromTime(want)
	assert.Equal(t, float64(6943536000), ticks)
	assert.True(t, want.Equal(TimeFromByond(ticks)))
	assert.Equal(t, time.UTC, TimeFromByond(ticks).Location())
}
