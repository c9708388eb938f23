package byond

import (
	"fmt"
	"time"
)

// JoinedLayout is the date format of the "joined" profile field.
const JoinedLayout = "2006-01-02"

// Profile holds the public fields of a BYOND members directory entry.
// Fields the user never set are empty.
type Profile struct {
	Ckey     string `json:"ckey" yaml:"ckey"`
	Key      string `json:"key" yaml:"key"`
	Gender   string `json:"gender,omitempty" yaml:"gender,omitempty"`
	Joined   string `json:"joined,omitempty" yaml:"joined,omitempty"`
	Desc     string `json:"desc,omitempty" yaml:"desc,omitempty"`
	HomePage string `json:"home_page,omitempty" yaml:"home_page,omitempty"`
}

// JoinedTime returns the joined date, or false if it is missing or unparsable.
func (p *Profile) JoinedTime() (time.Time, bool) {
	t, err := ParseJoinedTime(p.Joined)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseJoinedTime parses a "joined" field value.
func ParseJoinedTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(JoinedLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: joined %q", ErrParse, value)
	}
	return t, nil
}
