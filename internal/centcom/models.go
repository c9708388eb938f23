package centcom

import (
	"time"

	"github.com/steviee/go-byond/internal/byond"
)

// Ban types reported by CentCom.
const (
	BanTypeServer = "Server"
	BanTypeJob    = "Job"
)

// Ban is one entry of a CentCom ban search result.
type Ban struct {
	ID                  int64    `json:"id"`
	SourceName          string   `json:"sourceName"`
	SourceRoleplayLevel string   `json:"sourceRoleplayLevel"`
	Type                string   `json:"type"`
	CKey                string   `json:"cKey"`
	BannedOn            string   `json:"bannedOn"`
	BannedBy            string   `json:"bannedBy"`
	Reason              string   `json:"reason"`
	Expires             *string  `json:"expires"`
	UnbannedBy          *string  `json:"unbannedBy"`
	Jobs                []string `json:"jobs"`
	BanAttributes       []string `json:"banAttributes"`
}

// Permanent reports whether the ban has no expiry.
func (b *Ban) Permanent() bool {
	return b.Expires == nil || *b.Expires == ""
}

// Lifted reports whether an admin removed the ban.
func (b *Ban) Lifted() bool {
	return b.UnbannedBy != nil && *b.UnbannedBy != ""
}

// ExpiresAt returns the expiry time, or false for permanent bans and
// unparsable timestamps.
func (b *Ban) ExpiresAt() (time.Time, bool) {
	if b.Permanent() {
		return time.Time{}, false
	}
	t, err := byond.ParseTimestamp(*b.Expires)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Active reports whether the ban is in force at now.
func (b *Ban) Active(now time.Time) bool {
	if b.Lifted() {
		return false
	}
	if b.Permanent() {
		return true
	}
	expires, ok := b.ExpiresAt()
	if !ok {
		// Keep bans with an unreadable expiry visible.
		return true
	}
	return now.Before(expires)
}
