package byond

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Search tokens for the fields of a members directory profile page.
const (
	KeyToken      = `key = "`
	GenderToken   = `gender = "`
	JoinedToken   = `joined = "`
	DescToken     = `desc = "`
	HomePageToken = `home_page = "`
)

// profilePrefix is the first line of every valid profile page.
const profilePrefix = "general"

// Parse returns the text between the first occurrence of token and the next
// double quote. Backslash escapes are removed from the whole document before
// searching: `\"` and the backslash both disappear, so an escaped quote never
// ends a value.
func Parse(document, token string) (string, error) {
	document = stripEscapes(document)

	start := strings.Index(document, token)
	if start < 0 {
		return "", fmt.Errorf("%w: %q", ErrNotFound, strings.TrimSuffix(token, ` = "`))
	}
	start += len(token)

	end := strings.IndexByte(document[start:], '"')
	if end < 0 {
		return "", fmt.Errorf("%w: no closing quote after %q", ErrMalformedDocument, token)
	}

	return document[start : start+end], nil
}

// stripEscapes drops every backslash together with the character it
// escapes. A backslash before a newline or at the end of s is kept.
func stripEscapes(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] != '\n' {
			// Skip the whole escaped rune, not just its first byte.
			_, size := utf8.DecodeRuneInString(s[i+1:])
			i += size
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// ParseKey parses the "key" field.
func ParseKey(page string) (string, error) {
	return Parse(page, KeyToken)
}

// ParseGender parses the "gender" field.
func ParseGender(page string) (string, error) {
	return Parse(page, GenderToken)
}

// ParseJoined parses the "joined" field.
func ParseJoined(page string) (string, error) {
	return Parse(page, JoinedToken)
}

// ParseDesc parses the "desc" field, which is set by the user.
func ParseDesc(page string) (string, error) {
	return Parse(page, DescToken)
}

// ParseHomePage parses the "home_page" field, which is set by the user.
func ParseHomePage(page string) (string, error) {
	return Parse(page, HomePageToken)
}

// IsValidProfilePage reports whether page looks like a profile page.
func IsValidProfilePage(page string) bool {
	return strings.HasPrefix(page, profilePrefix)
}

// NormalizeCkey converts a key to its canonical ckey: lowercase with
// everything except letters, digits and "@" removed.
func NormalizeCkey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, ch := range strings.ToLower(key) {
		isAlpha := ch >= 'a' && ch <= 'z'
		isDigit := ch >= '0' && ch <= '9'
		if isAlpha || isDigit || ch == '@' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
