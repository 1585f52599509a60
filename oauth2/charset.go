package oauth2

import "strings"

// CharacterSet is one of the character classes RFC 6749 Appendix A uses to
// restrict error descriptions, error URIs and scope tokens.
type CharacterSet int

const (
	// TextCharacters is %x20-21 / %x23-5B / %x5D-7E: printable ASCII and space,
	// excluding the double quote and backslash.
	// Used in: error_description
	TextCharacters CharacterSet = iota

	// URLCharacters is TextCharacters without the space.
	// Used in: error_uri, scope tokens
	URLCharacters
)

func (c CharacterSet) String() string {
	if c == URLCharacters {
		return "url"
	}
	return "text"
}

func (c CharacterSet) Contains(r rune) bool {
	if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
		return false
	}
	return c != URLCharacters || r != ' '
}

// Validate returns an *InvalidCharactersError listing every character of value
// outside the set, duplicates included. The empty string is valid.
func (c CharacterSet) Validate(value string) error {
	var invalid strings.Builder
	for _, r := range value {
		if !c.Contains(r) {
			invalid.WriteRune(r)
		}
	}
	if invalid.Len() > 0 {
		return &InvalidCharactersError{Characters: invalid.String()}
	}
	return nil
}
