package options

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NameSeparator splits the long and short tokens in a name spec.
const NameSeparator = ","

// Name is the parsed form of an option name spec. Long is always present;
// Short is 0 when the option has no single-letter alias.
type Name struct {
	Long  string
	Short rune
}

// ParseName interprets a name spec of the form "long", "long,s", or
// "s,long", where the short token is exactly one alphabetic character.
func ParseName(spec string) (Name, error) {
	tokens := strings.Split(spec, NameSeparator)

	switch len(tokens) {
	case 1:
		if tokens[0] == "" {
			return Name{}, opError("parse name", spec, ErrNameFormat, "long name is empty")
		}
		return Name{Long: tokens[0]}, nil
	case 2:
		long, short := tokens[0], tokens[1]
		if isShortToken(long) && !isShortToken(short) {
			long, short = short, long
		}
		if long == "" {
			return Name{}, opError("parse name", spec, ErrNameFormat, "long name is empty")
		}
		if !isShortToken(short) {
			return Name{}, opError("parse name", spec, ErrNameFormat,
				"short name %q must be a single alphabetic character", short)
		}
		r, _ := utf8.DecodeRuneInString(short)
		return Name{Long: long, Short: r}, nil
	default:
		return Name{}, opError("parse name", spec, ErrNameFormat,
			"long name must not contain %q", NameSeparator)
	}
}

// isShortToken reports whether the token qualifies as a short name:
// exactly one alphabetic character.
func isShortToken(token string) bool {
	r, size := utf8.DecodeRuneInString(token)
	return size > 0 && size == len(token) && unicode.IsLetter(r)
}

// String reconstructs the canonical name spec.
func (n Name) String() string {
	if n.Short == 0 {
		return n.Long
	}
	return n.Long + NameSeparator + string(n.Short)
}

// LongFlag returns the long name with a leading "--", as it appears on a
// command line.
func (n Name) LongFlag() string {
	return "--" + n.Long
}

// ShortFlag returns the short name with a leading "-", or "" when the
// option has no short name.
func (n Name) ShortFlag() string {
	if n.Short == 0 {
		return ""
	}
	return "-" + string(n.Short)
}

// Matches reports whether key refers to this name, either by long name or
// by bare short character.
func (n Name) Matches(key string) bool {
	if key == n.Long {
		return true
	}
	if n.Short == 0 {
		return false
	}
	r, size := utf8.DecodeRuneInString(key)
	return size == len(key) && r == n.Short
}
