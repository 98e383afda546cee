package host

import (
	"iter"
	"strings"
)

// Format selects the render target the host runtime loads constants for.
type Format int

const (
	FormatCsound Format = iota
	FormatMIDI
)

// DefaultFormat is used when no format, or an unknown one, is given.
const DefaultFormat = FormatCsound

func (f Format) String() string {
	switch f {
	case FormatMIDI:
		return "midi"
	default:
		return "csound"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler using [ParseFormat].
func (f *Format) UnmarshalText(text []byte) error {
	*f = ParseFormat(string(text))

	return nil
}

// ParseFormat returns the format named by s, ignoring case and surrounding
// space. Unknown names yield [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "midi":
		return FormatMIDI
	default:
		return FormatCsound
	}
}

// Formats returns an iterator over the names of all formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatCsound, FormatMIDI} {
			if !yield(f.String()) {
				return
			}
		}
	}
}
