// Package dateutil resolves the "last updated" stamp shown in the page footer.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an unusable date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength bounds a user-supplied format.
const MaxFormatLength = 50

// DefaultFormat is used by a bare "auto".
const DefaultFormat = "YYYY-MM-DD"

// tokens maps format tokens to time layout fragments, longest first so
// "MMMM" wins over "MM".
var tokens = [...][2]string{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named formats accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Layout turns a format such as "MMMM D, YYYY" into a time layout.
// Text inside brackets is copied literally: "[Week of] MMM D".
func Layout(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: empty format", ErrInvalidDateFormat)
	case len(format) > MaxFormatLength:
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var b strings.Builder
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			literal, after, ok := strings.Cut(rest[1:], "]")
			if !ok {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			b.WriteString(literal)
			rest = after
			continue
		}
		n := 1
		frag := rest[:1]
		for _, t := range tokens {
			if strings.HasPrefix(rest, t[0]) {
				n, frag = len(t[0]), t[1]
				break
			}
		}
		b.WriteString(frag)
		rest = rest[n:]
	}
	return b.String(), nil
}

// Resolve expands value against now:
//
//	"auto"          today as YYYY-MM-DD
//	"auto:long"     today through a preset
//	"auto:DD.MM.YY" today through a custom format
//
// Any other value is returned as is.
func Resolve(value string, now time.Time) (string, error) {
	head, format, hasFormat := strings.Cut(value, ":")
	if !strings.EqualFold(head, "auto") {
		if strings.HasPrefix(strings.ToLower(value), "auto") {
			return "", fmt.Errorf("%w: %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
		}
		return value, nil
	}

	switch {
	case !hasFormat:
		format = DefaultFormat
	case format == "":
		return "", fmt.Errorf("%w: nothing after \"auto:\"", ErrInvalidDateFormat)
	default:
		if preset, ok := Presets[strings.ToLower(format)]; ok {
			format = preset
		}
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}
