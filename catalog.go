package emojiextract

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/runenames"
)

// Spec names an emoji to extract. Name becomes the output file basename;
// Codepoints is the Unicode sequence that renders the emoji, including any
// variation selectors and joiners.
type Spec struct {
	Name       string
	Codepoints []rune
}

// String returns the name followed by the codepoints, e.g.
// "scales (U+2696 U+FE0F)".
func (s Spec) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString(" (")
	for i, r := range s.Codepoints {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "U+%04X", r)
	}
	b.WriteByte(')')
	return b.String()
}

// Describe returns the Unicode character names of the codepoints joined
// by " + ", e.g. "BALANCE SCALE + VARIATION SELECTOR-16".
func (s Spec) Describe() string {
	names := make([]string, 0, len(s.Codepoints))
	for _, r := range s.Codepoints {
		name := runenames.Name(r)
		if name == "" {
			name = fmt.Sprintf("U+%04X", r)
		}
		names = append(names, name)
	}
	return strings.Join(names, " + ")
}

// DefaultSpecs returns the built-in emoji table in output order.
func DefaultSpecs() []Spec {
	return []Spec{
		{"detective", []rune{0x1F575, 0xFE0F}},
		{"detective-male", []rune{0x1F575, 0xFE0F, 0x200D, 0x2642, 0xFE0F}},
		{"party", []rune{0x1F389}},
		{"checkmark", []rune{0x2705}},
		{"skull", []rune{0x1F480}},
		{"anxious", []rune{0x1F630}},
		{"scales", []rune{0x2696, 0xFE0F}},
		{"cross", []rune{0x274C}},
		{"ballot", []rune{0x1F5F3, 0xFE0F}},
		{"speech", []rune{0x1F4AC}},
		{"people", []rune{0x1F465}},
		{"phone", []rune{0x1F4F1}},
		{"warning", []rune{0x26A0, 0xFE0F}},
		{"target", []rune{0x1F3AF}},
	}
}

// DefaultSizes returns the built-in output sizes in pixels: small (mobile),
// medium (desktop) and large (retina).
func DefaultSizes() []int {
	return []int{32, 64, 160}
}

// SizeError is returned by ParseSizes for an entry that is not a positive
// integer.
type SizeError struct {
	Value string
	Err   error
}

func (e *SizeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("emojiextract: invalid size %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("emojiextract: invalid size %q", e.Value)
}

func (e *SizeError) Unwrap() error {
	return e.Err
}

// ParseSizes parses a comma separated list of pixel sizes such as
// "32,64,160". Order is kept and duplicates are dropped.
func ParseSizes(s string) ([]int, error) {
	var sizes []int
	seen := make(map[int]bool)
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, &SizeError{Value: field, Err: err}
		}
		if n <= 0 {
			return nil, &SizeError{Value: field}
		}
		if !seen[n] {
			seen[n] = true
			sizes = append(sizes, n)
		}
	}
	if len(sizes) == 0 {
		return nil, ErrNoSizes
	}
	return sizes, nil
}
