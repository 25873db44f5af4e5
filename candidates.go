package emojiextract

import (
	"fmt"
	"slices"
	"strings"
)

// Codepoints with special meaning inside emoji sequences.
const (
	// VariationSelector16 (U+FE0F) requests emoji presentation of the
	// preceding character.
	VariationSelector16 rune = 0xFE0F

	// ZeroWidthJoiner (U+200D) combines emoji into a composite glyph.
	ZeroWidthJoiner rune = 0x200D
)

// HexName returns the uppercase hex form of r padded to four digits,
// e.g. "2705" or "1F389".
func HexName(r rune) string {
	return fmt.Sprintf("%04X", r)
}

// glyphName formats a codepoint sequence as "u" followed by dot separated
// hex, e.g. "u1F575.FE0F".
func glyphName(cps []rune) string {
	parts := make([]string, len(cps))
	for i, r := range cps {
		parts[i] = HexName(r)
	}
	return "u" + strings.Join(parts, ".")
}

// CandidateNames returns the glyph names a font may use for cps, most
// specific first:
//
//  1. the full sequence
//  2. the sequence without U+FE0F, if that removed anything
//  3. the sequence without U+FE0F and U+200D, if that removed anything more
//  4. the leading codepoint alone
//
// An empty sequence yields no names.
func CandidateNames(cps []rune) []string {
	if len(cps) == 0 {
		return nil
	}

	names := []string{glyphName(cps)}

	noVS := slices.DeleteFunc(slices.Clone(cps), func(r rune) bool {
		return r == VariationSelector16
	})
	if !slices.Equal(noVS, cps) {
		names = append(names, glyphName(noVS))
	}

	noJoin := slices.DeleteFunc(slices.Clone(noVS), func(r rune) bool {
		return r == ZeroWidthJoiner
	})
	if !slices.Equal(noJoin, noVS) {
		names = append(names, glyphName(noJoin))
	}

	return append(names, glyphName(cps[:1]))
}
