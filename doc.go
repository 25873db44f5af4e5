// Package emojiextract extracts color emoji bitmaps from a font collection
// and writes them as PNG files for use as static web assets.
//
// # Overview
//
// Apple Color Emoji stores every emoji as PNG images in its sbix table,
// one image per strike (pixels-per-em size). An Extractor takes a fixed
// table of emoji, each a Unicode codepoint sequence, finds the glyph for
// each one and copies its image out at several sizes:
//
//	<output>/<size>/<name>.png
//
// # Quick Start
//
//	font, err := fontfile.Open("/System/Library/Fonts/Apple Color Emoji.ttc", 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//	report, err := emojiextract.New(font,
//		emojiextract.WithOutputDir("public/emojis"),
//	).Run()
//
// # Glyph resolution
//
// Fonts name sequence glyphs after their codepoints ("u1F575.FE0F.200D.2642.FE0F").
// Resolve tries generated names first (see CandidateNames), then the
// character map entry of the leading codepoint, then a substring search
// over all glyph names. Ligature lookups through GSUB are not attempted.
//
// # Strike selection
//
// When the font has no strike of the requested size, NearestSize picks the
// closest one, preferring the larger of two equidistant sizes. The image is
// written unchanged; no scaling is done.
//
// # Logging
//
// Nothing is logged by default. Use SetLogger or WithLogger.
package emojiextract
