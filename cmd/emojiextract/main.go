// Command emojiextract writes Apple Color Emoji bitmaps as PNG files for
// use as static web assets.
//
// Usage:
//
//	emojiextract -font "Apple Color Emoji.ttc" -out public/emojis -sizes 32,64,160
//
// Output goes to <out>/<size>/<name>.png. Existing files are overwritten.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/emojiextract"
	"github.com/gogpu/emojiextract/fontfile"
)

// sampleGlyphs is how many emoji-like glyph names the diagnostics print.
const sampleGlyphs = 20

func main() {
	var (
		fontPath = flag.String("font", "/System/Library/Fonts/Apple Color Emoji.ttc", "font collection file")
		output   = flag.String("out", "public/emojis", "output directory")
		index    = flag.Int("index", 0, "font index inside the collection")
		sizes    = flag.String("sizes", "32,64,160", "comma separated output sizes in pixels")
		verbose  = flag.Bool("v", false, "debug logging")
		list     = flag.Bool("list", false, "print font diagnostics and exit")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	emojiextract.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	sizeList, err := emojiextract.ParseSizes(*sizes)
	if err != nil {
		log.Fatalf("Invalid -sizes: %v", err)
	}

	fmt.Printf("Loading font: %s\n", *fontPath)
	font, err := fontfile.Open(*fontPath, *index)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	printDiagnostics(os.Stdout, font)
	if *list {
		return
	}

	x := emojiextract.New(font,
		emojiextract.WithOutputDir(*output),
		emojiextract.WithSizes(sizeList...),
	)
	report, err := x.Run()
	if report != nil {
		printSummary(os.Stdout, report, *output)
	}
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
}

// printDiagnostics prints what the font offers: glyph count, strike sizes
// with their glyph coverage and a sample of glyph names that look like
// codepoint names.
func printDiagnostics(w io.Writer, font *fontfile.Font) {
	glyphs := emojiextract.NewGlyphSet(font.GlyphNames())
	emojiLike := glyphs.WithPrefix("u")
	bitmaps := font.Bitmaps()

	fmt.Fprintf(w, "Font %d of %d: %s\n", font.Index()+1, font.NumFonts(), font.Name())
	fmt.Fprintf(w, "Total glyphs: %d\n", glyphs.Len())
	fmt.Fprintf(w, "Available sizes: %v\n", font.StrikeSizes())
	for _, s := range bitmaps.Strikes() {
		fmt.Fprintf(w, "  strike %dppem @ %dppi: %d of %d glyphs\n", s.PPEM, s.PPI, s.Coverage(), bitmaps.NumGlyphs())
	}
	fmt.Fprintf(w, "Emoji-like glyphs (starting with 'u'): %d\n", len(emojiLike))
	if len(emojiLike) > sampleGlyphs {
		emojiLike = emojiLike[:sampleGlyphs]
	}
	fmt.Fprintf(w, "Sample glyph names: %v\n", emojiLike)
}

// printSummary prints per-emoji results and totals.
func printSummary(w io.Writer, r *emojiextract.Report, output string) {
	for _, a := range r.Written {
		fmt.Fprintf(w, "  saved %dpx (%d bytes) -> %s\n", a.Size, a.Bytes, a.Path)
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "  skipped %s at %dpx (strike %d): %s\n", s.Name, s.Size, s.StrikeSize, s.Reason)
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(w, "Extracted: %d images\n", r.Extracted())
	if len(r.NotFound) > 0 {
		fmt.Fprintf(w, "Not found: %s\n", strings.Join(r.NotFound, ", "))
	}
	fmt.Fprintf(w, "Output: %s\n", output)
}
