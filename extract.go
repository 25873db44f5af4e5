package emojiextract

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// pngGraphicType is the sbix graphic type of PNG bitmaps.
const pngGraphicType = "png "

// Source is a parsed font the extractor reads glyphs from.
type Source interface {
	// GlyphNames returns the glyph names in glyph order.
	GlyphNames() []string

	// Lookup returns the character map glyph for r.
	Lookup(r rune) (string, bool)

	// StrikeSizes returns the available bitmap strike sizes.
	StrikeSizes() []int

	// Bitmap returns the image stored for glyph in the strike of the given
	// size. It returns ErrNotInStrike when the strike has no record for the
	// glyph. An existing record may have empty Data.
	Bitmap(size int, glyph string) (Bitmap, error)
}

// Bitmap is an embedded glyph image.
type Bitmap struct {
	// Data is the encoded image, written to disk verbatim.
	Data []byte

	// Format is the four character graphic type, e.g. "png ".
	Format string
}

// Extractor writes the bitmaps of a fixed emoji table to
// <outputDir>/<size>/<name>.png.
type Extractor struct {
	src  Source
	opts options
}

// New creates an Extractor reading from src.
func New(src Source, opts ...Option) *Extractor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Extractor{src: src, opts: o}
}

// logger returns the per-extractor logger or the package default.
func (x *Extractor) logger() *slog.Logger {
	if x.opts.logger != nil {
		return x.opts.logger
	}
	return Logger()
}

// OutputPath returns the file an emoji is written to for an output size.
func (x *Extractor) OutputPath(name string, size int) string {
	return filepath.Join(x.opts.outputDir, strconv.Itoa(size), name+".png")
}

// Run extracts every configured emoji at every configured size.
//
// Unresolved emoji, glyphs missing from a strike and empty images are
// logged, recorded in the Report and skipped. Failing to create a directory
// or write a file, or a malformed glyph record, stops the run; the Report
// then describes the work done so far.
func (x *Extractor) Run() (*Report, error) {
	log := x.logger()
	report := &Report{}

	if len(x.opts.sizes) == 0 {
		return report, ErrNoSizes
	}
	if err := x.makeDirs(); err != nil {
		return report, err
	}

	available := x.src.StrikeSizes()
	if len(available) == 0 {
		return report, ErrNoStrikes
	}

	glyphs := NewGlyphSet(x.src.GlyphNames())
	log.Debug("font loaded", "glyphs", glyphs.Len(), "strikes", available)

	for _, spec := range x.opts.specs {
		res, ok := Resolve(glyphs, x.src.Lookup, spec)
		if !ok {
			log.Warn("emoji not found", "emoji", spec.Name, "codepoints", spec.String(), "tried", res.Tried)
			report.NotFound = append(report.NotFound, spec.Name)
			continue
		}
		report.Found = append(report.Found, spec.Name)
		if res.Method == MethodSubstring {
			log.Info("found via partial match", "emoji", spec.Name, "glyph", res.Glyph, "candidates", res.Matches)
		}
		log.Info("resolved", "emoji", spec.Name, "glyph", res.Glyph, "method", res.Method)
		log.Debug("codepoints", "emoji", spec.Name, "chars", spec.Describe())

		for _, size := range x.opts.sizes {
			if err := x.extractOne(log, report, spec, res.Glyph, size, available); err != nil {
				return report, err
			}
		}
	}

	return report, nil
}

// makeDirs creates the output directory and one subdirectory per size.
// Existing directories are left untouched.
func (x *Extractor) makeDirs() error {
	if err := os.MkdirAll(x.opts.outputDir, 0o755); err != nil {
		return fmt.Errorf("emojiextract: create output dir: %w", err)
	}
	for _, size := range x.opts.sizes {
		dir := filepath.Join(x.opts.outputDir, strconv.Itoa(size))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("emojiextract: create size dir: %w", err)
		}
	}
	return nil
}

// extractOne writes a single (emoji, size) pair.
func (x *Extractor) extractOne(log *slog.Logger, report *Report, spec Spec, glyph string, size int, available []int) error {
	strike, _ := NearestSize(available, size)
	if strike != size {
		log.Debug("using nearest strike", "emoji", spec.Name, "size", size, "strike", strike)
	}

	skip := Skip{Name: spec.Name, Glyph: glyph, Size: size, StrikeSize: strike}

	bm, err := x.src.Bitmap(strike, glyph)
	switch {
	case errors.Is(err, ErrNotInStrike):
		log.Warn("glyph not in strike", "emoji", spec.Name, "glyph", glyph, "strike", strike)
		skip.Reason = SkipNotInStrike
		report.Skipped = append(report.Skipped, skip)
		return nil
	case err != nil:
		return fmt.Errorf("emojiextract: read %s at %dpx: %w", glyph, strike, err)
	}

	if len(bm.Data) == 0 {
		log.Warn("empty image data", "emoji", spec.Name, "glyph", glyph, "strike", strike)
		skip.Reason = SkipEmptyData
		report.Skipped = append(report.Skipped, skip)
		return nil
	}
	if bm.Format != "" && bm.Format != pngGraphicType {
		log.Warn("bitmap is not PNG, writing as is", "emoji", spec.Name, "format", bm.Format)
	}

	path := x.OutputPath(spec.Name, size)
	if err := os.WriteFile(path, bm.Data, 0o644); err != nil {
		return fmt.Errorf("emojiextract: write %s: %w", path, err)
	}
	log.Info("saved", "emoji", spec.Name, "size", size, "strike", strike, "bytes", len(bm.Data), "path", path)

	report.Written = append(report.Written, Artifact{
		Name:       spec.Name,
		Glyph:      glyph,
		Size:       size,
		StrikeSize: strike,
		Path:       path,
		Bytes:      len(bm.Data),
	})
	return nil
}
