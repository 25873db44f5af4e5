// Package fontfile loads a font from a TrueType or OpenType collection and
// exposes what the extractor needs: glyph names in glyph order, the
// character map and the sbix bitmap strikes.
//
// Glyph order and the character map come from golang.org/x/image/font/sfnt.
// The sbix table is read through go-text/typesetting by package sbix.
package fontfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/emojiextract"
	"github.com/gogpu/emojiextract/sbix"
)

// Sentinel errors for the fontfile package.
var (
	// ErrEmptyData is returned when font data is empty.
	ErrEmptyData = errors.New("fontfile: empty font data")

	// ErrFontIndex is returned when the requested font is not in the collection.
	ErrFontIndex = errors.New("fontfile: font index out of range")

	// ErrNoStrike is returned by Bitmap for a size the font has no strike for.
	ErrNoStrike = errors.New("fontfile: no strike of that size")
)

var sbixTag = opentype.MustNewTag("sbix")

// Font is one font of a collection. It satisfies emojiextract.Source.
//
// Font is not safe for concurrent use.
type Font struct {
	sf  *sfnt.Font
	buf sfnt.Buffer

	index    int
	numFonts int

	names []string
	ids   map[string]int

	bitmaps *sbix.Table
}

// Open reads the font file at path and parses font index of it.
func Open(path string, index int) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontfile: %w", err)
	}
	return Parse(data, index)
}

// Parse parses font index from TTC/OTC data. Single TTF or OTF data is
// treated as a collection of one font. The font must have an sbix table.
func Parse(data []byte, index int) (*Font, error) {
	f, err := parseFont(data, index)
	if err != nil {
		return nil, err
	}

	raw, err := rawTable(data, index, sbixTag)
	if err != nil {
		return nil, fmt.Errorf("fontfile: %w: %v", sbix.ErrNoTable, err)
	}
	f.bitmaps, err = sbix.Parse(raw, len(f.names))
	if err != nil {
		return nil, fmt.Errorf("fontfile: %w", err)
	}

	emojiextract.Logger().Debug("fontfile: loaded",
		"index", index, "fonts", f.numFonts, "glyphs", len(f.names), "strikes", f.bitmaps.PPEMs())
	return f, nil
}

// parseFont parses the sfnt side of the font: glyph order and cmap.
func parseFont(data []byte, index int) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("fontfile: failed to parse font: %w", err)
	}
	n := coll.NumFonts()
	if index < 0 || index >= n {
		return nil, fmt.Errorf("%w: %d of %d", ErrFontIndex, index, n)
	}
	sf, err := coll.Font(index)
	if err != nil {
		return nil, fmt.Errorf("fontfile: failed to parse font %d: %w", index, err)
	}

	f := &Font{sf: sf, index: index, numFonts: n}
	if err := f.loadGlyphNames(); err != nil {
		return nil, err
	}
	return f, nil
}

// rawTable returns the bytes of table tag of font index.
func rawTable(data []byte, index int, tag opentype.Tag) ([]byte, error) {
	loaders, err := opentype.NewLoaders(bytes.NewReader(data))
	if err != nil {
		ld, errSingle := opentype.NewLoader(bytes.NewReader(data))
		if errSingle != nil {
			return nil, err
		}
		loaders = []*opentype.Loader{ld}
	}
	if index >= len(loaders) {
		return nil, fmt.Errorf("%w: %d of %d", ErrFontIndex, index, len(loaders))
	}
	return loaders[index].RawTable(tag)
}

// loadGlyphNames builds the glyph order. Glyphs without a post table name
// are called "glyphNNNNN" and repeated names get a "#N" suffix, so every
// glyph has a unique name.
func (f *Font) loadGlyphNames() error {
	n := f.sf.NumGlyphs()
	f.names = make([]string, n)
	f.ids = make(map[string]int, n)

	repeats := make(map[string]int)
	for i := range n {
		name, err := f.sf.GlyphName(&f.buf, sfnt.GlyphIndex(i))
		if err != nil {
			return fmt.Errorf("fontfile: glyph name %d: %w", i, err)
		}
		name = uniqueName(name, i, repeats)
		f.names[i] = name
		f.ids[name] = i
	}
	return nil
}

// uniqueName applies the naming rules of loadGlyphNames to glyph gid.
func uniqueName(name string, gid int, repeats map[string]int) string {
	switch {
	case name == "" && gid == 0:
		name = ".notdef"
	case name == "":
		name = fmt.Sprintf("glyph%05d", gid)
	}
	if c, ok := repeats[name]; ok {
		repeats[name] = c + 1
		return fmt.Sprintf("%s#%d", name, c+1)
	}
	repeats[name] = 0
	return name
}

// Index returns the position of the font in its collection.
func (f *Font) Index() int {
	return f.index
}

// NumFonts returns the number of fonts in the collection.
func (f *Font) NumFonts() int {
	return f.numFonts
}

// Name returns the font's full name, or "" if unavailable.
func (f *Font) Name() string {
	name, err := f.sf.Name(&f.buf, sfnt.NameIDFull)
	if err != nil {
		return ""
	}
	return name
}

// GlyphNames returns the glyph names in glyph order.
func (f *Font) GlyphNames() []string {
	return f.names
}

// GlyphID returns the glyph index of name.
func (f *Font) GlyphID(name string) (int, bool) {
	gid, ok := f.ids[name]
	return gid, ok
}

// Lookup returns the glyph the character map assigns to r.
func (f *Font) Lookup(r rune) (string, bool) {
	gid, err := f.sf.GlyphIndex(&f.buf, r)
	if err != nil || gid == 0 || int(gid) >= len(f.names) {
		return "", false
	}
	return f.names[gid], true
}

// Bitmaps returns the parsed sbix table.
func (f *Font) Bitmaps() *sbix.Table {
	return f.bitmaps
}

// StrikeSizes returns the sbix strike sizes in ascending order.
func (f *Font) StrikeSizes() []int {
	return f.bitmaps.PPEMs()
}

// Bitmap returns the image of glyph in the strike of the given size.
// Glyph names unknown to the font yield emojiextract.ErrNotInStrike.
func (f *Font) Bitmap(size int, glyph string) (emojiextract.Bitmap, error) {
	strike, ok := f.bitmaps.Strike(size)
	if !ok {
		return emojiextract.Bitmap{}, fmt.Errorf("%w: %dpx", ErrNoStrike, size)
	}
	gid, ok := f.GlyphID(glyph)
	if !ok {
		return emojiextract.Bitmap{}, emojiextract.ErrNotInStrike
	}

	g, err := strike.Glyph(gid)
	if err != nil {
		return emojiextract.Bitmap{}, fmt.Errorf("fontfile: glyph %s: %w", glyph, err)
	}

	bm := emojiextract.Bitmap{Data: g.Data}
	if g.GraphicType != 0 {
		bm.Format = g.GraphicType.String()
	}
	return bm, nil
}
