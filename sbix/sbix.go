// Package sbix reads the sbix (Standard Bitmap Graphics) table.
//
// sbix is Apple's format for embedded bitmap glyphs, used by Apple Color
// Emoji. The table holds one or more strikes; each strike stores, for every
// glyph in the font, an optional record with an origin offset, a four byte
// graphic type tag and the encoded image (usually PNG).
//
// Decoding is done by go-text/typesetting. This package adds strike
// selection by ppem and resolves dupe records.
package sbix

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// Table format errors.
var (
	// ErrNoTable indicates the font doesn't have an sbix table.
	ErrNoTable = errors.New("sbix: font has no sbix table")

	// ErrInvalidData indicates the sbix table data is malformed.
	ErrInvalidData = errors.New("sbix: invalid table data")

	// ErrGlyphRange indicates a glyph ID outside the font's glyph count.
	ErrGlyphRange = errors.New("sbix: glyph ID out of range")
)

// Table is a parsed sbix table.
type Table struct {
	numGlyphs int
	strikes   []*Strike
}

// Strike is a set of bitmaps for a single pixels-per-em size.
type Strike struct {
	// PPEM is the pixels-per-em size the bitmaps were designed for.
	PPEM uint16

	// PPI is the design resolution in pixels per inch.
	PPI uint16

	glyphs []tables.BitmapGlyphData
}

// Glyph is a single glyph record from a strike.
type Glyph struct {
	// ID is the glyph the record belongs to. For a dupe record this is the
	// requested glyph, not the one the data was copied from.
	ID int

	OriginX int16
	OriginY int16

	// GraphicType is the image encoding, zero for an empty record. It is
	// never TagDupe: dupe records are replaced by the glyph they point to.
	GraphicType opentype.Tag

	// Data is the encoded image. It aliases the table bytes and is empty
	// when the strike has no image for the glyph.
	Data []byte
}

// Parse parses sbix table data. numGlyphs must come from the maxp table of
// the same font.
func Parse(data []byte, numGlyphs int) (*Table, error) {
	if len(data) == 0 {
		return nil, ErrNoTable
	}
	if numGlyphs < 0 {
		return nil, fmt.Errorf("%w: negative glyph count %d", ErrInvalidData, numGlyphs)
	}

	raw, _, err := tables.ParseSbix(data, numGlyphs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	t := &Table{
		numGlyphs: numGlyphs,
		strikes:   make([]*Strike, len(raw.Strikes)),
	}
	for i, s := range raw.Strikes {
		t.strikes[i] = &Strike{PPEM: s.Ppem, PPI: s.Ppi, glyphs: s.GlyphDatas}
	}
	return t, nil
}

// NumGlyphs returns the glyph count the table was parsed with.
func (t *Table) NumGlyphs() int {
	return t.numGlyphs
}

// NumStrikes returns the number of bitmap strikes.
func (t *Table) NumStrikes() int {
	return len(t.strikes)
}

// Strikes returns the strikes in table order.
func (t *Table) Strikes() []*Strike {
	return t.strikes
}

// PPEMs returns the distinct strike sizes in ascending order.
func (t *Table) PPEMs() []int {
	seen := make(map[int]bool, len(t.strikes))
	sizes := make([]int, 0, len(t.strikes))
	for _, s := range t.strikes {
		ppem := int(s.PPEM)
		if !seen[ppem] {
			seen[ppem] = true
			sizes = append(sizes, ppem)
		}
	}
	sort.Ints(sizes)
	return sizes
}

// Strike returns the strike with the given ppem. When several strikes
// share a ppem (different ppi), the last one in the table wins.
func (t *Table) Strike(ppem int) (*Strike, bool) {
	for i := len(t.strikes) - 1; i >= 0; i-- {
		if int(t.strikes[i].PPEM) == ppem {
			return t.strikes[i], true
		}
	}
	return nil, false
}

// HasGlyph reports whether the strike stores a non-empty record for gid.
func (s *Strike) HasGlyph(gid int) bool {
	if gid < 0 || gid >= len(s.glyphs) {
		return false
	}
	return s.glyphs[gid].GraphicType != 0
}

// Coverage returns how many glyphs have a record in the strike.
func (s *Strike) Coverage() int {
	n := 0
	for gid := range s.glyphs {
		if s.HasGlyph(gid) {
			n++
		}
	}
	return n
}

// Glyph returns the record for gid. A glyph without a record yields a Glyph
// with empty Data and no error. Dupe records are resolved to the glyph they
// reference.
func (s *Strike) Glyph(gid int) (Glyph, error) {
	g, err := s.record(gid)
	if err != nil {
		return Glyph{}, err
	}
	if g.GraphicType != TagDupe {
		return g, nil
	}

	if len(g.Data) < 2 {
		return Glyph{}, fmt.Errorf("%w: glyph %d: short dupe record", ErrInvalidData, gid)
	}
	target := int(binary.BigEndian.Uint16(g.Data[0:2]))
	if target == gid {
		return Glyph{}, fmt.Errorf("%w: glyph %d: dupe of itself", ErrInvalidData, gid)
	}
	ref, err := s.record(target)
	if err != nil {
		return Glyph{}, err
	}
	if ref.GraphicType == TagDupe {
		// Chained dupes are not allowed by the format.
		return Glyph{}, fmt.Errorf("%w: glyph %d: chained dupe", ErrInvalidData, gid)
	}
	ref.ID = gid
	return ref, nil
}

// record returns the decoded record for gid without following dupes.
func (s *Strike) record(gid int) (Glyph, error) {
	if gid < 0 || gid >= len(s.glyphs) {
		return Glyph{}, ErrGlyphRange
	}
	d := s.glyphs[gid]
	if d.GraphicType == 0 {
		return Glyph{ID: gid}, nil
	}
	return Glyph{
		ID:          gid,
		OriginX:     d.OriginOffsetX,
		OriginY:     d.OriginOffsetY,
		GraphicType: opentype.Tag(d.GraphicType),
		Data:        d.Data,
	}, nil
}
