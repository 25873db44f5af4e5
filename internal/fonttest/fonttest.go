// Package fonttest builds small sbix fonts for tests.
//
// The fonts are Go Regular with an sbix table added, so glyph names and the
// character map are real while the bitmaps are whatever the test asks for.
package fonttest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"sort"

	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

const (
	sfntHeaderSize = 12
	dirEntrySize   = 16
)

var sbixTag = opentype.MustNewTag("sbix")

// Strike is one sbix strike of a generated font. Images maps a character
// to the PNG payload stored for the glyph the character map assigns it.
type Strike struct {
	PPEM   uint16
	Images map[rune][]byte
}

// EmojiFont returns Go Regular as a single TrueType font with an sbix table
// holding the given strikes.
func EmojiFont(strikes ...Strike) ([]byte, error) {
	tables, err := emojiTables(strikes)
	if err != nil {
		return nil, err
	}
	return writeFont(nil, tables), nil
}

// EmojiCollection returns a TrueType collection with one font per strike
// list, each built like EmojiFont.
func EmojiCollection(fonts ...[]Strike) ([]byte, error) {
	out := make([]byte, 12+4*len(fonts))
	copy(out, "ttcf")
	binary.BigEndian.PutUint32(out[4:8], 0x00010000)
	binary.BigEndian.PutUint32(out[8:12], uint32(len(fonts)))

	for i, strikes := range fonts {
		tables, err := emojiTables(strikes)
		if err != nil {
			return nil, err
		}
		binary.BigEndian.PutUint32(out[12+4*i:], uint32(len(out)))
		out = writeFont(out, tables)
	}
	return out, nil
}

// GlyphStrike is an sbix strike keyed by glyph ID.
type GlyphStrike struct {
	PPEM   uint16
	Images map[int][]byte
}

// SbixTable encodes an sbix table for a font with numGlyphs glyphs. Glyphs
// without an image in a strike get an empty record there.
func SbixTable(numGlyphs int, strikes ...GlyphStrike) []byte {
	be := binary.BigEndian
	var out bytes.Buffer
	header := make([]byte, 8+4*len(strikes))
	be.PutUint16(header[0:2], 1)
	be.PutUint16(header[2:4], 1)
	be.PutUint32(header[4:8], uint32(len(strikes)))
	out.Write(header)

	for i, s := range strikes {
		be.PutUint32(out.Bytes()[8+4*i:], uint32(out.Len()))

		var records bytes.Buffer
		base := uint32(4 + 4*(numGlyphs+1))
		offsets := make([]byte, 4*(numGlyphs+1))
		for gid := range numGlyphs {
			be.PutUint32(offsets[4*gid:], base+uint32(records.Len()))
			if data := s.Images[gid]; data != nil {
				records.Write([]byte{0, 0, 0, 0, 'p', 'n', 'g', ' '})
				records.Write(data)
			}
		}
		be.PutUint32(offsets[4*numGlyphs:], base+uint32(records.Len()))

		var sh [4]byte
		be.PutUint16(sh[0:2], s.PPEM)
		be.PutUint16(sh[2:4], 72)
		out.Write(sh[:])
		out.Write(offsets)
		out.Write(records.Bytes())
	}
	return out.Bytes()
}

// emojiTables returns the tables of Go Regular plus the sbix table for
// strikes, sorted by tag.
func emojiTables(strikes []Strike) ([]opentype.Table, error) {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("fonttest: %w", err)
	}

	var buf sfnt.Buffer
	byGlyph := make([]GlyphStrike, 0, len(strikes))
	for _, s := range strikes {
		images := make(map[int][]byte, len(s.Images))
		for r, data := range s.Images {
			gid, err := f.GlyphIndex(&buf, r)
			if err != nil || gid == 0 {
				return nil, fmt.Errorf("fonttest: no glyph for %q", r)
			}
			images[int(gid)] = data
		}
		byGlyph = append(byGlyph, GlyphStrike{PPEM: s.PPEM, Images: images})
	}

	tables, err := readTables(goregular.TTF)
	if err != nil {
		return nil, err
	}
	tables = append(tables, opentype.Table{
		Tag:     sbixTag,
		Content: SbixTable(f.NumGlyphs(), byGlyph...),
	})
	sort.Slice(tables, func(i, j int) bool { return tables[i].Tag < tables[j].Tag })
	return tables, nil
}

// readTables splits a single TrueType font into its tables.
func readTables(ttf []byte) ([]opentype.Table, error) {
	if len(ttf) < sfntHeaderSize {
		return nil, errors.New("fonttest: font too short")
	}
	n := int(binary.BigEndian.Uint16(ttf[4:6]))
	tables := make([]opentype.Table, n)
	for i := range n {
		e := ttf[sfntHeaderSize+i*dirEntrySize:]
		off := binary.BigEndian.Uint32(e[8:12])
		length := binary.BigEndian.Uint32(e[12:16])
		if uint64(off)+uint64(length) > uint64(len(ttf)) {
			return nil, fmt.Errorf("fonttest: table %d out of bounds", i)
		}
		tables[i] = opentype.Table{
			Tag:     opentype.Tag(binary.BigEndian.Uint32(e[0:4])),
			Content: ttf[off : off+length],
		}
	}
	return tables, nil
}

// writeFont appends a TrueType font made of tables to out. Table offsets
// are absolute within out and every table starts on a four byte boundary.
func writeFont(out []byte, tables []opentype.Table) []byte {
	be := binary.BigEndian
	start := len(out)
	n := len(tables)

	entrySelector := bits.Len(uint(n)) - 1
	searchRange := (1 << entrySelector) * 16

	out = append(out, make([]byte, sfntHeaderSize+n*dirEntrySize)...)
	hdr := out[start:]
	be.PutUint32(hdr[0:4], 0x00010000)
	be.PutUint16(hdr[4:6], uint16(n))
	be.PutUint16(hdr[6:8], uint16(searchRange))
	be.PutUint16(hdr[8:10], uint16(entrySelector))
	be.PutUint16(hdr[10:12], uint16(n*16-searchRange))

	for i, t := range tables {
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
		e := out[start+sfntHeaderSize+i*dirEntrySize:]
		be.PutUint32(e[0:4], uint32(t.Tag))
		be.PutUint32(e[4:8], checksum(t.Content))
		be.PutUint32(e[8:12], uint32(len(out)))
		be.PutUint32(e[12:16], uint32(len(t.Content)))
		out = append(out, t.Content...)
	}
	for len(out)%4 != 0 {
		out = append(out, 0)
	}
	return out
}

func checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var w [4]byte
		copy(w[:], data[i:])
		sum += binary.BigEndian.Uint32(w[:])
	}
	return sum
}
