package emojiextract

import "strings"

// Method identifies which heuristic resolved a glyph.
type Method int

const (
	// MethodNone means the glyph was not resolved.
	MethodNone Method = iota

	// MethodCandidate is an exact match of a generated candidate name.
	MethodCandidate

	// MethodCharMap is the character map entry of the leading codepoint.
	MethodCharMap

	// MethodSubstring is the shortest glyph name containing the leading
	// codepoint's hex form.
	MethodSubstring
)

// String returns the string representation of the method.
func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodCandidate:
		return "candidate"
	case MethodCharMap:
		return "cmap"
	case MethodSubstring:
		return "substring"
	default:
		return "unknown"
	}
}

// GlyphSet is a font's glyph names in glyph order with constant time
// membership tests.
type GlyphSet struct {
	names []string
	index map[string]int
}

// NewGlyphSet builds a GlyphSet from names in glyph order. For duplicate
// names the first glyph wins.
func NewGlyphSet(names []string) *GlyphSet {
	g := &GlyphSet{
		names: names,
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if _, ok := g.index[name]; !ok {
			g.index[name] = i
		}
	}
	return g
}

// Len returns the number of glyphs.
func (g *GlyphSet) Len() int {
	return len(g.names)
}

// Names returns the glyph names in glyph order. The slice must not be
// modified.
func (g *GlyphSet) Names() []string {
	return g.names
}

// Contains reports whether name is a glyph name of the font.
func (g *GlyphSet) Contains(name string) bool {
	_, ok := g.index[name]
	return ok
}

// WithPrefix returns the glyph names starting with prefix, in glyph order.
func (g *GlyphSet) WithPrefix(prefix string) []string {
	var out []string
	for _, name := range g.names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// CharMap maps a single codepoint to a glyph name. It reports false when
// the font has no mapping for r.
type CharMap func(r rune) (string, bool)

// Resolution is the outcome of resolving a Spec to a glyph.
type Resolution struct {
	// Glyph is the resolved glyph name, empty if unresolved.
	Glyph string

	// Method is the heuristic that produced Glyph.
	Method Method

	// Tried lists the candidate names that were checked.
	Tried []string

	// Matches is the number of glyph names the substring search found.
	// It is zero unless Method is MethodSubstring.
	Matches int
}

// Resolve finds the glyph for spec. The heuristics are tried in order and
// the first that succeeds wins:
//
//  1. a name from CandidateNames present in glyphs
//  2. cmap's glyph for the leading codepoint, if present in glyphs
//  3. the shortest glyph name containing the leading codepoint's hex form;
//     equal lengths resolve to the earlier glyph
//
// cmap may be nil.
func Resolve(glyphs *GlyphSet, cmap CharMap, spec Spec) (Resolution, bool) {
	res := Resolution{Tried: CandidateNames(spec.Codepoints)}
	if len(spec.Codepoints) == 0 {
		return res, false
	}

	for _, name := range res.Tried {
		if glyphs.Contains(name) {
			res.Glyph, res.Method = name, MethodCandidate
			return res, true
		}
	}

	lead := spec.Codepoints[0]
	if cmap != nil {
		if name, ok := cmap(lead); ok && glyphs.Contains(name) {
			res.Glyph, res.Method = name, MethodCharMap
			return res, true
		}
	}

	hex := HexName(lead)
	for _, name := range glyphs.Names() {
		if !strings.Contains(name, hex) {
			continue
		}
		res.Matches++
		if res.Glyph == "" || len(name) < len(res.Glyph) {
			res.Glyph = name
		}
	}
	if res.Glyph != "" {
		res.Method = MethodSubstring
		return res, true
	}

	return res, false
}
