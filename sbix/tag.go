package sbix

import "github.com/go-text/typesetting/font/opentype"

// Graphic types defined for sbix glyph records.
var (
	TagPNG  = opentype.MustNewTag("png ")
	TagJPEG = opentype.MustNewTag("jpg ")
	TagTIFF = opentype.MustNewTag("tiff")
	TagDupe = opentype.MustNewTag("dupe")
	TagMask = opentype.MustNewTag("mask")
)
