package emojiextract

// SkipReason says why an (emoji, size) pair produced no file.
type SkipReason int

const (
	// SkipNotInStrike means the strike has no record for the glyph.
	SkipNotInStrike SkipReason = iota

	// SkipEmptyData means the record exists but holds no image.
	SkipEmptyData
)

// String returns the string representation of the skip reason.
func (r SkipReason) String() string {
	switch r {
	case SkipNotInStrike:
		return "not in strike"
	case SkipEmptyData:
		return "empty image data"
	default:
		return "unknown"
	}
}

// Artifact is a file written by Run.
type Artifact struct {
	Name       string
	Glyph      string
	Size       int // requested output size, names the directory
	StrikeSize int // strike the bitmap came from
	Path       string
	Bytes      int
}

// Skip is an (emoji, size) pair that produced no file.
type Skip struct {
	Name       string
	Glyph      string
	Size       int
	StrikeSize int
	Reason     SkipReason
}

// Report summarizes a Run.
type Report struct {
	// Found and NotFound hold emoji names in table order.
	Found    []string
	NotFound []string

	Written []Artifact
	Skipped []Skip
}

// Extracted returns the number of files written.
func (r *Report) Extracted() int {
	return len(r.Written)
}
