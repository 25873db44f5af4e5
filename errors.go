package emojiextract

import "errors"

// Sentinel errors for the emojiextract package.
var (
	// ErrNoSizes is returned when no output sizes are configured.
	ErrNoSizes = errors.New("emojiextract: no output sizes")

	// ErrNoStrikes is returned when the font has no bitmap strikes.
	ErrNoStrikes = errors.New("emojiextract: font has no bitmap strikes")

	// ErrNotInStrike is returned by Source.Bitmap when the glyph has no
	// record in the requested strike.
	ErrNotInStrike = errors.New("emojiextract: glyph not in strike")
)
