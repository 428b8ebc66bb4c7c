package diagram

// Config holds the clustering thresholds. All linear values are EMU-like
// relative units matching the drawing records' pseudo-coordinates. The
// defaults are calibrated for office-document shapes laid out on letter/A4
// pages (914400 EMU per inch); they are configuration, not algorithm.
type Config struct {
	// StrongDelta is the maximum |dx|+|dy| offset delta for two shapes
	// anchored in the same paragraph to merge unconditionally.
	StrongDelta int64

	// MaxDocGap is the maximum owning-paragraph distance across which
	// two shape groups may still stitch into one diagram.
	MaxDocGap int

	// WeakVerticalDelta and WeakHorizontalDelta bound the centroid
	// deltas for the cross-paragraph stitch.
	WeakVerticalDelta   int64
	WeakHorizontalDelta int64

	// AspectRatioMin and AspectRatioMax bound the w/h ratio of a group's
	// bounding box for it to participate in the cross-paragraph stitch;
	// extremely flat or tall groups (rules, separators) stay separate.
	AspectRatioMin float64
	AspectRatioMax float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		StrongDelta:         457200, // 0.5 inch
		MaxDocGap:           2,
		WeakVerticalDelta:   914400,  // 1 inch
		WeakHorizontalDelta: 1828800, // 2 inches
		AspectRatioMin:      0.1,
		AspectRatioMax:      10.0,
	}
}
