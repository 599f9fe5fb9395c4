// Package seed derives reproducible seeds from text and turns them into
// deterministic pseudo-random streams.
package seed

import "unicode/utf16"

// FromText returns a non-negative 32-bit hash of s. The hash walks the
// UTF-16 code units of s and accumulates hash*31 + unit, wrapping to a
// signed 32-bit integer at every step, then takes the absolute value.
// Identical input always yields the same seed; the empty string yields 0.
func FromText(s string) uint32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(u)
	}
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}
