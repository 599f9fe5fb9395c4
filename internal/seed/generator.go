package seed

// Generator is a mulberry32 stream. It is not safe for concurrent use; every
// synthesis call owns its own Generator.
type Generator struct {
	state uint32
}

// NewGenerator returns a Generator keyed by seed. Negative and oversized
// seeds are truncated to their low 32 bits, so -1 and 0xFFFFFFFF share a
// stream.
func NewGenerator(seed int64) *Generator {
	return &Generator{state: uint32(seed)}
}

// Next advances the stream and returns a value in [0, 1).
func (g *Generator) Next() float64 {
	g.state += 0x6D2B79F5
	t := g.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// Int returns a value in [0, max). max must be at least 1.
func (g *Generator) Int(max int) int {
	return int(g.Next() * float64(max))
}

// Choice returns one element of items, which must be non-empty.
func Choice[T any](g *Generator, items []T) T {
	return items[g.Int(len(items))]
}

// Weighted pairs a value with its relative sampling weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// WeightedChoice samples items by inverse CDF. Rounding that leaves the draw
// past the final bucket resolves to the last entry.
func WeightedChoice[T any](g *Generator, items []Weighted[T]) T {
	var total float64
	for _, it := range items {
		total += it.Weight
	}

	r := g.Next() * total
	for _, it := range items {
		r -= it.Weight
		if r < 0 {
			return it.Value
		}
	}
	return items[len(items)-1].Value
}

// Shuffle permutes items in place with Fisher-Yates, walking from the end.
func Shuffle[T any](g *Generator, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := g.Int(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
