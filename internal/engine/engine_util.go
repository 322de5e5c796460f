package engine

import (
	"math/rand/v2"

	"github.com/DoyleJ11/crew-draft-backend/internal/entity"
)

// Sampler is the only source of randomness in a draft. *rand.Rand from
// math/rand/v2 satisfies it.
type Sampler interface {
	// IntN returns a uniform index in [0, n).
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSampler returns a sampler seeded from the runtime's random source, so
// identical inputs produce different drafts.
func NewSampler() Sampler {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededSampler returns a reproducible sampler for tests and replays.
func NewSeededSampler(seed uint64) Sampler {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// chooseOne picks a uniformly random element of items. items must not be
// empty.
func chooseOne[T any](s Sampler, items []T) T {
	return items[s.IntN(len(items))]
}

func shuffled[T any](s Sampler, items []T) []T {
	out := append([]T(nil), items...)
	s.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func filterCrew(pool []*entity.Crew, keep func(*entity.Crew) bool) []*entity.Crew {
	var out []*entity.Crew
	for _, c := range pool {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// ContainsEvent reports whether events holds at least one event of the type.
func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// CountEvents returns how many events of the type were recorded.
func CountEvents(events []Event, eventType EventType) int {
	n := 0
	for _, event := range events {
		if event.Type == eventType {
			n++
		}
	}
	return n
}
