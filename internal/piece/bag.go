package piece

import "math/rand/v2"

// Bag deals kinds so that every run of KindCount draws, counted from a
// refill, contains each kind exactly once. A Bag is owned by a single
// game and is not safe for concurrent use.
type Bag struct {
	rng *rand.Rand
	set []Kind
}

// NewBag returns a full bag drawing from rng. A nil rng gets a randomly
// seeded source.
func NewBag(rng *rand.Rand) *Bag {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	b := &Bag{rng: rng, set: make([]Kind, 0, KindCount)}
	b.refill()
	return b
}

// NewSeededBag returns a bag whose sequence is fully determined by seed.
func NewSeededBag(seed uint64) *Bag {
	return NewBag(NewSeededRand(seed))
}

// NewSeededRand returns the generator NewSeededBag draws from, so callers
// building their own bag get the same sequence for the same seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Next removes and returns a uniformly chosen kind from the working set,
// refilling it first when it has run out.
func (b *Bag) Next() Kind {
	if len(b.set) == 0 {
		b.refill()
	}
	i := b.rng.IntN(len(b.set))
	k := b.set[i]
	last := len(b.set) - 1
	b.set[i] = b.set[last]
	b.set = b.set[:last]
	return k
}

// Remaining reports how many kinds are left before the next refill.
func (b *Bag) Remaining() int {
	return len(b.set)
}

func (b *Bag) refill() {
	b.set = append(b.set[:0], I, J, L, O, S, T, Z)
}
