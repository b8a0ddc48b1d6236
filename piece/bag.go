package piece

import (
	"math/rand/v2"
	"time"
)

// Source deals the sequence of kinds a game plays.
type Source interface {
	Next() Kind
	Peek(n int) []Kind
}

// Bag is the 7-bag randomizer: each refill is a shuffled permutation of all
// seven kinds, so no kind repeats within a batch.
type Bag struct {
	rng     *rand.Rand
	pending []Kind
}

// NewBag creates a bag driven by rng. A nil rng seeds one from the clock.
func NewBag(rng *rand.Rand) *Bag {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Bag{rng: rng}
}

// NewSeededBag creates a bag whose sequence is fully determined by seed.
func NewSeededBag(seed uint64) *Bag {
	return NewBag(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func (b *Bag) refill() {
	batch := Kinds
	b.rng.Shuffle(len(batch), func(i, j int) {
		batch[i], batch[j] = batch[j], batch[i]
	})
	b.pending = append(b.pending, batch[:]...)
}

// Next removes and returns the next kind, refilling with a whole new batch
// when the current one is exhausted.
func (b *Bag) Next() Kind {
	if len(b.pending) == 0 {
		b.refill()
	}
	k := b.pending[0]
	b.pending = b.pending[1:]
	return k
}

// Peek returns the next n kinds without consuming them. Batches needed to
// satisfy the peek are drawn now, so later calls to Next agree with it.
func (b *Bag) Peek(n int) []Kind {
	for len(b.pending) < n {
		b.refill()
	}
	out := make([]Kind, n)
	copy(out, b.pending)
	return out
}

// Remaining reports how many kinds are left in the drawn batches.
func (b *Bag) Remaining() int {
	return len(b.pending)
}

// Sequence is a scripted Source that cycles through a fixed list of kinds.
type Sequence struct {
	kinds []Kind
	pos   int
}

func NewSequence(kinds ...Kind) *Sequence {
	if len(kinds) == 0 {
		kinds = Kinds[:]
	}
	return &Sequence{kinds: kinds}
}

func (s *Sequence) Next() Kind {
	k := s.kinds[s.pos%len(s.kinds)]
	s.pos++
	return k
}

func (s *Sequence) Peek(n int) []Kind {
	out := make([]Kind, n)
	for i := range out {
		out[i] = s.kinds[(s.pos+i)%len(s.kinds)]
	}
	return out
}
