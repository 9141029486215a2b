package dice

import (
	"math/rand"
	"time"

	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
)

// randomRoller draws from its own math/rand generator. It is not safe for
// concurrent use; each game session should own its roller.
type randomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded from the current time
func NewRandomRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller creates a roller with a fixed seed for reproducible runs
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides int) ([]int, error) {
	if count < 1 {
		return nil, gmerr.InvalidArgumentf("invalid dice count: %d", count)
	}
	if sides < 2 {
		return nil, gmerr.InvalidArgumentf("invalid die size: %d", sides)
	}

	out := make([]int, count)
	for i := 0; i < count; i++ {
		out[i] = r.rng.Intn(sides) + 1
	}
	return out, nil
}
