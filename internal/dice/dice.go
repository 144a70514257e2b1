// Package dice implements the polyhedral dice kinds and rolling logic.
package dice

import (
	"math/rand"
	"strconv"
)

// Kind is a die size. The value is the number of sides.
type Kind int

const (
	D4   Kind = 4
	D6   Kind = 6
	D8   Kind = 8
	D10  Kind = 10
	D12  Kind = 12
	D20  Kind = 20
	D100 Kind = 100
)

var kinds = []Kind{D4, D6, D8, D10, D12, D20, D100}

// Kinds returns every supported die in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Sides returns the number of faces on the die.
func (k Kind) Sides() int { return int(k) }

// Token returns the free-text token for the die, e.g. "d6".
// The same token is used as the keyboard button label.
func (k Kind) Token() string { return "d" + strconv.Itoa(int(k)) }

// Parse maps a dice token back to its Kind. Only exact tokens of
// supported kinds match; anything else reports false.
func Parse(token string) (Kind, bool) {
	for _, k := range kinds {
		if token == k.Token() {
			return k, true
		}
	}
	return 0, false
}

// Roll returns a uniformly distributed value in [1, sides] drawn from
// the process-wide source. Safe for concurrent use.
func Roll(k Kind) int {
	return rand.Intn(k.Sides()) + 1
}

// RollWith rolls using the provided source. Used where deterministic
// results are needed.
func RollWith(rng *rand.Rand, k Kind) int {
	return rng.Intn(k.Sides()) + 1
}

// Roller rolls from the process-wide source. It satisfies the core
// Roller contract without carrying any state.
type Roller struct{}

func (Roller) Roll(k Kind) int { return Roll(k) }
