package dice

// Roller provides the primitive dice draw so implementations can be
// swapped for deterministic testing
type Roller interface {
	// Roll draws count uniform integers in [1, sides]
	Roll(count, sides int) ([]int, error)
}
