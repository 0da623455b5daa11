package goal

// Goal represents a savings goal. OwnerID is a weak reference, the same
// caveat as for transactions.
type Goal struct {
	ID            int64
	OwnerID       int64
	Title         string
	TargetAmount  float64
	CurrentAmount float64
}

// Completed reports whether the goal has been reached. Completion is derived
// on every read, never stored: raising the target or applying a negative
// amount can move a goal back to incomplete.
func (g *Goal) Completed() bool {
	return g.CurrentAmount >= g.TargetAmount
}
