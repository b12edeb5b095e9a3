package game

// BoundedRange is the counter used for health and every timer in the
// simulation. Current may overshoot Max on the tick that crosses the
// threshold, so timer checks use Reached (>=), never equality.
type BoundedRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Current float64 `json:"current"`
}

// NewRange returns a range starting at current.
func NewRange(min, max, current float64) BoundedRange {
	return BoundedRange{Min: min, Max: max, Current: current}
}

// Advance adds elapsed milliseconds (or any delta) to Current.
func (r *BoundedRange) Advance(delta float64) {
	r.Current += delta
}

// Apply subtracts amount from Current (damage against a health range).
func (r *BoundedRange) Apply(amount float64) {
	r.Current -= amount
}

// Reset puts Current back at Min.
func (r *BoundedRange) Reset() {
	r.Current = r.Min
}

// Reached reports whether a timer has hit its threshold.
func (r BoundedRange) Reached() bool {
	return r.Current >= r.Max
}

// Expired reports whether Current is strictly past Max.
func (r BoundedRange) Expired() bool {
	return r.Current > r.Max
}

// Depleted reports whether a health range is at or below its death threshold.
func (r BoundedRange) Depleted() bool {
	return r.Current <= r.Min
}

// Fraction returns Current's position between Min and Max, clamped to [0, 1].
// Used by renderers for health bars.
func (r BoundedRange) Fraction() float64 {
	span := r.Max - r.Min
	if span <= 0 {
		return 0
	}
	f := (r.Current - r.Min) / span
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
