package delay

// Precision selects how much of the platform's minimum period budget the
// delay primitive is allowed to spend spin-waiting at the tail of a wait.
type Precision int

const (
	// Default never spins: lowest CPU cost, highest jitter.
	Default Precision = iota
	// Medium spins for 2/3 of the platform minimum period.
	Medium
	// High spins for 4/3 of the platform minimum period.
	High
	// Maximum spins for 2x the platform minimum period.
	Maximum
)

// factor returns the tight-loop factor for p, applied to the platform's
// MinPeriod (in milliseconds) to compute the spin budget.
func (p Precision) factor() float64 {
	switch p {
	case Medium:
		return 2.0 / 3.0
	case High:
		return 4.0 / 3.0
	case Maximum:
		return 2.0
	default:
		return 0
	}
}

// String renders the precision option for logging.
func (p Precision) String() string {
	switch p {
	case Medium:
		return "Medium"
	case High:
		return "High"
	case Maximum:
		return "Maximum"
	default:
		return "Default"
	}
}
