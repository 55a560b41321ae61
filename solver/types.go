package solver

// Describes basic types and constants that are used in the solver

// Status is the status of a given system at a given moment.
type Status byte

const (
	// Indet means the system is not proven feasible or infeasible yet.
	// This is also the status of a system whose resolution was aborted.
	Indet = Status(iota)
	// Sat means the system has at least one solution.
	Sat
	// Unsat means the system has no solution.
	Unsat
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		panic("invalid status")
	}
}

// DefaultMaxInequalities is the default ceiling on the number of strict or non-strict
// inequalities a system may contain during elimination.
const DefaultMaxInequalities = 10000

// Stats are statistics about the resolution of the problem.
// They are provided for information purpose only.
type Stats struct {
	NbEliminated int // How many unknowns were eliminated
	NbGenerated  int // How many inequalities were generated by eliminations, before deduplication
	MaxStrict    int // Largest number of strict inequalities met at once
	MaxNonstrict int // Largest number of non-strict inequalities met at once
}

// A Result is a status, either Sat, Unsat or Indet.
// If the status is Sat and a model was asked for, the Result also holds a witness.
// When the result comes from a disjunction of systems, Alternative is the index of
// the first feasible alternative, or -1.
type Result struct {
	Status      Status
	Model       Solution
	Alternative int
}
