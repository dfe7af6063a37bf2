package simulation

// Stage is a step of the run state machine:
//
//	Validating -> Selecting -> Allocating -> Evaluating -> Persisting -> Committed
//
// Any stage may end in Failed. Nothing is written before Persisting.
type Stage string

const (
	Validating Stage = "validating"
	Selecting  Stage = "selecting"
	Allocating Stage = "allocating"
	Evaluating Stage = "evaluating"
	Persisting Stage = "persisting"
	Committed  Stage = "committed"
	Failed     Stage = "failed"
)

func (s Stage) String() string {
	return string(s)
}
