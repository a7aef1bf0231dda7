package pipeline

// ResultState is the lifecycle state of a remote stage result.
//
// State transitions:
//
//	Idle ──> Loading ──> Success
//	   ^         │  └──> Error
//	   └─────────┴────────┘
//	(any input change resets the cycle)
type ResultState int

const (
	// StateIdle means the stage has no meaningful result for the current input.
	StateIdle ResultState = iota

	// StateLoading means a remote call for the current input is in flight.
	StateLoading

	// StateSuccess means the latest remote call for the current input succeeded.
	StateSuccess

	// StateError means the latest remote call failed or reported a negative
	// outcome. Message carries the user-facing explanation.
	StateError
)

// String returns the lowercase name of the state.
func (s ResultState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Result is a tagged stage outcome. For the serviceability stage the pincode
// pair that produced the result is recorded alongside it; a result is only
// meaningful while that pair still matches the draft.
type Result struct {
	State       ResultState `json:"state"`
	Message     string      `json:"message,omitempty"`
	FromPincode string      `json:"-"`
	ToPincode   string      `json:"-"`
}
