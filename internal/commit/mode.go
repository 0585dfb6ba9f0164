package commit

// Mode selects how model output is split into candidates and which shape a
// candidate must have to be accepted.
type Mode int

const (
	// SingleLine candidates are one subject line each.
	SingleLine Mode = iota
	// SubjectBody candidates are a subject line followed by a non-empty body.
	SubjectBody
)

func (m Mode) String() string {
	if m == SubjectBody {
		return "subject+body"
	}
	return "single-line"
}

// MaxCandidates is the number of suggestions a pipeline run produces at most.
const MaxCandidates = 3
