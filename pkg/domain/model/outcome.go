package model

// Outcome is the result of classifying a PackageRecord
type Outcome int

const (
	OutcomeSkip     Outcome = iota // legacy, excluded from the report
	OutcomeAhead                   // local is newer than upstream
	OutcomeCurrent                 // in sync, or nothing to compare against
	OutcomeOutdated                // upstream is newer, action required
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkip:
		return "skip"
	case OutcomeAhead:
		return "ahead"
	case OutcomeCurrent:
		return "current"
	case OutcomeOutdated:
		return "outdated"
	default:
		return "unknown"
	}
}
