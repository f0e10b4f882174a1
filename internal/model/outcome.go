package model

// Outcome classifies how an effect application resolved.
type Outcome int8

const (
	OutcomeNormal Outcome = iota
	OutcomeCritical
	OutcomeBlocked
	OutcomeResisted
	OutcomeImmune
	OutcomeFailed
)

var outcomeNames = [...]string{"Normal", "Critical", "Blocked", "Resisted", "Immune", "Failed"}

func (o Outcome) String() string {
	if int(o) >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "Unknown"
}
