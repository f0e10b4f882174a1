package model

// TeamID — целочисленный идентификатор команды.
// Neutral (0) не является ни союзником, ни врагом никому, включая самого себя.
type TeamID int32

const (
	TeamNeutral TeamID = 0
	TeamPlayer  TeamID = 1
	TeamEnemy   TeamID = 2
)

// IsNeutral reports whether t is the neutral team.
func (t TeamID) IsNeutral() bool { return t == TeamNeutral }

// IsAlly reports whether t and other are the same non-neutral team.
func (t TeamID) IsAlly(other TeamID) bool {
	return t == other && t != TeamNeutral
}

// IsEnemy reports whether t and other are different non-neutral teams.
func (t TeamID) IsEnemy(other TeamID) bool {
	return t != other && t != TeamNeutral && other != TeamNeutral
}

// TeamRelation selects which teams a target filter accepts relative to the caster.
type TeamRelation int8

const (
	RelationEnemies TeamRelation = iota
	RelationAllies
	RelationAll
	RelationSelf
	RelationAlliesAndSelf
)

var relationNames = map[TeamRelation]string{
	RelationEnemies:       "enemies",
	RelationAllies:        "allies",
	RelationAll:           "all",
	RelationSelf:          "self",
	RelationAlliesAndSelf: "allies_and_self",
}

func (r TeamRelation) String() string {
	if name, ok := relationNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseTeamRelation parses a relation name as written in content files.
// Empty input yields RelationEnemies.
func ParseTeamRelation(s string) (TeamRelation, bool) {
	if s == "" {
		return RelationEnemies, true
	}
	for r, name := range relationNames {
		if name == s {
			return r, true
		}
	}
	return 0, false
}
