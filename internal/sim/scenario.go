package sim

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/abilitycore/internal/model"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Action kinds.
const (
	ActionCast = "cast"
	ActionMove = "move"
)

// Scenario — временная шкала боя: кто появляется и что делает.
type Scenario struct {
	Name     string     `yaml:"name"`
	Duration float64    `yaml:"duration"` // seconds; 0 ends one second after the last action
	Entities []SpawnDef `yaml:"entities"`
	Actions  []Action   `yaml:"actions"`
}

// SpawnDef places one entity from a content template.
type SpawnDef struct {
	ID       string `yaml:"id"`
	Template string `yaml:"template"`
	Team     string `yaml:"team"` // neutral | player | enemy | number
	Position Coords `yaml:"position"`
}

// Action happens once, on the first tick whose clock reaches At.
type Action struct {
	At   float64 `yaml:"at"`
	Kind string  `yaml:"kind"` // cast (default) | move

	Caster    string `yaml:"caster"`
	Ability   string `yaml:"ability"`
	Target    string `yaml:"target"`
	Point     Coords `yaml:"point"`
	Direction Coords `yaml:"direction"`

	Entity string `yaml:"entity"`
	To     Coords `yaml:"to"`
}

// Coords is written as [x, y] or [x, y, z].
type Coords []float64

// IsSet reports whether any coordinates were given.
func (c Coords) IsSet() bool { return len(c) > 0 }

// Vec converts c to a vector; missing components are zero.
func (c Coords) Vec() model.Vec3 {
	var v model.Vec3
	if len(c) > 0 {
		v.X = c[0]
	}
	if len(c) > 1 {
		v.Y = c[1]
	}
	if len(c) > 2 {
		v.Z = c[2]
	}
	return v
}

func (c Coords) valid() bool {
	return len(c) == 0 || len(c) == 2 || len(c) == 3
}

// ParseScenario decodes a scenario from YAML and validates its shape.
// Actions are returned sorted by time; equal times keep file order.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	for i := range s.Actions {
		if s.Actions[i].Kind == "" {
			s.Actions[i].Kind = ActionCast
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	slices.SortStableFunc(s.Actions, func(a, b Action) int { return cmp.Compare(a.At, b.At) })
	return &s, nil
}

// LoadScenario reads and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Validate checks that every action refers to a declared entity.
func (s *Scenario) Validate() error {
	if s.Duration < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidScenario)
	}

	ids := make(map[string]bool, len(s.Entities))
	for _, e := range s.Entities {
		switch {
		case e.ID == "":
			return fmt.Errorf("%w: entity without id", ErrInvalidScenario)
		case ids[e.ID]:
			return fmt.Errorf("%w: duplicate entity %s", ErrInvalidScenario, e.ID)
		case e.Template == "":
			return fmt.Errorf("%w: entity %s has no template", ErrInvalidScenario, e.ID)
		case !e.Position.valid():
			return fmt.Errorf("%w: entity %s position needs 2 or 3 coordinates", ErrInvalidScenario, e.ID)
		}
		if _, err := ParseTeam(e.Team); err != nil {
			return fmt.Errorf("entity %s: %w", e.ID, err)
		}
		ids[e.ID] = true
	}

	for i, a := range s.Actions {
		if a.At < 0 {
			return fmt.Errorf("%w: action %d at negative time", ErrInvalidScenario, i)
		}
		if !a.Point.valid() || !a.Direction.valid() || !a.To.valid() {
			return fmt.Errorf("%w: action %d coordinates need 2 or 3 values", ErrInvalidScenario, i)
		}
		switch a.Kind {
		case ActionCast:
			if !ids[a.Caster] {
				return fmt.Errorf("%w: action %d: unknown caster %q", ErrInvalidScenario, i, a.Caster)
			}
			if a.Ability == "" {
				return fmt.Errorf("%w: action %d: no ability", ErrInvalidScenario, i)
			}
			if a.Target != "" && !ids[a.Target] {
				return fmt.Errorf("%w: action %d: unknown target %q", ErrInvalidScenario, i, a.Target)
			}
		case ActionMove:
			if !ids[a.Entity] {
				return fmt.Errorf("%w: action %d: unknown entity %q", ErrInvalidScenario, i, a.Entity)
			}
			if !a.To.IsSet() {
				return fmt.Errorf("%w: action %d: move without destination", ErrInvalidScenario, i)
			}
		default:
			return fmt.Errorf("%w: action %d: unknown kind %q", ErrInvalidScenario, i, a.Kind)
		}
	}
	return nil
}

// End returns the simulated time the scenario runs for.
func (s *Scenario) End() float64 {
	if s.Duration > 0 {
		return s.Duration
	}
	if len(s.Actions) == 0 {
		return 0
	}
	return s.Actions[len(s.Actions)-1].At + 1
}

var teamNames = map[string]model.TeamID{
	"":        model.TeamNeutral,
	"neutral": model.TeamNeutral,
	"player":  model.TeamPlayer,
	"enemy":   model.TeamEnemy,
}

// ParseTeam accepts a team name or a numeric team id.
func ParseTeam(s string) (model.TeamID, error) {
	if t, ok := teamNames[s]; ok {
		return t, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: unknown team %q", ErrInvalidScenario, s)
	}
	return model.TeamID(n), nil
}
