// Package content reads YAML content packs and builds the immutable effect,
// ability, combo and entity-template tables the engine runs on.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidContent = errors.New("invalid content")

// Pack — сырое содержимое YAML файла контента.
type Pack struct {
	Effects   []EffectDef   `yaml:"effects"`
	Abilities []AbilityDef  `yaml:"abilities"`
	Combos    []ComboDef    `yaml:"combos"`
	Templates []TemplateDef `yaml:"templates"`
}

// EffectDef is one effect. Params are passed verbatim to the effect registry.
type EffectDef struct {
	ID     string            `yaml:"id"`
	Name   string            `yaml:"name"`
	Type   string            `yaml:"type"`
	Params map[string]string `yaml:"params"`
}

type CostDef struct {
	Kind   string  `yaml:"kind"`
	Amount float64 `yaml:"amount"`
}

type TargetsDef struct {
	Team        string `yaml:"team"` // enemies | allies | all | self | allies_and_self
	IncludeDead bool   `yaml:"include_dead"`
	IncludeSelf bool   `yaml:"include_self"`
	MaxTargets  int    `yaml:"max_targets"`
}

// AbilityDef is one ability. Pointer fields fall back to
// ability.DefaultDefinition when omitted.
type AbilityDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Targeting   string `yaml:"targeting"` // default SingleTarget

	Cooldown           float64    `yaml:"cooldown"`
	CastTime           float64    `yaml:"cast_time"`
	Range              float64    `yaml:"range"`
	AreaRadius         float64    `yaml:"area_radius"`
	ConeAngle          *float64   `yaml:"cone_angle"`
	Costs              []CostDef  `yaml:"costs"`
	CanCastWhileMoving *bool      `yaml:"can_cast_while_moving"`
	Channeled          bool       `yaml:"channeled"`
	ChannelDuration    float64    `yaml:"channel_duration"`
	MaxCharges         *int       `yaml:"max_charges"`
	ChargeRestoreTime  float64    `yaml:"charge_restore_time"`
	Targets            TargetsDef `yaml:"targets"`

	Effects []string `yaml:"effects"`
}

type ComboDef struct {
	ID              string    `yaml:"id"`
	Name            string    `yaml:"name"`
	Sequence        []string  `yaml:"sequence"`
	StepMultipliers []float64 `yaml:"step_multipliers"`
	TimeWindow      float64   `yaml:"time_window"`
	BonusEffects    []string  `yaml:"bonus_effects"`
	FinisherEffect  string    `yaml:"finisher_effect"`
}

// PoolDef declares a resource pool. Max may be omitted when the matching
// max stat (max_health, max_mana, max_energy) is in the template's stats.
type PoolDef struct {
	Kind  string  `yaml:"kind"`
	Max   float64 `yaml:"max"`
	Regen float64 `yaml:"regen"`
}

// TemplateDef describes an entity archetype.
type TemplateDef struct {
	ID        string             `yaml:"id"`
	Name      string             `yaml:"name"`
	Stats     map[string]float64 `yaml:"stats"`
	Pools     []PoolDef          `yaml:"pools"`
	Abilities []string           `yaml:"abilities"`
}

// Parse decodes a pack from YAML. Unknown keys are rejected; empty input
// yields an empty pack.
func Parse(data []byte) (*Pack, error) {
	var p Pack
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return &p, nil
		}
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	return &p, nil
}

// Load reads and decodes a pack file.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return p, nil
}

// Merge appends other's definitions to p.
func (p *Pack) Merge(other *Pack) {
	p.Effects = append(p.Effects, other.Effects...)
	p.Abilities = append(p.Abilities, other.Abilities...)
	p.Combos = append(p.Combos, other.Combos...)
	p.Templates = append(p.Templates, other.Templates...)
}
