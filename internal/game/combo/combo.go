// Package combo tracks per-caster progress through registered ability sequences.
package combo

import (
	"errors"
	"fmt"

	"github.com/udisondev/abilitycore/internal/model"
)

// DefaultTimeWindow is the time allowed between two steps when a definition sets none.
const DefaultTimeWindow = 3.0

// Drop reasons reported in ComboDropped.
const (
	ReasonWrongAbility = "wrong ability"
	ReasonTimeout      = "timeout"
	ReasonReset        = "reset"
)

var (
	ErrEmptySequence = errors.New("combo sequence is empty")
	ErrInvalidCombo  = errors.New("invalid combo definition")
)

// Definition is an immutable ability sequence with per-step multipliers.
// Do not modify after registration.
type Definition struct {
	ID               string
	Name             string
	Sequence         []model.AbilityID
	StepMultipliers  []float64
	TimeWindow       float64
	BonusEffectIDs   []model.EffectID
	FinisherEffectID model.EffectID
}

// Validate checks the definition and fills defaults.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidCombo)
	}
	if len(d.Sequence) == 0 {
		return fmt.Errorf("combo %s: %w", d.ID, ErrEmptySequence)
	}
	if len(d.StepMultipliers) > len(d.Sequence) {
		return fmt.Errorf("combo %s: %w: %d multipliers for %d steps",
			d.ID, ErrInvalidCombo, len(d.StepMultipliers), len(d.Sequence))
	}
	if d.TimeWindow <= 0 {
		d.TimeWindow = DefaultTimeWindow
	}
	return nil
}

// Len returns the number of steps.
func (d *Definition) Len() int { return len(d.Sequence) }

// StepMultiplier returns the multiplier of a 0-based step, 1 when unspecified.
func (d *Definition) StepMultiplier(step int) float64 {
	if step >= 0 && step < len(d.StepMultipliers) {
		return d.StepMultipliers[step]
	}
	return 1
}

// TotalMultiplier returns the product of all step multipliers.
func (d *Definition) TotalMultiplier() float64 {
	total := 1.0
	for _, m := range d.StepMultipliers {
		total *= m
	}
	return total
}

// Result of a combo peek.
type Result struct {
	IsCombo        bool
	Combo          *Definition
	Step           int // 1-based step the checked ability would complete
	Multiplier     float64
	BonusEffectIDs []model.EffectID // set only for the final step
}

// None is the no-combo result.
var None = Result{Multiplier: 1}

// IsFinal reports whether the checked ability would finish the combo.
func (r Result) IsFinal() bool {
	return r.IsCombo && r.Step == r.Combo.Len()
}
