package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIdentifier is returned when an identifier is empty or whitespace.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// AbilityID identifies an ability definition. Compared by value.
type AbilityID string

// EffectID identifies an effect definition. Compared by value.
type EffectID string

// StatID identifies a named stat on an entity. Compared by value.
type StatID string

func validateID(kind, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s %q: %w", kind, value, ErrInvalidIdentifier)
	}
	return nil
}

// NewAbilityID validates value and returns it as AbilityID.
func NewAbilityID(value string) (AbilityID, error) {
	if err := validateID("ability id", value); err != nil {
		return "", err
	}
	return AbilityID(value), nil
}

// MustAbilityID is like NewAbilityID but panics on invalid input.
// Intended for compile-time constants and tests.
func MustAbilityID(value string) AbilityID {
	id, err := NewAbilityID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// NewEffectID validates value and returns it as EffectID.
func NewEffectID(value string) (EffectID, error) {
	if err := validateID("effect id", value); err != nil {
		return "", err
	}
	return EffectID(value), nil
}

// MustEffectID is like NewEffectID but panics on invalid input.
func MustEffectID(value string) EffectID {
	id, err := NewEffectID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// NewStatID validates value and returns it as StatID.
func NewStatID(value string) (StatID, error) {
	if err := validateID("stat id", value); err != nil {
		return "", err
	}
	return StatID(value), nil
}

// MustStatID is like NewStatID but panics on invalid input.
func MustStatID(value string) StatID {
	id, err := NewStatID(value)
	if err != nil {
		panic(err)
	}
	return id
}

func (id AbilityID) String() string { return string(id) }
func (id EffectID) String() string  { return string(id) }
func (id StatID) String() string    { return string(id) }
