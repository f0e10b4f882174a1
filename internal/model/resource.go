package model

import "strings"

// ResourceKind is a spendable pool on an entity.
type ResourceKind int8

const (
	ResourceHealth ResourceKind = iota
	ResourceMana
	ResourceEnergy
	ResourceRage
	ResourceShield
)

var resourceNames = [...]string{"Health", "Mana", "Energy", "Rage", "Shield"}

func (k ResourceKind) String() string {
	if int(k) >= 0 && int(k) < len(resourceNames) {
		return resourceNames[k]
	}
	return "Unknown"
}

// ResourceKinds returns every kind in declaration order.
func ResourceKinds() []ResourceKind {
	return []ResourceKind{ResourceHealth, ResourceMana, ResourceEnergy, ResourceRage, ResourceShield}
}

// ParseResourceKind accepts the names returned by String, case-insensitively.
func ParseResourceKind(s string) (ResourceKind, bool) {
	for i, name := range resourceNames {
		if strings.EqualFold(name, s) {
			return ResourceKind(i), true
		}
	}
	return 0, false
}

// Cost is a single resource price of an ability.
type Cost struct {
	Kind   ResourceKind
	Amount float64
}
