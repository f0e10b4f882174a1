package targeting

import (
	"github.com/udisondev/abilitycore/internal/game/ability"
	"github.com/udisondev/abilitycore/internal/game/actor"
)

// selfStrategy always returns the caster.
type selfStrategy struct{}

func (selfStrategy) Mode() ability.TargetingMode { return ability.TargetSelf }

func (selfStrategy) FindTargets(req Request) []actor.Target {
	return []actor.Target{req.Caster}
}

func (selfStrategy) IsValidTarget(target actor.Target, req Request) bool {
	return actor.SameTarget(target, req.Caster)
}

// singleStrategy returns the primary target if it passes the filter.
type singleStrategy struct{}

func (singleStrategy) Mode() ability.TargetingMode { return ability.TargetSingle }

func (singleStrategy) FindTargets(req Request) []actor.Target {
	if req.Primary == nil || !req.Filter.Passes(req.Primary, req.Caster) {
		return nil
	}
	return []actor.Target{req.Primary}
}

func (singleStrategy) IsValidTarget(target actor.Target, req Request) bool {
	if !req.Filter.Passes(target, req.Caster) {
		return false
	}
	return req.Caster.Position().Distance(target.Position()) <= req.Ability.Range()
}

// areaStrategy returns filtered entities within AreaRadius of the aimed
// point, or of the caster when no point is given.
type areaStrategy struct {
	world WorldQuery
}

func (areaStrategy) Mode() ability.TargetingMode { return ability.TargetArea }

func (s areaStrategy) FindTargets(req Request) []actor.Target {
	center := req.Caster.Position()
	if req.Point != nil {
		center = *req.Point
	}
	found := s.world.InRadius(center, req.Ability.Definition().AreaRadius)
	return req.Filter.Apply(found, req.Caster)
}

func (areaStrategy) IsValidTarget(target actor.Target, req Request) bool {
	return req.Filter.Passes(target, req.Caster)
}

// noTargetStrategy resolves to nothing; the pipeline then applies effects to the caster.
type noTargetStrategy struct{}

func (noTargetStrategy) Mode() ability.TargetingMode              { return ability.TargetNone }
func (noTargetStrategy) FindTargets(Request) []actor.Target       { return nil }
func (noTargetStrategy) IsValidTarget(actor.Target, Request) bool { return false }

// pointStrategy hits everything around a ground point, or the entity closest
// to it when the ability has no area.
type pointStrategy struct {
	world WorldQuery
}

func (pointStrategy) Mode() ability.TargetingMode { return ability.TargetPoint }

func (s pointStrategy) FindTargets(req Request) []actor.Target {
	if req.Point == nil {
		return nil
	}
	if radius := req.Ability.Definition().AreaRadius; radius > 0 {
		return req.Filter.Apply(s.world.InRadius(*req.Point, radius), req.Caster)
	}
	closest := s.world.Closest(*req.Point, req.Filter, req.Caster)
	if closest == nil {
		return nil
	}
	return []actor.Target{closest}
}

func (pointStrategy) IsValidTarget(target actor.Target, req Request) bool {
	return req.Filter.Passes(target, req.Caster)
}

// directionalStrategy hits a cone from the caster. The direction comes from
// the request, or points at the primary target.
type directionalStrategy struct {
	world WorldQuery
}

func (directionalStrategy) Mode() ability.TargetingMode { return ability.TargetDirectional }

func (s directionalStrategy) FindTargets(req Request) []actor.Target {
	origin := req.Caster.Position()
	var dir = req.Direction
	if dir == nil && req.Primary != nil {
		d := req.Primary.Position().Sub(origin)
		dir = &d
	}
	if dir == nil || dir.Length() == 0 {
		return nil
	}
	def := req.Ability.Definition()
	found := s.world.InCone(origin, dir.Normalize(), def.ConeAngle, def.Range)
	return req.Filter.Apply(found, req.Caster)
}

func (directionalStrategy) IsValidTarget(target actor.Target, req Request) bool {
	return req.Filter.Passes(target, req.Caster)
}
