package rules

import (
	"iter"

	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/specs"
)

// Rule is one unit of classification logic.
type Rule interface {
	// Name uniquely identifies the rule within a registry.
	Name() string

	// AppliesTo is a cheap guard. When it returns false the rule contributes
	// nothing for the item.
	AppliesTo(item *models.Item) bool

	// ApplicableSpecs is the scope the rule reasons about.
	ApplicableSpecs() specs.Set

	// IsAllowed is evaluated once per specialization in scope when AppliesTo is true.
	IsAllowed(item *models.Item, spec specs.Specialization) bool

	// Level and Reason describe the verdict produced when IsAllowed returns false.
	Level() models.Level
	Reason() string
}

// SimpleRule implements Rule from plain values. A nil Applies always applies,
// a zero Scope means specs.All and a nil Allowed rejects every specialization in scope.
type SimpleRule struct {
	RuleName       string
	Applies        func(item *models.Item) bool
	Scope          specs.Set
	Allowed        func(item *models.Item, spec specs.Specialization) bool
	DisallowLevel  models.Level
	DisallowReason string
}

func (r *SimpleRule) Name() string {
	return r.RuleName
}

func (r *SimpleRule) AppliesTo(item *models.Item) bool {
	if r.Applies == nil {
		return true
	}
	return r.Applies(item)
}

func (r *SimpleRule) ApplicableSpecs() specs.Set {
	if r.Scope.IsEmpty() {
		return specs.All
	}
	return r.Scope
}

func (r *SimpleRule) IsAllowed(item *models.Item, spec specs.Specialization) bool {
	if r.Allowed == nil {
		return false
	}
	return r.Allowed(item, spec)
}

func (r *SimpleRule) Level() models.Level {
	return r.DisallowLevel
}

func (r *SimpleRule) Reason() string {
	return r.DisallowReason
}

// Evaluate runs a rule against an item. It yields nothing when the guard fails and
// otherwise one determination per specialization in scope that is not allowed.
// Allowed specializations are never materialized.
func Evaluate(r Rule, item *models.Item) iter.Seq[models.Determination] {
	return func(yield func(models.Determination) bool) {
		if !r.AppliesTo(item) {
			return
		}
		name, level, reason := r.Name(), r.Level(), r.Reason()
		for sp := range r.ApplicableSpecs().All() {
			if r.IsAllowed(item, sp) {
				continue
			}
			d := models.Determination{Spec: sp, Level: level, Reason: reason, Rule: name}
			if !yield(d) {
				return
			}
		}
	}
}
