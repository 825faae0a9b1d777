package rules

import (
	"errors"
	"fmt"
	"slices"

	"loot-restrictions/feature/restrictions/models"
)

// Registry is an ordered, validated set of rules.
type Registry struct {
	rules []Rule
	index map[string]int
}

// New validates and registers rules. Names must be unique and non-empty, every rule
// needs a reason and a non-empty scope, and Allowed is not a verdict.
func New(list ...Rule) (*Registry, error) {
	r := &Registry{rules: make([]Rule, 0, len(list)), index: make(map[string]int, len(list))}
	var errs []error
	for _, rule := range list {
		if err := validate(rule); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := r.index[rule.Name()]; dup {
			errs = append(errs, fmt.Errorf("rule %q registered twice", rule.Name()))
			continue
		}
		r.index[rule.Name()] = len(r.rules)
		r.rules = append(r.rules, rule)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

func validate(rule Rule) error {
	switch {
	case rule == nil:
		return errors.New("nil rule")
	case rule.Name() == "":
		return errors.New("rule without a name")
	case rule.Reason() == "":
		return fmt.Errorf("rule %q has no reason", rule.Name())
	case rule.Level() == models.Allowed || rule.Level() > models.Unequippable:
		return fmt.Errorf("rule %q has invalid level %s", rule.Name(), rule.Level())
	case rule.ApplicableSpecs().IsEmpty():
		return fmt.Errorf("rule %q has an empty scope", rule.Name())
	}
	return nil
}

// MustNew is New for statically declared rule sets.
func MustNew(list ...Rule) *Registry {
	r, err := New(list...)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the production rule set.
func Default() *Registry {
	list := EquipRules()
	list = append(list, DeadStatRules()...)
	list = append(list, ExceptionRules(Exceptions)...)
	list = append(list, TrinketReview(Exceptions))
	return MustNew(list...)
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	return slices.Clone(r.rules)
}

func (r *Registry) Len() int {
	return len(r.rules)
}

// Lookup finds a rule by name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.rules[i], true
}

// Without returns a copy of the registry minus the named rules. Unknown names are ignored.
func (r *Registry) Without(names ...string) *Registry {
	kept := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if !slices.Contains(names, rule.Name()) {
			kept = append(kept, rule)
		}
	}
	return MustNew(kept...)
}
