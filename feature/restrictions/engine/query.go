package engine

import (
	"fmt"
	"iter"

	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/specs"
)

// AllowedSpecs returns the specializations that may use the item. Specializations only
// flagged for manual review count as allowed when includeManualReview is set.
func (e *Engine) AllowedSpecs(item *models.Item, includeManualReview bool) specs.Set {
	return Allowed(e.Determinations(item), includeManualReview)
}

// DisallowedReasons lazily yields the distinct reasons that block spec from the item.
// The sequence can be ranged over any number of times.
func (e *Engine) DisallowedReasons(item *models.Item, spec specs.Specialization, excludeManualReview bool) iter.Seq[string] {
	return Reasons(e.Determinations(item), spec, excludeManualReview)
}

// Allowed folds determinations into the set of specializations they leave usable.
func Allowed(dets iter.Seq[models.Determination], includeManualReview bool) specs.Set {
	blocked := specs.Set(0)
	for d := range dets {
		if d.Level == models.Allowed || (includeManualReview && d.Level == models.ManualReview) {
			continue
		}
		blocked = blocked.Union(d.Spec.Set())
	}
	return specs.All.Without(blocked)
}

// Reasons filters determinations down to the distinct reasons affecting one specialization.
func Reasons(dets iter.Seq[models.Determination], spec specs.Specialization, excludeManualReview bool) iter.Seq[string] {
	if !spec.Valid() {
		panic(fmt.Sprintf("engine: %d is not a single specialization", spec))
	}
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for d := range dets {
			if d.Spec != spec || d.Level == models.Allowed {
				continue
			}
			if excludeManualReview && d.Level == models.ManualReview {
				continue
			}
			if _, ok := seen[d.Reason]; ok {
				continue
			}
			seen[d.Reason] = struct{}{}
			if !yield(d.Reason) {
				return
			}
		}
	}
}
