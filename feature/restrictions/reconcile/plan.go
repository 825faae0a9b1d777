package reconcile

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/specs"
)

type matchKey struct {
	itemID uint32
	reason string
	level  models.Level
	specs  specs.Set
}

func keyFor(r models.Restriction, mode MatchMode) matchKey {
	k := matchKey{itemID: r.ItemID, reason: r.Reason}
	if mode == MatchExact {
		k.level = r.Level
		k.specs = r.Specializations
	}
	return k
}

// group holds the automated restrictions sharing one match key, lowest ID first.
type group struct {
	records []models.Restriction
	kept    []bool
	matched bool
}

// take pairs a candidate with an unkept record, preferring one at the same level.
func (g *group) take(level models.Level) (models.Restriction, bool) {
	pick := -1
	for i, r := range g.records {
		if g.kept[i] {
			continue
		}
		if r.Level == level {
			pick = i
			break
		}
		if pick < 0 {
			pick = i
		}
	}
	if pick < 0 {
		return models.Restriction{}, false
	}
	g.kept[pick] = true
	g.matched = true
	return g.records[pick], true
}

// BuildPlan compares candidates against the persisted set and plans the mutations that
// make the automated records equal the candidates.
//
// Manual records are never matched, updated or deleted, and a manual record for the
// same item and reason suppresses the candidate. Automated records left unpaired are
// deleted, which also removes duplicates of a paired record.
func BuildPlan(persisted, candidates []models.Restriction, opts Options) *Plan {
	mode := opts.Match
	if mode == "" {
		mode = MatchReason
	}

	plan := &Plan{}
	plan.Summary.Candidates = len(candidates)
	plan.Summary.Persisted = len(persisted)

	// Index persisted restrictions
	manual := make(map[models.RestrictionKey]struct{})
	groups := make(map[matchKey]*group)
	var order []matchKey

	sorted := slices.Clone(persisted)
	slices.SortFunc(sorted, func(a, b models.Restriction) int { return cmp.Compare(a.ID, b.ID) })

	for _, r := range sorted {
		if !r.Automated {
			manual[r.Key()] = struct{}{}
			plan.Summary.Manual++
			continue
		}
		k := keyFor(r, mode)
		g, ok := groups[k]
		if !ok {
			g = &group{}
			groups[k] = g
			order = append(order, k)
		}
		g.records = append(g.records, r)
		g.kept = append(g.kept, false)
	}

	// Pair candidates
	var creates, updates []Action
	for _, c := range candidates {
		if _, ok := manual[c.Key()]; ok {
			plan.Summary.Suppressed++
			continue
		}

		g, ok := groups[keyFor(c, mode)]
		if ok {
			if existing, found := g.take(c.Level); found {
				if existing.Level == c.Level && existing.Specializations == c.Specializations {
					plan.Summary.Unchanged++
					continue
				}
				updated := existing
				updated.Level = c.Level
				updated.Specializations = c.Specializations
				previous := existing
				updates = append(updates, Action{
					Type:        ActionUpdate,
					Restriction: updated,
					Previous:    &previous,
					Reason:      describeUpdate(existing, c),
				})
				continue
			}
		}

		created := c
		created.ID = 0
		created.Automated = true
		creates = append(creates, Action{Type: ActionCreate, Restriction: created, Reason: "new candidate"})
	}

	// Everything automated that was not paired is stale or a duplicate
	var deletes []Action
	for _, k := range order {
		g := groups[k]
		for i, r := range g.records {
			if g.kept[i] {
				continue
			}
			reason := "no longer produced by any rule"
			if g.matched {
				reason = "duplicate automated restriction"
			}
			deletes = append(deletes, Action{Type: ActionDelete, Restriction: r, Reason: reason})
		}
	}

	sortActions(deletes)
	sortActions(updates)
	sortActions(creates)

	plan.Actions = make([]Action, 0, len(deletes)+len(updates)+len(creates))
	plan.Actions = append(plan.Actions, deletes...)
	plan.Actions = append(plan.Actions, updates...)
	plan.Actions = append(plan.Actions, creates...)

	plan.Summary.Deleted = len(deletes)
	plan.Summary.Updated = len(updates)
	plan.Summary.Created = len(creates)

	return plan
}

func sortActions(actions []Action) {
	slices.SortFunc(actions, func(a, b Action) int {
		return cmp.Or(
			cmp.Compare(a.Restriction.ItemID, b.Restriction.ItemID),
			cmp.Compare(a.Restriction.Reason, b.Restriction.Reason),
			cmp.Compare(a.Restriction.Level, b.Restriction.Level),
			cmp.Compare(a.Restriction.ID, b.Restriction.ID),
		)
	})
}

// describeUpdate builds a reason string for an in-place update.
func describeUpdate(old, next models.Restriction) string {
	switch {
	case old.Level != next.Level && old.Specializations != next.Specializations:
		return fmt.Sprintf("level %s -> %s, specializations %s -> %s", old.Level, next.Level, old.Specializations, next.Specializations)
	case old.Level != next.Level:
		return fmt.Sprintf("level %s -> %s", old.Level, next.Level)
	default:
		return fmt.Sprintf("specializations %s -> %s", old.Specializations, next.Specializations)
	}
}

// ApplyPlan commits the plan's actions through the store as one unit.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, store Store, plan *Plan, opts Options) (executed int, err error) {
	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if plan.Empty() {
		return 0, nil
	}

	changes := plan.Changes()
	if err := store.Commit(ctx, changes); err != nil {
		return 0, fmt.Errorf("commit %d changes: %w", changes.Len(), err)
	}
	return changes.Len(), nil
}

// ReconcileAndApply reads the persisted set, plans against the candidates and applies
// the plan when the options allow it.
func ReconcileAndApply(ctx context.Context, store Store, candidates []models.Restriction, opts Options) (*Plan, int, error) {
	persisted, err := store.ListRestrictions(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list restrictions: %w", err)
	}

	plan := BuildPlan(persisted, candidates, opts)
	executed, err := ApplyPlan(ctx, store, plan, opts)
	return plan, executed, err
}
