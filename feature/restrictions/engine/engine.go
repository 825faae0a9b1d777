package engine

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"slices"

	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/rules"
	"loot-restrictions/feature/restrictions/specs"

	"go.uber.org/zap"
)

// Engine evaluates a fixed rule set against items.
type Engine struct {
	rules  []rules.Rule
	logger *zap.Logger
}

// New creates an engine over the registry's rules.
func New(registry *rules.Registry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{rules: registry.Rules(), logger: logger}
}

// Determinations lazily yields the determinations of every rule for the item.
// A rule panic propagates to the caller; use Collect to receive it as a *RuleFault.
func (e *Engine) Determinations(item *models.Item) iter.Seq[models.Determination] {
	return func(yield func(models.Determination) bool) {
		for _, rule := range e.rules {
			for d := range rules.Evaluate(rule, item) {
				if !yield(d) {
					return
				}
			}
		}
	}
}

// Collect evaluates every rule for the item.
func (e *Engine) Collect(item *models.Item) (out []models.Determination, err error) {
	var current string
	defer recoverFault(&current, item.ID, &err)

	for _, rule := range e.rules {
		current = rule.Name()
		for d := range rules.Evaluate(rule, item) {
			out = append(out, d)
		}
	}
	return out, nil
}

type groupKey struct {
	reason string
	level  models.Level
}

// Candidates groups the item's determinations by (reason, level) into automated
// restriction candidates. The result is sorted by reason then level, so it does not
// depend on rule order.
func (e *Engine) Candidates(item *models.Item) (out []models.Restriction, err error) {
	var current string
	defer recoverFault(&current, item.ID, &err)

	groups := make(map[groupKey]specs.Set)
	for _, rule := range e.rules {
		current = rule.Name()
		for d := range rules.Evaluate(rule, item) {
			k := groupKey{reason: d.Reason, level: d.Level}
			groups[k] = groups[k].Union(d.Spec.Set())
		}
	}

	out = make([]models.Restriction, 0, len(groups))
	for k, set := range groups {
		out = append(out, models.Restriction{
			ItemID:          item.ID,
			Specializations: set,
			Level:           k.level,
			Reason:          k.reason,
			Automated:       true,
		})
	}
	SortRestrictions(out)
	return out, nil
}

// SortRestrictions orders restrictions by item, reason and level.
func SortRestrictions(list []models.Restriction) {
	slices.SortFunc(list, func(a, b models.Restriction) int {
		return cmp.Or(
			cmp.Compare(a.ItemID, b.ItemID),
			cmp.Compare(a.Reason, b.Reason),
			cmp.Compare(a.Level, b.Level),
		)
	})
}

// Result is the outcome of one pass over a catalog.
type Result struct {
	Candidates []models.Restriction
	Items      int
	Flagged    int
}

// Evaluate makes a single sequential pass over the catalog and returns every candidate.
// Cancellation is checked between items. The first rule fault or catalog error aborts
// the pass and no partial result is returned.
func (e *Engine) Evaluate(ctx context.Context, catalog Catalog) (*Result, error) {
	res := &Result{}
	seen := make(map[uint32]struct{})

	for item, err := range catalog.Items(ctx) {
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("item %d appears twice in catalog", item.ID)
		}
		seen[item.ID] = struct{}{}

		candidates, err := e.Candidates(item)
		if err != nil {
			e.logger.Error("Rule evaluation failed", zap.Uint32("item_id", item.ID), zap.Error(err))
			return nil, err
		}

		res.Items++
		if len(candidates) > 0 {
			res.Flagged++
		}
		res.Candidates = append(res.Candidates, candidates...)
	}

	e.logger.Debug("Catalog evaluated",
		zap.Int("items", res.Items),
		zap.Int("flagged", res.Flagged),
		zap.Int("candidates", len(res.Candidates)),
	)
	return res, nil
}
