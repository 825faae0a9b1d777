package engine

import (
	"context"
	"errors"
	"iter"
	"slices"
	"testing"

	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/rules"
	"loot-restrictions/feature/restrictions/specs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func rule(name, reason string, level models.Level, scope specs.Set) *rules.SimpleRule {
	return &rules.SimpleRule{RuleName: name, Scope: scope, DisallowLevel: level, DisallowReason: reason}
}

func newEngine(t *testing.T, list ...rules.Rule) *Engine {
	t.Helper()
	reg, err := rules.New(list...)
	require.NoError(t, err)
	return New(reg, zap.NewNop())
}

// TestCandidates_Grouping tests that determinations sharing (reason, level) merge.
func TestCandidates_Grouping(t *testing.T) {
	e := newEngine(t,
		rule("a", "shared", models.Disallowed, specs.Tank),
		rule("b", "shared", models.Disallowed, specs.Healer),
		rule("c", "shared", models.ManualReview, specs.Mage),
		rule("d", "other", models.Disallowed, specs.Tank),
	)

	got, err := e.Candidates(&models.Item{ID: 42})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "other", got[0].Reason)
	assert.Equal(t, specs.Tank, got[0].Specializations)

	assert.Equal(t, "shared", got[1].Reason)
	assert.Equal(t, models.ManualReview, got[1].Level)
	assert.Equal(t, specs.Mage, got[1].Specializations)

	assert.Equal(t, models.Disallowed, got[2].Level)
	assert.Equal(t, specs.Tank|specs.Healer, got[2].Specializations)

	for _, c := range got {
		assert.True(t, c.Automated)
		assert.Equal(t, uint32(42), c.ItemID)
		assert.Zero(t, c.ID)
	}
}

// TestCandidates_OrderIndependent tests that rule order does not change the result.
func TestCandidates_OrderIndependent(t *testing.T) {
	list := rules.Default().Rules()
	reversed := slices.Clone(list)
	slices.Reverse(reversed)

	forward := newEngine(t, list...)
	backward := newEngine(t, reversed...)

	items := []*models.Item{
		{ID: 1, Slot: models.SlotOffHand, Type: models.TypeSword, SpellPower: 20, Strength: 10},
		{ID: 2, Slot: models.SlotChest, Type: models.TypePlate, Defense: 20, BlockValue: 30, Parry: 10},
		{ID: 28830, Slot: models.SlotTrinket, AttackPower: 40, HasProc: true},
		{ID: 3, Slot: models.SlotTrinket, HasOnUse: true, Intellect: 15},
	}
	for _, item := range items {
		a, err := forward.Candidates(item)
		require.NoError(t, err)
		b, err := backward.Candidates(item)
		require.NoError(t, err)
		assert.Equal(t, a, b, "item %d", item.ID)
	}
}

// TestCandidates_OneOutcomePerReason tests that each spec has one level per reason.
func TestCandidates_OneOutcomePerReason(t *testing.T) {
	e := New(rules.Default(), nil)
	item := &models.Item{ID: 4, Slot: models.SlotOffHand, Type: models.TypeShield, BlockValue: 20, Spirit: 10, Intellect: 10}

	got, err := e.Candidates(item)
	require.NoError(t, err)

	type key struct {
		reason string
		spec   specs.Specialization
	}
	seen := map[key]models.Level{}
	for _, c := range got {
		for sp := range c.Specializations.All() {
			k := key{c.Reason, sp}
			_, dup := seen[k]
			assert.False(t, dup, "%s has two levels for %q", sp, c.Reason)
			seen[k] = c.Level
		}
	}
	assert.NotEmpty(t, seen)
}

// TestCandidates_RuleFault tests that a panicking rule becomes a typed error.
func TestCandidates_RuleFault(t *testing.T) {
	broken := &rules.SimpleRule{
		RuleName: "broken",
		Allowed: func(item *models.Item, _ specs.Specialization) bool {
			return item.Stat(models.StatSpeed) > 0
		},
		DisallowLevel:  models.Disallowed,
		DisallowReason: "slow",
	}
	e := newEngine(t, rule("fine", "fine", models.Disallowed, specs.Tank), broken)

	_, err := e.Candidates(&models.Item{ID: 9, Type: models.TypePlate})
	require.Error(t, err)

	var fault *RuleFault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "broken", fault.Rule)
	assert.Equal(t, uint32(9), fault.ItemID)
	assert.NotEmpty(t, fault.Stack)

	_, err = e.Collect(&models.Item{ID: 9, Type: models.TypePlate})
	assert.True(t, errors.As(err, &fault))
}

// TestEvaluate tests a full pass over a catalog.
func TestEvaluate(t *testing.T) {
	e := New(rules.Default(), zap.NewNop())
	catalog := SliceCatalog{
		{ID: 1, Slot: models.SlotFinger, SpellPower: 150},
		{ID: 2, Slot: models.SlotNeck, Stamina: 30},
		{ID: 3, Slot: models.SlotOffHand, Type: models.TypeDagger},
	}

	res, err := e.Evaluate(context.Background(), catalog)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Items)
	assert.Equal(t, 2, res.Flagged)

	for _, c := range res.Candidates {
		assert.NotEqual(t, uint32(2), c.ItemID)
	}
}

// TestEvaluate_Aborts tests the failure modes of a pass.
func TestEvaluate_Aborts(t *testing.T) {
	e := New(rules.Default(), nil)

	t.Run("RuleFault", func(t *testing.T) {
		catalog := SliceCatalog{
			{ID: 1, Slot: models.SlotFinger, SpellPower: 150},
			{ID: 2, Slot: models.SlotTwoHand, Type: models.TypeDagger},
		}
		res, err := e.Evaluate(context.Background(), catalog)
		assert.Nil(t, res)
		var fault *RuleFault
		require.True(t, errors.As(err, &fault))
		assert.Equal(t, uint32(2), fault.ItemID)
		assert.Equal(t, "weapon-proficiency", fault.Rule)
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := e.Evaluate(ctx, SliceCatalog{{ID: 1}})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("DuplicateItem", func(t *testing.T) {
		_, err := e.Evaluate(context.Background(), SliceCatalog{{ID: 1}, {ID: 1}})
		assert.Error(t, err)
	})

	t.Run("CatalogError", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := e.Evaluate(context.Background(), failingCatalog{err: boom})
		assert.ErrorIs(t, err, boom)
	})
}

type failingCatalog struct {
	err error
}

func (c failingCatalog) Items(context.Context) iter.Seq2[*models.Item, error] {
	return func(yield func(*models.Item, error) bool) {
		if !yield(&models.Item{ID: 1}, nil) {
			return
		}
		yield(nil, c.err)
	}
}

func (c failingCatalog) Item(context.Context, uint32) (*models.Item, error) {
	return nil, c.err
}

// TestSliceCatalog_Item tests lookups on the in-memory catalog.
func TestSliceCatalog_Item(t *testing.T) {
	catalog := SliceCatalog{{ID: 5, Name: "Ring"}}

	item, err := catalog.Item(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Ring", item.Name)

	_, err = catalog.Item(context.Background(), 6)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
