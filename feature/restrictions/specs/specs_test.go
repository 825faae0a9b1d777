package specs_test

import (
	"encoding/json"
	"testing"

	"loot-restrictions/feature/restrictions/specs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableIsExhaustive(t *testing.T) {
	for i := 0; i < specs.Count; i++ {
		sp := specs.Specialization(i)
		assert.NotZero(t, sp.Class(), "specialization %d has no class", i)
		assert.NotEmpty(t, sp.Key(), "specialization %d has no key", i)
		assert.True(t, sp.Class().Specs().Has(sp), "%s missing from its class set", sp)
	}
	assert.Equal(t, specs.Count, specs.All.Len())
	assert.Equal(t, specs.Set(1<<specs.Count-1), specs.All)
}

func TestRolesPartitionAll(t *testing.T) {
	assert.Equal(t, specs.All, specs.Tank|specs.Healer|specs.Dps)
	assert.False(t, specs.Tank.Overlaps(specs.Healer))
	assert.False(t, specs.Tank.Overlaps(specs.Dps))
	assert.False(t, specs.Healer.Overlaps(specs.Dps))
	assert.False(t, specs.PhysicalDps.Overlaps(specs.CasterDps))
	assert.Equal(t, specs.All, specs.NoMana|specs.ManaUsers)
}

func TestSingle(t *testing.T) {
	tests := []struct {
		name   string
		set    specs.Set
		want   specs.Specialization
		single bool
	}{
		{"Single", specs.ProtWarrior.Set(), specs.ProtWarrior, true},
		{"First", specs.BalanceDruid.Set(), specs.BalanceDruid, true},
		{"Empty", 0, 0, false},
		{"Group", specs.Tank, 0, false},
		{"All", specs.All, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.set.Single()
			assert.Equal(t, tt.single, ok)
			if tt.single {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSetOperations(t *testing.T) {
	s := specs.Of(specs.ProtWarrior, specs.HolyPriest)

	assert.True(t, s.Has(specs.ProtWarrior))
	assert.False(t, s.Has(specs.FireMage))
	assert.True(t, specs.All.Contains(s))
	assert.False(t, s.Contains(specs.Tank))
	assert.Equal(t, specs.HolyPriest.Set(), s.Without(specs.Tank))
	assert.Equal(t, specs.ProtWarrior.Set(), s.Intersect(specs.Warrior))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []specs.Specialization{specs.HolyPriest, specs.ProtWarrior}, s.Slice())
}

func TestAllIteratorStopsEarly(t *testing.T) {
	seen := 0
	for range specs.All.All() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestParse(t *testing.T) {
	sp, err := specs.ParseSpecialization("protection warrior")
	require.NoError(t, err)
	assert.Equal(t, specs.ProtWarrior, sp)

	sp, err = specs.ParseSpecialization("RestoShaman")
	require.NoError(t, err)
	assert.Equal(t, specs.RestoShaman, sp)

	_, err = specs.ParseSpecialization("Brewmaster Monk")
	assert.Error(t, err)

	set, err := specs.ParseSet("tank, HolyPriest")
	require.NoError(t, err)
	assert.Equal(t, specs.Tank|specs.HolyPriest.Set(), set)
}

func TestSetJSON(t *testing.T) {
	in := specs.Of(specs.BearDruid, specs.FireMage)
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `"BearDruid,FireMage"`, string(data))

	var out specs.Set
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestFromClassMask(t *testing.T) {
	assert.Equal(t, specs.All, specs.FromClassMask(0))
	assert.Equal(t, specs.Warrior, specs.FromClassMask(1))
	assert.Equal(t, specs.Druid|specs.Priest, specs.FromClassMask(1024|16))

	for c := specs.ClassDruid; c <= specs.ClassDeathKnight; c++ {
		assert.Equal(t, c.Specs(), specs.FromClassMask(c.ClassMask()), c.String())
	}

	assert.Panics(t, func() { specs.FromClassMask(512) })
}
