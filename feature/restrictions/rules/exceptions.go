package rules

import (
	"fmt"

	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/specs"
)

// ReasonTrinketReview is used for effect trinkets that have no curated exception.
const ReasonTrinketReview = "Trinket effect requires manual review"

// ItemException is a curated verdict for one item. It always rejects its scope and
// never looks at generic stats.
type ItemException struct {
	ItemID uint32
	Item   string
	Scope  specs.Set
	Level  models.Level
	Reason string
}

const (
	reasonPhysicalProc = "Effect is more valuable to physical damage dealers than tanks"
	reasonSpellDamage  = "Effect only benefits damaging spells"
	reasonHealing      = "Effect only benefits healing spells"
	reasonTankOnly     = "Effect is only useful for tanks"
)

// Exceptions is the curated item table.
var Exceptions = []ItemException{
	{ItemID: 28830, Item: "Dragonspine Trophy", Scope: specs.Tank, Level: models.Disallowed, Reason: reasonPhysicalProc},
	{ItemID: 29383, Item: "Bloodlust Brooch", Scope: specs.Tank, Level: models.Disallowed, Reason: reasonPhysicalProc},
	{ItemID: 28034, Item: "Hourglass of the Unraveller", Scope: specs.Tank, Level: models.Disallowed, Reason: reasonPhysicalProc},
	{ItemID: 30627, Item: "Tsunami Talisman", Scope: specs.Tank, Level: models.ManualReview, Reason: reasonPhysicalProc},
	{ItemID: 28789, Item: "Eye of Magtheridon", Scope: specs.All &^ specs.CasterDps, Level: models.Disallowed, Reason: reasonSpellDamage},
	{ItemID: 28785, Item: "The Lightning Capacitor", Scope: specs.Healer, Level: models.Disallowed, Reason: reasonSpellDamage},
	{ItemID: 30626, Item: "Sextant of Unstable Currents", Scope: specs.Healer, Level: models.Disallowed, Reason: reasonSpellDamage},
	{ItemID: 28823, Item: "Eye of Gruul", Scope: specs.All &^ specs.Healer, Level: models.Disallowed, Reason: reasonHealing},
	{ItemID: 32496, Item: "Memento of Tyrande", Scope: specs.All &^ specs.Healer, Level: models.Disallowed, Reason: reasonHealing},
	{ItemID: 28528, Item: "Moroes' Lucky Pocket Watch", Scope: specs.All &^ specs.Tank, Level: models.Disallowed, Reason: reasonTankOnly},
	{ItemID: 27770, Item: "Argussian Compass", Scope: specs.All &^ specs.Tank, Level: models.Disallowed, Reason: reasonTankOnly},
	{ItemID: 28727, Item: "Pendant of the Violet Eye", Scope: specs.CasterDps, Level: models.ManualReview, Reason: "Mana effect is tuned for healers"},
	{ItemID: 32483, Item: "The Skull of Gul'dan", Scope: specs.Healer, Level: models.ManualReview, Reason: "Haste effect is more valuable to caster damage dealers"},
}

// ExceptionRules expands a table into one rule per entry. An entry without a scope
// panics; a zero scope would otherwise widen to every specialization.
func ExceptionRules(table []ItemException) []Rule {
	seen := make(map[uint32]int, len(table))
	out := make([]Rule, 0, len(table))
	for _, e := range table {
		if e.Scope.IsEmpty() {
			panic(fmt.Sprintf("rules: exception for item %d (%s) has an empty scope", e.ItemID, e.Item))
		}
		seen[e.ItemID]++
		id := e.ItemID
		out = append(out, &SimpleRule{
			RuleName: fmt.Sprintf("item-%d-%d", e.ItemID, seen[e.ItemID]),
			Applies: func(item *models.Item) bool {
				return item.ID == id
			},
			Scope:          e.Scope,
			DisallowLevel:  e.Level,
			DisallowReason: e.Reason,
		})
	}
	return out
}

// TrinketReview flags trinkets with an effect the stat model cannot describe unless the
// table already covers them.
func TrinketReview(table []ItemException) Rule {
	curated := make(map[uint32]struct{}, len(table))
	for _, e := range table {
		curated[e.ItemID] = struct{}{}
	}
	return &SimpleRule{
		RuleName: "trinket-review",
		Applies: func(item *models.Item) bool {
			if item.Slot != models.SlotTrinket || !item.HasEffect() {
				return false
			}
			_, ok := curated[item.ID]
			return !ok
		},
		Scope:          specs.All,
		DisallowLevel:  models.ManualReview,
		DisallowReason: ReasonTrinketReview,
	}
}
