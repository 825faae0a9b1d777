package rules

import (
	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/specs"
)

// DeadStat describes a stat that is wasted on a group of specializations. Keep, when
// set, lets a penalized specialization claw the item back.
type DeadStat struct {
	Name      string
	Stat      models.StatField
	Penalized specs.Set
	Reason    string
	Keep      func(item *models.Item, spec specs.Specialization) bool
}

// Rule turns the description into a Disallowed rule that applies when the stat is present.
func (d DeadStat) Rule() *SimpleRule {
	stat := d.Stat
	return &SimpleRule{
		RuleName: d.Name,
		Applies: func(item *models.Item) bool {
			return item.Stat(stat) > 0
		},
		Scope:          d.Penalized,
		Allowed:        d.Keep,
		DisallowLevel:  models.Disallowed,
		DisallowReason: d.Reason,
	}
}

// spellHybrids scale partly with spell power while filling a physical role.
const spellHybrids = specs.Set(1<<specs.ProtPaladin | 1<<specs.RetPaladin | 1<<specs.EnhanceShaman)

func hasPhysicalStats(item *models.Item) bool {
	return item.Strength > 0 || item.Agility > 0 || item.AttackPower > 0
}

var deadStats = []DeadStat{
	{
		Name:      "spell-power",
		Stat:      models.StatSpellPower,
		Penalized: specs.Physical,
		Reason:    "Spell power is wasted on physical specializations",
		Keep: func(item *models.Item, spec specs.Specialization) bool {
			return spellHybrids.Has(spec) && hasPhysicalStats(item)
		},
	},
	{
		Name:      "healing-power",
		Stat:      models.StatHealingPower,
		Penalized: specs.All &^ specs.Healer,
		Reason:    "Bonus healing is only useful for healers",
		Keep: func(item *models.Item, spec specs.Specialization) bool {
			// Spell damage items also list the healing they grant.
			return specs.CasterDps.Has(spec) && item.SpellPower >= item.HealingPower
		},
	},
	{
		Name:      "attack-power",
		Stat:      models.StatAttackPower,
		Penalized: specs.Caster,
		Reason:    "Attack power is wasted on spellcasters",
	},
	{
		Name:      "ranged-attack-power",
		Stat:      models.StatRangedAttackPower,
		Penalized: specs.All &^ specs.Hunter,
		Reason:    "Ranged attack power is only useful for hunters",
	},
	{
		Name:      "strength",
		Stat:      models.StatStrength,
		Penalized: specs.Caster,
		Reason:    "Strength is wasted on spellcasters",
	},
	{
		Name:      "agility",
		Stat:      models.StatAgility,
		Penalized: specs.Caster,
		Reason:    "Agility is wasted on spellcasters",
	},
	{
		Name:      "intellect",
		Stat:      models.StatIntellect,
		Penalized: specs.NoMana,
		Reason:    "Intellect is wasted on specializations without mana",
	},
	{
		Name:      "spirit",
		Stat:      models.StatSpirit,
		Penalized: specs.Physical,
		Reason:    "Spirit is wasted on physical specializations",
	},
	{
		Name:      "mana-regeneration",
		Stat:      models.StatManaPer5,
		Penalized: specs.NoMana,
		Reason:    "Mana regeneration is wasted on specializations without mana",
	},
	{
		Name:      "expertise",
		Stat:      models.StatExpertiseRating,
		Penalized: specs.Caster | specs.Hunter,
		Reason:    "Expertise is only useful for melee specializations",
	},
	{
		Name:      "armor-penetration",
		Stat:      models.StatArmorPenetration,
		Penalized: specs.Caster,
		Reason:    "Armor penetration is wasted on spellcasters",
	},
	{
		Name:      "spell-penetration",
		Stat:      models.StatSpellPenetration,
		Penalized: specs.All &^ specs.CasterDps,
		Reason:    "Spell penetration is only useful for caster damage dealers",
	},
	{
		Name:      "defense",
		Stat:      models.StatDefense,
		Penalized: specs.All &^ specs.Tank,
		Reason:    "Defense rating is only useful for tanks",
	},
	{
		Name:      "dodge",
		Stat:      models.StatDodge,
		Penalized: specs.All &^ specs.Tank,
		Reason:    "Dodge rating is only useful for tanks",
	},
	{
		Name:      "parry",
		Stat:      models.StatParry,
		Penalized: specs.All &^ specs.ParryTanks,
		Reason:    "Parry rating is only useful for tanks that can parry",
	},
	{
		Name:      "block-rating",
		Stat:      models.StatBlockRating,
		Penalized: specs.All &^ specs.BlockTanks,
		Reason:    "Block is only useful for shield tanks",
	},
	{
		Name:      "block-value",
		Stat:      models.StatBlockValue,
		Penalized: specs.All &^ specs.BlockTanks,
		Reason:    "Block is only useful for shield tanks",
	},
	{
		Name:      "hit-rating",
		Stat:      models.StatHitRating,
		Penalized: specs.Healer,
		Reason:    "Hit rating is wasted on healers",
	},
	{
		Name:      "resilience",
		Stat:      models.StatResilience,
		Penalized: specs.All,
		Reason:    "Resilience is a player versus player stat",
	},
}

// DeadStatRules returns one Disallowed rule per wasted stat.
func DeadStatRules() []Rule {
	out := make([]Rule, 0, len(deadStats))
	for _, d := range deadStats {
		out = append(out, d.Rule())
	}
	return out
}
