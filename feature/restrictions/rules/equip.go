package rules

import (
	"fmt"

	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/specs"
)

// Equip-ability reasons.
const (
	ReasonDualWield       = "Class is unable to dual wield weapons"
	ReasonWeaponType      = "Class is unable to use this weapon type"
	ReasonArmorType       = "Class is unable to wear this armor type"
	ReasonShield          = "Class is unable to equip shields"
	ReasonRelicType       = "Class is unable to use this relic type"
	ReasonClassRestricted = "Item is restricted to other classes"
)

type proficiency struct {
	armor   []models.ItemType
	oneHand []models.ItemType
	twoHand []models.ItemType
	relic   models.ItemType
	shield  bool
}

var (
	allArmor     = []models.ItemType{models.TypeCloth, models.TypeLeather, models.TypeMail, models.TypePlate}
	casterWeapon = []models.ItemType{models.TypeSword, models.TypeDagger, models.TypeWand}
	rangedWeapon = []models.ItemType{models.TypeBow, models.TypeCrossbow, models.TypeGun, models.TypeThrown}
)

func join(lists ...[]models.ItemType) []models.ItemType {
	var out []models.ItemType
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Ranged weapons are listed with one-handers; the ranged slot has no two-handed variant.
var proficiencies = map[specs.Class]proficiency{
	specs.ClassWarrior: {
		armor:   allArmor,
		oneHand: join([]models.ItemType{models.TypeAxe, models.TypeMace, models.TypeSword, models.TypeDagger, models.TypeFistWeapon}, rangedWeapon),
		twoHand: []models.ItemType{models.TypeAxe, models.TypeMace, models.TypeSword, models.TypePolearm, models.TypeStaff},
		shield:  true,
	},
	specs.ClassPaladin: {
		armor:   allArmor,
		oneHand: []models.ItemType{models.TypeAxe, models.TypeMace, models.TypeSword},
		twoHand: []models.ItemType{models.TypeAxe, models.TypeMace, models.TypeSword, models.TypePolearm},
		relic:   models.TypeLibram,
		shield:  true,
	},
	specs.ClassDeathKnight: {
		armor:   allArmor,
		oneHand: []models.ItemType{models.TypeAxe, models.TypeMace, models.TypeSword},
		twoHand: []models.ItemType{models.TypeAxe, models.TypeMace, models.TypeSword, models.TypePolearm},
		relic:   models.TypeSigil,
	},
	specs.ClassHunter: {
		armor:   []models.ItemType{models.TypeCloth, models.TypeLeather, models.TypeMail},
		oneHand: join([]models.ItemType{models.TypeAxe, models.TypeSword, models.TypeDagger, models.TypeFistWeapon}, rangedWeapon),
		twoHand: []models.ItemType{models.TypeAxe, models.TypeSword, models.TypePolearm, models.TypeStaff},
	},
	specs.ClassShaman: {
		armor:   []models.ItemType{models.TypeCloth, models.TypeLeather, models.TypeMail},
		oneHand: []models.ItemType{models.TypeAxe, models.TypeMace, models.TypeDagger, models.TypeFistWeapon},
		twoHand: []models.ItemType{models.TypeAxe, models.TypeMace, models.TypeStaff},
		relic:   models.TypeTotem,
		shield:  true,
	},
	specs.ClassRogue: {
		armor:   []models.ItemType{models.TypeCloth, models.TypeLeather},
		oneHand: join([]models.ItemType{models.TypeAxe, models.TypeMace, models.TypeSword, models.TypeDagger, models.TypeFistWeapon}, rangedWeapon),
	},
	specs.ClassDruid: {
		armor:   []models.ItemType{models.TypeCloth, models.TypeLeather},
		oneHand: []models.ItemType{models.TypeMace, models.TypeDagger, models.TypeFistWeapon},
		twoHand: []models.ItemType{models.TypeMace, models.TypePolearm, models.TypeStaff},
		relic:   models.TypeIdol,
	},
	specs.ClassPriest: {
		armor:   []models.ItemType{models.TypeCloth},
		oneHand: []models.ItemType{models.TypeMace, models.TypeDagger, models.TypeWand},
		twoHand: []models.ItemType{models.TypeStaff},
	},
	specs.ClassMage: {
		armor:   []models.ItemType{models.TypeCloth},
		oneHand: casterWeapon,
		twoHand: []models.ItemType{models.TypeStaff},
	},
	specs.ClassWarlock: {
		armor:   []models.ItemType{models.TypeCloth},
		oneHand: casterWeapon,
		twoHand: []models.ItemType{models.TypeStaff},
	},
}

// equipMasks holds, per item type, the specializations able to equip it.
type equipMasks struct {
	armor   map[models.ItemType]specs.Set
	oneHand map[models.ItemType]specs.Set
	twoHand map[models.ItemType]specs.Set
	relic   map[models.ItemType]specs.Set
	shield  specs.Set
}

var masks = buildEquipMasks(proficiencies)

func buildEquipMasks(table map[specs.Class]proficiency) equipMasks {
	m := equipMasks{
		armor:   map[models.ItemType]specs.Set{},
		oneHand: map[models.ItemType]specs.Set{},
		twoHand: map[models.ItemType]specs.Set{},
		relic:   map[models.ItemType]specs.Set{},
	}
	for class, p := range table {
		classSpecs := class.Specs()
		for _, t := range p.armor {
			m.armor[t] |= classSpecs
		}
		for _, t := range p.oneHand {
			m.oneHand[t] |= classSpecs
		}
		for _, t := range p.twoHand {
			m.twoHand[t] |= classSpecs
		}
		if p.relic.IsRelic() {
			m.relic[p.relic] |= classSpecs
		}
		if p.shield {
			m.shield |= classSpecs
		}
	}
	return m
}

// alwaysTwoHanded types have no one-handed variant regardless of slot data.
func alwaysTwoHanded(t models.ItemType) bool {
	return t == models.TypePolearm || t == models.TypeStaff
}

// weaponMask returns the specializations proficient with the item's weapon type.
// A weapon type/hand combination no class can use is a data or table defect.
func weaponMask(item *models.Item) specs.Set {
	table, hand := masks.oneHand, "one-handed"
	if item.Slot == models.SlotTwoHand || alwaysTwoHanded(item.Type) {
		table, hand = masks.twoHand, "two-handed"
	}
	mask, ok := table[item.Type]
	if !ok || mask.IsEmpty() {
		panic(fmt.Sprintf("rules: no proficiency covers %s %s (item %d)", hand, item.Type, item.ID))
	}
	return mask
}

func armorMask(item *models.Item) specs.Set {
	mask, ok := masks.armor[item.Type]
	if !ok {
		panic(fmt.Sprintf("rules: no proficiency covers armor type %s (item %d)", item.Type, item.ID))
	}
	return mask
}

func relicMask(item *models.Item) specs.Set {
	mask, ok := masks.relic[item.Type]
	if !ok {
		panic(fmt.Sprintf("rules: no class uses relic type %s (item %d)", item.Type, item.ID))
	}
	return mask
}

// equipRule builds an Unequippable rule whose allowed set is a precomputed mask.
func equipRule(name, reason string, applies func(*models.Item) bool, mask func(*models.Item) specs.Set) *SimpleRule {
	return &SimpleRule{
		RuleName: name,
		Applies:  applies,
		Scope:    specs.All,
		Allowed: func(item *models.Item, spec specs.Specialization) bool {
			return mask(item).Has(spec)
		},
		DisallowLevel:  models.Unequippable,
		DisallowReason: reason,
	}
}

// EquipRules returns the hard game-mechanical constraints.
func EquipRules() []Rule {
	return []Rule{
		equipRule("dual-wield", ReasonDualWield,
			func(item *models.Item) bool {
				return item.Slot == models.SlotOffHand && item.IsWeapon()
			},
			func(*models.Item) specs.Set { return specs.DualWielders },
		),
		equipRule("weapon-proficiency", ReasonWeaponType,
			func(item *models.Item) bool { return item.IsWeapon() },
			weaponMask,
		),
		equipRule("armor-proficiency", ReasonArmorType,
			func(item *models.Item) bool {
				// Cloaks are cloth for every class.
				return item.Type.IsArmorWeight() && item.Slot != models.SlotBack
			},
			armorMask,
		),
		equipRule("shield", ReasonShield,
			func(item *models.Item) bool { return item.Type == models.TypeShield },
			func(*models.Item) specs.Set { return masks.shield },
		),
		equipRule("relic-type", ReasonRelicType,
			func(item *models.Item) bool { return item.Type.IsRelic() },
			relicMask,
		),
		equipRule("class-restriction", ReasonClassRestricted,
			func(item *models.Item) bool { return item.UsableClasses != 0 },
			func(item *models.Item) specs.Set { return specs.FromClassMask(item.UsableClasses) },
		),
	}
}
