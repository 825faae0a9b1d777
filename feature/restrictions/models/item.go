package models

import "fmt"

// Item is a fully populated item stat record. The restriction engine only reads items.
type Item struct {
	ID            uint32        `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Name          string        `gorm:"column:name;type:varchar(120)" json:"name"`
	Slot          InventorySlot `gorm:"column:slot" json:"slot"`
	Type          ItemType      `gorm:"column:type" json:"type"`
	ItemLevel     int           `gorm:"column:item_level" json:"item_level"`
	UsableClasses uint32        `gorm:"column:usable_classes" json:"usable_classes,omitempty"`

	Strength  int `gorm:"column:strength" json:"strength,omitempty"`
	Agility   int `gorm:"column:agility" json:"agility,omitempty"`
	Stamina   int `gorm:"column:stamina" json:"stamina,omitempty"`
	Intellect int `gorm:"column:intellect" json:"intellect,omitempty"`
	Spirit    int `gorm:"column:spirit" json:"spirit,omitempty"`

	AttackPower       int `gorm:"column:attack_power" json:"attack_power,omitempty"`
	RangedAttackPower int `gorm:"column:ranged_attack_power" json:"ranged_attack_power,omitempty"`
	SpellPower        int `gorm:"column:spell_power" json:"spell_power,omitempty"`
	HealingPower      int `gorm:"column:healing_power" json:"healing_power,omitempty"`
	ManaPer5          int `gorm:"column:mana_per5" json:"mana_per5,omitempty"`

	HitRating        int `gorm:"column:hit_rating" json:"hit_rating,omitempty"`
	CritRating       int `gorm:"column:crit_rating" json:"crit_rating,omitempty"`
	HasteRating      int `gorm:"column:haste_rating" json:"haste_rating,omitempty"`
	ExpertiseRating  int `gorm:"column:expertise_rating" json:"expertise_rating,omitempty"`
	ArmorPenetration int `gorm:"column:armor_penetration" json:"armor_penetration,omitempty"`
	SpellPenetration int `gorm:"column:spell_penetration" json:"spell_penetration,omitempty"`

	Defense     int `gorm:"column:defense" json:"defense,omitempty"`
	Dodge       int `gorm:"column:dodge" json:"dodge,omitempty"`
	Parry       int `gorm:"column:parry" json:"parry,omitempty"`
	BlockRating int `gorm:"column:block_rating" json:"block_rating,omitempty"`
	BlockValue  int `gorm:"column:block_value" json:"block_value,omitempty"`
	Resilience  int `gorm:"column:resilience" json:"resilience,omitempty"`
	BonusArmor  int `gorm:"column:bonus_armor" json:"bonus_armor,omitempty"`

	// Weapon-only fields.
	MinDamage int `gorm:"column:min_damage" json:"min_damage,omitempty"`
	MaxDamage int `gorm:"column:max_damage" json:"max_damage,omitempty"`
	SpeedMs   int `gorm:"column:speed_ms" json:"speed_ms,omitempty"`

	HasOnUse   bool `gorm:"column:has_on_use" json:"has_on_use,omitempty"`
	HasProc    bool `gorm:"column:has_proc" json:"has_proc,omitempty"`
	HasSpecial bool `gorm:"column:has_special" json:"has_special,omitempty"`
}

func (Item) TableName() string {
	return "items"
}

// IsWeapon reports whether the item is a weapon (shields and off-hand frills are not).
func (i *Item) IsWeapon() bool {
	return i.Type.IsWeapon()
}

// HasEffect reports whether the item carries an effect the stat model cannot describe.
func (i *Item) HasEffect() bool {
	return i.HasOnUse || i.HasProc || i.HasSpecial
}

// StatField names a numeric field of an Item.
type StatField uint8

const (
	StatStrength StatField = iota + 1
	StatAgility
	StatStamina
	StatIntellect
	StatSpirit
	StatAttackPower
	StatRangedAttackPower
	StatSpellPower
	StatHealingPower
	StatManaPer5
	StatHitRating
	StatCritRating
	StatHasteRating
	StatExpertiseRating
	StatArmorPenetration
	StatSpellPenetration
	StatDefense
	StatDodge
	StatParry
	StatBlockRating
	StatBlockValue
	StatResilience
	StatBonusArmor
	StatMinDamage
	StatMaxDamage
	StatSpeed
)

// WeaponOnly reports whether the field is only meaningful for weapons.
func (f StatField) WeaponOnly() bool {
	return f == StatMinDamage || f == StatMaxDamage || f == StatSpeed
}

// Stat returns the value of a numeric field. Reading a weapon-only field from a
// non-weapon, or an unknown field, is a rule defect and panics.
func (i *Item) Stat(f StatField) int {
	if f.WeaponOnly() && !i.IsWeapon() {
		panic(fmt.Sprintf("models: stat %d is only defined for weapons, item %d is %s", f, i.ID, i.Type))
	}

	switch f {
	case StatStrength:
		return i.Strength
	case StatAgility:
		return i.Agility
	case StatStamina:
		return i.Stamina
	case StatIntellect:
		return i.Intellect
	case StatSpirit:
		return i.Spirit
	case StatAttackPower:
		return i.AttackPower
	case StatRangedAttackPower:
		return i.RangedAttackPower
	case StatSpellPower:
		return i.SpellPower
	case StatHealingPower:
		return i.HealingPower
	case StatManaPer5:
		return i.ManaPer5
	case StatHitRating:
		return i.HitRating
	case StatCritRating:
		return i.CritRating
	case StatHasteRating:
		return i.HasteRating
	case StatExpertiseRating:
		return i.ExpertiseRating
	case StatArmorPenetration:
		return i.ArmorPenetration
	case StatSpellPenetration:
		return i.SpellPenetration
	case StatDefense:
		return i.Defense
	case StatDodge:
		return i.Dodge
	case StatParry:
		return i.Parry
	case StatBlockRating:
		return i.BlockRating
	case StatBlockValue:
		return i.BlockValue
	case StatResilience:
		return i.Resilience
	case StatBonusArmor:
		return i.BonusArmor
	case StatMinDamage:
		return i.MinDamage
	case StatMaxDamage:
		return i.MaxDamage
	case StatSpeed:
		return i.SpeedMs
	default:
		panic(fmt.Sprintf("models: unknown stat field %d", f))
	}
}
