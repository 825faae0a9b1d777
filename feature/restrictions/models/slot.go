package models

import (
	"fmt"
	"strings"
)

// InventorySlot is the body location an item is equipped to.
type InventorySlot uint8

const (
	SlotNone InventorySlot = iota
	SlotHead
	SlotNeck
	SlotShoulder
	SlotBack
	SlotChest
	SlotWrist
	SlotHands
	SlotWaist
	SlotLegs
	SlotFeet
	SlotFinger
	SlotTrinket
	SlotOneHand
	SlotMainHand
	SlotOffHand
	SlotTwoHand
	SlotRanged
	SlotRelic

	slotCount
)

var slotNames = [slotCount]string{
	SlotNone:     "None",
	SlotHead:     "Head",
	SlotNeck:     "Neck",
	SlotShoulder: "Shoulder",
	SlotBack:     "Back",
	SlotChest:    "Chest",
	SlotWrist:    "Wrist",
	SlotHands:    "Hands",
	SlotWaist:    "Waist",
	SlotLegs:     "Legs",
	SlotFeet:     "Feet",
	SlotFinger:   "Finger",
	SlotTrinket:  "Trinket",
	SlotOneHand:  "OneHand",
	SlotMainHand: "MainHand",
	SlotOffHand:  "OffHand",
	SlotTwoHand:  "TwoHand",
	SlotRanged:   "Ranged",
	SlotRelic:    "Relic",
}

func (s InventorySlot) String() string {
	if s >= slotCount {
		return fmt.Sprintf("InventorySlot(%d)", uint8(s))
	}
	return slotNames[s]
}

func (s InventorySlot) MarshalText() ([]byte, error) {
	if s >= slotCount {
		return nil, fmt.Errorf("invalid inventory slot %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *InventorySlot) UnmarshalText(text []byte) error {
	for i, name := range slotNames {
		if strings.EqualFold(name, string(text)) {
			*s = InventorySlot(i)
			return nil
		}
	}
	return fmt.Errorf("unknown inventory slot %q", string(text))
}

// ItemType is the weapon or armor sub-category of an item.
type ItemType uint8

const (
	TypeMiscellaneous ItemType = iota
	TypeCloth
	TypeLeather
	TypeMail
	TypePlate
	TypeShield
	TypeAxe
	TypeMace
	TypeSword
	TypeDagger
	TypeFistWeapon
	TypePolearm
	TypeStaff
	TypeBow
	TypeCrossbow
	TypeGun
	TypeThrown
	TypeWand
	TypeIdol
	TypeLibram
	TypeTotem
	TypeSigil

	typeCount
)

var typeNames = [typeCount]string{
	TypeMiscellaneous: "Miscellaneous",
	TypeCloth:         "Cloth",
	TypeLeather:       "Leather",
	TypeMail:          "Mail",
	TypePlate:         "Plate",
	TypeShield:        "Shield",
	TypeAxe:           "Axe",
	TypeMace:          "Mace",
	TypeSword:         "Sword",
	TypeDagger:        "Dagger",
	TypeFistWeapon:    "FistWeapon",
	TypePolearm:       "Polearm",
	TypeStaff:         "Staff",
	TypeBow:           "Bow",
	TypeCrossbow:      "Crossbow",
	TypeGun:           "Gun",
	TypeThrown:        "Thrown",
	TypeWand:          "Wand",
	TypeIdol:          "Idol",
	TypeLibram:        "Libram",
	TypeTotem:         "Totem",
	TypeSigil:         "Sigil",
}

func (t ItemType) String() string {
	if t >= typeCount {
		return fmt.Sprintf("ItemType(%d)", uint8(t))
	}
	return typeNames[t]
}

func (t ItemType) MarshalText() ([]byte, error) {
	if t >= typeCount {
		return nil, fmt.Errorf("invalid item type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *ItemType) UnmarshalText(text []byte) error {
	for i, name := range typeNames {
		if strings.EqualFold(name, string(text)) {
			*t = ItemType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown item type %q", string(text))
}

// IsWeapon reports whether the type is a melee or ranged weapon.
func (t ItemType) IsWeapon() bool {
	return t >= TypeAxe && t <= TypeWand
}

// IsRanged reports whether the type occupies the ranged slot.
func (t ItemType) IsRanged() bool {
	return t >= TypeBow && t <= TypeWand
}

// IsArmorWeight reports whether the type is an armor class (cloth through plate).
func (t ItemType) IsArmorWeight() bool {
	return t >= TypeCloth && t <= TypePlate
}

func (t ItemType) IsRelic() bool {
	return t >= TypeIdol && t <= TypeSigil
}

// Types returns every known item type.
func Types() []ItemType {
	out := make([]ItemType, 0, typeCount)
	for t := ItemType(0); t < typeCount; t++ {
		out = append(out, t)
	}
	return out
}
