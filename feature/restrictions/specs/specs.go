package specs

import (
	"fmt"
	"strings"
)

// Specialization is a single playable role. The set of values is closed; add new
// roles before count and give them an entry in table.
type Specialization uint8

const (
	BalanceDruid Specialization = iota
	BearDruid
	CatDruid
	RestoDruid
	BeastMasteryHunter
	MarksmanshipHunter
	SurvivalHunter
	ArcaneMage
	FireMage
	FrostMage
	HolyPaladin
	ProtPaladin
	RetPaladin
	DiscPriest
	HolyPriest
	ShadowPriest
	AssassinationRogue
	CombatRogue
	SubtletyRogue
	EleShaman
	EnhanceShaman
	RestoShaman
	AfflictionWarlock
	DemoWarlock
	DestroWarlock
	ArmsWarrior
	FuryWarrior
	ProtWarrior
	TankDeathKnight
	FrostDeathKnight
	UnholyDeathKnight

	count
)

// Set must fit every specialization in a single uint64.
var _ [64 - count]struct{}

// Count is the number of distinct specializations.
const Count = int(count)

// Class is a playable class. The zero value is not a class.
type Class uint8

const (
	ClassDruid Class = iota + 1
	ClassHunter
	ClassMage
	ClassPaladin
	ClassPriest
	ClassRogue
	ClassShaman
	ClassWarlock
	ClassWarrior
	ClassDeathKnight
)

type info struct {
	class Class
	key   string
	name  string
}

var table = [count]info{
	BalanceDruid:       {ClassDruid, "BalanceDruid", "Balance Druid"},
	BearDruid:          {ClassDruid, "BearDruid", "Feral Druid (Bear)"},
	CatDruid:           {ClassDruid, "CatDruid", "Feral Druid (Cat)"},
	RestoDruid:         {ClassDruid, "RestoDruid", "Restoration Druid"},
	BeastMasteryHunter: {ClassHunter, "BeastMasteryHunter", "Beast Mastery Hunter"},
	MarksmanshipHunter: {ClassHunter, "MarksmanshipHunter", "Marksmanship Hunter"},
	SurvivalHunter:     {ClassHunter, "SurvivalHunter", "Survival Hunter"},
	ArcaneMage:         {ClassMage, "ArcaneMage", "Arcane Mage"},
	FireMage:           {ClassMage, "FireMage", "Fire Mage"},
	FrostMage:          {ClassMage, "FrostMage", "Frost Mage"},
	HolyPaladin:        {ClassPaladin, "HolyPaladin", "Holy Paladin"},
	ProtPaladin:        {ClassPaladin, "ProtPaladin", "Protection Paladin"},
	RetPaladin:         {ClassPaladin, "RetPaladin", "Retribution Paladin"},
	DiscPriest:         {ClassPriest, "DiscPriest", "Discipline Priest"},
	HolyPriest:         {ClassPriest, "HolyPriest", "Holy Priest"},
	ShadowPriest:       {ClassPriest, "ShadowPriest", "Shadow Priest"},
	AssassinationRogue: {ClassRogue, "AssassinationRogue", "Assassination Rogue"},
	CombatRogue:        {ClassRogue, "CombatRogue", "Combat Rogue"},
	SubtletyRogue:      {ClassRogue, "SubtletyRogue", "Subtlety Rogue"},
	EleShaman:          {ClassShaman, "EleShaman", "Elemental Shaman"},
	EnhanceShaman:      {ClassShaman, "EnhanceShaman", "Enhancement Shaman"},
	RestoShaman:        {ClassShaman, "RestoShaman", "Restoration Shaman"},
	AfflictionWarlock:  {ClassWarlock, "AfflictionWarlock", "Affliction Warlock"},
	DemoWarlock:        {ClassWarlock, "DemoWarlock", "Demonology Warlock"},
	DestroWarlock:      {ClassWarlock, "DestroWarlock", "Destruction Warlock"},
	ArmsWarrior:        {ClassWarrior, "ArmsWarrior", "Arms Warrior"},
	FuryWarrior:        {ClassWarrior, "FuryWarrior", "Fury Warrior"},
	ProtWarrior:        {ClassWarrior, "ProtWarrior", "Protection Warrior"},
	TankDeathKnight:    {ClassDeathKnight, "TankDeathKnight", "Tank Death Knight"},
	FrostDeathKnight:   {ClassDeathKnight, "FrostDeathKnight", "Frost Death Knight"},
	UnholyDeathKnight:  {ClassDeathKnight, "UnholyDeathKnight", "Unholy Death Knight"},
}

// Valid reports whether s is a known specialization.
func (s Specialization) Valid() bool {
	return s < count
}

// Set returns the set containing only s.
func (s Specialization) Set() Set {
	if !s.Valid() {
		return 0
	}
	return Set(1) << s
}

// Class returns the class the specialization belongs to.
func (s Specialization) Class() Class {
	if !s.Valid() {
		return 0
	}
	return table[s].class
}

// Key returns the stable identifier used in configuration, URLs and JSON.
func (s Specialization) Key() string {
	if !s.Valid() {
		return fmt.Sprintf("Specialization(%d)", uint8(s))
	}
	return table[s].key
}

// String returns the display name.
func (s Specialization) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Specialization(%d)", uint8(s))
	}
	return table[s].name
}

func (s Specialization) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid specialization %d", uint8(s))
	}
	return []byte(s.Key()), nil
}

func (s *Specialization) UnmarshalText(text []byte) error {
	v, err := ParseSpecialization(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSpecialization resolves a key ("ProtWarrior") or display name
// ("Protection Warrior"), case-insensitively.
func ParseSpecialization(value string) (Specialization, error) {
	v := strings.TrimSpace(value)
	for i := range table {
		if strings.EqualFold(table[i].key, v) || strings.EqualFold(table[i].name, v) {
			return Specialization(i), nil
		}
	}
	return 0, fmt.Errorf("unknown specialization %q", value)
}

// Specs returns every specialization of the class.
func (c Class) Specs() Set {
	var out Set
	for i := range table {
		if table[i].class == c {
			out |= Specialization(i).Set()
		}
	}
	return out
}

func (c Class) String() string {
	switch c {
	case ClassDruid:
		return "Druid"
	case ClassHunter:
		return "Hunter"
	case ClassMage:
		return "Mage"
	case ClassPaladin:
		return "Paladin"
	case ClassPriest:
		return "Priest"
	case ClassRogue:
		return "Rogue"
	case ClassShaman:
		return "Shaman"
	case ClassWarlock:
		return "Warlock"
	case ClassWarrior:
		return "Warrior"
	case ClassDeathKnight:
		return "Death Knight"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// classMaskBits maps the game database's class restriction bits to classes.
var classMaskBits = map[uint32]Class{
	1:    ClassWarrior,
	2:    ClassPaladin,
	4:    ClassHunter,
	8:    ClassRogue,
	16:   ClassPriest,
	32:   ClassDeathKnight,
	64:   ClassShaman,
	128:  ClassMage,
	256:  ClassWarlock,
	1024: ClassDruid,
}

// FromClassMask expands a class restriction bitmask into the specializations
// of those classes. A zero mask means "any class" and yields All.
// An unmapped bit is a data or mapping defect and panics.
func FromClassMask(mask uint32) Set {
	if mask == 0 {
		return All
	}
	var out Set
	for bit := uint32(1); bit != 0 && bit <= mask; bit <<= 1 {
		if mask&bit == 0 {
			continue
		}
		class, ok := classMaskBits[bit]
		if !ok {
			panic(fmt.Sprintf("specs: class restriction bit %d has no specialization group", bit))
		}
		out |= class.Specs()
	}
	return out
}

// ClassMask returns the game class restriction bit for c.
func (c Class) ClassMask() uint32 {
	for bit, class := range classMaskBits {
		if class == c {
			return bit
		}
	}
	return 0
}
