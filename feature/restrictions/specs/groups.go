package specs

import "strings"

// Class groups.
const (
	Druid       = Set(1<<BalanceDruid | 1<<BearDruid | 1<<CatDruid | 1<<RestoDruid)
	Hunter      = Set(1<<BeastMasteryHunter | 1<<MarksmanshipHunter | 1<<SurvivalHunter)
	Mage        = Set(1<<ArcaneMage | 1<<FireMage | 1<<FrostMage)
	Paladin     = Set(1<<HolyPaladin | 1<<ProtPaladin | 1<<RetPaladin)
	Priest      = Set(1<<DiscPriest | 1<<HolyPriest | 1<<ShadowPriest)
	Rogue       = Set(1<<AssassinationRogue | 1<<CombatRogue | 1<<SubtletyRogue)
	Shaman      = Set(1<<EleShaman | 1<<EnhanceShaman | 1<<RestoShaman)
	Warlock     = Set(1<<AfflictionWarlock | 1<<DemoWarlock | 1<<DestroWarlock)
	Warrior     = Set(1<<ArmsWarrior | 1<<FuryWarrior | 1<<ProtWarrior)
	DeathKnight = Set(1<<TankDeathKnight | 1<<FrostDeathKnight | 1<<UnholyDeathKnight)

	All = Druid | Hunter | Mage | Paladin | Priest | Rogue | Shaman | Warlock | Warrior | DeathKnight
)

// Role groups.
const (
	Tank   = Set(1<<BearDruid | 1<<ProtPaladin | 1<<ProtWarrior | 1<<TankDeathKnight)
	Healer = Set(1<<RestoDruid | 1<<HolyPaladin | 1<<DiscPriest | 1<<HolyPriest | 1<<RestoShaman)

	MeleeDps = Set(1<<CatDruid|1<<RetPaladin|1<<EnhanceShaman|1<<ArmsWarrior|1<<FuryWarrior|
		1<<FrostDeathKnight|1<<UnholyDeathKnight) | Rogue
	RangedPhysicalDps = Hunter
	PhysicalDps       = MeleeDps | RangedPhysicalDps
	CasterDps         = Set(1<<BalanceDruid|1<<ShadowPriest|1<<EleShaman) | Mage | Warlock
	Dps               = PhysicalDps | CasterDps

	// Caster covers every role that scales with spell power.
	Caster = CasterDps | Healer
	// Physical covers every role that scales with attack power or weapon damage.
	Physical = PhysicalDps | Tank
)

// Resource and mechanic groups.
const (
	NoMana    = Rogue | Warrior | DeathKnight
	ManaUsers = All &^ NoMana

	DualWielders = Hunter | Rogue | Warrior | DeathKnight | Set(1<<EnhanceShaman)
	ShieldUsers  = Warrior | Paladin | Shaman
	ParryTanks   = Set(1<<ProtPaladin | 1<<ProtWarrior | 1<<TankDeathKnight)
	BlockTanks   = Set(1<<ProtPaladin | 1<<ProtWarrior)
)

var groupNames = map[string]Set{
	"all":               All,
	"druid":             Druid,
	"hunter":            Hunter,
	"mage":              Mage,
	"paladin":           Paladin,
	"priest":            Priest,
	"rogue":             Rogue,
	"shaman":            Shaman,
	"warlock":           Warlock,
	"warrior":           Warrior,
	"deathknight":       DeathKnight,
	"tank":              Tank,
	"healer":            Healer,
	"meleedps":          MeleeDps,
	"rangedphysicaldps": RangedPhysicalDps,
	"physicaldps":       PhysicalDps,
	"casterdps":         CasterDps,
	"dps":               Dps,
	"caster":            Caster,
	"physical":          Physical,
}

// Group returns a named group set.
func Group(name string) (Set, bool) {
	s, ok := groupNames[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}
