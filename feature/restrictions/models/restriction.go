package models

import (
	"fmt"
	"strings"
	"time"

	"loot-restrictions/feature/restrictions/specs"
)

// Level is the severity of a verdict. Levels are ordered for display only; they are
// never merged across different reasons.
type Level uint8

const (
	Allowed Level = iota
	ManualReview
	Disallowed
	Unequippable
)

var levelNames = [...]string{
	Allowed:      "Allowed",
	ManualReview: "ManualReview",
	Disallowed:   "Disallowed",
	Unequippable: "Unequippable",
}

func (l Level) String() string {
	if int(l) >= len(levelNames) {
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
	return levelNames[l]
}

func (l Level) MarshalText() ([]byte, error) {
	if int(l) >= len(levelNames) {
		return nil, fmt.Errorf("invalid level %d", uint8(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(value string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, strings.TrimSpace(value)) {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", value)
}

// Determination is one rule's verdict for one item and one specialization.
type Determination struct {
	Spec   specs.Specialization `json:"spec"`
	Level  Level                `json:"level"`
	Reason string               `json:"reason"`
	Rule   string               `json:"rule"`
}

// Restriction is a persisted, reason-grouped verdict covering one or more specializations.
type Restriction struct {
	ID              uint      `gorm:"primaryKey;column:id" json:"id"`
	ItemID          uint32    `gorm:"column:item_id;index;not null" json:"item_id"`
	Specializations specs.Set `gorm:"column:specializations;not null" json:"specializations"`
	Level           Level     `gorm:"column:level;not null" json:"level"`
	Reason          string    `gorm:"column:reason;type:varchar(256);not null" json:"reason"`
	Automated       bool      `gorm:"column:automated;not null" json:"automated"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Restriction) TableName() string {
	return "item_restrictions"
}

// RestrictionKey identifies the reason a restriction exists for an item.
type RestrictionKey struct {
	ItemID uint32
	Reason string
}

func (r Restriction) Key() RestrictionKey {
	return RestrictionKey{ItemID: r.ItemID, Reason: r.Reason}
}
