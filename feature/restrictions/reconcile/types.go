package reconcile

import (
	"context"
	"fmt"
	"strings"

	"loot-restrictions/feature/restrictions/models"
)

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionCreate inserts a new automated restriction.
	ActionCreate ActionType = "create"
	// ActionUpdate rewrites the specializations or level of an automated restriction.
	ActionUpdate ActionType = "update"
	// ActionDelete removes an automated restriction.
	ActionDelete ActionType = "delete"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Restriction is the record to write. For updates it carries the persisted ID with the
	// new values; for deletes it is the persisted record.
	Restriction models.Restriction `json:"restriction"`

	// Previous holds the persisted values replaced by an update.
	Previous *models.Restriction `json:"previous,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Plan contains the planned actions of one reconciliation.
type Plan struct {
	// Actions contains planned mutation operations in apply order.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a plan.
type Summary struct {
	// Candidates is the number of candidates computed by the engine.
	Candidates int `json:"candidates"`

	// Persisted is the number of restrictions read from the store.
	Persisted int `json:"persisted"`

	// Manual counts hand-curated restrictions, which are never touched.
	Manual int `json:"manual"`

	// Suppressed counts candidates dropped because a manual restriction owns the reason.
	Suppressed int `json:"suppressed"`

	// Unchanged counts candidates that already match a persisted restriction.
	Unchanged int `json:"unchanged"`

	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

// Empty reports whether the plan mutates nothing.
func (p *Plan) Empty() bool {
	return len(p.Actions) == 0
}

// MatchMode selects how candidates are paired with persisted restrictions.
type MatchMode string

const (
	// MatchReason pairs on (item, reason). Level or specialization changes become updates.
	MatchReason MatchMode = "reason"
	// MatchExact pairs on (item, reason, level, specializations). Any change becomes a
	// delete of the old record and a create of the new one.
	MatchExact MatchMode = "exact"
)

// ParseMatchMode parses a mode name. The empty string selects MatchReason.
func ParseMatchMode(value string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", MatchReason:
		return MatchReason, nil
	case MatchExact:
		return MatchExact, nil
	default:
		return "", fmt.Errorf("unknown match mode %q", value)
	}
}

// Options controls reconcile behavior.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates the caller has confirmed the mutations.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool

	// Match selects the pairing key. The zero value is MatchReason.
	Match MatchMode
}

// Changes is the flattened mutation set handed to a Store in one commit.
type Changes struct {
	Create []models.Restriction
	Update []models.Restriction
	Delete []uint
}

// Len returns the number of mutations.
func (c Changes) Len() int {
	return len(c.Create) + len(c.Update) + len(c.Delete)
}

// Changes flattens the plan's actions.
func (p *Plan) Changes() Changes {
	var c Changes
	for _, a := range p.Actions {
		switch a.Type {
		case ActionCreate:
			c.Create = append(c.Create, a.Restriction)
		case ActionUpdate:
			c.Update = append(c.Update, a.Restriction)
		case ActionDelete:
			c.Delete = append(c.Delete, a.Restriction.ID)
		}
	}
	return c
}

// Store is the persisted restriction set.
type Store interface {
	// ListRestrictions returns every persisted restriction, manual and automated.
	ListRestrictions(ctx context.Context) ([]models.Restriction, error)

	// Commit applies all changes atomically. Either every change is visible afterwards or none is.
	Commit(ctx context.Context, changes Changes) error
}
