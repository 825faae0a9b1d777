// Package engine runs the rule set against items.
//
// Determinations are grouped per item by (reason, level) into restriction candidates
// whose specialization set is the union of the grouped determinations. Grouping is
// independent of rule order. A panicking rule is reported as a *RuleFault and aborts
// a catalog pass before anything is handed to the reconciler.
//
// The query helpers (AllowedSpecs, DisallowedReasons, Determinations) are side-effect
// free and can be used outside a reconciliation pass.
package engine
