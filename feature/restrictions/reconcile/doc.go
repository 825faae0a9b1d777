// Package reconcile keeps automated restriction records in sync with engine candidates.
//
// The workflow mirrors a plan/apply split:
//
//	plan := reconcile.BuildPlan(persisted, candidates, opts)
//	executed, err := reconcile.ApplyPlan(ctx, store, plan, opts)
//
// Building a plan never mutates anything. Applying it hands every create, update and
// delete to the Store in a single Commit, so a failed run leaves the persisted set as
// it was. Running the same candidates twice produces an empty second plan.
//
// Two pairing modes exist. MatchReason (the default) pairs a candidate with the
// automated record of the same item and reason and updates it in place. MatchExact also
// requires the level and specialization set to match, so a change is planned as a
// delete followed by a create.
package reconcile
