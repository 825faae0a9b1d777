// Package restrictions wires the restriction engine into the service.
//
// The Service evaluates the item catalog with the rule registry and reconciles the
// result with the stored restrictions in one commit. Runs are serialized per process:
// a run requested while another is active fails with ErrRunInProgress.
//
// # HTTP
//
//	GET  /restrictions/items/:id                  every determination for an item
//	GET  /restrictions/items/:id/specs            allowed specializations
//	GET  /restrictions/items/:id/reasons?spec=    why a specialization is refused
//	GET  /restrictions/items/:id/persisted        stored restrictions
//	POST /restrictions/items/:id/manual           add a manual restriction
//	POST /restrictions/records/:rid/promote       hand a record over to manual curation
//	POST /restrictions/reconcile?dry_run=         run a reconciliation
//
// The Scheduler triggers reconciliations from a cron expression.
package restrictions
