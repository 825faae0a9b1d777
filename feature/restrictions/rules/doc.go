// Package rules declares the classification rules applied to every item.
//
// A rule is a guard, a specialization scope and a per-specialization predicate. When the
// guard passes, every specialization in scope that the predicate rejects receives the
// rule's fixed level and reason. Three families exist:
//
//   - equip-ability rules reject specializations that cannot equip the item at all
//   - dead-stat rules reject specializations that waste a stat on the item
//   - item exceptions reject a curated scope for one item id
//
// Default returns the registry used in production.
package rules
