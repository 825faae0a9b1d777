// Package models defines the data shapes shared by the restriction engine:
// item stat records, verdict levels, per-specialization determinations and
// persisted restrictions.
//
// Item and Restriction are GORM models. Enumerations (InventorySlot, ItemType,
// Level) are stored as integers and encoded as names in JSON.
package models
