// Package specs models playable specializations as a closed enumeration and
// sets of them as a fixed-size bitset.
//
// A Specialization is exactly one role ("Protection Warrior"). A Set is any
// union of roles; the named groups (Tank, Healer, CasterDps, per-class sets)
// are Set constants and never stand in for a single specialization. Use
// Set.Single to recover the lone member of a one-element set.
//
// # Usage
//
//	if specs.Tank.Has(specs.ProtWarrior) {
//	    // ...
//	}
//	for sp := range specs.Healer.All() {
//	    fmt.Println(sp)
//	}
package specs
