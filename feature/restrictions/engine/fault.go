package engine

import (
	"fmt"
	"runtime/debug"
)

// RuleFault reports a rule that panicked while evaluating an item. It is fatal for a
// reconciliation pass: nothing computed in that pass may be committed.
type RuleFault struct {
	Rule   string
	ItemID uint32
	Value  any
	Stack  []byte
}

func (f *RuleFault) Error() string {
	return fmt.Sprintf("rule %q failed on item %d: %v", f.Rule, f.ItemID, f.Value)
}

// Unwrap exposes a panic value that was itself an error.
func (f *RuleFault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}

// recoverFault converts an in-flight panic into a *RuleFault stored in err.
func recoverFault(rule *string, itemID uint32, err *error) {
	if v := recover(); v != nil {
		*err = &RuleFault{Rule: *rule, ItemID: itemID, Value: v, Stack: debug.Stack()}
	}
}
