package lockout

// ScheduleOp is the transition the schedule reconciler must apply to a
// member's capability role.
type ScheduleOp int

const (
	OpNone   ScheduleOp = iota
	OpLock              // remove the role, mark lockedByBot
	OpUnlock            // restore the role, clear lockedByBot
)

// ScheduleAction implements the reconciler's transition table.
//
// The asymmetry is deliberate and is the core correctness property: the
// engine only restores a role when lockedByBot says it was the one that
// removed it. A role that is absent for any other reason (an admin revoked
// it manually) is left alone, and a role an admin re-granted during a window
// is only removed again on the next evaluation where shouldBeLocked still
// holds — never because lockedByBot was stale.
func ScheduleAction(shouldBeLocked, hasGrant, lockedByBot bool) ScheduleOp {
	switch {
	case shouldBeLocked && hasGrant:
		return OpLock
	case !shouldBeLocked && !hasGrant && lockedByBot:
		return OpUnlock
	default:
		return OpNone
	}
}
