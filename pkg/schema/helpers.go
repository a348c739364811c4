package schema

// FindCapabilitiesFor walks sysLike and its chain of parent system-likes,
// returning the first capability granted on componentLike. It is a caller
// convenience — per spec.md §9 the evaluator itself never needs to walk a
// parent chain, since every capability check it performs is scoped to the
// single system-like or association named by the statement under
// evaluation.
func FindCapabilitiesFor(reg Registry, sysLike, componentLike DeclID) (Capability, bool) {
	current := sysLike
	for {
		if cap, ok := reg.SystemCapabilities(current)[componentLike]; ok {
			return cap, true
		}
		parent, ok := reg.ParentSystem(current)
		if !ok {
			return 0, false
		}
		current = parent
	}
}

// HasAnyCapability reports whether sys has at least one system-wide or
// association-scoped capability recorded, used by the end-of-block hook to
// enforce spec.md §4.13's NO_CAPABILITIES rule for actions.
func HasAnyCapability(reg Registry, sys DeclID) bool {
	if len(reg.SystemCapabilities(sys)) > 0 {
		return true
	}
	for _, assoc := range reg.SystemAssocIDs(sys) {
		if len(reg.SystemAssocCapabilities(sys, assoc)) > 0 {
			return true
		}
	}
	return false
}
