package connectivity

// Policy classifies a reported set of connection kinds as usable or not.
// A usable report is one that justifies starting deferred network work.
type Policy func(kinds []Kind) bool

// FirstKind classifies a report by its first element only: usable iff
// the head of the report is a network kind. Platform sources commonly
// report kinds in priority order with the primary transport first, and
// this policy trusts that ordering. Note the consequence: a report of
// [none, wifi] is NOT usable while [wifi, none] is. Use AnyKind when
// the source gives no ordering guarantee.
//
// This is the default policy of the retry queue.
func FirstKind(kinds []Kind) bool {
	if len(kinds) == 0 {
		return false
	}
	return kinds[0].IsNetwork()
}

// AnyKind classifies a report as usable if any element is a network
// kind, regardless of position.
func AnyKind(kinds []Kind) bool {
	for _, k := range kinds {
		if k.IsNetwork() {
			return true
		}
	}
	return false
}

// Online classifies a report as usable if it contains any kind other
// than None. Probe-based monitors can only vouch for reachability, not
// for the transport, so their reports (ethernet, other) would never
// satisfy the kind-based policies; Online is the policy to pair them
// with.
func Online(kinds []Kind) bool {
	for _, k := range kinds {
		if k != None {
			return true
		}
	}
	return false
}
