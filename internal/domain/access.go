package domain

// Capability is the access level a caller holds for one event.
type Capability int

const (
	// CapabilityDenied refuses both read and write.
	CapabilityDenied Capability = iota
	// CapabilityTokenHolder may read the event without its RSVP list and
	// create or update exactly one RSVP for themself.
	CapabilityTokenHolder
	// CapabilityOwner has full read and write access.
	CapabilityOwner
)

// ResolveCapability decides what the caller may do with the event.
// First match wins: creator identity beats a presented rsvp token, a
// matching token beats nothing. callerID may be empty (anonymous) and
// presentedToken may be empty (no token); the two are independent, so an
// authenticated non-owner without a token is still denied.
//
// The decision is a pure function of its inputs and is evaluated per
// request; it must never be cached across requests.
func ResolveCapability(callerID, presentedToken string, event *Event) Capability {
	if event == nil {
		return CapabilityDenied
	}
	if callerID != "" && callerID == event.CreatorID {
		return CapabilityOwner
	}
	if presentedToken != "" && presentedToken == event.RSVPToken {
		return CapabilityTokenHolder
	}
	return CapabilityDenied
}
