package domain

// Fixed legal domain set. Each name maps to one per-domain corpus and
// index artifact; GlobalDomain spans the whole combined corpus.
const (
	DomainIPC      = "ipc"
	DomainConsumer = "consumer"
	DomainCrPC     = "crpc"
	DomainFamily   = "family"
	DomainProperty = "property"
	DomainITAct    = "it_act"

	GlobalDomain = "global"
)

// Domains lists every per-domain corpus name in canonical search order.
// GlobalDomain is deliberately excluded: it is the fallback catch-all,
// not a primary search target.
func Domains() []string {
	return []string{
		DomainIPC,
		DomainConsumer,
		DomainCrPC,
		DomainFamily,
		DomainProperty,
		DomainITAct,
	}
}

// KnownDomain reports whether name is a registered per-domain corpus.
func KnownDomain(name string) bool {
	for _, d := range Domains() {
		if d == name {
			return true
		}
	}
	return false
}
