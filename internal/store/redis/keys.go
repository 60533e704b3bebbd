package redis

const (
	// KeyVisits is the hash of visit counters, field = entry URL
	KeyVisits = "sitehub:visits"
	// KeyLastVisit is the hash of last visit unix timestamps, field = entry URL
	KeyLastVisit = "sitehub:visits:last"
)

// VisitsKey returns the key of the visit counter hash
func VisitsKey() string {
	return KeyVisits
}

// LastVisitKey returns the key of the last-visit hash
func LastVisitKey() string {
	return KeyLastVisit
}
