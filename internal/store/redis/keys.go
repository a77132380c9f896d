package redis

const (
	// KeyPrefix namespaces every key written by the gateway
	KeyPrefix = "bff:"
	// KeyLastSnapshot holds the most recent aggregate health report
	KeyLastSnapshot = KeyPrefix + "health:last"
)

// LastSnapshotKey returns the Redis key of the last health snapshot
func LastSnapshotKey() string {
	return KeyLastSnapshot
}
