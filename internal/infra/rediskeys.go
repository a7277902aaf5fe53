package infra

const (
	// RedisNamespace isolates the project's keys and channels in a shared Redis.
	RedisNamespace = "netsec"
)

// Pub/Sub channels
const (
	// RedisChanSnapshots carries JSON-encoded domain.Snapshot values from the broadcaster.
	RedisChanSnapshots = RedisNamespace + ":telemetry:snapshots"
)

// RedisKeyBroadcasterLock is held by the instance currently publishing the feed.
const RedisKeyBroadcasterLock = RedisNamespace + ":lock:broadcaster"

