package probe

// HTTP status code constants.
const (
	StatusOK        = 200
	StatusNoContent = 204
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// unknownSitePrefix prefixes the random site name used for the unknown-site checks.
const unknownSitePrefix = "probe-unknown-"
