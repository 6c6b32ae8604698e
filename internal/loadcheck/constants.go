package loadcheck

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	bandTolerance        = 1e-9
)

// HTTP status code constants.
const (
	StatusOK = 200
)
