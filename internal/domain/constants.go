package domain

// Booking defaults
const (
	DefaultBookingDurationDays = 3
	MinBookingDurationDays     = 1
	MaxBookingDurationDays     = 365
	// MaxSlotSearchDays bounds the window of a single available-slots query
	MaxSlotSearchDays = 366
)

// Commission limits
const (
	MaxCommissionLevels = 3
	MoneyScale          = 2
)

// Dealer tree limits
const (
	DefaultSubtreeDepth = 10
	MaxSubtreeDepth     = 32
	MaxSubtreeNodes     = 10000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Roles passed by the gateway in X-User-Role
const (
	RoleAdmin = "admin"
)
