package model

// DayEntry is a ledger record enriched with read-time derivations for display.
type DayEntry struct {
	DailyBalance
	Weekday string  `json:"weekday"`
	Capped  float64 `json:"capped"` // contribution after the variance cap
	Over    bool    `json:"over"`   // raw variance exceeded the cap
	IsToday bool    `json:"isToday"`
}

// BankSnapshot is the full read model of the bank at one instant. Everything
// here is recomputed from the ledger and cycle state; nothing is stored.
type BankSnapshot struct {
	Date             string     `json:"date"` // the "today" the snapshot was computed for
	CycleStart       string     `json:"cycleStart"`
	DayIndex         int        `json:"dayIndex"`
	Confirmed        bool       `json:"confirmed"`
	FirstTimeSetup   bool       `json:"firstTimeSetup"`
	DailyTarget      float64    `json:"dailyTarget"`
	TotalBalance     float64    `json:"totalBalance"`
	CappedBalance    float64    `json:"cappedBalance"`
	MaxCredit        float64    `json:"maxCredit"`
	CanHavePlaisir   bool       `json:"canHavePlaisir"`
	DaysUntilPlaisir int        `json:"daysUntilPlaisir"`
	DaysUntilNewWeek int        `json:"daysUntilNewWeek"`
	DaysOverLimit    int        `json:"daysOverLimit"`
	TodayConsumed    float64    `json:"todayConsumed"`
	TodayTarget      float64    `json:"todayTarget"`
	Days             []DayEntry `json:"days"` // sorted by date, oldest first
}

// CycleArchive summarizes a completed cycle at the moment it rolled over.
type CycleArchive struct {
	ID            int64   `json:"id"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"` // last date of the window, start + 6
	DaysLogged    int     `json:"daysLogged"`
	TotalBalance  float64 `json:"totalBalance"`
	CappedBalance float64 `json:"cappedBalance"`
	DaysOverLimit int     `json:"daysOverLimit"`
	ArchivedAt    string  `json:"archivedAt"`
}
