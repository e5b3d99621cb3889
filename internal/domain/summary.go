package domain

// CategoryTotal is the planned spend of one item category.
type CategoryTotal struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
}

// DayTotal is the planned spend of one trip day.
type DayTotal struct {
	DayIndex int     `json:"dayIndex"`
	Amount   float64 `json:"amount"`
}

// Summary is the budget overview of a trip. Planned figures come from item
// costs; Spent comes from the expense ledger. The two are never reconciled.
type Summary struct {
	Budget          float64         `json:"budget"`
	Planned         float64         `json:"planned"`
	Spent           float64         `json:"spent"`
	BudgetUsedPct   float64         `json:"budgetUsedPct"` // planned / budget, capped at 100
	ByCategory      []CategoryTotal `json:"byCategory"`
	ByDay           []DayTotal      `json:"byDay"`
	Bookings        []ItineraryItem `json:"bookings"` // items carrying a booking link
	ExpenseCount    int             `json:"expenseCount"`
	ItemCount       int             `json:"itemCount"`
	PendingPlanSize int             `json:"pendingPlanSize"`
}
