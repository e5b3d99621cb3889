package domain

// Expense is a payment made by one traveler on behalf of a subset of the group.
// Items and expenses are independent: an item's cost is descriptive and never
// turns into an expense.
type Expense struct {
	ID           string   `json:"id"`
	Amount       float64  `json:"amount"`
	Currency     string   `json:"currency"`
	Category     string   `json:"category"`
	PayerID      string   `json:"payerId"`
	SplitBetween []string `json:"splitBetween"`
	Description  string   `json:"description"`
	Date         string   `json:"date"` // "2006-01-02", may be empty
}

// Clone returns a copy of e that does not share SplitBetween.
func (e Expense) Clone() Expense {
	e.SplitBetween = append([]string(nil), e.SplitBetween...)
	return e
}

// Balance is a traveler's net position. A positive Balance means the group
// owes the traveler money; a negative one means the traveler owes the group.
type Balance struct {
	TravelerID string  `json:"travelerId"`
	Paid       float64 `json:"paid"`
	Owed       float64 `json:"owed"`
	Balance    float64 `json:"balance"`
}

// Transfer is one peer-to-peer payment of a settlement plan.
type Transfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}
