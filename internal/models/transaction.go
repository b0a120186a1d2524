package models

import "time"

// Order is what an execute step placed (or simulated on dry run).
type Order struct {
	ID     string
	InstID string
	Side   Signal
	Amount float64
	Price  float64
	DryRun bool
}

// Transaction is one row of the trade diary.
type Transaction struct {
	ID        string
	Symbol    string
	Signal    Signal
	OrderID   string
	Price     float64
	Amount    float64
	DryRun    bool
	CreatedAt time.Time
}
