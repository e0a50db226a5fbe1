package model

// Transaction is a single booked ticket purchase.
type Transaction struct {
	MovieID       string  `json:"movie_id"`
	TransactionID string  `json:"transaction_id,omitempty"`
	TotalAmount   float64 `json:"total_amount,omitempty"`
	CardLastFour  string  `json:"card_last_four,omitempty"`
	PaymentStatus string  `json:"payment_status"`
	Timestamp     int64   `json:"timestamp"`
}

// Filtered strips financial detail from a transaction. Booking listings
// never expose the payment instrument or amounts.
func (t Transaction) Filtered() Transaction {
	return Transaction{
		MovieID:       t.MovieID,
		PaymentStatus: t.PaymentStatus,
		Timestamp:     t.Timestamp,
	}
}

// BookingDays holds one user's transactions grouped by date.
// Within a date the original booking order is preserved.
type BookingDays map[string][]Transaction

// Filtered applies Transaction.Filtered to every entry.
func (d BookingDays) Filtered() BookingDays {
	out := make(BookingDays, len(d))
	for date, transactions := range d {
		filtered := make([]Transaction, len(transactions))
		for i, t := range transactions {
			filtered[i] = t.Filtered()
		}
		out[date] = filtered
	}
	return out
}

// EnrichedBooking joins one booking transaction with its movie record.
// It exists only for the lifetime of a user-bookings aggregation response.
type EnrichedBooking struct {
	Title         string  `json:"title"`
	Rating        float64 `json:"rating"`
	URI           string  `json:"uri"`
	TransactionID string  `json:"transaction_id"`
	TotalAmount   float64 `json:"total_amount"`
	CardLastFour  string  `json:"card_last_four"`
	PaymentStatus string  `json:"payment_status"`
}
