package domain

import "time"

// CustomerProfile is a read-only snapshot of a commerce customer, fetched per
// request and discarded after the description is built.
type CustomerProfile struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// FullName joins the non-empty name parts.
func (p CustomerProfile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// OrderRecord is a read-only snapshot of one commerce order.
type OrderRecord struct {
	ID        string
	Number    string
	Total     string
	Currency  string
	Status    string
	CreatedAt time.Time
}
