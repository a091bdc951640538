package repository

type TicketFilter struct {
	EmployeeID string // owner scoping; empty means all
	Status     string
	Priority   string
	Limit      int
	Offset     int
	Sort       string // created_at, updated_at, priority
	Order      string // asc|desc
}
