package repository

type RequestFilter struct {
	Status     string
	Service    string
	AssignedTo string // technician uid; empty means no restriction
	Month      string // "2006-01" prefix match on the ISO date
	Limit      int
	Offset     int
}
