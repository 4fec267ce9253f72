package models

// Service request statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// SourceWebsiteForm tags requests collected through the public contact form.
const SourceWebsiteForm = "website_form"

// ServiceCategories is the fixed set offered on the contact form.
var ServiceCategories = []string{
	"Manutenção de Computadores",
	"Redes e Wi-Fi",
	"Recuperação de Dados",
	"Sistemas Operacionais",
	"Outros",
}

func ValidServiceCategory(s string) bool {
	for _, c := range ServiceCategories {
		if c == s {
			return true
		}
	}
	return false
}

// ServiceRequest is a client ticket. Date/Timestamp carry the same instant
// twice: ISO string for display and range queries, epoch milliseconds for
// sort ordering.
type ServiceRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Service string `json:"service"`
	Message string `json:"message"`
	Status  string `json:"status"`

	Date      string `json:"date"`      // ISO 8601
	Timestamp int64  `json:"timestamp"` // epoch ms
	Source    string `json:"source"`
	IP        string `json:"ip,omitempty"`

	// Assignment happens at most once; first technician wins.
	AssignedTo     string `json:"assignedTo,omitempty"`
	AssignedToName string `json:"assignedToName,omitempty"`
	AssignedAt     string `json:"assignedAt,omitempty"`

	// Completion happens at most once. CompletedAt is set exactly when
	// Status is completed.
	CompletedBy     string `json:"completedBy,omitempty"`
	CompletedByName string `json:"completedByName,omitempty"`
	CompletedAt     string `json:"completedAt,omitempty"`
}

// RequestStats backs the admin dashboard counters.
type RequestStats struct {
	Total     int            `json:"total"`
	Pending   int            `json:"pending"`
	Completed int            `json:"completed"`
	ByService map[string]int `json:"byService"`
}

// MonthlyReport holds the aggregated numbers for one calendar month.
// Counts are computed over every matching row, never a listing page.
type MonthlyReport struct {
	Month        string         `json:"month"`
	Total        int            `json:"total"`
	Pending      int            `json:"pending"`
	Completed    int            `json:"completed"`
	ByService    map[string]int `json:"byService"`
	ByTechnician map[string]int `json:"byTechnician"`
}

// QueuedSubmission is a ServiceRequest parked in the local durable queue
// while the remote database is unreachable. LocalID never leaves the
// process boundary except as an idempotency key on the remote create.
type QueuedSubmission struct {
	ServiceRequest
	LocalID   string `json:"localId"`
	NeedsSync bool   `json:"needsSync"`
}
