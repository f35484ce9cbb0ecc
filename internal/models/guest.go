package models

// Guest represents one invitee row in the guest store.
type Guest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Status     Status `json:"status"`
	LastSent   string `json:"last_sent,omitempty"`   // calendar date, 2006-01-02
	AnsweredAt string `json:"answered_at,omitempty"` // 2006-01-02 15:04
}

// Status is the RSVP decision recorded for a guest. The zero value means the
// guest has not answered yet.
type Status string

const (
	StatusEmpty   Status = ""
	StatusYes     Status = "YES"
	StatusNo      Status = "NO"
	StatusMaybe   Status = "MAYBE"
	StatusUnknown Status = "UNKNOWN"
)

// Pending reports whether the guest is still eligible for the next
// invitation round. YES and NO are terminal for sending purposes.
func (s Status) Pending() bool {
	switch s {
	case StatusEmpty, StatusMaybe, StatusUnknown:
		return true
	}
	return false
}
