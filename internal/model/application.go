package model

import "time"

// ApplicationKind distinguishes fixer and seller onboarding applications.
type ApplicationKind string

const (
	ApplicationFixer  ApplicationKind = "fixer"
	ApplicationSeller ApplicationKind = "seller"
)

// ApplicationStatus is the review state of an application. Any status may follow any other.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is a known review state.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// Application holds the free-form fields collected by a fixer or seller onboarding wizard.
type Application struct {
	ID          string            `json:"id"`
	Kind        ApplicationKind   `json:"kind"`
	Fields      map[string]string `json:"fields"`
	Documents   []string          `json:"documents,omitempty"`
	Status      ApplicationStatus `json:"status"`
	SubmittedAt time.Time         `json:"submittedAt"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
}

func (a *Application) EntityID() string   { return a.ID }
func (a *Application) AssignID(id string) { a.ID = id }
