package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusDraft     ApplicationStatus = "draft"
	ApplicationStatusInReview  ApplicationStatus = "in review"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

type AttendeeCategory string

const (
	AttendeeCategoryMain      AttendeeCategory = "main"
	AttendeeCategoryCompanion AttendeeCategory = "companion"
	AttendeeCategorySpouse    AttendeeCategory = "spouse"
	AttendeeCategoryKid       AttendeeCategory = "kid"
)

// Attendee is one person covered by an application: the main applicant
// plus any companions, each carrying a check-in code for the door.
type Attendee struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Category    AttendeeCategory `json:"category"`
	Email       string           `json:"email,omitempty"`
	CheckInCode string           `json:"check_in_code,omitempty"`
}

// Application is an attendee application for one popup. It is owned by
// the server; the client only ever holds a cached copy of it.
type Application struct {
	ID           int64             `json:"id"`
	PopupID      int64             `json:"popup_city_id"`
	Status       ApplicationStatus `json:"status"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Email        string            `json:"email"`
	Telegram     string            `json:"telegram,omitempty"`
	Organization string            `json:"organization,omitempty"`
	Role         string            `json:"role,omitempty"`
	RedFlag      bool              `json:"red_flag"`
	Attendees    []Attendee        `json:"attendees,omitempty"`
	// CustomFields holds schema-defined answers keyed by field name.
	// Their kinds and labels come from the popup's ApplicationSchema.
	CustomFields map[string]any `json:"custom_fields,omitempty"`
	SubmittedAt  *time.Time     `json:"submitted_at,omitempty"`
	AcceptedAt   *time.Time     `json:"accepted_at,omitempty"`
}

// FullName returns the applicant's display name.
func (a *Application) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// IsReviewable reports whether a reviewer can still act on the application.
func (a *Application) IsReviewable() bool {
	return a.Status == ApplicationStatusInReview
}

// ApplicationPage is one page of a paginated application listing.
type ApplicationPage struct {
	Items []Application `json:"items"`
	Total int           `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

// DashboardStats is the per-popup status breakdown shown on the
// backoffice dashboard. Computed server-side, cached client-side.
type DashboardStats struct {
	PopupID   int64 `json:"popup_city_id"`
	Total     int   `json:"total"`
	Draft     int   `json:"draft"`
	InReview  int   `json:"in_review"`
	Accepted  int   `json:"accepted"`
	Rejected  int   `json:"rejected"`
	Withdrawn int   `json:"withdrawn"`
}
