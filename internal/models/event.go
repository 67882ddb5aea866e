package models

import "time"

// AudienceType defines whether an event targets the whole college or a
// single department.
type AudienceType string

const (
	AudienceCollege    AudienceType = "college"
	AudienceDepartment AudienceType = "department"
)

// Event represents a persisted event row. EventDate is nullable: events
// without a date are listed as upcoming until one is set. DeleteAt is a
// soft-delete horizon; once it passes, the event disappears from public
// listings while staying editable in the admin console.
type Event struct {
	ID               int64        `db:"id" json:"id"`
	Title            string       `db:"title" json:"title"`
	Description      string       `db:"description" json:"description"`
	EventDate        *time.Time   `db:"event_date" json:"event_date,omitempty"`
	Location         string       `db:"location" json:"location"`
	Fee              float64      `db:"fee" json:"fee"`
	ImageURL         *string      `db:"image_url" json:"image_url,omitempty"`
	ImagePath        *string      `db:"image_path" json:"image_path,omitempty"`
	RegistrationLink *string      `db:"registration_link" json:"registration_link,omitempty"`
	AudienceType     AudienceType `db:"audience_type" json:"audience_type"`
	TargetDepartment *string      `db:"target_department" json:"target_department,omitempty"`
	DeleteAt         *time.Time   `db:"delete_at" json:"delete_at,omitempty"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`
}

// SoftDeleted reports whether the event's delete horizon has passed.
func (e Event) SoftDeleted(now time.Time) bool {
	return e.DeleteAt != nil && !e.DeleteAt.After(now)
}

// Upcoming reports whether the event should sit in the upcoming rail.
// Events with no date count as upcoming.
func (e Event) Upcoming(now time.Time) bool {
	return e.EventDate == nil || !e.EventDate.Before(now)
}

// EventFilter captures admin-side listing criteria.
type EventFilter struct {
	Search string
}

// EventLite is the id/title projection used for lookup tables.
type EventLite struct {
	ID    int64  `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
}
