package models

import "time"

// Winner represents a persisted award winner. EventTitle is joined in from
// the events table for display; it is not a column on winners.
type Winner struct {
	ID          int64      `db:"id" json:"id"`
	EventID     int64      `db:"event_id" json:"event_id"`
	WinnerName  string     `db:"winner_name" json:"winner_name"`
	WinnerClass string     `db:"winner_class" json:"winner_class"`
	WinnerDept  string     `db:"winner_dept" json:"winner_dept"`
	Position    string     `db:"position" json:"position"`
	ImageURL    *string    `db:"image_url" json:"image_url,omitempty"`
	ImagePath   *string    `db:"image_path" json:"image_path,omitempty"`
	DeleteAt    *time.Time `db:"delete_at" json:"delete_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	EventTitle  string     `db:"event_title" json:"event_title"`
}
