package models

import "time"

// Registration represents one student's registration for an event. The
// store enforces uniqueness on (event_id, student_email).
type Registration struct {
	ID           int64     `db:"id" json:"id"`
	EventID      int64     `db:"event_id" json:"event_id"`
	StudentName  string    `db:"student_name" json:"student_name"`
	StudentEmail string    `db:"student_email" json:"student_email"`
	StudentClass string    `db:"student_class" json:"student_class"`
	StudentDept  string    `db:"student_dept" json:"student_dept"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// EventRegCount mirrors one row of the event_reg_counts aggregate view.
type EventRegCount struct {
	EventID  int64  `db:"event_id" json:"event_id"`
	Title    string `db:"title" json:"title"`
	RegCount int    `db:"reg_count" json:"reg_count"`
}
