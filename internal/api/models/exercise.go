package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Exercise is a single logged workout owned by one user.
type Exercise struct {
	ID          string    `json:"id" validate:"required,uuid"`
	UserID      string    `json:"userId" validate:"required,uuid"`
	Description string    `json:"description" validate:"notblank"`
	Duration    int       `json:"duration"`
	Date        time.Time `json:"date" validate:"required"`
	CreatedAt   time.Time `json:"-"`
}

// RawValue holds a form or JSON field that may arrive as a string or a number.
type RawValue string

// UnmarshalJSON accepts JSON strings and numbers; null leaves the value empty.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RawValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = RawValue(n.String())
	return nil
}

// CreateExerciseRequest is the body of POST /api/users/:id/exercises.
type CreateExerciseRequest struct {
	Description string   `json:"description" form:"description"`
	Duration    RawValue `json:"duration" form:"duration"`
	Date        RawValue `json:"date" form:"date"`
}

// LogsQuery carries the optional query parameters of GET /api/users/:id/logs.
type LogsQuery struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Limit string `form:"limit"`
}

// ExerciseResponse is returned after logging an exercise. ID is the owning
// user's id.
type ExerciseResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntry is one exercise inside a LogsResponse.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogsResponse is the body of GET /api/users/:id/logs.
type LogsResponse struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"id"`
	Log      []LogEntry `json:"log"`
}
