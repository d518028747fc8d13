package domain

import "time"

type AcademyStatus string

const (
	AcademyStatusActive   AcademyStatus = "ACTIVE"
	AcademyStatusInactive AcademyStatus = "INACTIVE"
)

type Academy struct {
	ID        int32         `json:"id"`
	Name      string        `json:"name"`
	Status    AcademyStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	Admins    []User        `json:"admins,omitempty"` // Populated when needed
}

type Batch struct {
	ID              int32     `json:"id"`
	BatchCode       string    `json:"batch_code"`
	AcademyID       int32     `json:"academy_id"`
	StudentCapacity int32     `json:"student_capacity"`
	WarningCutoff   int32     `json:"warning_cutoff"`
	CreatedAt       time.Time `json:"created_at"`
	Coaches         []User    `json:"coaches,omitempty"`
	Students        []User    `json:"students,omitempty"`
}
