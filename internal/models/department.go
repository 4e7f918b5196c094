package models

import "time"

// Department is an academic unit that students, teachers and courses point at.
type Department struct {
	ID              int64     `db:"id" json:"DepartmentId"`
	Name            string    `db:"name" json:"DepartmentName"`
	Code            *string   `db:"code" json:"DepartmentCode,omitempty"`
	Head            string    `db:"head" json:"Head"`
	Description     string    `db:"description" json:"Description"`
	EstablishedYear *int      `db:"established_year" json:"EstablishedYear,omitempty"`
	Building        string    `db:"building" json:"Building"`
	Phone           string    `db:"phone" json:"Phone"`
	Email           string    `db:"email" json:"Email"`
	CreatedAt       time.Time `db:"created_at" json:"CreatedAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"UpdatedAt"`
}

// DefaultDepartmentHead is recorded for departments created implicitly.
const DefaultDepartmentHead = "TBD"
