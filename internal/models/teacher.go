package models

import "time"

// Teacher is a member of teaching staff.
type Teacher struct {
	ID             int64      `db:"id" json:"TeacherId"`
	EmployeeID     string     `db:"employee_id" json:"EmployeeId"`
	FirstName      string     `db:"first_name" json:"FirstName"`
	LastName       string     `db:"last_name" json:"LastName"`
	Email          string     `db:"email" json:"Email"`
	Phone          string     `db:"phone" json:"Phone"`
	DateOfBirth    *time.Time `db:"date_of_birth" json:"DateOfBirth"`
	HireDate       *time.Time `db:"hire_date" json:"HireDate"`
	Qualification  string     `db:"qualification" json:"Qualification"`
	Specialization string     `db:"specialization" json:"Specialization"`
	DepartmentID   *int64     `db:"department_id" json:"DepartmentId"`
	Position       string     `db:"position" json:"Position"`
	Salary         *float64   `db:"salary" json:"Salary"`
	Status         string     `db:"status" json:"Status"`
	ProfilePicture *string    `db:"profile_picture" json:"ProfilePicture"`
	CreatedAt      time.Time  `db:"created_at" json:"CreatedAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"UpdatedAt"`
}

// TeacherDetail adds the joined department name.
type TeacherDetail struct {
	Teacher
	DepartmentName *string `db:"department_name" json:"DepartmentName"`
}

// TeacherFilter narrows teacher listings.
type TeacherFilter struct {
	Status string
	ListParams
}
