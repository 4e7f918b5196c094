package dto

// DepartmentRequest is the create and full-replace payload for departments.
type DepartmentRequest struct {
	Name            string `json:"DepartmentName" validate:"required,max=150"`
	Code            string `json:"DepartmentCode" validate:"max=20"`
	Head            string `json:"Head"`
	Description     string `json:"Description"`
	EstablishedYear *int   `json:"EstablishedYear" validate:"omitempty,gte=1800,lte=2100"`
	Building        string `json:"Building"`
	Phone           string `json:"Phone"`
	Email           string `json:"Email" validate:"omitempty,email"`
}

// CourseRequest is the create and full-replace payload for courses.
type CourseRequest struct {
	Code          string `json:"CourseCode" validate:"max=20"`
	Name          string `json:"CourseName" validate:"required,max=200"`
	Description   string `json:"Description"`
	Credits       *int   `json:"Credits" validate:"omitempty,gte=0,lte=30"`
	Prerequisites string `json:"Prerequisites"`
	DepartmentID  *int64 `json:"DepartmentId"`
	Duration      string `json:"Duration"`
	Status        string `json:"Status" validate:"omitempty,oneof=Active Inactive"`
}

// TeacherRequest is the create and full-replace payload for teachers.
type TeacherRequest struct {
	EmployeeID     string   `json:"EmployeeId" form:"EmployeeId" validate:"required,max=50"`
	FirstName      string   `json:"FirstName" form:"FirstName" validate:"required,max=100"`
	LastName       string   `json:"LastName" form:"LastName" validate:"required,max=100"`
	Email          string   `json:"Email" form:"Email" validate:"required,email"`
	Phone          string   `json:"Phone" form:"Phone"`
	DateOfBirth    string   `json:"DateOfBirth" form:"DateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	HireDate       string   `json:"HireDate" form:"HireDate" validate:"omitempty,datetime=2006-01-02"`
	Qualification  string   `json:"Qualification" form:"Qualification"`
	Specialization string   `json:"Specialization" form:"Specialization"`
	DepartmentID   *int64   `json:"DepartmentId" form:"DepartmentId"`
	Position       string   `json:"Position" form:"Position"`
	Salary         *float64 `json:"Salary" form:"Salary" validate:"omitempty,gte=0"`
	Status         string   `json:"Status" form:"Status" validate:"omitempty,oneof=Active Inactive"`
	ProfilePicture string   `json:"-" form:"-"`
}
