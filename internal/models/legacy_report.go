package models

// ReportRow is a two-slot snapshot from the students_report table.
type ReportRow struct {
	StudentID   int64  `db:"student_id" json:"StudentId"`
	StudentName string `db:"student_name" json:"StudentName"`
	Course1     string `db:"course1" json:"Course1"`
	Grade1      string `db:"grade1" json:"Grade1"`
	Course2     string `db:"course2" json:"Course2"`
	Grade2      string `db:"grade2" json:"Grade2"`
	Department  string `db:"department" json:"Department"`
}

// ReportUpdateRow holds one course/grade from the students_report_update table.
type ReportUpdateRow struct {
	ID          int64  `db:"id" json:"id"`
	StudentID   int64  `db:"student_id" json:"StudentId"`
	StudentName string `db:"student_name" json:"StudentName"`
	Course      string `db:"course" json:"Course"`
	Grade       string `db:"grade" json:"Grade"`
	Department  string `db:"department" json:"Department"`
}
