package dto

// AjaxRequest is the action-dispatched body of the dashboard AJAX endpoint.
// Only the fields relevant to the requested action are read.
type AjaxRequest struct {
	Action string `json:"action" binding:"required"`

	ProgramID  int64 `json:"programid"`
	SubjectID  int64 `json:"subjectid"`
	CourseID   int64 `json:"courseid"`
	CohortID   int64 `json:"cohortid"`
	CategoryID int64 `json:"categoryid"`
	StudentID  int64 `json:"studentid"`

	// Reorder parameters: two program-subject relation ids and a direction.
	RelationID int64  `json:"relationid"`
	SiblingID  int64  `json:"siblingid"`
	Direction  string `json:"direction"`

	// Institution delete
	InstitutionID int64 `json:"institutionid"`

	// Search + paging
	Query string `json:"query"`
	Page  int    `json:"page"`
}

// CreateProgramRequest carries program create/update fields.
type CreateProgramRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Description *string `json:"description"`
	Institution string  `json:"institution"`
	Visible     *bool   `json:"visible"`
}

// CreateSubjectRequest carries subject create/update fields.
type CreateSubjectRequest struct {
	Name    string  `json:"name" binding:"required"`
	Code    string  `json:"code" binding:"required"`
	Summary *string `json:"summary"`
	Credits int     `json:"credits" binding:"min=0"`
	Visible *bool   `json:"visible"`
}

// CreateInstitutionRequest carries institution create/update fields.
type CreateInstitutionRequest struct {
	Name    string `json:"name" binding:"required"`
	Visible *bool  `json:"visible"`
}

// ExternalCreditRequest carries external credit create/update fields.
type ExternalCreditRequest struct {
	SubjectID       int64   `json:"subjectId" binding:"required"`
	Grade           string  `json:"grade" binding:"required"`
	GradePercent    float64 `json:"gradePercent" binding:"min=0,max=100"`
	InstitutionName string  `json:"institutionName" binding:"required"`
	CreditedDate    *string `json:"creditedDate"`
	DocumentNumber  *string `json:"documentNumber"`
	Notes           *string `json:"notes"`
}

// StudentInfoRequest carries the supplementary student fields.
type StudentInfoRequest struct {
	CohortLabel    *string `json:"cohortLabel"`
	EnrollmentYear *int    `json:"enrollmentYear"`
	Address        *string `json:"address"`
	City           *string `json:"city"`
	Snils          *string `json:"snils"`
}
