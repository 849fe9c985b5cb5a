package model

// ModelInput is the request body sent to the scoring model.
type ModelInput struct {
	Username    string      `json:"username"`
	Connections int         `json:"connections"`
	WorkedAt    []WorkedAt  `json:"worked_at"`
	StudiedAt   []StudiedAt `json:"studied_at"`
}

type WorkedAt struct {
	CompanyName     string  `json:"company_name"`
	StaffCountRange string  `json:"staff_count_range"`
	CompanyIndustry string  `json:"company_industry"`
	Title           string  `json:"title"`
	Start           *string `json:"start"`
	End             *string `json:"end"`
	Years           int     `json:"years"`
}

type StudiedAt struct {
	SchoolName   string  `json:"school_name"`
	DegreeLevel  string  `json:"degree_level"`
	FieldOfStudy string  `json:"field_of_study"`
	Start        *string `json:"start"`
	End          *string `json:"end"`
}
