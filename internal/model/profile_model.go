package model

// LinkedInProfile is the subset of the scraper payload the pipeline uses.
// Year and month fields are zero when the scraper omits them.
type LinkedInProfile struct {
	PublicID  string
	FirstName string
	LastName  string
	FullName  string
	Headline  string
	About     string

	JobTitle             string
	Company              string
	CompanyDescription   string
	CompanyDomain        string
	CompanyEmployeeCount int
	CompanyEmployeeRange string
	CompanyIndustry      string
	CompanyLinkedInURL   string
	CompanyWebsite       string
	CompanyYearFounded   int

	Location string
	City     string
	State    string
	Country  string

	ConnectionCount int
	FollowerCount   int

	Educations  []Education
	Experiences []Experience

	LinkedInURL     string
	ProfileImageURL string
	IsPremium       bool
	IsVerified      bool
}

type Experience struct {
	Company            string
	Title              string
	StartMonth         int
	StartYear          int
	EndMonth           int
	EndYear            int
	Duration           string
	IsCurrent          bool
	Location           string
	Description        string
	CompanyID          string
	CompanyLinkedInURL string
}

type Education struct {
	School            string
	Degree            string
	FieldOfStudy      string
	StartMonth        int
	StartYear         int
	EndMonth          int
	EndYear           int
	DateRange         string
	SchoolID          string
	SchoolLinkedInURL string
}
