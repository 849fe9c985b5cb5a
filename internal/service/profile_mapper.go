package service

import (
	"fmt"
	"time"

	"github.com/fadilmartias/profile-scorer/internal/model"
)

// Fallback month-day used when only a year is known.
const (
	experienceStartDefault = "01-01"
	experienceEndDefault   = "12-31"
	educationStartDefault  = "09-01"
	educationEndDefault    = "06-30"
)

// MapToModelInput flattens a scraped profile into the scoring model's input.
// now supplies the current year for tenure of positions without an end year.
func MapToModelInput(profile *model.LinkedInProfile, now time.Time) model.ModelInput {
	input := model.ModelInput{
		Username:    profile.PublicID,
		Connections: profile.ConnectionCount,
		WorkedAt:    make([]model.WorkedAt, 0, len(profile.Experiences)),
		StudiedAt:   make([]model.StudiedAt, 0, len(profile.Educations)),
	}

	for _, exp := range profile.Experiences {
		var end *string
		if !exp.IsCurrent {
			end = composeDate(exp.EndYear, exp.EndMonth, experienceEndDefault)
		}

		industry := ""
		if exp.Company == profile.Company {
			industry = profile.CompanyIndustry
		}

		input.WorkedAt = append(input.WorkedAt, model.WorkedAt{
			CompanyName:     exp.Company,
			StaffCountRange: profile.CompanyEmployeeRange,
			CompanyIndustry: industry,
			Title:           exp.Title,
			Start:           composeDate(exp.StartYear, exp.StartMonth, experienceStartDefault),
			End:             end,
			Years:           tenureYears(exp, now),
		})
	}

	for _, edu := range profile.Educations {
		input.StudiedAt = append(input.StudiedAt, model.StudiedAt{
			SchoolName:   edu.School,
			DegreeLevel:  edu.Degree,
			FieldOfStudy: edu.FieldOfStudy,
			Start:        composeDate(edu.StartYear, edu.StartMonth, educationStartDefault),
			End:          composeDate(edu.EndYear, edu.EndMonth, educationEndDefault),
		})
	}

	return input
}

// composeDate prefers the first of the given month and falls back to the
// year with fallbackMonthDay. A missing year yields nil.
func composeDate(year, month int, fallbackMonthDay string) *string {
	if year <= 0 {
		return nil
	}
	var date string
	if month >= 1 && month <= 12 {
		date = fmt.Sprintf("%04d-%02d-01", year, month)
	} else {
		date = fmt.Sprintf("%04d-%s", year, fallbackMonthDay)
	}
	return &date
}

func tenureYears(exp model.Experience, now time.Time) int {
	if exp.StartYear <= 0 {
		return 0
	}
	endYear := exp.EndYear
	if endYear <= 0 {
		endYear = now.Year()
	}
	return endYear - exp.StartYear
}
