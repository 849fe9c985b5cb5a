package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fadilmartias/profile-scorer/internal/config"
	"github.com/fadilmartias/profile-scorer/internal/logging"
	"github.com/fadilmartias/profile-scorer/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const enrichLeadPath = "/enrich-lead"

type ProfileFetcher interface {
	Fetch(ctx context.Context, linkedinURL string) (*model.LinkedInProfile, error)
}

// LinkedInScraperService fetches profiles from the RapidAPI
// fresh-linkedin-profile-data endpoint.
type LinkedInScraperService struct {
	client *resty.Client
	logger *slog.Logger
}

func NewLinkedInScraperService(cfg *config.RapidAPIConfig, logger *slog.Logger) *LinkedInScraperService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("x-rapidapi-host", cfg.Host).
		SetHeader("x-rapidapi-key", cfg.APIKey)

	return &LinkedInScraperService{
		client: client,
		logger: logging.OrDefault(logger),
	}
}

func (s *LinkedInScraperService) Fetch(ctx context.Context, linkedinURL string) (*model.LinkedInProfile, error) {
	s.logger.Info("scraping linkedin profile", "url", linkedinURL)

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("linkedin_url", linkedinURL).
		Get(enrichLeadPath)
	if err != nil {
		return nil, &FetchError{URL: linkedinURL, Message: "request failed", Cause: err}
	}
	if resp.IsError() {
		return nil, &FetchError{URL: linkedinURL, StatusCode: resp.StatusCode(), Message: "unexpected response status"}
	}

	body := resp.String()
	if !gjson.Valid(body) {
		return nil, &FetchError{URL: linkedinURL, Message: "malformed response body"}
	}
	if message := gjson.Get(body, "message").String(); message != "ok" {
		return nil, &FetchError{URL: linkedinURL, Message: "API returned non-ok message: " + message}
	}
	data := gjson.Get(body, "data")
	if !data.IsObject() {
		return nil, &FetchError{URL: linkedinURL, Message: "response has no profile data"}
	}

	profile := parseProfile(data)
	s.logger.Info("scraped linkedin profile", "public_id", profile.PublicID)
	return profile, nil
}

// parseProfile reads the scraper payload. Months may arrive as numbers or
// numeric strings; gjson coerces both.
func parseProfile(data gjson.Result) *model.LinkedInProfile {
	profile := &model.LinkedInProfile{
		PublicID:             data.Get("public_id").String(),
		FirstName:            data.Get("first_name").String(),
		LastName:             data.Get("last_name").String(),
		FullName:             data.Get("full_name").String(),
		Headline:             data.Get("headline").String(),
		About:                data.Get("about").String(),
		JobTitle:             data.Get("job_title").String(),
		Company:              data.Get("company").String(),
		CompanyDescription:   data.Get("company_description").String(),
		CompanyDomain:        data.Get("company_domain").String(),
		CompanyEmployeeCount: int(data.Get("company_employee_count").Int()),
		CompanyEmployeeRange: data.Get("company_employee_range").String(),
		CompanyIndustry:      data.Get("company_industry").String(),
		CompanyLinkedInURL:   data.Get("company_linkedin_url").String(),
		CompanyWebsite:       data.Get("company_website").String(),
		CompanyYearFounded:   int(data.Get("company_year_founded").Int()),
		Location:             data.Get("location").String(),
		City:                 data.Get("city").String(),
		State:                data.Get("state").String(),
		Country:              data.Get("country").String(),
		ConnectionCount:      int(data.Get("connection_count").Int()),
		FollowerCount:        int(data.Get("follower_count").Int()),
		LinkedInURL:          data.Get("linkedin_url").String(),
		ProfileImageURL:      data.Get("profile_image_url").String(),
		IsPremium:            data.Get("is_premium").Bool(),
		IsVerified:           data.Get("is_verified").Bool(),
		Educations:           []model.Education{},
		Experiences:          []model.Experience{},
	}

	data.Get("educations").ForEach(func(_, edu gjson.Result) bool {
		profile.Educations = append(profile.Educations, model.Education{
			School:            edu.Get("school").String(),
			Degree:            edu.Get("degree").String(),
			FieldOfStudy:      edu.Get("field_of_study").String(),
			StartMonth:        int(edu.Get("start_month").Int()),
			StartYear:         int(edu.Get("start_year").Int()),
			EndMonth:          int(edu.Get("end_month").Int()),
			EndYear:           int(edu.Get("end_year").Int()),
			DateRange:         edu.Get("date_range").String(),
			SchoolID:          edu.Get("school_id").String(),
			SchoolLinkedInURL: edu.Get("school_linkedin_url").String(),
		})
		return true
	})

	data.Get("experiences").ForEach(func(_, exp gjson.Result) bool {
		profile.Experiences = append(profile.Experiences, model.Experience{
			Company:            exp.Get("company").String(),
			Title:              exp.Get("title").String(),
			StartMonth:         int(exp.Get("start_month").Int()),
			StartYear:          int(exp.Get("start_year").Int()),
			EndMonth:           int(exp.Get("end_month").Int()),
			EndYear:            int(exp.Get("end_year").Int()),
			Duration:           exp.Get("duration").String(),
			IsCurrent:          exp.Get("is_current").Bool(),
			Location:           exp.Get("location").String(),
			Description:        exp.Get("description").String(),
			CompanyID:          exp.Get("company_id").String(),
			CompanyLinkedInURL: exp.Get("company_linkedin_url").String(),
		})
		return true
	})

	return profile
}
