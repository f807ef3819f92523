package platforms

import "jobboard-scraper/internal/scraper"

// Seek — список по кнопке "Next", id вакансии в /job/<id>
func Seek() scraper.AdapterConfig {
	return scraper.AdapterConfig{
		Source:       "seek",
		Label:        "Seek",
		Origin:       "https://www.seek.co.nz",
		MatchPattern: `^https?://(?:[a-z]+\.)?seek\.(?:co\.nz|com\.au)/`,
		LoginWall:    []string{`[data-automation="login-form"]`},
		Cards: []string{
			`article[data-automation="normalJob"]`,
			`article[data-card-type="JobCard"]`,
			`[data-automation="searchResults"] article`,
		},
		Fields: scraper.FieldSelectors{
			Title:       []string{`[data-automation="jobTitle"]`, `h3 a`},
			Company:     []string{`[data-automation="jobCompany"]`, `[data-automation="advertiser-name"]`},
			Location:    []string{`[data-automation="jobLocation"]`, `[data-automation="jobCardLocation"]`},
			Salary:      []string{`[data-automation="jobSalary"]`},
			Metadata:    []string{`[data-automation="jobSalary"]`, `[data-automation="jobWorkType"]`, `ul li`, `span[data-automation]`},
			Description: []string{`[data-automation="jobShortDescription"]`},
			PostedDate:  []string{`[data-automation="jobListingDate"]`},
			Logo:        []string{`[data-automation="company-logo"] img`, `img`},
			Link:        []string{`a[data-automation="jobTitle"]`, `a[data-automation="job-list-item-link-overlay"]`},
		},
		Detail: scraper.DetailSelectors{
			Title:        []string{`[data-automation="job-detail-title"]`, `h1`},
			Company:      []string{`[data-automation="advertiser-name"]`},
			Location:     []string{`[data-automation="job-detail-location"]`},
			Salary:       []string{`[data-automation="job-detail-salary"]`},
			JobType:      []string{`[data-automation="job-detail-work-type"]`},
			Description:  []string{`[data-automation="jobAdDetails"]`},
			PostedDate:   []string{`[data-automation="job-detail-date"]`},
			Requirements: []string{`[data-automation="jobAdDetails"] ul li`},
		},
		Pagination: scraper.PaginationConfig{
			Strategy:      scraper.PaginationNextControl,
			NextSelectors: []string{`a[data-automation="page-next"]`, `a[aria-label="Next"]`, `a[rel="next"]`},
		},
		SourceIDAttrs:   []string{"data-job-id"},
		SourceIDPattern: `/job/(\d+)`,
	}
}
