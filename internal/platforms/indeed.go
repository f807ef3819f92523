package platforms

import "jobboard-scraper/internal/scraper"

// Indeed — домен зависит от страны, поэтому ссылки разрешаются от URL страницы
func Indeed() scraper.AdapterConfig {
	return scraper.AdapterConfig{
		Source:       "indeed",
		Label:        "Indeed",
		MatchPattern: `^https?://(?:[a-z]+\.)?indeed\.com/`,
		LoginWall:    []string{`#auth-page-google-password-fallback`, `form[action*="/account/login"]`},
		Cards: []string{
			`div.job_seen_beacon`,
			`td.resultContent`,
			`li div.cardOutline`,
		},
		Fields: scraper.FieldSelectors{
			Title:       []string{`h2.jobTitle span[title]`, `h2.jobTitle`, `a.jcs-JobTitle`},
			Company:     []string{`[data-testid="company-name"]`, `span.companyName`},
			Location:    []string{`[data-testid="text-location"]`, `div.companyLocation`},
			Salary:      []string{`[data-testid="attribute_snippet_testid"].salary-snippet-container`, `div.salary-snippet-container`},
			Metadata:    []string{`[data-testid="attribute_snippet_testid"]`, `div.metadata`, `ul.metadataContainer li`},
			Description: []string{`[data-testid="jobsnippet_footer"]`, `div.job-snippet`},
			PostedDate:  []string{`span.date`, `[data-testid="myJobsStateDate"]`},
			Link:        []string{`a.jcs-JobTitle`, `h2.jobTitle a`},
		},
		Detail: scraper.DetailSelectors{
			Title:        []string{`h1[data-testid="jobsearch-JobInfoHeader-title"]`, `h1`},
			Company:      []string{`[data-testid="inlineHeader-companyName"]`, `[data-company-name="true"]`},
			Location:     []string{`[data-testid="inlineHeader-companyLocation"]`, `[data-testid="job-location"]`},
			Salary:       []string{`#salaryInfoAndJobType span`},
			JobType:      []string{`#salaryInfoAndJobType span:last-child`},
			Description:  []string{`#jobDescriptionText`},
			Requirements: []string{`#jobDescriptionText ul li`},
		},
		Pagination: scraper.PaginationConfig{
			Strategy:      scraper.PaginationNextControl,
			NextSelectors: []string{`a[data-testid="pagination-page-next"]`, `a[aria-label="Next Page"]`},
		},
		TitleFirstLine:  true,
		SourceIDAttrs:   []string{"data-jk"},
		SourceIDPattern: `jk=([0-9a-f]+)`,
	}
}
