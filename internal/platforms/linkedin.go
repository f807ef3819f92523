package platforms

import "jobboard-scraper/internal/scraper"

// LinkedIn — гостевой поиск: пагинация смещением start по 25,
// дубликаты в выдаче, бейджи второй строкой в заголовке и трекинговые query.
func LinkedIn() scraper.AdapterConfig {
	return scraper.AdapterConfig{
		Source:       "linkedin",
		Label:        "LinkedIn",
		Origin:       "https://www.linkedin.com",
		MatchPattern: `^https?://(?:[a-z]+\.)?linkedin\.com/jobs`,
		LoginWall:    []string{`.authwall-join-form`, `form[data-id="sign-in-form"]`, `.join-form`},
		Cards: []string{
			`ul.jobs-search__results-list > li`,
			`li.scaffold-layout__list-item`,
			`li.jobs-search-results__list-item`,
			`div.base-card`,
		},
		Fields: scraper.FieldSelectors{
			Title:      []string{`h3.base-search-card__title`, `.job-card-list__title`, `a.job-card-container__link`},
			Company:    []string{`h4.base-search-card__subtitle`, `.job-card-container__primary-description`, `.artdeco-entity-lockup__subtitle`},
			Location:   []string{`.job-search-card__location`, `.job-card-container__metadata-item`},
			Metadata:   []string{`.job-search-card__salary-info`, `.job-card-container__metadata-item`, `.base-search-card__metadata span`},
			PostedDate: []string{`time.job-search-card__listdate`, `time.job-search-card__listdate--new`, `time`},
			Logo:       []string{`img.artdeco-entity-image`, `.base-search-card__logo img`},
			Link:       []string{`a.base-card__full-link`, `a.job-card-container__link`},
		},
		Detail: scraper.DetailSelectors{
			Title:        []string{`.job-details-jobs-unified-top-card__job-title`, `h1.top-card-layout__title`, `h1`},
			Company:      []string{`.job-details-jobs-unified-top-card__company-name`, `a.topcard__org-name-link`, `.topcard__flavor`},
			Location:     []string{`.job-details-jobs-unified-top-card__bullet`, `.topcard__flavor--bullet`},
			Salary:       []string{`.salary.compensation__salary`},
			JobType:      []string{`.description__job-criteria-item:nth-child(2) .description__job-criteria-text`},
			Description:  []string{`[data-testid="expandable-text-box"]`, `#job-details`, `.jobs-description__content`, `.show-more-less-html__markup`},
			PostedDate:   []string{`.posted-time-ago__text`},
			Requirements: []string{`.show-more-less-html__markup ul li`, `#job-details ul li`},
		},
		Pagination: scraper.PaginationConfig{
			Strategy:    scraper.PaginationOffset,
			OffsetParam: "start",
			PageSize:    25,
		},
		Dedup:           true,
		TitleFirstLine:  true,
		StripLinkQuery:  true,
		SourceIDAttrs:   []string{"data-entity-urn", "data-job-id", "data-occludable-job-id"},
		SourceIDPattern: `(\d{6,})`,
	}
}
