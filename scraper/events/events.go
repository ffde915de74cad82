package events

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"vegas-hotel-events/config"
	"vegas-hotel-events/models"
	"vegas-hotel-events/scraper/chrome"
	"vegas-hotel-events/utils"
)

const calendarURL = "https://www.visitlasvegas.com/shows-events/all-shows-events/"

// Scraper collects venue event cards from the Vegas events calendar.
// Duplicate rows for the same event are kept on purpose: the
// correlation stage's count-all policy depends on seeing them.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// New creates a ready-to-use events Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			MaxDelay:    30 * time.Second,
			Logger:      logger,
		},
	}
}

// Scrape loads the calendar page and extracts every event card.
func (s *Scraper) Scrape() ([]*models.RawEventRow, error) {
	allocCtx, cancel := chrome.NewAllocator(s.cfg.ChromeBin, s.cfg.Headless)
	defer cancel()

	var rows []*models.RawEventRow

	err := s.retry.Do("events-calendar", func() error {
		ctx, cancelCtx := chromedp.NewContext(allocCtx)
		defer cancelCtx()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		type cardData struct {
			Name     string `json:"name"`
			Month    string `json:"month"`
			Day      string `json:"day"`
			Venue    string `json:"venue"`
			Category string `json:"category"`
		}

		var cards []cardData

		err := chromedp.Run(ctx,
			chromedp.Navigate(calendarURL),
			chromedp.Sleep(5*time.Second),

			chromedp.WaitVisible(`div[data-type="events"]`, chromedp.ByQuery),

			chromedp.Evaluate(`
				(function() {
					var results = [];
					var cards = document.querySelectorAll("div[data-type='events']");
					for (var i = 0; i < cards.length; i++) {
						var card = cards[i];

						var titleEl = card.querySelector('a.title');
						var name = titleEl ? titleEl.innerText.trim() : '';
						if (!name) continue;

						var monthEl = card.querySelector('.mini-date-container .month');
						var dayEl = card.querySelector('.mini-date-container .day');
						var month = monthEl ? monthEl.innerText.trim() : '';
						var day = dayEl ? dayEl.innerText.trim() : '';

						var venueEl = card.querySelector('li.locations');
						var venue = venueEl ? venueEl.innerText.trim() : '';

						var catEl = card.querySelector('.img-banner');
						var category = catEl ? catEl.innerText.trim() : '';

						results.push({
							name: name,
							month: month,
							day: day,
							venue: venue,
							category: category
						});
					}
					return results;
				})()
			`, &cards),
		)

		if err != nil {
			return fmt.Errorf("chromedp calendar scrape: %w", err)
		}

		s.logger.Debug("[events] Found %d event cards", len(cards))

		rows = rows[:0]
		for _, c := range cards {
			dateText := ""
			if c.Month != "" && c.Day != "" {
				dateText = c.Month + " " + c.Day
			}
			rows = append(rows, &models.RawEventRow{
				Name:     c.Name,
				DateText: dateText,
				Venue:    c.Venue,
				Category: c.Category,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("[events] Scrape complete — total raw rows: %d", len(rows))
	return rows, nil
}
