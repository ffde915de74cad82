package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"vegas-hotel-events/config"
	"vegas-hotel-events/models"
	"vegas-hotel-events/scraper/chrome"
	"vegas-hotel-events/services"
	"vegas-hotel-events/utils"
)

const (
	baseURL      = "https://www.booking.com/searchresults.html"
	city         = "Las Vegas"
	cardsPerPage = 25
)

// Scraper collects hotel prices for the upcoming weekend from
// Booking.com search results.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	pool   *utils.WorkerPool
	seen   *utils.SeenSet
	retry  *utils.RetryConfig

	mu   sync.Mutex
	rows []*models.RawHotelRow
}

// New creates a ready-to-use Booking.com Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		seen:   utils.NewSeenSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			MaxDelay:    30 * time.Second,
			Logger:      logger,
		},
		rows: make([]*models.RawHotelRow, 0),
	}
}

// Scrape drives result-page extraction for the upcoming weekend and
// returns the raw rows in collection order.
func (s *Scraper) Scrape() ([]*models.RawHotelRow, error) {
	window := services.ResolveWindow(time.Now())
	checkin := window.StayStart.Format("2006-01-02")
	checkout := window.StayEnd.Format("2006-01-02")

	s.logger.Info("[booking] Target weekend: %s to %s — %d page(s)",
		checkin, checkout, s.cfg.PagesToScrape)

	allocCtx, cancel := chrome.NewAllocator(s.cfg.ChromeBin, s.cfg.Headless)
	defer cancel()

	for page := 0; page < s.cfg.PagesToScrape; page++ {
		p := page
		s.pool.Submit(func() {
			if err := s.scrapePage(allocCtx, checkin, checkout, p); err != nil {
				s.logger.Error("[booking] Page %d failed: %v", p+1, err)
			}
		})
	}
	s.pool.Wait()

	s.logger.Info("[booking] Scrape complete — total raw rows: %d", len(s.rows))
	return s.rows, nil
}

func (s *Scraper) searchURL(checkin, checkout string, page int) string {
	return fmt.Sprintf(
		"%s?ss=%s&checkin=%s&checkout=%s&group_adults=2&no_rooms=1&group_children=0&offset=%d",
		baseURL, city, checkin, checkout, page*cardsPerPage)
}

// scrapePage loads one search results page, dismisses the sign-in
// popup if present, waits for property cards, and extracts them.
func (s *Scraper) scrapePage(allocCtx context.Context, checkin, checkout string, page int) error {
	pageURL := s.searchURL(checkin, checkout, page)

	return s.retry.Do(fmt.Sprintf("booking-page-%d", page+1), func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		type cardData struct {
			Name        string `json:"name"`
			Price       string `json:"price"`
			Rating      string `json:"rating"`
			ReviewCount string `json:"review_count"`
			Distance    string `json:"distance"`
		}

		var cards []cardData

		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(5*time.Second),

			// Dismiss the sign-in popup when it appears; absence is fine
			chromedp.Evaluate(`
				(function() {
					var btn = document.querySelector("button[aria-label='Dismiss sign-in info.']");
					if (btn) { btn.click(); return true; }
					return false;
				})()
			`, nil),
			chromedp.Sleep(1*time.Second),

			chromedp.WaitVisible(`[data-testid="property-card"]`, chromedp.ByQuery),

			// Scroll to force lazy cards to render
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight / 2)`, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),

			chromedp.Evaluate(`
				(function() {
					var results = [];
					var cards = document.querySelectorAll('[data-testid="property-card"]');
					for (var i = 0; i < cards.length; i++) {
						var card = cards[i];

						var nameEl = card.querySelector('[data-testid="title"]');
						var name = nameEl ? nameEl.innerText.trim() : '';
						if (!name) continue;

						var priceEl = card.querySelector('[data-testid="price-and-discounted-price"]') ||
						              card.querySelector('span[data-testid*="price"]');
						var price = priceEl ? priceEl.innerText.trim() : '';

						var rating = '';
						var ratingEl = card.querySelector('[data-testid="review-score"]');
						if (ratingEl) {
							var m = ratingEl.innerText.match(/(\d\.\d)/);
							rating = m ? m[1] : '';
						}

						var reviews = '';
						if (ratingEl) {
							var rm = ratingEl.innerText.match(/([\d,]+)\s+reviews?/i);
							reviews = rm ? rm[1].replace(/,/g, '') : '';
						}

						var distEl = card.querySelector('[data-testid="distance"]');
						var distance = distEl ? distEl.innerText.trim() : '';

						results.push({
							name: name,
							price: price,
							rating: rating,
							review_count: reviews,
							distance: distance
						});
					}
					return results;
				})()
			`, &cards),
		)

		if err != nil {
			return fmt.Errorf("chromedp page scrape: %w", err)
		}

		s.logger.Debug("[booking] Page %d — found %d cards", page+1, len(cards))

		s.mu.Lock()
		defer s.mu.Unlock()
		for _, c := range cards {
			// Result pages overlap when offsets shift between loads
			if !s.seen.Add(c.Name) {
				s.logger.Debug("[booking] Skipping duplicate card: %s", c.Name)
				continue
			}
			s.rows = append(s.rows, &models.RawHotelRow{
				Name:        c.Name,
				RawPrice:    c.Price,
				Rating:      c.Rating,
				ReviewCount: c.ReviewCount,
				Distance:    c.Distance,
				ScrapedAt:   time.Now(),
			})
		}
		return nil
	})
}
