package services

import (
	"time"

	"vegas-hotel-events/models"
	"vegas-hotel-events/utils"
)

// Engine correlates price records with the events falling inside each
// record's stay window.
type Engine struct {
	logger       *utils.Logger
	dedupeEvents bool
}

// NewEngine creates a correlation Engine. dedupeEvents switches the
// match policy from count-all (the default, which keeps duplicate
// source rows for the same event) to count-unique-by-name.
func NewEngine(logger *utils.Logger, dedupeEvents bool) *Engine {
	return &Engine{logger: logger, dedupeEvents: dedupeEvents}
}

// dateKey normalizes a date for equality checks; windows and event
// dates carry no meaningful time-of-day component.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Correlate produces one result per price record, in input order.
// Matching events are those dated on the check-in Friday or the
// following Saturday — the two nights actually priced. The check-out
// Sunday never matches. Zero matches is a valid, common result.
func (e *Engine) Correlate(prices []*models.PriceRecord, events []*models.EventRecord) []models.CorrelationResult {
	// Index events by date, preserving load order within each day.
	byDate := make(map[string][]*models.EventRecord, len(events))
	for _, ev := range events {
		k := dateKey(ev.Date)
		byDate[k] = append(byDate[k], ev)
	}

	results := make([]models.CorrelationResult, 0, len(prices))
	for _, pr := range prices {
		window := ResolveWindow(pr.CollectedOn)

		friday := byDate[dateKey(window.StayStart)]
		saturday := byDate[dateKey(window.StayStart.AddDate(0, 0, 1))]

		matched := make([]*models.EventRecord, 0, len(friday)+len(saturday))
		matched = append(matched, friday...)
		matched = append(matched, saturday...)

		if e.dedupeEvents {
			matched = uniqueByName(matched)
		}

		results = append(results, models.CorrelationResult{
			Price:      pr,
			Window:     window,
			Events:     matched,
			EventCount: len(matched),
		})
	}

	e.logger.Info("[correlate] Produced %d results from %d price records and %d events",
		len(results), len(prices), len(events))
	return results
}

// uniqueByName keeps the first occurrence of each event name, in order.
func uniqueByName(events []*models.EventRecord) []*models.EventRecord {
	seen := make(map[string]struct{}, len(events))
	result := make([]*models.EventRecord, 0, len(events))
	for _, ev := range events {
		if _, dup := seen[ev.Name]; dup {
			continue
		}
		seen[ev.Name] = struct{}{}
		result = append(result, ev)
	}
	return result
}
