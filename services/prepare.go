package services

import (
	"time"

	"vegas-hotel-events/models"
	"vegas-hotel-events/utils"
)

// Preparer derives the computed fields on loaded records and drops the
// rows that fail field parsing. Dropped rows are a designed outcome,
// not an error: one bad row never aborts the run.
type Preparer struct {
	logger       *utils.Logger
	yearRollover bool
	now          func() time.Time
}

// NewPreparer creates a Preparer. yearRollover enables the
// month-rollover correction for event dates.
func NewPreparer(logger *utils.Logger, yearRollover bool) *Preparer {
	return &Preparer{logger: logger, yearRollover: yearRollover, now: time.Now}
}

// PreparePrices computes NumericPrice for each record and returns new
// records for the rows that parsed. Input records are not mutated.
func (p *Preparer) PreparePrices(records []*models.PriceRecord) []*models.PriceRecord {
	result := make([]*models.PriceRecord, 0, len(records))

	for _, r := range records {
		price, ok := ParsePrice(r.RawPrice)
		if !ok {
			p.logger.Debug("[prepare] Dropping price row %q: unparsable price %q", r.Name, r.RawPrice)
			continue
		}
		result = append(result, &models.PriceRecord{
			Name:         normaliseText(r.Name),
			RawPrice:     r.RawPrice,
			Rating:       normaliseText(r.Rating),
			Distance:     normaliseText(r.Distance),
			CollectedOn:  r.CollectedOn,
			NumericPrice: price,
		})
	}

	p.logger.Info("[prepare] Price rows: %d → %d usable (dropped %d)",
		len(records), len(result), len(records)-len(result))
	return result
}

// PrepareEvents computes the calendar date for each record using the
// current year as reference and returns new records for the rows that
// parsed. Input records are not mutated.
func (p *Preparer) PrepareEvents(records []*models.EventRecord) []*models.EventRecord {
	now := p.now()
	result := make([]*models.EventRecord, 0, len(records))

	for _, r := range records {
		date, ok := ParseEventDate(r.RawDate, now.Year())
		if !ok {
			p.logger.Debug("[prepare] Dropping event row %q: unparsable date %q", r.Name, r.RawDate)
			continue
		}
		if p.yearRollover {
			date = RolloverEventDate(date, now)
		}
		result = append(result, &models.EventRecord{
			Name:     normaliseText(r.Name),
			RawDate:  r.RawDate,
			Venue:    normaliseText(r.Venue),
			Category: normaliseText(r.Category),
			Date:     date,
		})
	}

	p.logger.Info("[prepare] Event rows: %d → %d usable (dropped %d)",
		len(records), len(result), len(records)-len(result))
	return result
}
