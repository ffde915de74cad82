package models

import "time"

// RawHotelRow holds unprocessed scraped data directly from the browser.
// This is written to the dated snapshot CSV before any cleaning.
type RawHotelRow struct {
	Name        string
	RawPrice    string
	Rating      string
	ReviewCount string
	Distance    string
	ScrapedAt   time.Time
}

// RawEventRow holds an unprocessed event card from the calendar page.
type RawEventRow struct {
	Name     string
	DateText string
	Venue    string
	Category string
}

// PriceRecord is a hotel price observation loaded from a snapshot file.
// NumericPrice is derived by the price parser; records whose price
// cannot be parsed never reach the correlation stage.
type PriceRecord struct {
	Name         string
	RawPrice     string
	Rating       string
	Distance     string
	CollectedOn  time.Time
	NumericPrice float64
}

// EventRecord is a venue event loaded from a snapshot file.
// EventDate is derived by the event-date parser; records whose date
// cannot be parsed never reach the correlation stage.
type EventRecord struct {
	Name     string
	RawDate  string
	Venue    string
	Category string
	Date     time.Time
}

// WeekendWindow is the two-night stay implied by a collection date:
// StayStart is the next Friday strictly after the collection date,
// StayEnd is two days later (check-out Sunday).
type WeekendWindow struct {
	StayStart time.Time
	StayEnd   time.Time
}

// CorrelationResult pairs one price record with the events falling on
// either night of its stay window. Events keeps Friday matches first,
// then Saturday matches, each in load order.
type CorrelationResult struct {
	Price      *PriceRecord
	Window     WeekendWindow
	Events     []*EventRecord
	EventCount int
}

// SummaryRow is one line of the derived view: the mean observed price
// across all price records sharing an event-exposure count.
type SummaryRow struct {
	EventCount   int
	AveragePrice float64
}
