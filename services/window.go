package services

import (
	"time"

	"vegas-hotel-events/models"
)

// ResolveWindow maps a collection date to the weekend stay it priced:
// check-in on the next Friday strictly after collectedOn, check-out two
// days later. A Friday collection date resolves to the following week's
// Friday, never to itself.
func ResolveWindow(collectedOn time.Time) models.WeekendWindow {
	offset := (int(time.Friday) - int(collectedOn.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	start := collectedOn.AddDate(0, 0, offset)
	return models.WeekendWindow{
		StayStart: start,
		StayEnd:   start.AddDate(0, 0, 2),
	}
}
