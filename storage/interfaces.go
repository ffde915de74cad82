package storage

import "vegas-hotel-events/models"

// HotelRowWriter is the interface for persisting raw hotel observations.
type HotelRowWriter interface {
	WriteRaw(rows []*models.RawHotelRow) error
	Close() error
}

// EventRowWriter is the interface for persisting raw event observations.
type EventRowWriter interface {
	WriteRaw(rows []*models.RawEventRow) error
	Close() error
}

// ResultWriter is the interface any correlation-result backend must satisfy.
type ResultWriter interface {
	Write(results []models.CorrelationResult) error
	Close() error
}
