package services

import (
	"fmt"
	"sort"
	"strings"

	"vegas-hotel-events/models"
	"vegas-hotel-events/utils"
)

type AggregateService struct {
	logger *utils.Logger
}

func NewAggregateService(logger *utils.Logger) *AggregateService {
	return &AggregateService{logger: logger}
}

// Aggregate groups correlation results by event-exposure count and
// computes the mean price per group. Rows come back in ascending
// event-count order. Empty input yields an empty slice; whether that is
// reportable is the caller's call.
func (s *AggregateService) Aggregate(results []models.CorrelationResult) []models.SummaryRow {
	if len(results) == 0 {
		return nil
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, r := range results {
		sums[r.EventCount] += r.Price.NumericPrice
		counts[r.EventCount]++
	}

	rows := make([]models.SummaryRow, 0, len(sums))
	for eventCount, sum := range sums {
		rows = append(rows, models.SummaryRow{
			EventCount:   eventCount,
			AveragePrice: round2(sum / float64(counts[eventCount])),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].EventCount < rows[j].EventCount
	})

	return rows
}

// Print renders the summary to the console.
func (s *AggregateService) Print(rows []models.SummaryRow, totalResults int) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 WEEKEND PRICE vs EVENT EXPOSURE\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Average Price by Event Count\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(rows) == 0 {
		fmt.Printf("  No correlation results to summarize\n")
	} else {
		fmt.Printf("  %-22s %s\n", "Events During Stay", "Average Price")
		for _, row := range rows {
			fmt.Printf("  %-22d \033[1;32m$%.2f\033[0m\n", row.EventCount, row.AveragePrice)
		}
	}
	fmt.Println()

	fmt.Printf("  Price records analyzed : \033[1m%d\033[0m\n", totalResults)
	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
