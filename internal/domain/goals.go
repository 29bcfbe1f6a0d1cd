package domain

import "math"

// RangeSummary aggregated planning metrics over a range of DaySchedules.
type RangeSummary struct {
	DaysByStatus        map[AvailabilityStatus]int `json:"daysByStatus"`
	TotalAvailableHours float64                    `json:"totalAvailableHours"`
	TotalBookedHours    float64                    `json:"totalBookedHours"`
	TotalTargetRides    int                        `json:"totalTargetRides"`
	TotalTargetEarnings float64                    `json:"totalTargetEarnings"`
	TotalTargetHours    float64                    `json:"totalTargetHours"`
	TotalActualRides    int                        `json:"totalActualRides"`
	TotalActualEarnings float64                    `json:"totalActualEarnings"`

	// UtilizationRate booked hours as a percentage of available hours,
	// rounded to the nearest integer. Zero when no hours are available,
	// regardless of booked hours.
	UtilizationRate int `json:"utilizationRate"`
}

// SummarizeRange computes the range summary over the given schedules.
// Pure aggregation: no mutation, no external calls, never fails.
func SummarizeRange(schedules []*DaySchedule) RangeSummary {
	summary := RangeSummary{
		DaysByStatus: map[AvailabilityStatus]int{},
	}

	for _, s := range schedules {
		if s == nil {
			continue
		}

		summary.DaysByStatus[s.AvailabilityStatus]++
		summary.TotalAvailableHours += s.TotalAvailableHours()
		summary.TotalBookedHours += s.TotalBookedHours()
		summary.TotalTargetRides += s.DailyGoals.TargetRides
		summary.TotalTargetEarnings += s.DailyGoals.TargetEarnings
		summary.TotalTargetHours += s.DailyGoals.TargetHours
		summary.TotalActualRides += s.ActualResults.TotalRides
		summary.TotalActualEarnings += s.ActualResults.TotalEarnings
	}

	if summary.TotalAvailableHours > 0 {
		summary.UtilizationRate = int(math.Round(summary.TotalBookedHours / summary.TotalAvailableHours * 100))
	}

	return summary
}
