// Package usecases contains the application's business logic
package usecases

import (
	"time"

	"github.com/Deepthi2006/aquasentry/internal/entities"
)

// Status thresholds. A tank is a warning candidate when any warning
// threshold trips, and escalates to critical when any critical threshold
// trips as well.
const (
	phWarningLow        = 6.5
	phWarningHigh       = 8.5
	phCriticalLow       = 6.0
	phCriticalHigh      = 9.0
	turbidityWarning    = 5.0
	turbidityCritical   = 7.0
	cleanedDaysWarning  = 30
	cleanedDaysCritical = 60
)

// DaysBetween returns the whole days elapsed from a stored calendar date
// to today. Negative when the stored date lies in the future; zero when
// the date does not parse, so inconsistent data contributes no risk.
func DaysBetween(stored string, today time.Time) int {
	d, err := time.Parse(entities.DateLayout, stored)
	if err != nil {
		return 0
	}
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(d).Hours() / 24)
}

// ClassifyStatus derives a tank's health status from its current readings
// and cleaning age. It is a pure function of (ph, turbidity,
// days-since-cleaned) and must be recomputed on every read: "today"
// changes, so a cached status would silently go stale.
func ClassifyStatus(tank entities.Tank, today time.Time) string {
	ph := tank.CurrentReadings.PHOrDefault()
	turbidity := tank.CurrentReadings.Turbidity
	daysSinceCleaned := DaysBetween(tank.LastCleaned, today)

	if turbidity > turbidityWarning || ph < phWarningLow || ph > phWarningHigh || daysSinceCleaned > cleanedDaysWarning {
		if turbidity > turbidityCritical || ph < phCriticalLow || ph > phCriticalHigh || daysSinceCleaned > cleanedDaysCritical {
			return entities.StatusCritical
		}
		return entities.StatusWarning
	}
	return entities.StatusNormal
}

// BuildTankView attaches the derived health figures to a tank.
func BuildTankView(tank entities.Tank, today time.Time) entities.TankView {
	return entities.TankView{
		Tank:                 tank,
		Status:               ClassifyStatus(tank, today),
		DaysSinceCleaned:     DaysBetween(tank.LastCleaned, today),
		DaysUntilMaintenance: -DaysBetween(tank.NextMaintenance, today),
	}
}

// BuildTankViews derives views for a whole fleet, preserving fleet order.
func BuildTankViews(tanks []entities.Tank, today time.Time) []entities.TankView {
	views := make([]entities.TankView, 0, len(tanks))
	for _, tank := range tanks {
		views = append(views, BuildTankView(tank, today))
	}
	return views
}
