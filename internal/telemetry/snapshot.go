package telemetry

import (
	"math"
	"time"

	"github.com/xela07ax/netsec-analytics/internal/domain"
)

var threatLevels = []domain.ThreatLevel{domain.ThreatLow, domain.ThreatMedium, domain.ThreatHigh}

// GenerateSnapshot synthesizes the "current state" card of the command center.
// Counters grow with the fraction of the day elapsed at now.
func GenerateSnapshot(now time.Time, rng Source, p Profile) domain.Snapshot {
	sp := p.Snapshot

	weights := sp.OffHoursWeights
	if h := now.Hour(); h >= sp.BusinessHours.Min && h <= sp.BusinessHours.Max {
		weights = sp.BusinessWeights
	}
	level := weighted(rng, threatLevels, weights)

	progress := DayProgress(now, sp.ProgressMultiplier)
	attacks := int(float64(sp.DailyAttacks) * progress)
	savings := int64(float64(sp.DailySavings) * progress)

	// detection burst
	if rng.Float64() > 1-sp.BurstChance {
		attacks += intBetween(rng, sp.BurstAttacks.Min, sp.BurstAttacks.Max)
		savings += int64(intBetween(rng, sp.BurstSavings.Min, sp.BurstSavings.Max))
	}

	return domain.Snapshot{
		Timestamp:         now,
		ThreatLevel:       level,
		AttacksPrevented:  attacks,
		CostSavings:       savings,
		NetworkHealth:     round(floatBetween(rng, sp.NetworkHealth.Min, sp.NetworkHealth.Max), 1),
		ModelAccuracy:     p.Model.Performance.AccuracyPercent,
		FalsePositiveRate: p.Model.Performance.FalsePositiveRate,
		AttacksLastHour:   intBetween(rng, sp.HourlyAttacks.Min, sp.HourlyAttacks.Max),
	}
}

// DayProgress is the elapsed fraction of the day at minute resolution,
// scaled by multiplier and capped at 1.
func DayProgress(now time.Time, multiplier float64) float64 {
	elapsed := float64(now.Hour()*60+now.Minute()) / (24 * 60)
	return math.Min(elapsed*multiplier, 1.0)
}
