package telemetry

import (
	"fmt"
	"sort"
	"time"

	"github.com/xela07ax/netsec-analytics/internal/domain"
)

var lowRiskLevels = []domain.ThreatLevel{domain.ThreatLow, domain.ThreatMedium}

// GenerateEvents returns count simulated detections from the last two hours.
//
// Events are ordered by their HH:MM label, descending. That is a string sort:
// a batch generated shortly after midnight lists 00:xx events below 23:xx
// ones. Set EventProfile.ChronologicalEvents to order by DetectedAt instead.
func GenerateEvents(now time.Time, count int, rng Source, p Profile) []domain.ThreatEvent {
	if count < 0 {
		count = 0
	}
	ep := p.Events

	events := make([]domain.ThreatEvent, 0, count)
	for i := 0; i < count; i++ {
		minutesAgo := intBetween(rng, ep.MinutesAgo.Min, ep.MinutesAgo.Max)
		at := now.Add(-time.Duration(minutesAgo) * time.Minute)

		attackType := pick(rng, ep.AttackTypes)
		source := randomIPv4(rng)
		confidence := floatBetween(rng, ep.Confidence.Min, ep.Confidence.Max)

		var service string
		var risk domain.ThreatLevel
		if rng.Float64() > 1-ep.HighRiskChance {
			service = pick(rng, ep.HighRiskServices)
			risk = domain.ThreatHigh
		} else {
			service = pick(rng, ep.LowRiskServices)
			risk = pick(rng, lowRiskLevels)
		}

		events = append(events, domain.ThreatEvent{
			DetectedAt:   at,
			Time:         at.Format("15:04"),
			AttackType:   attackType,
			SourceIP:     source,
			Service:      service,
			RiskLevel:    risk,
			Confidence:   round(confidence, 3),
			Status:       domain.EventStatusBlocked,
			BytesBlocked: intBetween(rng, ep.BytesBlocked.Min, ep.BytesBlocked.Max),
		})
	}

	if ep.ChronologicalEvents {
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].DetectedAt.After(events[j].DetectedAt)
		})
	} else {
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Time > events[j].Time
		})
	}
	return events
}

// randomIPv4 is not checked for routability.
func randomIPv4(rng Source) string {
	return fmt.Sprintf("%d.%d.%d.%d",
		intBetween(rng, 10, 192),
		intBetween(rng, 0, 255),
		intBetween(rng, 0, 255),
		intBetween(rng, 1, 254),
	)
}
