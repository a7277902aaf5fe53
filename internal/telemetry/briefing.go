package telemetry

import (
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/xela07ax/netsec-analytics/internal/domain"
)

const briefingDateLayout = "January 02, 2006"

// GenerateForecast projects attacks and savings for Forecast.Days days
// starting at today. Weekends get the lower base range and LOW risk.
func GenerateForecast(today time.Time, rng Source, p Profile) []domain.ForecastDay {
	fp := p.Forecast
	days := make([]domain.ForecastDay, 0, fp.Days)

	for i := 0; i < fp.Days; i++ {
		date := today.AddDate(0, 0, i)

		var base int
		var risk domain.ThreatLevel
		if IsWeekend(date) {
			base = intBetween(rng, fp.WeekendBase.Min, fp.WeekendBase.Max)
			risk = domain.ThreatLow
		} else {
			base = intBetween(rng, fp.WeekdayBase.Min, fp.WeekdayBase.Max)
			risk = domain.ThreatMedium
		}

		predicted := base + intBetween(rng, fp.Variation.Min, fp.Variation.Max)
		savings := int64(predicted) * int64(intBetween(rng, fp.SavingsPerAttack.Min, fp.SavingsPerAttack.Max))

		days = append(days, domain.ForecastDay{
			Date:             date,
			Label:            date.Format("01/02"),
			Day:              date.Format("Mon"),
			PredictedAttacks: predicted,
			EstimatedSavings: savings,
			RiskLevel:        risk,
			Confidence:       floatBetween(rng, fp.Confidence.Min, fp.Confidence.Max),
		})
	}
	return days
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// GenerateExecutiveSummary builds the daily briefing. Posture is gated on the
// model accuracy constant, so with the default profile it is always EXCEPTIONAL.
func GenerateExecutiveSummary(now time.Time, rng Source, p Profile) domain.ExecutiveSummary {
	bp := p.Briefing
	accuracy := p.Model.Performance.AccuracyPercent

	posture, status := Posture(accuracy, bp)

	incidents := []string{
		fmt.Sprintf("Successfully blocked %d attack attempts", intBetween(rng, bp.BlockedAttempts.Min, bp.BlockedAttempts.Max)),
		fmt.Sprintf("Prevented estimated $%s in potential losses", groupThousands(int64(intBetween(rng, bp.PreventedLosses.Min, bp.PreventedLosses.Max)))),
		fmt.Sprintf("Zero successful breaches - %d day streak maintained", intBetween(rng, bp.BreachFreeStreak.Min, bp.BreachFreeStreak.Max)),
		fmt.Sprintf("ML model performance: %.1f%% accuracy (vs %.1f%% industry avg)", accuracy, bp.IndustryAverage),
	}

	return domain.ExecutiveSummary{
		Date:             now.Format(briefingDateLayout),
		ThreatPosture:    posture,
		StrategicStatus:  status,
		KeyIncidents:     incidents,
		Recommendations:  append([]string(nil), bp.Recommendations...),
		ComplianceStatus: maps.Clone(bp.Compliance),
		NextBriefing:     now.AddDate(0, 0, 1).Format(briefingDateLayout),
	}
}

// Posture grades an accuracy percentage against the briefing thresholds.
func Posture(accuracy float64, bp BriefingProfile) (posture, status string) {
	switch {
	case accuracy > bp.ExceptionalAbove:
		return "EXCEPTIONAL", "Industry-leading security posture maintained"
	case accuracy > bp.StrongAbove:
		return "STRONG", "Above-industry-average security performance"
	default:
		return "ADEQUATE", "Meeting minimum security requirements"
	}
}

// groupThousands formats n as 9,345,000.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
