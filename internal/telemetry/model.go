package telemetry

import (
	"slices"
	"sort"
	"time"

	"github.com/xela07ax/netsec-analytics/internal/domain"
)

// PredictThreat samples a classifier verdict from the fixed class distribution.
func PredictThreat(now time.Time, rng Source, p Profile) domain.Prediction {
	mp := p.Model
	isAttack := rng.Float64() < mp.AttackProbability
	return domain.Prediction{
		IsAttack:   isAttack,
		Confidence: floatBetween(rng, mp.Confidence.Min, mp.Confidence.Max),
		Timestamp:  now,
	}
}

func ModelPerformance(p Profile) domain.ModelPerformance {
	return p.Model.Performance
}

// FeatureImportance returns the model features, heaviest first.
func FeatureImportance(p Profile) []domain.FeatureWeight {
	out := slices.Clone(p.Model.Features)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Importance > out[j].Importance
	})
	return out
}

func BusinessImpact(p Profile) domain.BusinessImpact {
	return p.Briefing.Impact
}

// Competitors returns the industry comparison ordered by rank.
func Competitors(p Profile) []domain.CompetitorProfile {
	out := slices.Clone(p.Briefing.Competitors)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank < out[j].Rank
	})
	return out
}

func ThreatCategories(p Profile) []domain.ThreatCategory {
	return slices.Clone(p.Briefing.Categories)
}

func BoardMetrics(p Profile) domain.BoardMetrics {
	return p.Briefing.Board
}

func AttackPatterns(p Profile) []domain.AttackPattern {
	return slices.Clone(p.Briefing.AttackPatterns)
}

func Benchmarks(p Profile) []domain.Benchmark {
	return slices.Clone(p.Briefing.Benchmarks)
}
