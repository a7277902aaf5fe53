package telemetry

import "github.com/xela07ax/netsec-analytics/internal/domain"

// IntRange is a closed integer interval.
type IntRange struct{ Min, Max int }

// FloatRange is a half-open float interval.
type FloatRange struct{ Min, Max float64 }

// Profile holds every constant the generators sample around.
// DefaultProfile reproduces the figures of the production dashboard.
type Profile struct {
	Snapshot SnapshotProfile
	Events   EventProfile
	Forecast ForecastProfile
	Model    ModelProfile
	Briefing BriefingProfile
}

type SnapshotProfile struct {
	BusinessHours   IntRange  // inclusive hours of day
	BusinessWeights []float64 // LOW, MEDIUM, HIGH
	OffHoursWeights []float64

	DailyAttacks       int
	DailySavings       int64
	ProgressMultiplier float64

	BurstChance  float64
	BurstAttacks IntRange
	BurstSavings IntRange

	NetworkHealth FloatRange
	HourlyAttacks IntRange
}

type EventProfile struct {
	DefaultCount     int
	AttackTypes      []string
	HighRiskServices []string
	LowRiskServices  []string
	HighRiskChance   float64
	MinutesAgo       IntRange
	Confidence       FloatRange
	BytesBlocked     IntRange

	// ChronologicalEvents orders events by DetectedAt instead of the HH:MM
	// string. The string order misplaces events recorded before midnight.
	ChronologicalEvents bool
}

type ForecastProfile struct {
	Days             int
	WeekdayBase      IntRange
	WeekendBase      IntRange
	Variation        IntRange
	SavingsPerAttack IntRange
	Confidence       FloatRange
}

type ModelProfile struct {
	Performance       domain.ModelPerformance
	Features          []domain.FeatureWeight
	AttackProbability float64
	Confidence        FloatRange
}

type BriefingProfile struct {
	ExceptionalAbove float64
	StrongAbove      float64
	IndustryAverage  float64
	BlockedAttempts  IntRange
	PreventedLosses  IntRange
	BreachFreeStreak IntRange
	Recommendations  []string
	Compliance       map[string]string
	Impact           domain.BusinessImpact
	Competitors      []domain.CompetitorProfile
	Categories       []domain.ThreatCategory
	Board            domain.BoardMetrics
	AttackPatterns   []domain.AttackPattern
	Benchmarks       []domain.Benchmark
}

// DefaultProfile returns a fresh copy, callers may mutate it.
func DefaultProfile() Profile {
	return Profile{
		Snapshot: SnapshotProfile{
			BusinessHours:      IntRange{9, 17},
			BusinessWeights:    []float64{0.70, 0.25, 0.05},
			OffHoursWeights:    []float64{0.85, 0.13, 0.02},
			DailyAttacks:       1247,
			DailySavings:       9_345_000,
			ProgressMultiplier: 1.2,
			BurstChance:        0.3,
			BurstAttacks:       IntRange{1, 5},
			BurstSavings:       IntRange{7500, 37500},
			NetworkHealth:      FloatRange{97.5, 99.2},
			HourlyAttacks:      IntRange{15, 35},
		},
		Events: EventProfile{
			DefaultCount:     8,
			AttackTypes:      []string{"Port Scan", "DDoS", "Brute Force", "Buffer Overflow", "Rootkit"},
			HighRiskServices: []string{"private", "ecr_i", "eco_i", "finger", "telnet"},
			LowRiskServices:  []string{"http", "domain_u", "smtp", "ftp_data"},
			HighRiskChance:   0.4,
			MinutesAgo:       IntRange{2, 120},
			Confidence:       FloatRange{0.911, 0.998},
			BytesBlocked:     IntRange{1024, 50000},
		},
		Forecast: ForecastProfile{
			Days:             7,
			WeekdayBase:      IntRange{1100, 1400},
			WeekendBase:      IntRange{600, 900},
			Variation:        IntRange{-100, 150},
			SavingsPerAttack: IntRange{7000, 9000},
			Confidence:       FloatRange{0.91, 0.98},
		},
		Model: ModelProfile{
			Performance: domain.ModelPerformance{
				AccuracyPercent:   99.1,
				PrecisionPercent:  99.1,
				RecallPercent:     99.2,
				F1Score:           0.992,
				AttacksMissed:     22,
				TotalAttacks:      2690,
				FalsePositiveRate: 0.8,
				AnnualSavings:     9_737_360_500,
			},
			Features: []domain.FeatureWeight{
				{Feature: "src_bytes", Importance: 0.305},
				{Feature: "flag", Importance: 0.215},
				{Feature: "dst_bytes", Importance: 0.200},
				{Feature: "service", Importance: 0.128},
				{Feature: "logged_in", Importance: 0.093},
				{Feature: "protocol_type", Importance: 0.048},
				{Feature: "num_compromised", Importance: 0.010},
				{Feature: "num_failed_logins", Importance: 0.001},
			},
			AttackProbability: 0.467,
			Confidence:        FloatRange{0.91, 0.99},
		},
		Briefing: BriefingProfile{
			ExceptionalAbove: 99.0,
			StrongAbove:      95.0,
			IndustryAverage:  87.3,
			BlockedAttempts:  IntRange{1200, 1300},
			PreventedLosses:  IntRange{9_000_000, 9_500_000},
			BreachFreeStreak: IntRange{45, 60},
			Recommendations: []string{
				"Continue current ML-driven security strategy - delivering 11,600:1 ROI",
				"Consider expanding threat detection to cover emerging IoT vulnerabilities",
				"Schedule quarterly board presentation on security competitive advantage",
				"Evaluate potential for security-as-a-service revenue stream",
			},
			Compliance: map[string]string{
				"SOC 2":                "Compliant - 99.8% uptime",
				"ISO 27001":            "Audit scheduled Q4 2025",
				"GDPR":                 "Fully compliant - zero incidents",
				"Industry Regulations": "Exceeding all requirements",
			},
			Impact: domain.BusinessImpact{
				AnnualAttacksPrevented: 973_820,
				AnnualCostSavings:      9_737_360_500,
				ROIRatio:               11600,
				FalseAlarmCostAnnual:   839_500,
				NetAnnualBenefit:       9_736_521_000,
				DailyProductivitySaved: 2847,
				BreachPreventionRate:   99.18,
			},
			Competitors: []domain.CompetitorProfile{
				{Name: "Your Organization", Accuracy: 99.1, DetectionRate: 99.2, FalsePositiveRate: 0.8, AnnualSavings: 9_737_360_500, Rank: 1},
				{Name: "Industry Leader (Previous)", Accuracy: 94.2, DetectionRate: 91.7, FalsePositiveRate: 3.2, AnnualSavings: 4_800_000_000, Rank: 2},
				{Name: "Industry Average", Accuracy: 87.3, DetectionRate: 84.1, FalsePositiveRate: 8.7, AnnualSavings: 2_100_000_000, Rank: 3},
				{Name: "Fortune 500 Median", Accuracy: 82.1, DetectionRate: 78.9, FalsePositiveRate: 12.4, AnnualSavings: 1_200_000_000, Rank: 4},
			},
			Categories: []domain.ThreatCategory{
				{Name: "Advanced Persistent Threats", Severity: domain.ThreatHigh, Trend: "increasing"},
				{Name: "Insider Threats", Severity: domain.ThreatMedium, Trend: "stable"},
				{Name: "Ransomware Campaigns", Severity: domain.ThreatHigh, Trend: "decreasing"},
				{Name: "Supply Chain Attacks", Severity: domain.ThreatMedium, Trend: "increasing"},
				{Name: "State-Sponsored Activities", Severity: domain.ThreatLow, Trend: "stable"},
			},
			Board: domain.BoardMetrics{
				SecurityROI:           11600,
				AnnualSavings:         9_737_360_500,
				ThreatPreventionRate:  99.18,
				IndustryRanking:       "1st percentile",
				CompetitiveAdvantage:  "Industry-leading by 4.9 percentage points",
				OperationalExcellence: "99.8% uptime, zero breaches",
				StrategicValue:        "Potential security-as-a-service revenue opportunity",
			},
			AttackPatterns: []domain.AttackPattern{
				{AttackType: "Port Scan", Frequency: 234, DetectionRate: 99.8, AvgConfidence: 0.987},
				{AttackType: "DDoS", Frequency: 189, DetectionRate: 99.1, AvgConfidence: 0.923},
				{AttackType: "Buffer Overflow", Frequency: 156, DetectionRate: 98.7, AvgConfidence: 0.945},
				{AttackType: "Brute Force", Frequency: 142, DetectionRate: 99.4, AvgConfidence: 0.976},
				{AttackType: "Rootkit", Frequency: 87, DetectionRate: 99.9, AvgConfidence: 0.991},
			},
			Benchmarks: []domain.Benchmark{
				{Organization: "Your Model", Accuracy: 99.1, Precision: 99.1, Recall: 99.2, F1Score: 0.992},
				{Organization: "Industry Leader", Accuracy: 94.2, Precision: 92.8, Recall: 91.7, F1Score: 0.922},
				{Organization: "Industry Average", Accuracy: 87.3, Precision: 84.7, Recall: 84.1, F1Score: 0.844},
				{Organization: "Basic Security", Accuracy: 78.5, Precision: 76.2, Recall: 78.9, F1Score: 0.776},
			},
		},
	}
}
