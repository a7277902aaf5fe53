package domain

// ModelPerformance is the fixed scorecard of the detection model.
type ModelPerformance struct {
	AccuracyPercent   float64 `json:"accuracy_percent"`
	PrecisionPercent  float64 `json:"precision_percent"`
	RecallPercent     float64 `json:"recall_percent"`
	F1Score           float64 `json:"f1_score"`
	AttacksMissed     int     `json:"attacks_missed"`
	TotalAttacks      int     `json:"total_attacks"`
	FalsePositiveRate float64 `json:"false_positive_rate"`
	AnnualSavings     int64   `json:"annual_savings"`
}

type FeatureWeight struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

type BusinessImpact struct {
	AnnualAttacksPrevented int64   `json:"annual_attacks_prevented"`
	AnnualCostSavings      int64   `json:"annual_cost_savings"`
	ROIRatio               int     `json:"roi_ratio"`
	FalseAlarmCostAnnual   int64   `json:"false_alarm_cost_annual"`
	NetAnnualBenefit       int64   `json:"net_annual_benefit"`
	DailyProductivitySaved int     `json:"daily_productivity_saved"` // hours
	BreachPreventionRate   float64 `json:"breach_prevention_rate"`
}

// ExecutiveSummary is the daily C-level briefing.
type ExecutiveSummary struct {
	Date             string            `json:"date"`
	ThreatPosture    string            `json:"threat_posture"`
	StrategicStatus  string            `json:"strategic_status"`
	KeyIncidents     []string          `json:"key_incidents"`
	Recommendations  []string          `json:"recommendations"`
	ComplianceStatus map[string]string `json:"compliance_status"`
	NextBriefing     string            `json:"next_briefing"`
}

type CompetitorProfile struct {
	Name              string  `json:"name"`
	Accuracy          float64 `json:"accuracy"`
	DetectionRate     float64 `json:"detection_rate"`
	FalsePositiveRate float64 `json:"false_positive_rate"`
	AnnualSavings     int64   `json:"annual_savings"`
	Rank              int     `json:"rank"`
}

type ThreatCategory struct {
	Name     string      `json:"name"`
	Severity ThreatLevel `json:"severity"`
	Trend    string      `json:"trend"` // increasing, stable, decreasing
}

type BoardMetrics struct {
	SecurityROI           int     `json:"security_roi"`
	AnnualSavings         int64   `json:"annual_savings"`
	ThreatPreventionRate  float64 `json:"threat_prevention_rate"`
	IndustryRanking       string  `json:"industry_ranking"`
	CompetitiveAdvantage  string  `json:"competitive_advantage"`
	OperationalExcellence string  `json:"operational_excellence"`
	StrategicValue        string  `json:"strategic_value"`
}

// AttackPattern is the per attack type row of the deep-dive page.
type AttackPattern struct {
	AttackType    string  `json:"attack_type"`
	Frequency     int     `json:"frequency"`
	DetectionRate float64 `json:"detection_rate"`
	AvgConfidence float64 `json:"avg_confidence"`
}

type Benchmark struct {
	Organization string  `json:"organization"`
	Accuracy     float64 `json:"accuracy"`
	Precision    float64 `json:"precision"`
	Recall       float64 `json:"recall"`
	F1Score      float64 `json:"f1_score"`
}
