package domain

import "time"

// ThreatLevel is the coarse risk grade shown on the command center gauge.
type ThreatLevel string

const (
	ThreatLow    ThreatLevel = "LOW"
	ThreatMedium ThreatLevel = "MEDIUM"
	ThreatHigh   ThreatLevel = "HIGH"
)

// EventStatus is always BLOCKED for simulated detections.
const EventStatusBlocked = "BLOCKED"

// Snapshot is one simulated point-in-time reading of the network.
type Snapshot struct {
	Timestamp         time.Time   `json:"timestamp"`
	ThreatLevel       ThreatLevel `json:"threat_level"`
	AttacksPrevented  int         `json:"attacks_prevented"`
	CostSavings       int64       `json:"cost_savings"`   // whole dollars
	NetworkHealth     float64     `json:"network_health"` // percent, one decimal
	ModelAccuracy     float64     `json:"model_accuracy"`
	FalsePositiveRate float64     `json:"false_positive_rate"`
	AttacksLastHour   int         `json:"attacks_last_hour"`
}

// ThreatEvent is one simulated historical detection record.
type ThreatEvent struct {
	DetectedAt   time.Time   `json:"detected_at"`
	Time         string      `json:"time"` // HH:MM, the sort key
	AttackType   string      `json:"type"`
	SourceIP     string      `json:"source"`
	Service      string      `json:"service"`
	RiskLevel    ThreatLevel `json:"risk_level"`
	Confidence   float64     `json:"confidence"`
	Status       string      `json:"status"`
	BytesBlocked int         `json:"bytes_blocked"`
}

// ForecastDay is one projected day of the 7-day threat forecast.
type ForecastDay struct {
	Date             time.Time   `json:"date"`
	Label            string      `json:"label"` // MM/DD
	Day              string      `json:"day"`   // Mon, Tue...
	PredictedAttacks int         `json:"predicted_attacks"`
	EstimatedSavings int64       `json:"estimated_savings"`
	RiskLevel        ThreatLevel `json:"risk_level"`
	Confidence       float64     `json:"confidence"`
}

// Prediction is a single sampled classifier verdict.
type Prediction struct {
	IsAttack   bool      `json:"is_attack"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// Overview groups everything the command center page renders in one call.
type Overview struct {
	Snapshot Snapshot         `json:"snapshot"`
	Threats  []ThreatEvent    `json:"threats"`
	Model    ModelPerformance `json:"model"`
	Impact   BusinessImpact   `json:"impact"`
	Seed     uint64           `json:"seed"` // replays the response via ?seed=
}
