package model

import "time"

// Reason tags identify which planner rule produced a PricePoint.
const (
	ReasonAwaitingData        = "awaiting data"
	ReasonSupport             = "support"
	ReasonMA20Pullback        = "ma20-pullback"
	ReasonBollingerLower      = "bollinger-lower"
	ReasonPriceProximate      = "price-proximate"
	ReasonConservativeTarget  = "conservative-target"
	ReasonRealisticTarget     = "realistic-target"
	ReasonTechnicalResistance = "technical-resistance"
	ReasonStrongTrend         = "strong-trend"
	ReasonRiskReward          = "risk-reward"
	ReasonMicroTarget         = "micro-target"
)

// PricePoint is an entry or exit candidate.
type PricePoint struct {
	Price       float64 `json:"price"`
	Reason      string  `json:"reason"`
	Note        string  `json:"note,omitempty"`
	Distance    float64 `json:"distance"` // signed percent from current price
	Probability float64 `json:"probability"`
}

// TradePlan is the planner output for one snapshot and timeframe.
type TradePlan struct {
	Timeframe Timeframe    `json:"timeframe"`
	Entry     []PricePoint `json:"entry"`
	Exit      []PricePoint `json:"exit"`
	StopLoss  float64      `json:"stopLoss"`
}

// Signals holds the categorized textual signals of a snapshot.
type Signals struct {
	Entry    []string `json:"entry"`
	Exit     []string `json:"exit"`
	Warnings []string `json:"warnings"`
	Score    int      `json:"score"`
}

// OpportunityRecord is one row of the ranked opportunity list.
type OpportunityRecord struct {
	IndicatorSnapshot
	Score     int     `json:"score"`
	Composite float64 `json:"composite"`
}

// Analysis bundles every engine output for one ticker.
type Analysis struct {
	Ticker   string            `json:"ticker"`
	Snapshot IndicatorSnapshot `json:"snapshot"`
	Score    int               `json:"score"`
	Signals  Signals           `json:"signals"`
	Plan     TradePlan         `json:"plan"`
}

// AlertType distinguishes buy and sell alerts.
type AlertType string

const (
	AlertEntry AlertType = "entry"
	AlertExit  AlertType = "exit"
)

// Alert is raised when a top opportunity crosses an alert rule.
type Alert struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Ticker    string    `json:"ticker"`
	Message   string    `json:"message"`
	Signals   []string  `json:"signals"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}
