package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTimeframe is returned when a timeframe name cannot be parsed.
var ErrUnknownTimeframe = errors.New("unknown timeframe")

// Timeframe selects the threshold table used by the classifier and the planner.
type Timeframe int

const (
	Daily Timeframe = iota
	Weekly
	Monthly
	Yearly
)

// Timeframes lists every timeframe in ascending horizon.
var Timeframes = []Timeframe{Daily, Weekly, Monthly, Yearly}

// TimeframeConfig is the immutable threshold record of one timeframe.
type TimeframeConfig struct {
	RSIOversold        float64
	RSIOverbought      float64
	ADXMin             float64
	ADXStrong          float64
	MACDStrong         float64
	StopDistance       float64 // stop loss = support * StopDistance
	MaxTarget          float64 // exits farther than this fraction are rejected
	ConservativeTarget float64
	RealisticTarget    float64
	Multiplier         float64
	ProximityPct       float64 // support/resistance proximity, in percent
	LowVolumeRatio     float64
}

var (
	dailyConfig = TimeframeConfig{
		RSIOversold: 30, RSIOverbought: 75, ADXMin: 25, ADXStrong: 35, MACDStrong: 0.15,
		StopDistance: 0.97, MaxTarget: 0.025, ConservativeTarget: 0.008, RealisticTarget: 0.022,
		Multiplier: 1, ProximityPct: 1.5, LowVolumeRatio: 0.5,
	}
	weeklyConfig = TimeframeConfig{
		RSIOversold: 32, RSIOverbought: 73, ADXMin: 22, ADXStrong: 30, MACDStrong: 0.12,
		StopDistance: 0.95, MaxTarget: 0.06, ConservativeTarget: 0.02, RealisticTarget: 0.04,
		Multiplier: 1.5, ProximityPct: 2, LowVolumeRatio: 0.6,
	}
	monthlyConfig = TimeframeConfig{
		RSIOversold: 35, RSIOverbought: 70, ADXMin: 20, ADXStrong: 28, MACDStrong: 0.10,
		StopDistance: 0.92, MaxTarget: 0.12, ConservativeTarget: 0.04, RealisticTarget: 0.08,
		Multiplier: 2.5, ProximityPct: 3, LowVolumeRatio: 0.7,
	}
	yearlyConfig = TimeframeConfig{
		RSIOversold: 38, RSIOverbought: 68, ADXMin: 18, ADXStrong: 25, MACDStrong: 0.08,
		StopDistance: 0.88, MaxTarget: 0.25, ConservativeTarget: 0.08, RealisticTarget: 0.15,
		Multiplier: 4, ProximityPct: 5, LowVolumeRatio: 0.8,
	}
)

// Config returns the threshold table of the timeframe.
func (t Timeframe) Config() TimeframeConfig {
	switch t {
	case Daily:
		return dailyConfig
	case Weekly:
		return weeklyConfig
	case Monthly:
		return monthlyConfig
	case Yearly:
		return yearlyConfig
	}
	panic(fmt.Sprintf("model: timeframe %d has no config", int(t)))
}

func (t Timeframe) String() string {
	switch t {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	}
	return fmt.Sprintf("Timeframe(%d)", int(t))
}

// ParseTimeframe maps a name (daily, weekly, monthly, yearly) to a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "d":
		return Daily, nil
	case "weekly", "w":
		return Weekly, nil
	case "monthly", "m":
		return Monthly, nil
	case "yearly", "y":
		return Yearly, nil
	}
	return Daily, fmt.Errorf("%w: %q", ErrUnknownTimeframe, s)
}

func (t Timeframe) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Timeframe) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeframe(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
