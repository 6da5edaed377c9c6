package strategy

import (
	"fmt"
	"math"
	"sort"

	"B3Radar/internal/model"
)

const (
	// MinProbability is the acceptance threshold for planner candidates.
	MinProbability = 65.0
	// MaxCandidates caps each side of a trade plan.
	MaxCandidates = 3

	fallbackEntryProbability = 60.0
	microTargetFloor         = 70.0
)

// Plan derives entry points below the price, exit targets above it and a stop loss. Every
// candidate is scored by the probability heuristic and dropped below MinProbability; an
// empty side falls back to a single synthesized candidate.
func Plan(snap model.IndicatorSnapshot, tf model.Timeframe) model.TradePlan {
	plan := model.TradePlan{Timeframe: tf}
	if !snap.HasPrice() {
		placeholder := model.PricePoint{Reason: model.ReasonAwaitingData}
		plan.Entry = []model.PricePoint{placeholder}
		plan.Exit = []model.PricePoint{placeholder}
		return plan
	}

	cfg := tf.Config()
	plan.StopLoss = snap.Support * cfg.StopDistance

	plan.Entry = top(qualifyingEntries(snap, cfg))
	if len(plan.Entry) == 0 {
		target := snap.Price * 0.99
		plan.Entry = []model.PricePoint{{
			Price:       target,
			Reason:      model.ReasonPriceProximate,
			Note:        fmt.Sprintf("near current price (R$ %.2f)", snap.Price),
			Distance:    distancePct(snap.Price, target),
			Probability: fallbackEntryProbability,
		}}
	}

	plan.Exit = top(qualifyingExits(snap, cfg, plan.StopLoss))
	if len(plan.Exit) == 0 {
		target := snap.Price * (1 + cfg.ConservativeTarget*0.7)
		plan.Exit = []model.PricePoint{{
			Price:       target,
			Reason:      model.ReasonMicroTarget,
			Note:        fmt.Sprintf("micro target +%.2f%%", cfg.ConservativeTarget*70),
			Distance:    distancePct(snap.Price, target),
			Probability: math.Max(probability(snap, cfg, target, false), microTargetFloor),
		}}
	}
	return plan
}

// qualifyingEntries returns every entry candidate below the price that passes the
// probability threshold, in generation order.
func qualifyingEntries(snap model.IndicatorSnapshot, cfg model.TimeframeConfig) []model.PricePoint {
	var out []model.PricePoint
	add := func(target float64, reason, note string) {
		dist := distancePct(snap.Price, target)
		if !(dist < 0) {
			return
		}
		p := probability(snap, cfg, target, true)
		if p < MinProbability {
			return
		}
		out = append(out, model.PricePoint{Price: target, Reason: reason, Note: note, Distance: dist, Probability: p})
	}

	if snap.RSI < cfg.RSIOversold+15 {
		target := math.Min(snap.Support*1.003, snap.Price*0.99)
		add(target, model.ReasonSupport, fmt.Sprintf("support R$ %.2f with RSI %.1f", snap.Support, snap.RSI))
	}
	if snap.MACD > 0 && snap.Price > snap.MA20 && snap.Price > snap.MA50 && snap.ADX > cfg.ADXMin {
		add(snap.MA20*0.997, model.ReasonMA20Pullback,
			fmt.Sprintf("pullback to MA20 R$ %.2f (MACD %.3f, ADX %.1f)", snap.MA20, snap.MACD, snap.ADX))
	}
	if snap.BollingerLower < snap.Price {
		target := snap.BollingerLower * 1.008
		if math.Abs(distancePct(snap.Price, target)) < 8 {
			add(target, model.ReasonBollingerLower, fmt.Sprintf("rebound off lower band R$ %.2f", snap.BollingerLower))
		}
	}
	return out
}

// qualifyingExits returns every exit candidate above the price, within the timeframe's
// maximum target distance and passing the probability threshold, in generation order.
func qualifyingExits(snap model.IndicatorSnapshot, cfg model.TimeframeConfig, stopLoss float64) []model.PricePoint {
	maxDist := cfg.MaxTarget * 100
	var out []model.PricePoint
	add := func(target float64, reason, note string) {
		dist := distancePct(snap.Price, target)
		if !(dist > 0) || dist > maxDist {
			return
		}
		p := probability(snap, cfg, target, false)
		if p < MinProbability {
			return
		}
		out = append(out, model.PricePoint{Price: target, Reason: reason, Note: note, Distance: dist, Probability: p})
	}

	add(snap.Price*(1+cfg.ConservativeTarget), model.ReasonConservativeTarget,
		fmt.Sprintf("conservative target +%.1f%%", cfg.ConservativeTarget*100))
	if snap.MACD > 0 {
		add(snap.Price*(1+cfg.RealisticTarget), model.ReasonRealisticTarget,
			fmt.Sprintf("realistic target +%.1f%% (MACD %.3f)", cfg.RealisticTarget*100, snap.MACD))
	}
	if snap.Resistance > snap.Price {
		add(snap.Resistance, model.ReasonTechnicalResistance, fmt.Sprintf("resistance R$ %.2f", snap.Resistance))
	}
	if snap.ADX > 40 && snap.MACD > 0.15 && snap.RSI > 55 && snap.RSI < 75 {
		add(snap.Price*(1+cfg.RealisticTarget*1.15), model.ReasonStrongTrend,
			fmt.Sprintf("strong trend (ADX %.1f, MACD %.3f)", snap.ADX, snap.MACD))
	}
	if stopLoss > 0 && stopLoss < snap.Price {
		add(snap.Price+1.5*(snap.Price-stopLoss), model.ReasonRiskReward,
			fmt.Sprintf("1.5:1 reward over stop R$ %.2f", stopLoss))
	}
	return out
}

// top orders candidates by probability, keeping generation order among ties, and keeps the
// best MaxCandidates.
func top(points []model.PricePoint) []model.PricePoint {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Probability > points[j].Probability
	})
	if len(points) > MaxCandidates {
		points = points[:MaxCandidates]
	}
	return points
}

// probability is a hand-tuned heuristic in [10, 92]: closer targets score higher, then RSI,
// MACD, ADX and trend alignment push it up or down depending on the side of the trade.
func probability(snap model.IndicatorSnapshot, cfg model.TimeframeConfig, target float64, isEntry bool) float64 {
	p := 40.0

	// Band edges are compared at 1e-6 so a target placed exactly on an edge stays there.
	eff := math.Round(math.Abs(distancePct(snap.Price, target))/cfg.Multiplier*1e6) / 1e6
	switch {
	case eff <= 1:
		p += 25
	case eff <= 2:
		p += 20
	case eff <= 3.5:
		p += 15
	case eff <= 5:
		p += 10
	case eff <= 8:
		p += 5
	default:
		p -= 10
	}

	if isEntry {
		switch {
		case snap.RSI < cfg.RSIOversold:
			p += 10
		case snap.RSI < cfg.RSIOversold+15:
			p += 5
		case snap.RSI > cfg.RSIOverbought:
			p -= 10
		}
		switch {
		case snap.MACD > 0:
			p += 5
		case snap.MACD < -cfg.MACDStrong:
			p -= 5
		}
	} else {
		switch {
		case snap.RSI > cfg.RSIOverbought:
			p += 10
		case snap.RSI >= 50:
			p += 5
		case snap.RSI < cfg.RSIOversold:
			p -= 10
		}
		switch {
		case snap.MACD > cfg.MACDStrong:
			p += 10
		case snap.MACD > 0:
			p += 5
		default:
			p -= 5
		}
	}

	switch {
	case snap.ADX > cfg.ADXStrong:
		p += 8
	case snap.ADX > cfg.ADXMin:
		p += 4
	}

	aboveBoth := snap.Price > snap.MA20 && snap.Price > snap.MA50
	belowBoth := snap.Price < snap.MA20 && snap.Price < snap.MA50
	switch {
	case aboveBoth && isEntry:
		p += 5
	case aboveBoth:
		p += 7
	case belowBoth && isEntry:
		p -= 5
	case belowBoth:
		p -= 7
	}

	if isEntry && snap.Support > 0 && math.Abs(target-snap.Support)/snap.Support < 0.015 {
		p += 8
	}

	if math.IsNaN(p) {
		return 10
	}
	return math.Max(10, math.Min(92, p))
}

// distancePct is the signed percentage from price to target.
func distancePct(price, target float64) float64 {
	return (target - price) / price * 100
}
