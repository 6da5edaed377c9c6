package strategy

import (
	"B3Radar/internal/calculator"
	"B3Radar/internal/model"
)

// Analyze runs the full per-ticker pipeline on a raw series.
func Analyze(ticker string, series *model.PriceSeries, liquidityRank int, tf model.Timeframe) model.Analysis {
	return AnalyzeSnapshot(calculator.BuildSnapshot(ticker, series, liquidityRank), tf)
}

// AnalyzeSnapshot scores, classifies and plans an already computed snapshot.
func AnalyzeSnapshot(snap model.IndicatorSnapshot, tf model.Timeframe) model.Analysis {
	signals := Classify(snap, tf)
	return model.Analysis{
		Ticker:   snap.Ticker,
		Snapshot: snap,
		Score:    signals.Score,
		Signals:  signals,
		Plan:     Plan(snap, tf),
	}
}
