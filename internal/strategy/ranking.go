package strategy

import (
	"sort"

	"B3Radar/internal/model"
)

const (
	// TopN is the size of the opportunity list.
	TopN = 5
	// OpportunityScore is the score a ticker needs to enter the list before backfill.
	OpportunityScore = 70

	scoreWeight     = 0.7
	liquidityWeight = 0.3
	unrankedTicker  = 31
)

// Composite weighs the score against liquidity; rank 1 is the most liquid ticker and 0 or
// anything past the universe counts as unranked.
func Composite(score, liquidityRank int) float64 {
	if liquidityRank <= 0 || liquidityRank > unrankedTicker {
		liquidityRank = unrankedTicker
	}
	return scoreWeight*float64(score) + liquidityWeight*float64(unrankedTicker-liquidityRank)
}

// Rank scores every snapshot and returns the top opportunities: tickers scoring at least
// OpportunityScore first, then the best remaining composites until TopN are listed.
func Rank(universe map[string]model.IndicatorSnapshot) []model.OpportunityRecord {
	all := make([]model.OpportunityRecord, 0, len(universe))
	for ticker, snap := range universe {
		snap.Ticker = ticker
		score := Score(snap)
		all = append(all, model.OpportunityRecord{
			IndicatorSnapshot: snap,
			Score:             score,
			Composite:         Composite(score, snap.LiquidityRank),
		})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Composite != all[j].Composite {
			return all[i].Composite > all[j].Composite
		}
		return all[i].Ticker < all[j].Ticker
	})

	top := make([]model.OpportunityRecord, 0, TopN)
	picked := make(map[string]bool, TopN)
	for _, rec := range all {
		if len(top) == TopN {
			break
		}
		if rec.Score >= OpportunityScore {
			top = append(top, rec)
			picked[rec.Ticker] = true
		}
	}
	for _, rec := range all {
		if len(top) == TopN {
			break
		}
		if !picked[rec.Ticker] {
			top = append(top, rec)
			picked[rec.Ticker] = true
		}
	}
	return top
}
