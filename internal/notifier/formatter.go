package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"B3Radar/internal/model"
)

// FormatTop formats the ranked opportunity list into a Telegram message.
func FormatTop(top []model.OpportunityRecord, tf model.Timeframe, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>B3Radar top %d</b> | %s | %s\n\n", len(top), tf, at.Format("2006-01-02 15:04")))
	if len(top) == 0 {
		b.WriteString("No opportunities yet.\n")
		return b.String()
	}
	for i, rec := range top {
		b.WriteString(fmt.Sprintf("%d. <b>%s</b> R$ %.2f (%+.2f%%)\n", i+1, rec.Ticker, rec.Price, rec.ChangePct))
		b.WriteString(fmt.Sprintf("   score %d | liquidity #%d | RSI %.1f | ADX %.1f\n",
			rec.Score, rec.LiquidityRank, rec.RSI, rec.ADX))
	}
	return b.String()
}

// FormatAnalysis formats the full analysis of one ticker.
func FormatAnalysis(a model.Analysis) string {
	var b strings.Builder
	s := a.Snapshot
	b.WriteString(fmt.Sprintf("🔎 <b>%s</b> | %s\n\n", a.Ticker, a.Plan.Timeframe))
	b.WriteString(fmt.Sprintf("Price: R$ %.2f (%+.2f%%)\n", s.Price, s.ChangePct))
	b.WriteString(fmt.Sprintf("Score: %d/100\n", a.Score))
	b.WriteString(fmt.Sprintf("RSI %.1f | MACD %.3f | ADX %.1f\n", s.RSI, s.MACD, s.ADX))
	b.WriteString(fmt.Sprintf("MA20 %.2f | MA50 %.2f\n", s.MA20, s.MA50))
	b.WriteString(fmt.Sprintf("Support %.2f | Resistance %.2f\n", s.Support, s.Resistance))

	writeList(&b, "🟢 Entry signals", a.Signals.Entry)
	writeList(&b, "🔴 Exit signals", a.Signals.Exit)
	writeList(&b, "⚠️ Warnings", a.Signals.Warnings)

	if len(a.Plan.Entry) > 0 {
		b.WriteString("\n<b>Entry points</b>\n")
		for _, p := range a.Plan.Entry {
			b.WriteString(formatPoint(p))
		}
	}
	if len(a.Plan.Exit) > 0 {
		b.WriteString("\n<b>Exit points</b>\n")
		for _, p := range a.Plan.Exit {
			b.WriteString(formatPoint(p))
		}
	}
	if a.Plan.StopLoss > 0 {
		b.WriteString(fmt.Sprintf("\n🛑 Stop loss: R$ %.2f\n", a.Plan.StopLoss))
	}
	return b.String()
}

func formatPoint(p model.PricePoint) string {
	if p.Reason == model.ReasonAwaitingData {
		return "• awaiting data\n"
	}
	return fmt.Sprintf("• R$ %.2f (%+.2f%%) %s, %.0f%%\n", p.Price, p.Distance, p.Reason, p.Probability)
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n<b>%s</b>\n", title))
	for _, item := range items {
		b.WriteString("• " + html.EscapeString(item) + "\n")
	}
}

// FormatAlert formats one raised alert.
func FormatAlert(a model.Alert) string {
	icon := "🟢"
	if a.Type == model.AlertExit {
		icon = "🔴"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s</b> %s\n", icon, a.Ticker, html.EscapeString(a.Message)))
	b.WriteString(fmt.Sprintf("Score: %d | %s\n", a.Score, a.Timestamp.Format("15:04:05")))
	for _, s := range a.Signals {
		b.WriteString("• " + html.EscapeString(s) + "\n")
	}
	return b.String()
}

// FormatAlerts formats the alert history, newest first.
func FormatAlerts(alerts []model.Alert) string {
	if len(alerts) == 0 {
		return "🔕 No alerts yet."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 <b>Recent alerts</b> (%d)\n\n", len(alerts)))
	for _, a := range alerts {
		b.WriteString(fmt.Sprintf("%s %s %s: %s\n",
			a.Timestamp.Format("01-02 15:04"), a.Type, a.Ticker, html.EscapeString(a.Message)))
	}
	return b.String()
}

// FormatWatchlist formats the user watchlist.
func FormatWatchlist(tickers []string) string {
	if len(tickers) == 0 {
		return "👀 Watchlist is empty. Use /watch add TICKER."
	}
	return fmt.Sprintf("👀 <b>Watchlist</b> (%d)\n%s", len(tickers), strings.Join(tickers, ", "))
}
