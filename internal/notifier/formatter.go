package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/dustin/go-humanize"

	"DollarSentinel/internal/calculator"
	"DollarSentinel/internal/model"
	"DollarSentinel/internal/screener"
)

var decisionBadges = map[model.Decision]string{
	model.DecisionStrongBuy:        "🟢",
	model.DecisionBuyConsider:      "🟡",
	model.DecisionHold:             "⚪",
	model.DecisionCaution:          "🟠",
	model.DecisionAvoid:            "🔴",
	model.DecisionInsufficientData: "❔",
}

func won(v float64) string { return "₩" + humanize.CommafWithDigits(v, 2) }

func dollars(v float64) string { return "$" + humanize.CommafWithDigits(v, 2) }

// signedWon renders a whole-won amount with an explicit sign.
func signedWon(v float64) string {
	n := int64(v + 0.5)
	if v < 0 {
		n = int64(v - 0.5)
	}
	if n >= 0 {
		return "₩+" + humanize.Comma(n)
	}
	return "₩-" + humanize.Comma(-n)
}

// FormatReport formats a full analysis into a Telegram message.
func FormatReport(resp *screener.Response) string {
	var b strings.Builder
	ga := resp.Analysis

	b.WriteString(fmt.Sprintf("💵 <b>DollarSentinel</b> | %s\n", resp.GeneratedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Window: %d days\n\n", resp.Request.Window))

	// Market summary
	b.WriteString("📈 <b>Market</b>\n")
	if ga != nil {
		b.WriteString(fmt.Sprintf("Rate: %s (%+.2f%% vs mid)\n", won(resp.RateCurrent), ga.RateVsMidPct))
	} else {
		b.WriteString(fmt.Sprintf("Rate: %s\n", won(resp.RateCurrent)))
	}
	switch {
	case resp.DXYCurrent == nil:
		b.WriteString("DXY: N/A\n")
	case ga != nil && ga.DXYVsMidPct != nil:
		b.WriteString(fmt.Sprintf("DXY: %.2f (%+.2f%% vs mid)\n", *resp.DXYCurrent, *ga.DXYVsMidPct))
	default:
		b.WriteString(fmt.Sprintf("DXY: %.2f\n", *resp.DXYCurrent))
	}
	if diff, ok := ga.GapDiff(); ok {
		b.WriteString(fmt.Sprintf("Gap ratio: %.2f (window %.2f, %+.2f)\n", *ga.CurrentGapRatio, *ga.MidGapRatio, diff))
	} else {
		b.WriteString("Gap ratio: N/A\n")
	}
	if dev, ok := ga.FairValueDeviationPct(); ok {
		b.WriteString(fmt.Sprintf("Fair value: %s (rate %+.2f%%)\n", won(*ga.FairValueRate), dev))
	} else {
		b.WriteString("Fair value: N/A\n")
	}

	// Decision
	rec := resp.Recommendation
	b.WriteString(fmt.Sprintf("\n🎯 <b>%s %s</b>\n%s\n", decisionBadges[rec.Decision], rec.Decision, html.EscapeString(rec.Explanation)))
	if len(rec.Evidence) > 0 {
		b.WriteString("\n📋 <b>Evidence</b>\n")
		for _, ev := range rec.Evidence {
			mark := "❌"
			if ev.Met {
				mark = "✅"
			}
			b.WriteString(fmt.Sprintf("%s %d. %s\n", mark, ev.Condition, html.EscapeString(ev.Statement)))
		}
	}

	// Window statistics
	if ga != nil {
		b.WriteString(fmt.Sprintf("\n📊 <b>Rate window</b>\nmin %s | mid %s | max %s\n",
			won(ga.RateStats.Min), won(ga.RateStats.Mid), won(ga.RateStats.Max)))
		if pos, err := calculator.PositionInRange(ga.RateStats.Current, ga.RateStats.Min, ga.RateStats.Max); err == nil {
			b.WriteString(fmt.Sprintf("position in range: %.0f%%\n", pos*100))
		}
		if n := len(resp.RateMA); n > 0 {
			b.WriteString(fmt.Sprintf("20-day average: %s\n", won(resp.RateMA[n-1].Close)))
		}
		if s := ga.DXYStats; s != nil {
			b.WriteString(fmt.Sprintf("📊 <b>DXY window</b>\nmin %.2f | mid %.2f | max %.2f\n", s.Min, s.Mid, s.Max))
		}
	}

	if resp.Plan != nil {
		b.WriteString("\n")
		b.WriteString(FormatPlan(resp.Plan))
	}

	if tr := resp.Trend; tr != nil {
		b.WriteString(fmt.Sprintf("\n🌍 <b>DXY trend</b>\nmedium-term: %s | short-term: %s\n", tr.MediumTerm, tr.ShortTerm))
	}

	for _, n := range resp.Notes {
		b.WriteString(fmt.Sprintf("\n⚠️ %s", html.EscapeString(n)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPlan formats the investment plan and its scenario table.
func FormatPlan(p *model.InvestmentPlan) string {
	var b strings.Builder
	b.WriteString("💰 <b>Investment</b>\n")
	b.WriteString(fmt.Sprintf("Amount: ₩%s | fee (%.1f%%): ₩%s\n",
		humanize.Comma(int64(p.GrossAmount)), p.FeeRate*100, humanize.Comma(int64(p.FeeAmount+0.5))))
	b.WriteString(fmt.Sprintf("Rate: %s | net: ₩%s\n", won(p.Rate), humanize.Comma(int64(p.NetAmount+0.5))))
	b.WriteString(fmt.Sprintf("Dollars: %s | after fees: %s\n", dollars(p.QuantityGross), dollars(p.QuantityNet)))

	b.WriteString("\n📈 <b>Scenarios</b>\n<pre>")
	for _, row := range p.Scenarios {
		b.WriteString(fmt.Sprintf("%+5.1f%% %12s %12s %14s\n",
			row.PctChange, won(row.ProjectedRate), dollars(row.ProjectedQuantity), signedWon(row.ProfitLoss)))
	}
	b.WriteString("</pre>\n")
	return b.String()
}

// FormatHelp lists the supported chat commands.
func FormatHelp() string {
	return "Commands:\n" +
		"• /analyze [amount] [window] - run an analysis now\n" +
		"• /scenario [amount] - investment plan only\n" +
		"• /help - this message"
}
