package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"DollarSentinel/internal/screener"
)

const na = "N/A"

// Row is one item/value pair of the summary table.
type Row struct {
	Item  string
	Value string
}

// SummaryFileName returns the dated name of the summary CSV.
func SummaryFileName(t time.Time) string {
	return fmt.Sprintf("dollar_investment_analysis_%s.csv", t.Format("20060102"))
}

// Rows flattens a response into the summary table. Absent values are N/A.
func Rows(resp *screener.Response) []Row {
	ga := resp.Analysis
	rows := []Row{
		{"analysis_id", resp.ID},
		{"generated_at", resp.GeneratedAt.Format(time.RFC3339)},
		{"window_days", strconv.Itoa(resp.Request.Window)},
		{"current_rate", fixed(resp.RateCurrent, 2)},
		{"rate_vs_mid_pct", na},
		{"current_dxy", optFixed(resp.DXYCurrent, 2)},
		{"dxy_vs_mid_pct", na},
		{"current_gap_ratio", na},
		{"mid_gap_ratio", na},
		{"fair_value_rate", na},
	}
	if ga != nil {
		rows[4].Value = signedPct(ga.RateVsMidPct)
		if ga.DXYVsMidPct != nil {
			rows[6].Value = signedPct(*ga.DXYVsMidPct)
		}
		rows[7].Value = optFixed(ga.CurrentGapRatio, 2)
		rows[8].Value = optFixed(ga.MidGapRatio, 2)
		rows[9].Value = optFixed(ga.FairValueRate, 2)
	}

	if p := resp.Plan; p != nil {
		rows = append(rows,
			Row{"investment_amount", fixed(p.GrossAmount, 0)},
			Row{"fee_amount", fixed(p.FeeAmount, 0)},
			Row{"purchasable_dollars", fixed(p.QuantityGross, 2)},
			Row{"net_dollars", fixed(p.QuantityNet, 2)},
		)
	} else {
		rows = append(rows,
			Row{"investment_amount", fixed(resp.Request.Amount, 0)},
			Row{"fee_amount", na},
			Row{"purchasable_dollars", na},
			Row{"net_dollars", na},
		)
	}

	rec := resp.Recommendation
	rows = append(rows,
		Row{"decision", string(rec.Decision)},
		Row{"conditions_met", strconv.Itoa(rec.ConditionsMet)},
		Row{"conditions_total", strconv.Itoa(rec.ConditionsTotal)},
	)
	return rows
}

// WriteSummaryCSV writes the summary table with an item,value header.
func WriteSummaryCSV(w io.Writer, resp *screener.Response) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"item", "value"}); err != nil {
		return err
	}
	for _, r := range Rows(resp) {
		if err := cw.Write([]string{r.Item, r.Value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveSummaryCSV writes the summary to path and returns the file written.
// A directory path gets the dated SummaryFileName inside it.
func SaveSummaryCSV(path string, resp *screener.Response) (string, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, SummaryFileName(resp.GeneratedAt))
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	if err := writeAndClose(f, resp); err != nil {
		return "", err
	}
	return path, nil
}

func writeAndClose(wc io.WriteCloser, resp *screener.Response) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv: %w", cerr)
		}
	}()
	if err := WriteSummaryCSV(wc, resp); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

func optFixed(v *float64, places int32) string {
	if v == nil {
		return na
	}
	return fixed(*v, places)
}

func signedPct(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.Sign() >= 0 {
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}
