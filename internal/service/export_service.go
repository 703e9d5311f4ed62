package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/noahjmorrison/onnaflips/internal/analytics"
	"github.com/noahjmorrison/onnaflips/internal/model"
	"github.com/noahjmorrison/onnaflips/internal/repository"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// TaxReportOptions bounds the report to a sale-date range. Nil bounds are
// open ends; IncludeListed appends the unsold inventory section.
type TaxReportOptions struct {
	Start         *time.Time
	End           *time.Time
	IncludeListed bool
}

type ExportService interface {
	TaxReportPDF(ctx context.Context, opts TaxReportOptions) ([]byte, string, error)
	TaxReportXLSX(ctx context.Context, opts TaxReportOptions) ([]byte, string, error)
}

type exportService struct {
	itemRepo repository.ItemRepository
	now      func() time.Time
}

func NewExportService(itemRepo repository.ItemRepository) ExportService {
	return &exportService{itemRepo: itemRepo, now: time.Now}
}

// taxReport is the assembled report data, shared by both renderers.
// Document totals are summed in decimal: the analytics payloads stay
// float (presentation rounds them), but numbers going on a tax form
// should not carry float drift.
type taxReport struct {
	Period          string
	Generated       time.Time
	Sold            []model.Item
	Listed          []model.Item
	TotalCost       decimal.Decimal
	TotalRevenue    decimal.Decimal
	TotalProfit     decimal.Decimal
	PredictedProfit decimal.Decimal
	InvestedCost    decimal.Decimal
	AvgMarginPct    *float64 // nil renders as N/A
	Monthly         []monthRow
	Deep            model.DeepAnalytics
}

type monthRow struct {
	Label     string
	Items     int
	Cost      decimal.Decimal
	Revenue   decimal.Decimal
	Profit    decimal.Decimal
	MarginPct *float64
}

func (s *exportService) buildReport(ctx context.Context, opts TaxReportOptions) (*taxReport, error) {
	sold, err := s.itemRepo.ListSoldBetween(ctx, opts.Start, opts.End)
	if err != nil {
		return nil, fmt.Errorf("load sold items: %w", err)
	}
	var listed []model.Item
	if opts.IncludeListed {
		if listed, err = s.itemRepo.ListByStatus(ctx, model.StatusListed); err != nil {
			return nil, fmt.Errorf("load listed items: %w", err)
		}
	}

	rep := &taxReport{
		Period:    periodLabel(opts.Start, opts.End),
		Generated: s.now(),
		Sold:      sold,
		Listed:    listed,
	}

	var marginSum float64
	var marginCount int
	for _, it := range sold {
		rep.TotalCost = rep.TotalCost.Add(decimal.NewFromFloat(it.Cost))
		if it.SoldFor != nil {
			rep.TotalRevenue = rep.TotalRevenue.Add(decimal.NewFromFloat(*it.SoldFor))
		}
		if p := it.ActualProfit(); p != nil {
			rep.TotalProfit = rep.TotalProfit.Add(decimal.NewFromFloat(*p))
		}
		if m := it.ActualMargin(); m != nil {
			marginSum += *m
			marginCount++
		}
	}
	if marginCount > 0 {
		pct := marginSum / float64(marginCount) * 100
		rep.AvgMarginPct = &pct
	}
	for _, it := range listed {
		rep.InvestedCost = rep.InvestedCost.Add(decimal.NewFromFloat(it.Cost))
		if p := it.PredictedProfit(); p != nil {
			rep.PredictedProfit = rep.PredictedProfit.Add(decimal.NewFromFloat(*p))
		}
	}

	rep.Monthly = monthlyBreakout(sold)

	// The wild-analysis sections are the deep analytics of the filtered
	// window, plus aging for the listed section when requested.
	combined := append(append([]model.Item{}, sold...), listed...)
	rep.Deep = analytics.Analyze(combined, s.now())

	return rep, nil
}

func monthlyBreakout(sold []model.Item) []monthRow {
	type acc struct {
		items                 int
		cost, revenue, profit decimal.Decimal
	}
	byMonth := map[string]*acc{}
	var keys []string
	for _, it := range sold {
		if it.DateSold == nil {
			continue
		}
		key := it.DateSold.Format("2006-01")
		a := byMonth[key]
		if a == nil {
			a = &acc{}
			byMonth[key] = a
			keys = append(keys, key)
		}
		a.items++
		a.cost = a.cost.Add(decimal.NewFromFloat(it.Cost))
		if it.SoldFor != nil {
			a.revenue = a.revenue.Add(decimal.NewFromFloat(*it.SoldFor))
		}
		if p := it.ActualProfit(); p != nil {
			a.profit = a.profit.Add(decimal.NewFromFloat(*p))
		}
	}

	// ListSoldBetween orders by sale date, so first-seen key order is
	// already chronological.
	rows := make([]monthRow, 0, len(keys))
	for _, key := range keys {
		a := byMonth[key]
		row := monthRow{
			Label:   monthLabel(key),
			Items:   a.items,
			Cost:    a.cost,
			Revenue: a.revenue,
			Profit:  a.profit,
		}
		if a.revenue.IsPositive() {
			pct, _ := a.profit.Div(a.revenue).Mul(decimal.NewFromInt(100)).Float64()
			row.MarginPct = &pct
		}
		rows = append(rows, row)
	}
	return rows
}

func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

func periodLabel(start, end *time.Time) string {
	const layout = "01/02/2006"
	switch {
	case start != nil && end != nil:
		return start.Format(layout) + " - " + end.Format(layout)
	case start != nil:
		return "From " + start.Format(layout)
	case end != nil:
		return "Through " + end.Format(layout)
	default:
		return "All dates"
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func pctOrNA(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", *p)
}

// TaxReportPDF renders the tax report document and returns its bytes and
// the suggested download filename.
func (s *exportService) TaxReportPDF(ctx context.Context, opts TaxReportOptions) ([]byte, string, error) {
	rep, err := s.buildReport(ctx, opts)
	if err != nil {
		return nil, "", err
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, "Onna's Flips - Tax Report")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, "Period: "+rep.Period)
	pdf.Ln(5)
	pdf.Cell(0, 5, "Generated: "+rep.Generated.Format("01/02/2006"))
	pdf.Ln(10)

	sectionTitle(pdf, "Summary")
	pdfTable(pdf,
		[]string{"Items Sold", "Total Revenue", "Total Profit", "Cost of Goods", "Avg Margin", "Predicted Profit"},
		[][]string{{
			fmt.Sprintf("%d", len(rep.Sold)),
			money(rep.TotalRevenue),
			money(rep.TotalProfit),
			money(rep.TotalCost),
			pctOrNA(rep.AvgMarginPct),
			money(rep.PredictedProfit),
		}},
		[]float64{25, 32, 32, 32, 25, 32})

	if len(rep.Sold) > 0 {
		sectionTitle(pdf, "Sold Items")
		rows := make([][]string, 0, len(rep.Sold)+1)
		for _, it := range rep.Sold {
			rows = append(rows, []string{
				dateOrDash(it.DateSold),
				dateOrDash(it.DateBought),
				truncate(it.Description, 35),
				fmt.Sprintf("$%.2f", it.Cost),
				floatOrDash(it.SoldFor),
				floatOrDash(it.ActualProfit()),
			})
		}
		rows = append(rows, []string{"", "", "TOTALS", money(rep.TotalCost), money(rep.TotalRevenue), money(rep.TotalProfit)})
		pdfTable(pdf, []string{"Date Sold", "Date Bought", "Item", "Cost", "Sold For", "Profit"}, rows,
			[]float64{22, 22, 62, 24, 24, 24})

		sectionTitle(pdf, "Monthly Breakout Analysis")
		mrows := make([][]string, 0, len(rep.Monthly)+1)
		for _, m := range rep.Monthly {
			mrows = append(mrows, []string{
				m.Label, fmt.Sprintf("%d", m.Items),
				money(m.Cost), money(m.Revenue), money(m.Profit), pctOrNA(m.MarginPct),
			})
		}
		totalMargin := pctFromDecimals(rep.TotalProfit, rep.TotalRevenue)
		mrows = append(mrows, []string{"TOTAL", fmt.Sprintf("%d", len(rep.Sold)),
			money(rep.TotalCost), money(rep.TotalRevenue), money(rep.TotalProfit), pctOrNA(totalMargin)})
		pdfTable(pdf, []string{"Month", "Items Sold", "Cost", "Revenue", "Profit", "Margin"}, mrows,
			[]float64{30, 24, 28, 28, 28, 24})
	}

	if len(rep.Listed) > 0 {
		sectionTitle(pdf, "Unsold Inventory")
		rows := make([][]string, 0, len(rep.Listed)+1)
		for _, it := range rep.Listed {
			rows = append(rows, []string{
				dateOrDash(it.DateBought),
				truncate(it.Description, 40),
				fmt.Sprintf("$%.2f", it.Cost),
				floatOrDash(it.ListingPrice),
				floatOrDash(it.PredictedProfit()),
			})
		}
		rows = append(rows, []string{"", "TOTAL INVESTED", money(rep.InvestedCost), "", ""})
		pdfTable(pdf, []string{"Date Bought", "Item", "Cost", "Listing Price", "Est. Profit"}, rows,
			[]float64{26, 72, 26, 28, 26})
	}

	if len(rep.Sold) > 0 {
		s.renderWildAnalysis(pdf, rep)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}
	filename := "OnnaFlips_TaxReport_" + rep.Generated.Format("20060102") + ".pdf"
	return buf.Bytes(), filename, nil
}

func (s *exportService) renderWildAnalysis(pdf *fpdf.Fpdf, rep *taxReport) {
	deep := rep.Deep

	sectionTitle(pdf, "Wild Analysis")

	sectionTitle(pdf, "Best & Worst Flips")
	var rows [][]string
	for i, f := range deep.BestFlips {
		rows = append(rows, []string{fmt.Sprintf("#%d", i+1), truncate(f.Description, 30),
			fmt.Sprintf("$%.0f", f.Cost), fmt.Sprintf("$%.0f", f.SoldFor),
			fmt.Sprintf("$%.0f", f.Profit), marginPct(f.Margin)})
	}
	for i, f := range deep.WorstFlips {
		rows = append(rows, []string{fmt.Sprintf("Worst #%d", i+1), truncate(f.Description, 30),
			fmt.Sprintf("$%.0f", f.Cost), fmt.Sprintf("$%.0f", f.SoldFor),
			fmt.Sprintf("$%.0f", f.Profit), marginPct(f.Margin)})
	}
	pdfTable(pdf, []string{"Rank", "Item", "Cost", "Sold For", "Profit", "Margin"}, rows,
		[]float64{22, 70, 20, 22, 22, 22})

	sectionTitle(pdf, "Speed Demons - Fastest Flips")
	rows = nil
	for _, d := range deep.SpeedDemons {
		rows = append(rows, []string{truncate(d.Description, 35), fmt.Sprintf("%d", d.Days),
			floatOrDash(d.Profit), floatOrDash(d.ProfitPerDay)})
	}
	pdfTable(pdf, []string{"Item", "Days", "Profit", "$/Day"}, rows, []float64{95, 25, 30, 28})

	sectionTitle(pdf, "ROI Champions - Best Return on Investment")
	rows = nil
	for _, r := range deep.ROIChampions {
		rows = append(rows, []string{truncate(r.Description, 35), fmt.Sprintf("$%.0f", r.Cost),
			fmt.Sprintf("$%.0f", r.SoldFor), fmt.Sprintf("%.0f%%", r.ROIPct)})
	}
	pdfTable(pdf, []string{"Item", "Cost", "Sold For", "ROI %"}, rows, []float64{95, 27, 28, 28})

	sectionTitle(pdf, "Price Bracket Analysis - Where the Money Is")
	rows = nil
	for _, b := range deep.PriceBrackets {
		avgDays := "N/A"
		if b.AvgDays > 0 {
			avgDays = fmt.Sprintf("%.0f", b.AvgDays)
		}
		rows = append(rows, []string{b.Label, fmt.Sprintf("%d", b.Count),
			fmt.Sprintf("$%.0f", b.AvgProfit), avgDays, fmt.Sprintf("$%.0f", b.TotalProfit)})
	}
	pdfTable(pdf, []string{"Sale Price Range", "Items", "Avg Profit", "Avg Days", "Total Profit"}, rows,
		[]float64{40, 25, 35, 35, 43})

	sectionTitle(pdf, "Best Day to Sell")
	rows = nil
	for _, d := range deep.DayOfWeek {
		rows = append(rows, []string{d.Day, fmt.Sprintf("%d", d.Count),
			fmt.Sprintf("$%.0f", d.TotalProfit), fmt.Sprintf("$%.0f", d.AvgProfit)})
	}
	pdfTable(pdf, []string{"Day", "Sales", "Total Profit", "Avg Profit"}, rows, []float64{40, 35, 50, 53})

	sectionTitle(pdf, "Business Scorecard")
	card := deep.Scorecard
	facts := [][]string{
		{"Days in Business", fmt.Sprintf("%d", card.DaysInBusiness)},
		{"Profit per Week", fmt.Sprintf("$%.0f", card.WeeklyProfit)},
		{"Avg Cost per Flip", fmt.Sprintf("$%.0f", card.AvgFlipCost)},
		{"Avg Sale Price", fmt.Sprintf("$%.0f", card.AvgSalePrice)},
		{"Biggest Win", card.BiggestWin},
		{"Fastest Flip", card.FastestFlip},
		{"Items Flipped per Week", fmt.Sprintf("%.1f", card.ItemsPerWeek)},
		{"Money Multiplier", fmt.Sprintf("%.1fx", card.MoneyMultiplier)},
		{"Profit per Dollar Invested", fmt.Sprintf("$%.2f", card.ProfitPerDollar)},
	}
	pdfTable(pdf, []string{"Metric", "Value"}, facts, []float64{70, 108})
}

// TaxReportXLSX renders the same report as a workbook.
func (s *exportService) TaxReportXLSX(ctx context.Context, opts TaxReportOptions) ([]byte, string, error) {
	rep, err := s.buildReport(ctx, opts)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, "", err
	}
	summaryRows := [][]any{
		{"Onna's Flips - Tax Report"},
		{"Period", rep.Period},
		{"Generated", rep.Generated.Format("01/02/2006")},
		{},
		{"Items Sold", len(rep.Sold)},
		{"Total Revenue", rep.TotalRevenue.InexactFloat64()},
		{"Total Profit", rep.TotalProfit.InexactFloat64()},
		{"Cost of Goods", rep.TotalCost.InexactFloat64()},
		{"Avg Margin", pctOrNA(rep.AvgMarginPct)},
		{"Predicted Profit (Listed)", rep.PredictedProfit.InexactFloat64()},
	}
	if err := writeRows(f, summary, summaryRows); err != nil {
		return nil, "", err
	}

	soldRows := [][]any{{"Date Sold", "Date Bought", "Item", "Cost", "Sold For", "Profit"}}
	for _, it := range rep.Sold {
		soldRows = append(soldRows, []any{
			dateOrDash(it.DateSold), dateOrDash(it.DateBought), it.Description,
			it.Cost, anyFloat(it.SoldFor), anyFloat(it.ActualProfit()),
		})
	}
	soldRows = append(soldRows, []any{"", "", "TOTALS",
		rep.TotalCost.InexactFloat64(), rep.TotalRevenue.InexactFloat64(), rep.TotalProfit.InexactFloat64()})
	if err := addSheet(f, "Sold Items", soldRows); err != nil {
		return nil, "", err
	}

	monthRows := [][]any{{"Month", "Items Sold", "Cost", "Revenue", "Profit", "Margin"}}
	for _, m := range rep.Monthly {
		monthRows = append(monthRows, []any{m.Label, m.Items,
			m.Cost.InexactFloat64(), m.Revenue.InexactFloat64(), m.Profit.InexactFloat64(), pctOrNA(m.MarginPct)})
	}
	if err := addSheet(f, "Monthly", monthRows); err != nil {
		return nil, "", err
	}

	if len(rep.Listed) > 0 {
		listedRows := [][]any{{"Date Bought", "Item", "Cost", "Listing Price", "Est. Profit"}}
		for _, it := range rep.Listed {
			listedRows = append(listedRows, []any{
				dateOrDash(it.DateBought), it.Description, it.Cost,
				anyFloat(it.ListingPrice), anyFloat(it.PredictedProfit()),
			})
		}
		listedRows = append(listedRows, []any{"", "TOTAL INVESTED", rep.InvestedCost.InexactFloat64(), "", ""})
		if err := addSheet(f, "Unsold Inventory", listedRows); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("render xlsx: %w", err)
	}
	filename := "OnnaFlips_TaxReport_" + rep.Generated.Format("20060102") + ".xlsx"
	return buf.Bytes(), filename, nil
}

// Rendering helpers

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(8)
}

func pdfTable(pdf *fpdf.Fpdf, headers []string, rows [][]string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(26, 26, 46)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	pdf.SetFillColor(248, 249, 250)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 5.5, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}
}

func addSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("01/02/06")
}

func floatOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func anyFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func marginPct(m *float64) string {
	if m == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", *m*100)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func pctFromDecimals(num, den decimal.Decimal) *float64 {
	if !den.IsPositive() {
		return nil
	}
	pct, _ := num.Div(den).Mul(decimal.NewFromInt(100)).Float64()
	return &pct
}
