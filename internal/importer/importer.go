// Package importer loads the original "Onna Business" workbook into the
// item store. It is a one-time bootstrap: the Log sheet's twelve columns
// carry the six source fields plus spreadsheet-era derived columns, which
// are ignored because derived values are always recomputed from source.
package importer

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/noahjmorrison/onnaflips/internal/model"
	"github.com/noahjmorrison/onnaflips/internal/repository"

	"github.com/xuri/excelize/v2"
)

// SheetName is the workbook tab holding the item log.
const SheetName = "Log"

// Log sheet column positions (0-based).
const (
	colDateBought = iota
	colDateSold
	colDescription
	colCost
	colListingPrice
	colSoldFor
	_ // predicted profit (derived, ignored)
	_ // actual profit (derived, ignored)
	_ // predicted margin (derived, ignored)
	_ // actual margin (derived, ignored)
	_ // days to sell (derived, ignored)
	colStatus
)

// Result summarizes an import run.
type Result struct {
	Cleared     int64
	Imported    int
	Skipped     int
	SoldCount   int
	ListedCount int
	TotalProfit float64
}

type Importer struct {
	itemRepo  repository.ItemRepository
	txManager repository.TransactionManager
}

func New(itemRepo repository.ItemRepository, txManager repository.TransactionManager) *Importer {
	return &Importer{itemRepo: itemRepo, txManager: txManager}
}

// Run replaces the store contents with the workbook rows. The clear and
// the batch insert happen in one transaction so a bad workbook cannot
// leave the ledger half-imported.
func (imp *Importer) Run(ctx context.Context, path string) (Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return Result{}, fmt.Errorf("read sheet %q: %w", SheetName, err)
	}

	var result Result
	var items []model.Item
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		item, ok := parseRow(row)
		if !ok {
			result.Skipped++
			continue
		}
		log.Printf("  Row %d: %s | Cost: $%.2f | Status: %s", i+1, item.Description, item.Cost, item.Status)
		items = append(items, *item)
	}

	err = imp.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		cleared, err := imp.itemRepo.DeleteAll(txCtx)
		if err != nil {
			return fmt.Errorf("clear existing items: %w", err)
		}
		result.Cleared = cleared
		if err := imp.itemRepo.CreateBatch(txCtx, items); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	result.Imported = len(items)
	for i := range items {
		if items[i].IsSold() {
			result.SoldCount++
			if p := items[i].ActualProfit(); p != nil {
				result.TotalProfit += *p
			}
		} else {
			result.ListedCount++
		}
	}
	return result, nil
}

// parseRow maps one Log row to an item. Rows without a description are
// spreadsheet padding and are skipped.
func parseRow(row []string) (*model.Item, bool) {
	desc := strings.TrimSpace(cell(row, colDescription))
	if desc == "" {
		return nil, false
	}

	item := &model.Item{
		DateBought:   parseCellDate(cell(row, colDateBought)),
		DateSold:     parseCellDate(cell(row, colDateSold)),
		Description:  desc,
		ListingPrice: parseMoney(cell(row, colListingPrice)),
		SoldFor:      parseMoney(cell(row, colSoldFor)),
	}
	if cost := parseMoney(cell(row, colCost)); cost != nil {
		item.Cost = *cost
	}

	switch strings.ToLower(strings.TrimSpace(cell(row, colStatus))) {
	case "sold":
		item.Status = model.StatusSold
	case "listed":
		item.Status = model.StatusListed
	default:
		// No explicit status: a recorded sale price plus sale date
		// means the flip completed.
		if item.SoldFor != nil && item.DateSold != nil {
			item.Status = model.StatusSold
		} else {
			item.Status = model.StatusListed
		}
	}
	return item, true
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Date formats seen in the workbook, depending on each cell's number format.
var dateLayouts = []string{
	"2006-01-02",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
}

func parseCellDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}
	// Unformatted cells surface as raw Excel serial numbers.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}
	return nil
}

// parseMoney reads a money cell. Negative amounts are spreadsheet noise
// (refund annotations) and import as unset.
func parseMoney(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "$"), ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
