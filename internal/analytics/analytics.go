// Package analytics aggregates transactions in memory: balance totals,
// per-category breakdowns, daily series and budget progress. All
// arithmetic is decimal; nothing here touches the database.
package analytics

import (
	"sort"
	"time"

	"finpal/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	UncategorizedName  = "Uncategorized"
	UncategorizedColor = "#9CA3AF"
)

var hundred = decimal.NewFromInt(100)

type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// ComputeTotals sums income and expense; transfers count toward neither.
func ComputeTotals(txs []*models.Transaction) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeIncome:
			t.Income = t.Income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

type CategorySlice struct {
	CategoryID *uuid.UUID
	Name       string
	Color      string
	Icon       string
	Total      decimal.Decimal
	Count      int
	// Percent of the filtered total, truncated to 2 places so slices never sum past 100.
	Percent decimal.Decimal
}

// ByCategory groups transactions of one type by category, largest first.
func ByCategory(txs []*models.Transaction, typ models.TransactionType) []CategorySlice {
	index := make(map[uuid.UUID]int)
	uncategorized := -1
	var (
		slices []CategorySlice
		sum    = decimal.Zero
	)

	for _, tx := range txs {
		if tx.Type != typ {
			continue
		}
		sum = sum.Add(tx.Amount)

		var pos int
		if tx.Category == nil {
			if uncategorized < 0 {
				uncategorized = len(slices)
				slices = append(slices, CategorySlice{
					Name:  UncategorizedName,
					Color: UncategorizedColor,
					Icon:  models.DefaultIcon,
					Total: decimal.Zero,
				})
			}
			pos = uncategorized
		} else {
			var ok bool
			pos, ok = index[tx.Category.ID]
			if !ok {
				id := tx.Category.ID
				pos = len(slices)
				index[id] = pos
				slices = append(slices, CategorySlice{
					CategoryID: &id,
					Name:       tx.Category.Name,
					Color:      tx.Category.Color,
					Icon:       models.ResolveIcon(tx.Category.Icon),
					Total:      decimal.Zero,
				})
			}
		}

		slices[pos].Total = slices[pos].Total.Add(tx.Amount)
		slices[pos].Count++
	}

	for i := range slices {
		slices[i].Percent = percentOf(slices[i].Total, sum)
	}

	sort.SliceStable(slices, func(i, j int) bool {
		if c := slices[i].Total.Cmp(slices[j].Total); c != 0 {
			return c > 0
		}
		return slices[i].Name < slices[j].Name
	})

	return slices
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Truncate(2)
}

type DailyPoint struct {
	Date    time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// DailySeries returns one point per calendar day in [from, to], zero-filled.
func DailySeries(txs []*models.Transaction, from, to time.Time) []DailyPoint {
	from, to = day(from), day(to)
	if to.Before(from) {
		return nil
	}

	days := int(to.Sub(from).Hours()/24) + 1
	points := make([]DailyPoint, days)
	for i := range points {
		points[i] = DailyPoint{
			Date:    from.AddDate(0, 0, i),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}

	for _, tx := range txs {
		d := day(tx.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		i := int(d.Sub(from).Hours() / 24)
		switch tx.Type {
		case models.TransactionTypeIncome:
			points[i].Income = points[i].Income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			points[i].Expense = points[i].Expense.Add(tx.Amount)
		}
	}

	return points
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SpentByCategory sums expenses per category. Uncategorized spend is keyed by uuid.Nil.
func SpentByCategory(txs []*models.Transaction) map[uuid.UUID]decimal.Decimal {
	spent := make(map[uuid.UUID]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		key := uuid.Nil
		if tx.CategoryID != nil {
			key = *tx.CategoryID
		}
		spent[key] = spent[key].Add(tx.Amount)
	}
	return spent
}
