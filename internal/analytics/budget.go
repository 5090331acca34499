package analytics

import "github.com/shopspring/decimal"

type BudgetStatus string

const (
	BudgetStatusOK      BudgetStatus = "ok"
	BudgetStatusWarning BudgetStatus = "warning"
	BudgetStatusOver    BudgetStatus = "over"
)

// warningPercent is the progress above which a budget is flagged as nearly spent.
const warningPercent = 80

type Progress struct {
	Spent      decimal.Decimal
	Limit      decimal.Decimal
	Remaining  decimal.Decimal
	Percent    int
	OverBudget bool
	Status     BudgetStatus
}

// BudgetProgress computes min(round(spent/limit*100), 100). A zero limit reads as 0%.
func BudgetProgress(spent, limit decimal.Decimal) Progress {
	p := Progress{
		Spent:      spent,
		Limit:      limit,
		Remaining:  limit.Sub(spent),
		OverBudget: spent.GreaterThan(limit),
	}

	if limit.IsPositive() {
		pct := spent.Mul(hundred).Div(limit).Round(0).IntPart()
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
		p.Percent = int(pct)
	}

	switch {
	case p.OverBudget:
		p.Status = BudgetStatusOver
	case p.Percent > warningPercent:
		p.Status = BudgetStatusWarning
	default:
		p.Status = BudgetStatusOK
	}

	return p
}
