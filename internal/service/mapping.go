package service

import (
	"time"

	"finpal/internal/analytics"
	"finpal/internal/dto"
	"finpal/internal/models"
)

func toProfileResponse(p *models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        p.ID.String(),
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		FamilyID:  p.FamilyID.String(),
		Role:      string(p.Role),
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func toCategoryResponse(c *models.Category) dto.CategoryResponse {
	if c == nil {
		return dto.CategoryResponse{
			Name:  analytics.UncategorizedName,
			Color: analytics.UncategorizedColor,
			Icon:  models.DefaultIcon,
		}
	}
	return dto.CategoryResponse{
		ID:    c.ID.String(),
		Name:  c.Name,
		Color: c.Color,
		Icon:  models.ResolveIcon(c.Icon),
	}
}

func toTransactionResponse(tx *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          tx.ID.String(),
		Title:       tx.Title,
		Amount:      tx.Amount,
		Date:        tx.Date.Format(dateLayout),
		Type:        string(tx.Type),
		Category:    toCategoryResponse(tx.Category),
		Description: tx.Description,
		CreatedBy:   tx.UserID.String(),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionResponses(txs []*models.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionResponse(tx)
	}
	return out
}

func toProgressResponse(p analytics.Progress) dto.ProgressResponse {
	return dto.ProgressResponse{
		Spent:      p.Spent,
		Limit:      p.Limit,
		Remaining:  p.Remaining,
		Percent:    p.Percent,
		OverBudget: p.OverBudget,
		Status:     string(p.Status),
	}
}

func toTotalsResponse(t analytics.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{Income: t.Income, Expense: t.Expense, Balance: t.Balance}
}

func toSliceResponses(slices []analytics.CategorySlice) []dto.CategorySliceResponse {
	out := make([]dto.CategorySliceResponse, len(slices))
	for i, s := range slices {
		out[i] = dto.CategorySliceResponse{
			Name:    s.Name,
			Color:   s.Color,
			Icon:    s.Icon,
			Total:   s.Total,
			Count:   s.Count,
			Percent: s.Percent,
		}
		if s.CategoryID != nil {
			out[i].CategoryID = s.CategoryID.String()
		}
	}
	return out
}
