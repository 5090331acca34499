package service

import (
	"time"

	"finpal/internal/models"

	"github.com/google/uuid"
)

const defaultCategoryColor = "#9B87F5"

var defaultCategories = []struct {
	name, color, icon string
}{
	{"Shopping", "#5E72E4", "ShoppingBag"},
	{"Food & Drink", "#FF9F1C", "Coffee"},
	{"Transportation", "#11CDEF", "Car"},
	{"Housing", "#FB6340", "Home"},
	{"Dining", "#9B87F5", "Utensils"},
	{"Utilities", "#2DCE89", "Wifi"},
	{"Income", "#4CAF50", "Briefcase"},
	{"Gifts", "#F5365C", "Gift"},
}

// DefaultCategories builds the starter category set for a new family.
func DefaultCategories(familyID, createdBy uuid.UUID, now time.Time) []*models.Category {
	categories := make([]*models.Category, 0, len(defaultCategories))
	for _, d := range defaultCategories {
		categories = append(categories, &models.Category{
			ID:        uuid.New(),
			FamilyID:  familyID,
			Name:      d.name,
			Color:     d.color,
			Icon:      d.icon,
			CreatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return categories
}
