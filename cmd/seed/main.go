package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"finpal/internal/models"
	"finpal/internal/repository"
	"finpal/internal/service"
	"finpal/pkg/config"
	"finpal/pkg/logger"
	"finpal/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var email string

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Load demo transactions and budgets into an existing account's family",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := logger.Init(cfg.Logger.Level); err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			defer logger.Sync()

			return seed(cmd.Context(), cfg, strings.ToLower(strings.TrimSpace(email)), logger.Get())
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of a registered account")
	_ = cmd.MarkFlagRequired("email")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, cfg *config.Config, email string, appLogger *zap.Logger) error {
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	profiles := repository.NewProfileRepository(db, appLogger)
	categories := repository.NewCategoryRepository(db, appLogger)
	transactions := repository.NewTransactionRepository(db, appLogger)
	budgets := repository.NewBudgetRepository(db, appLogger)

	profile, err := profiles.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find account %s: %w", email, err)
	}

	appLogger.Info("Starting database seeding...", zap.String("family_id", profile.FamilyID.String()))

	now := time.Now().UTC()
	cats, err := categories.ListByFamily(ctx, profile.FamilyID)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		cats = service.DefaultCategories(profile.FamilyID, profile.ID, now)
		if err := categories.CreateBatch(ctx, cats); err != nil {
			return fmt.Errorf("create categories: %w", err)
		}
	}

	demo := buildDemo(profile, cats, now)
	if err := transactions.CreateBatch(ctx, demo.transactions); err != nil {
		return fmt.Errorf("create transactions: %w", err)
	}
	if err := budgets.SaveMonth(ctx, demo.budgets); err != nil {
		return fmt.Errorf("save budgets: %w", err)
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.Int("transactions", len(demo.transactions)),
		zap.Int("budgets", len(demo.budgets)),
	)
	return nil
}

type demoData struct {
	transactions []*models.Transaction
	budgets      []*models.BudgetCategory
}

var demoTransactions = []struct {
	title    string
	amount   string
	daysAgo  int
	typ      models.TransactionType
	category string
}{
	{"Paypal", "1500", 0, models.TransactionTypeIncome, "Income"},
	{"Uber", "12.50", 1, models.TransactionTypeExpense, "Transportation"},
	{"Bata Store", "89", 3, models.TransactionTypeExpense, "Shopping"},
	{"Bank Transfer", "500", 5, models.TransactionTypeExpense, "Dining"},
	{"Money Transfer", "150", 10, models.TransactionTypeExpense, "Dining"},
	{"Salary", "2350", 14, models.TransactionTypeIncome, "Income"},
}

var demoBudgets = []struct {
	category string
	limit    string
}{
	{"Shopping", "300"},
	{"Food & Drink", "250"},
	{"Transportation", "150"},
	{"Dining", "200"},
}

// buildDemo dates the demo transactions backwards from now and sets limits
// for the current month. Names missing from cats are skipped or left uncategorized.
func buildDemo(profile *models.Profile, cats []*models.Category, now time.Time) demoData {
	byName := make(map[string]*models.Category, len(cats))
	for _, c := range cats {
		byName[c.Name] = c
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var out demoData

	for _, d := range demoTransactions {
		tx := &models.Transaction{
			ID:        uuid.New(),
			FamilyID:  profile.FamilyID,
			UserID:    profile.ID,
			Title:     d.title,
			Amount:    decimal.RequireFromString(d.amount),
			Type:      d.typ,
			Date:      today.AddDate(0, 0, -d.daysAgo),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if c, ok := byName[d.category]; ok {
			id := c.ID
			tx.CategoryID = &id
		}
		out.transactions = append(out.transactions, tx)
	}

	month := models.MonthStart(now)
	for _, b := range demoBudgets {
		c, ok := byName[b.category]
		if !ok {
			continue
		}
		out.budgets = append(out.budgets, &models.BudgetCategory{
			ID:          uuid.New(),
			FamilyID:    profile.FamilyID,
			CategoryID:  c.ID,
			Month:       month,
			LimitAmount: decimal.RequireFromString(b.limit),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return out
}
