package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"finpal/internal/models"
	"finpal/internal/notify"
	"finpal/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type memProfiles struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{rows: make(map[uuid.UUID]*models.Profile)}
}

func (m *memProfiles) Create(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == p.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProfiles) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memProfiles) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memProfiles) ListByFamily(_ context.Context, familyID uuid.UUID) ([]*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Profile
	for _, r := range m.rows {
		if r.FamilyID == familyID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsOwner() != out[j].IsOwner() {
			return out[i].IsOwner()
		}
		return out[i].Email < out[j].Email
	})
	return out, nil
}

func (m *memProfiles) Activate(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[p.ID]
	if !ok || r.Status != models.StatusPending {
		return repository.ErrNotFound
	}
	r.PasswordHash = p.PasswordHash
	r.FirstName = p.FirstName
	r.LastName = p.LastName
	r.Status = models.StatusActive
	return nil
}

func (m *memProfiles) UpdateNames(_ context.Context, id uuid.UUID, firstName, lastName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.FirstName, r.LastName = firstName, lastName
	return nil
}

func (m *memProfiles) DeleteMember(_ context.Context, familyID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.FamilyID != familyID || r.Role != models.RoleMember {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memCategories struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.Category
	err  error
}

func newMemCategories() *memCategories {
	return &memCategories{rows: make(map[uuid.UUID]*models.Category)}
}

func (m *memCategories) Create(ctx context.Context, c *models.Category) error {
	return m.CreateBatch(ctx, []*models.Category{c})
}

func (m *memCategories) CreateBatch(_ context.Context, categories []*models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, c := range categories {
		if m.nameTaken(c) {
			return repository.ErrDuplicate
		}
		cp := *c
		m.rows[c.ID] = &cp
	}
	return nil
}

func (m *memCategories) nameTaken(c *models.Category) bool {
	for _, r := range m.rows {
		if r.ID != c.ID && r.FamilyID == c.FamilyID && r.Name == c.Name {
			return true
		}
	}
	return false
}

func (m *memCategories) GetByID(_ context.Context, familyID, id uuid.UUID) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.FamilyID != familyID {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memCategories) ListByFamily(_ context.Context, familyID uuid.UUID) ([]*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Category
	for _, r := range m.rows {
		if r.FamilyID == familyID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) Update(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[c.ID]
	if !ok || r.FamilyID != c.FamilyID {
		return repository.ErrNotFound
	}
	if m.nameTaken(c) {
		return repository.ErrDuplicate
	}
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCategories) Delete(_ context.Context, familyID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.FamilyID != familyID {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memCategories) add(familyID uuid.UUID, name string) *models.Category {
	c := &models.Category{ID: uuid.New(), FamilyID: familyID, Name: name, Color: "#123456", Icon: "Car"}
	m.rows[c.ID] = c
	return c
}

type memTransactions struct {
	mu         sync.Mutex
	rows       []*models.Transaction
	categories *memCategories
}

func newMemTransactions(categories *memCategories) *memTransactions {
	return &memTransactions{categories: categories}
}

func (m *memTransactions) Create(ctx context.Context, tx *models.Transaction) error {
	return m.CreateBatch(ctx, []*models.Transaction{tx})
}

func (m *memTransactions) CreateBatch(_ context.Context, transactions []*models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range transactions {
		cp := *tx
		cp.Category = nil
		m.rows = append(m.rows, &cp)
	}
	return nil
}

// withCategory emulates the repository's join against categories.
func (m *memTransactions) withCategory(tx *models.Transaction) *models.Transaction {
	cp := *tx
	cp.Category = nil
	if tx.CategoryID != nil {
		if c, err := m.categories.GetByID(context.Background(), tx.FamilyID, *tx.CategoryID); err == nil {
			cp.Category = c
		}
	}
	return &cp
}

func (m *memTransactions) GetByID(_ context.Context, familyID, id uuid.UUID) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id && r.FamilyID == familyID {
			return m.withCategory(r), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memTransactions) List(_ context.Context, familyID uuid.UUID, f models.TransactionFilter) ([]*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Transaction
	for _, r := range m.rows {
		switch {
		case r.FamilyID != familyID:
		case f.Type != "" && r.Type != f.Type:
		case !f.From.IsZero() && r.Date.Before(f.From):
		case !f.To.IsZero() && r.Date.After(f.To):
		case f.CategoryID != nil && (r.CategoryID == nil || *r.CategoryID != *f.CategoryID):
		default:
			out = append(out, m.withCategory(r))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memTransactions) Update(_ context.Context, tx *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == tx.ID && r.FamilyID == tx.FamilyID {
			cp := *tx
			cp.Category = nil
			m.rows[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memTransactions) Delete(_ context.Context, familyID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == id && r.FamilyID == familyID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memTransactions) add(familyID uuid.UUID, typ models.TransactionType, amount, date string, cat *models.Category) *models.Transaction {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		panic(err)
	}
	tx := &models.Transaction{
		ID:        uuid.New(),
		FamilyID:  familyID,
		Title:     string(typ) + " " + amount,
		Amount:    decimal.RequireFromString(amount),
		Type:      typ,
		Date:      d,
		CreatedAt: d,
	}
	if cat != nil {
		id := cat.ID
		tx.CategoryID = &id
	}
	m.rows = append(m.rows, tx)
	return tx
}

type budgetKey struct {
	family, category uuid.UUID
	month            time.Time
}

type memBudgets struct {
	mu    sync.Mutex
	rows  map[budgetKey]*models.BudgetCategory
	saves int
}

func newMemBudgets() *memBudgets {
	return &memBudgets{rows: make(map[budgetKey]*models.BudgetCategory)}
}

func (m *memBudgets) ListByMonth(_ context.Context, familyID uuid.UUID, month time.Time) ([]*models.BudgetCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.BudgetCategory
	for k, b := range m.rows {
		if k.family == familyID && k.month.Equal(models.MonthStart(month)) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBudgets) SaveMonth(_ context.Context, budgets []*models.BudgetCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	for _, b := range budgets {
		k := budgetKey{b.FamilyID, b.CategoryID, models.MonthStart(b.Month)}
		if b.LimitAmount.IsZero() {
			delete(m.rows, k)
			continue
		}
		if existing, ok := m.rows[k]; ok {
			existing.LimitAmount = b.LimitAmount
			continue
		}
		cp := *b
		m.rows[k] = &cp
	}
	return nil
}

func (m *memBudgets) set(familyID, categoryID uuid.UUID, month, limit string) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		panic(err)
	}
	m.rows[budgetKey{familyID, categoryID, start}] = &models.BudgetCategory{
		ID:          uuid.New(),
		FamilyID:    familyID,
		CategoryID:  categoryID,
		Month:       start,
		LimitAmount: decimal.RequireFromString(limit),
	}
}

type recordingNotifier struct {
	sent []notify.Invitation
	err  error
}

func (n *recordingNotifier) SendInvitation(_ context.Context, inv notify.Invitation) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, inv)
	return nil
}

var errBoom = errors.New("boom")

func fixedClock(date string) func() time.Time {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t.Add(10 * time.Hour) }
}
