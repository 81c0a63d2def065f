package mock

import (
	"context"
	"strings"

	"github.com/mightytheif/sakany/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo     *MockUserRepo
	PropertyRepo *MockPropertyRepo
	FavoriteRepo *MockFavoriteRepo
	ReportRepo   *MockReportRepo
	Queue        *MockQueue
}

func NewMocks() *Mocks {
	m := &Mocks{
		UserRepo:     &MockUserRepo{},
		PropertyRepo: &MockPropertyRepo{},
		ReportRepo:   &MockReportRepo{},
		Queue:        &MockQueue{},
	}
	m.FavoriteRepo = &MockFavoriteRepo{props: m.PropertyRepo}
	return m
}

type MockUserRepo struct {
	Stored    *models.User
	CreateErr error
}

func (m *MockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	stored := *u
	stored.ID = 1
	m.Stored = &stored
	return 1, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && strings.EqualFold(m.Stored.Email, email) {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *MockUserRepo) UpdateUser(ctx context.Context, u *models.User) error {
	m.Stored = u
	return nil
}

func (m *MockUserRepo) DeleteUser(ctx context.Context, id int64) error {
	if m.Stored != nil && m.Stored.ID == id {
		m.Stored = nil
	}
	return nil
}

type MockPropertyRepo struct {
	Stored  []models.Property
	ListErr error

	Moderated   map[int64][2]any // id -> {verified, status}
	Unpublished []int64
	StatusSet   map[int64]string
}

func (m *MockPropertyRepo) CreateProperty(ctx context.Context, p *models.Property) (int64, error) {
	stored := *p
	stored.ID = int64(len(m.Stored) + 1)
	m.Stored = append(m.Stored, stored)
	return stored.ID, nil
}

func (m *MockPropertyRepo) GetPropertyByID(ctx context.Context, id int64) (*models.Property, error) {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			p := m.Stored[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *MockPropertyRepo) UpdateProperty(ctx context.Context, p *models.Property) error {
	for i := range m.Stored {
		if m.Stored[i].ID == p.ID {
			m.Stored[i] = *p
			return nil
		}
	}
	return nil
}

func (m *MockPropertyRepo) DeleteProperty(ctx context.Context, id int64) error {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockPropertyRepo) ListProperties(ctx context.Context, f models.PropertyFilter, limit, offset int) ([]models.Property, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if offset >= len(m.Stored) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(m.Stored) {
		end = len(m.Stored)
	}
	return m.Stored[offset:end], nil
}

func (m *MockPropertyRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.Property, error) {
	var out []models.Property
	for _, p := range m.Stored {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockPropertyRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Property, error) {
	var out []models.Property
	for _, p := range m.Stored {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockPropertyRepo) SetModeration(ctx context.Context, id int64, verified bool, status string) error {
	if m.Moderated == nil {
		m.Moderated = make(map[int64][2]any)
	}
	m.Moderated[id] = [2]any{verified, status}
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored[i].Verified = verified
			m.Stored[i].Status = status
		}
	}
	return nil
}

func (m *MockPropertyRepo) SetStatus(ctx context.Context, id int64, status string) error {
	if m.StatusSet == nil {
		m.StatusSet = make(map[int64]string)
	}
	m.StatusSet[id] = status
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored[i].Status = status
		}
	}
	return nil
}

func (m *MockPropertyRepo) SetPublished(ctx context.Context, id int64, published bool) error {
	if !published {
		m.Unpublished = append(m.Unpublished, id)
	}
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored[i].Published = published
		}
	}
	return nil
}

type MockFavoriteRepo struct {
	props *MockPropertyRepo
	Saved map[int64][]int64 // user -> property ids in save order
}

func (m *MockFavoriteRepo) AddFavorite(ctx context.Context, userID, propertyID int64) error {
	if m.Saved == nil {
		m.Saved = make(map[int64][]int64)
	}
	for _, id := range m.Saved[userID] {
		if id == propertyID {
			return nil
		}
	}
	m.Saved[userID] = append(m.Saved[userID], propertyID)
	return nil
}

func (m *MockFavoriteRepo) RemoveFavorite(ctx context.Context, userID, propertyID int64) error {
	ids := m.Saved[userID]
	for i, id := range ids {
		if id == propertyID {
			m.Saved[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockFavoriteRepo) ListFavoriteProperties(ctx context.Context, userID int64) ([]models.Property, error) {
	var out []models.Property
	for _, id := range m.Saved[userID] {
		if p, _ := m.props.GetPropertyByID(ctx, id); p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

type MockReportRepo struct {
	Stored    []models.Report
	OpenCount int64
}

func (m *MockReportRepo) CreateReport(ctx context.Context, r *models.Report) (int64, error) {
	stored := *r
	stored.ID = int64(len(m.Stored) + 1)
	m.Stored = append(m.Stored, stored)
	return stored.ID, nil
}

func (m *MockReportRepo) GetReportByID(ctx context.Context, id int64) (*models.Report, error) {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			r := m.Stored[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (m *MockReportRepo) ListReportsByStatus(ctx context.Context, status string, limit, offset int) ([]models.Report, error) {
	var out []models.Report
	for _, r := range m.Stored {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockReportRepo) UpdateReportStatus(ctx context.Context, id int64, status string) error {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored[i].Status = status
		}
	}
	return nil
}

func (m *MockReportRepo) CountOpenByProperty(ctx context.Context, propertyID int64) (int64, error) {
	if m.OpenCount > 0 {
		return m.OpenCount, nil
	}
	var n int64
	for _, r := range m.Stored {
		if r.PropertyID == propertyID && r.Status == models.ReportOpen {
			n++
		}
	}
	return n, nil
}

// Enqueued records one enqueue call.
type Enqueued struct {
	Type     string
	Payload  any
	Priority int
}

type MockQueue struct {
	Enqueues   []Enqueued
	EnqueueErr error
}

func (m *MockQueue) Enqueue(ctx context.Context, typ string, payload any, priority, maxAttempts int) (int64, error) {
	if m.EnqueueErr != nil {
		return 0, m.EnqueueErr
	}
	m.Enqueues = append(m.Enqueues, Enqueued{Type: typ, Payload: payload, Priority: priority})
	return int64(len(m.Enqueues)), nil
}
