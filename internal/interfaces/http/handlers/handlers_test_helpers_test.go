package handlers

import (
	"context"
	"io"
	"sync"
	"time"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/domain/repositories"
	"brickvest.backend/internal/infrastructure/gateway"
	"brickvest.backend/internal/infrastructure/geocode"
	"brickvest.backend/internal/interfaces/http/middleware"
	"brickvest.backend/pkg/redis"
	"brickvest.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// asUser injects the auth context keys the way AuthMiddleware would
func asUser(user *entities.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, user.ID)
		c.Set(middleware.UserEmailKey, user.Email)
		c.Set(middleware.UserRoleKey, user.Role)
		c.Next()
	}
}

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

type userRepoStub struct {
	repositories.UserRepository
	mu        sync.Mutex
	users     map[uuid.UUID]*entities.User
	favorites map[uuid.UUID][]uuid.UUID
}

func newUserRepoStub(users ...*entities.User) *userRepoStub {
	s := &userRepoStub{users: map[uuid.UUID]*entities.User{}, favorites: map[uuid.UUID][]uuid.UUID{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) Create(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *userRepoStub) Update(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *userRepoStub) AddFavorite(_ context.Context, userID, projectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites[userID] = append(s.favorites[userID], projectID)
	return nil
}

func (s *userRepoStub) RemoveFavorite(_ context.Context, userID, projectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.favorites[userID][:0]
	for _, id := range s.favorites[userID] {
		if id != projectID {
			kept = append(kept, id)
		}
	}
	s.favorites[userID] = kept
	return nil
}

func (s *userRepoStub) ListFavoriteIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites[userID], nil
}

type projectRepoStub struct {
	repositories.ProjectRepository
	mu       sync.Mutex
	projects map[uuid.UUID]*entities.Project
}

func newProjectRepoStub(projects ...*entities.Project) *projectRepoStub {
	s := &projectRepoStub{projects: map[uuid.UUID]*entities.Project{}}
	for _, p := range projects {
		s.projects[p.ID] = p
	}
	return s
}

func (s *projectRepoStub) Create(_ context.Context, p *entities.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.CreatedAt = time.Now()
	s.projects[p.ID] = p
	return nil
}

func (s *projectRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[id]; ok {
		return p, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *projectRepoStub) Update(_ context.Context, p *entities.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	s.projects[p.ID] = p
	return nil
}

func (s *projectRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *projectRepoStub) List(_ context.Context, q utils.ListQuery) ([]*entities.Project, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entities.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (s *projectRepoStub) IncrementViewCount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[id]; ok {
		p.ViewCount++
		return nil
	}
	return domainerrors.ErrNotFound
}

func (s *projectRepoStub) RecountFavorites(context.Context, uuid.UUID) error { return nil }

func (s *projectRepoStub) AddUpdate(_ context.Context, update *entities.ProjectUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[update.ProjectID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	p.Updates = append(p.Updates, *update)
	return nil
}

func (s *projectRepoStub) UpdateImages(_ context.Context, id uuid.UUID, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[id]; ok {
		p.ImageKeys = keys
		return nil
	}
	return domainerrors.ErrNotFound
}

type investmentRepoStub struct {
	repositories.InvestmentRepository
	mu          sync.Mutex
	investments map[uuid.UUID]*entities.Investment
}

func newInvestmentRepoStub(investments ...*entities.Investment) *investmentRepoStub {
	s := &investmentRepoStub{investments: map[uuid.UUID]*entities.Investment{}}
	for _, inv := range investments {
		s.investments[inv.ID] = inv
	}
	return s
}

func (s *investmentRepoStub) Create(_ context.Context, inv *entities.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.CreatedAt = time.Now()
	s.investments[inv.ID] = inv
	return nil
}

func (s *investmentRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv, ok := s.investments[id]; ok {
		return inv, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *investmentRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status entities.InvestmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv, ok := s.investments[id]; ok {
		inv.Status = status
		return nil
	}
	return domainerrors.ErrNotFound
}

func (s *investmentRepoStub) SetRefundRef(_ context.Context, id uuid.UUID, ref string) error {
	return nil
}

func (s *investmentRepoStub) List(_ context.Context, q utils.ListQuery) ([]*entities.Investment, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entities.Investment, 0, len(s.investments))
	for _, inv := range s.investments {
		out = append(out, inv)
	}
	return out, int64(len(out)), nil
}

func (s *investmentRepoStub) GetByInvestorID(_ context.Context, investorID uuid.UUID, _, _ int) ([]*entities.Investment, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entities.Investment{}
	for _, inv := range s.investments {
		if inv.InvestorID == investorID {
			out = append(out, inv)
		}
	}
	return out, int64(len(out)), nil
}

func (s *investmentRepoStub) SumCompletedByProject(_ context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, inv := range s.investments {
		if inv.ProjectID == projectID && inv.Status == entities.InvestmentStatusCompleted {
			sum = sum.Add(inv.Amount)
		}
	}
	return sum, nil
}

func (s *investmentRepoStub) CancelPendingByProject(_ context.Context, projectID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, inv := range s.investments {
		if inv.ProjectID == projectID && inv.Status == entities.InvestmentStatusPending {
			inv.Status = entities.InvestmentStatusCancelled
			n++
		}
	}
	return n, nil
}

type documentRepoStub struct {
	repositories.DocumentRepository
	mu     sync.Mutex
	docs   map[uuid.UUID]*entities.Document
	shares map[uuid.UUID][]*entities.DocumentShare
}

func newDocumentRepoStub(docs ...*entities.Document) *documentRepoStub {
	s := &documentRepoStub{docs: map[uuid.UUID]*entities.Document{}, shares: map[uuid.UUID][]*entities.DocumentShare{}}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

func (s *documentRepoStub) Create(_ context.Context, d *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.ID] = d
	return nil
}

func (s *documentRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.docs[id]; ok {
		return d, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *documentRepoStub) Update(_ context.Context, d *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.ID] = d
	return nil
}

func (s *documentRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

func (s *documentRepoStub) ListAccessible(_ context.Context, userID uuid.UUID, _ utils.ListQuery) ([]*entities.Document, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entities.Document{}
	for _, d := range s.docs {
		if d.OwnerID == userID {
			out = append(out, d)
			continue
		}
		for _, sh := range s.shares[d.ID] {
			if sh.UserID == userID {
				out = append(out, d)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

func (s *documentRepoStub) AddShare(_ context.Context, share *entities.DocumentShare) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	share.ID = uuid.New()
	s.shares[share.DocumentID] = append(s.shares[share.DocumentID], share)
	return nil
}

func (s *documentRepoStub) GetShare(_ context.Context, documentID, userID uuid.UUID) (*entities.DocumentShare, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range s.shares[documentID] {
		if sh.UserID == userID {
			return sh, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

type analyticsRepoStub struct {
	dashboard   *repositories.DashboardStats
	performance *repositories.ProjectPerformance
}

func (s *analyticsRepoStub) Dashboard(context.Context) (*repositories.DashboardStats, error) {
	return s.dashboard, nil
}

func (s *analyticsRepoStub) InvestmentStats(context.Context) ([]repositories.InvestmentStats, error) {
	return []repositories.InvestmentStats{
		{Status: entities.InvestmentStatusCompleted, Count: 3, Total: decimal.NewFromInt(15000)},
	}, nil
}

func (s *analyticsRepoStub) UserActivity(context.Context, time.Time) ([]repositories.UserActivity, error) {
	return []repositories.UserActivity{{Registrations: 2, Investments: 1}}, nil
}

func (s *analyticsRepoStub) MarketTrends(context.Context, time.Time) ([]repositories.MarketTrend, error) {
	return []repositories.MarketTrend{{Volume: decimal.NewFromInt(5000), Count: 1}}, nil
}

func (s *analyticsRepoStub) ProjectPerformance(_ context.Context, id uuid.UUID) (*repositories.ProjectPerformance, error) {
	if s.performance != nil {
		return s.performance, nil
	}
	return &repositories.ProjectPerformance{
		ProjectID:     id,
		FundingGoal:   decimal.NewFromInt(100000),
		FundingRaised: decimal.NewFromInt(25000),
		PercentFunded: 25,
		InvestorCount: 5,
	}, nil
}

type gatewayStub struct {
	settled   bool
	chargeErr error
	refunds   int
}

func (s *gatewayStub) Charge(context.Context, gateway.ChargeInput) (*gateway.ChargeResult, error) {
	if s.chargeErr != nil {
		return nil, s.chargeErr
	}
	return &gateway.ChargeResult{ProviderRef: "ch_test", Settled: s.settled}, nil
}

func (s *gatewayStub) Refund(context.Context, string, decimal.Decimal) (string, error) {
	s.refunds++
	return "rf_test", nil
}

type storageStub struct {
	mu      sync.Mutex
	objects map[string]string
}

func newStorageStub() *storageStub { return &storageStub{objects: map[string]string{}} }

func (s *storageStub) Upload(_ context.Context, key string, _ io.Reader, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = contentType
	return nil
}

func (s *storageStub) SignedURL(_ context.Context, key string) (string, error) {
	return "https://signed.example.com/" + key, nil
}

func (s *storageStub) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

type sessionStoreStub struct {
	mu       sync.Mutex
	sessions map[string]*redis.SessionData
}

func newSessionStoreStub() *sessionStoreStub {
	return &sessionStoreStub{sessions: map[string]*redis.SessionData{}}
}

func (s *sessionStoreStub) CreateSession(_ context.Context, sessionID string, data *redis.SessionData, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = data
	return nil
}

func (s *sessionStoreStub) GetSession(_ context.Context, sessionID string) (*redis.SessionData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data, ok := s.sessions[sessionID]; ok {
		return data, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *sessionStoreStub) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

type emailStub struct{}

func (emailStub) SendVerification(context.Context, string, string) error           { return nil }
func (emailStub) SendPasswordReset(context.Context, string, string) error          { return nil }
func (emailStub) SendInvestmentConfirmation(context.Context, string, string, string) error { return nil }

type geocoderStub struct{}

func (geocoderStub) Lookup(_ context.Context, address string) (*geocode.Result, error) {
	if address == "nowhere" {
		return nil, domainerrors.BadRequest("address could not be resolved")
	}
	return &geocode.Result{Latitude: 40.7, Longitude: -74.0, Formatted: address}, nil
}
