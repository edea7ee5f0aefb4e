package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"movie-match/internal/data/entity"
	"movie-match/internal/data/provider"
	"movie-match/internal/dto/request"
	"movie-match/internal/dto/response"
	"movie-match/internal/session"
	"movie-match/pkg/layout"
	"movie-match/pkg/metrics"
	"movie-match/pkg/utils"
)

var (
	// ErrSessionNotFound covers unknown and expired session IDs alike.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnknownGenre is returned when a toggle names a genre outside the catalog.
	ErrUnknownGenre = errors.New("unknown genre")
)

// sweepInterval is how often idle sessions are collected.
const sweepInterval = time.Minute

type SessionService interface {
	// Lifecycle
	Create(req *request.CreateSessionRequest) (*response.SessionResponse, error)
	Get(sessionID string) (*response.StateResponse, error)
	Delete(sessionID string) error

	// State operations
	SetIdentity(sessionID string, req *request.IdentityRequest) (*response.StateResponse, error)
	SetGenres(sessionID string, req *request.SelectGenresRequest) (*response.StateResponse, error)
	ToggleChip(sessionID string, req *request.ToggleChipRequest) (*response.StateResponse, error)
	SetGenrePicker(sessionID string, req *request.GenrePickerRequest) (*response.StateResponse, error)
	DismissToast(sessionID string) (*response.StateResponse, error)

	// Search flow
	Search(ctx context.Context, sessionID string) (*response.StateResponse, error)
	Confirm(sessionID string) (*response.StateResponse, error)
	Retry(ctx context.Context, sessionID string) (*response.StateResponse, error)

	// Streaming and introspection
	Subscribe(sessionID string, fn func(session.State)) (cancel func(), err error)
	Count() int

	Stop()
}

// sessionRecord bundles what one session owns: the coordinator holding the
// state machine, the chip group holding the picker selection, and the
// identity store feeding the greeting.
type sessionRecord struct {
	id          string
	coordinator *session.Coordinator
	chips       *layout.ChipGroup
	identity    provider.IdentityProvider
	lastSeen    time.Time
}

type sessionService struct {
	recommender session.Recommender
	checker     session.ConfigChecker
	ttl         time.Duration
	log         *zap.Logger

	mu       sync.Mutex
	sessions map[string]*sessionRecord

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewSessionService(
	recommender session.Recommender,
	checker session.ConfigChecker,
	config *utils.Config,
	log *zap.Logger,
) SessionService {
	ttl := time.Duration(config.Session.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	s := &sessionService{
		recommender: recommender,
		checker:     checker,
		ttl:         ttl,
		log:         log.With(zap.String("service", "session")),
		sessions:    make(map[string]*sessionRecord),
		stopCh:      make(chan struct{}),
	}

	go s.janitor()

	return s
}

func (s *sessionService) Create(req *request.CreateSessionRequest) (*response.SessionResponse, error) {
	id := uuid.NewString()
	sessionLog := s.log.With(zap.String("session_id", id))

	identity := provider.NewIdentityProvider(sessionLog)
	coord := session.NewCoordinator(s.recommender, s.checker, sessionLog)
	coord.Initialize()
	coord.BindIdentity(identity)

	// Chip toggles land in the coordinator as the full selection, with
	// labels outside the catalog already dropped.
	chips := layout.NewChipGroup(func(tags []string) {
		coord.SetGenres(entity.GenresFromLabels(tags))
	})

	if req != nil && req.DisplayName != "" {
		identity.Set(req.DisplayName)
	}

	rec := &sessionRecord{
		id:          id,
		coordinator: coord,
		chips:       chips,
		identity:    identity,
		lastSeen:    time.Now(),
	}

	s.mu.Lock()
	s.sessions[id] = rec
	count := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Inc()
	s.log.Info("Session created",
		zap.String("session_id", id),
		zap.Int("active_sessions", count),
	)

	resp := response.SessionToResponse(id, coord.Snapshot())
	return &resp, nil
}

func (s *sessionService) Get(sessionID string) (*response.StateResponse, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.state(rec), nil
}

func (s *sessionService) Delete(sessionID string) error {
	s.mu.Lock()
	rec, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	rec.coordinator.Close()
	metrics.ActiveSessions.Dec()
	s.log.Info("Session closed", zap.String("session_id", sessionID))
	return nil
}

func (s *sessionService) SetIdentity(sessionID string, req *request.IdentityRequest) (*response.StateResponse, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	rec.identity.Set(req.DisplayName)
	return s.state(rec), nil
}

func (s *sessionService) SetGenres(sessionID string, req *request.SelectGenresRequest) (*response.StateResponse, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	// Canonical labels only, deduplicated, order kept. The chip group is
	// the source of truth for the picker, so the replacement goes through
	// it rather than straight to the coordinator.
	genres := entity.GenresFromLabels(req.Genres)
	labels := make([]string, 0, len(genres))
	seen := make(map[entity.MovieGenre]bool, len(genres))
	for _, g := range genres {
		if seen[g] {
			continue
		}
		seen[g] = true
		labels = append(labels, g.Label())
	}
	rec.chips.Replace(labels)

	return s.state(rec), nil
}

func (s *sessionService) ToggleChip(sessionID string, req *request.ToggleChipRequest) (*response.StateResponse, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	genre, ok := entity.GenreFromLabel(req.Genre)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGenre, req.Genre)
	}
	rec.chips.Toggle(genre.Label())

	return s.state(rec), nil
}

func (s *sessionService) SetGenrePicker(sessionID string, req *request.GenrePickerRequest) (*response.StateResponse, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	rec.coordinator.SetGenreSelectionOpen(*req.Open)
	return s.state(rec), nil
}

func (s *sessionService) DismissToast(sessionID string) (*response.StateResponse, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	rec.coordinator.DismissToast()
	return s.state(rec), nil
}

func (s *sessionService) Search(ctx context.Context, sessionID string) (*response.StateResponse, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	// The search is not cancellable: a client hanging up mid-flight must
	// not leave a failure toast in state other watchers still see. The
	// provider's own timeout bounds the detached call.
	rec.coordinator.Search(context.WithoutCancel(ctx))
	return s.state(rec), nil
}

func (s *sessionService) Confirm(sessionID string) (*response.StateResponse, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	rec.coordinator.Confirm()
	return s.state(rec), nil
}

func (s *sessionService) Retry(ctx context.Context, sessionID string) (*response.StateResponse, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	rec.coordinator.RetrySearch(ctx)
	return s.state(rec), nil
}

func (s *sessionService) Subscribe(sessionID string, fn func(session.State)) (func(), error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	return rec.coordinator.OnChange(fn), nil
}

func (s *sessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *sessionService) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })

	s.mu.Lock()
	recs := make([]*sessionRecord, 0, len(s.sessions))
	for id, rec := range s.sessions {
		delete(s.sessions, id)
		recs = append(recs, rec)
	}
	s.mu.Unlock()

	for _, rec := range recs {
		rec.coordinator.Close()
		metrics.ActiveSessions.Dec()
	}
	if len(recs) > 0 {
		s.log.Info("All sessions closed", zap.Int("count", len(recs)))
	}
}

func (s *sessionService) get(sessionID string) (*sessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	rec.lastSeen = time.Now()
	return rec, nil
}

func (s *sessionService) state(rec *sessionRecord) *response.StateResponse {
	resp := response.StateToResponse(rec.coordinator.Snapshot())
	return &resp
}

func (s *sessionService) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

// sweep closes every session idle longer than the TTL.
func (s *sessionService) sweep(now time.Time) {
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	var expired []*sessionRecord
	for id, rec := range s.sessions {
		if rec.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			expired = append(expired, rec)
		}
	}
	s.mu.Unlock()

	for _, rec := range expired {
		rec.coordinator.Close()
		metrics.ActiveSessions.Dec()
		s.log.Info("Session expired", zap.String("session_id", rec.id))
	}
}
