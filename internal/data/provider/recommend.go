// Package provider holds the data sources the session layer talks to: the
// external recommendation service and the per-session identity store.
package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"movie-match/internal/data/entity"
	"movie-match/internal/session"
	"movie-match/pkg/metrics"
	"movie-match/pkg/utils"
)

// RecommendProvider asks the recommendation service for one movie matching
// the given genres. Errors carry the session sentinels so the caller can
// pick the right toast without knowing transport details.
type RecommendProvider interface {
	Recommend(ctx context.Context, genres []entity.MovieGenre) (*entity.Movie, error)
}

type recommendProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[*entity.Movie]
	log     *zap.Logger
}

func NewRecommendProvider(cfg utils.RecommendConfig, log *zap.Logger) RecommendProvider {
	log = log.With(zap.String("provider", "recommend"))

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := time.Duration(cfg.BreakerCooldownSeconds) * time.Second
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "recommend-api",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// Rejected credentials count as success here so repeated auth
		// failures never trip the breaker into reporting a network problem.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, session.ErrAuthRequired)
		},
	}

	return &recommendProvider{
		client:  &http.Client{},
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: timeout,
		breaker: gobreaker.NewCircuitBreaker[*entity.Movie](settings),
		log:     log,
	}
}

type recommendRequest struct {
	Genres []string `json:"genres"`
}

type recommendResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Overview      *string  `json:"overview"`
	PosterURL     *string  `json:"poster_url"`
	ReleaseDate   *string  `json:"release_date"`
	Genres        []string `json:"genres"`
	Platforms     []string `json:"platforms"`
	Director      *string  `json:"director"`
	Actors        *string  `json:"actors"`
	Runtime       *string  `json:"runtime"`
	Rating        *string  `json:"rating"`
	ExternalID    *string  `json:"external_id"`
	Year          *string  `json:"year"`
	Certification *string  `json:"certification"`
	Awards        *string  `json:"awards"`
}

func (p *recommendProvider) Recommend(ctx context.Context, genres []entity.MovieGenre) (*entity.Movie, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("recommend API key not configured: %w", session.ErrAuthRequired)
	}

	start := time.Now()
	movie, err := p.breaker.Execute(func() (*entity.Movie, error) {
		return p.doRecommend(ctx, genres)
	})
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			p.log.Warn("Recommend call rejected, circuit open")
			return nil, fmt.Errorf("recommend service unavailable: %w", session.ErrNetwork)
		}
		return nil, err
	}

	p.log.Debug("Movie recommended",
		zap.String("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)
	return movie, nil
}

func (p *recommendProvider) doRecommend(ctx context.Context, genres []entity.MovieGenre) (*entity.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	labels := make([]string, len(genres))
	for i, g := range genres {
		labels[i] = g.Label()
	}

	body, err := json.Marshal(recommendRequest{Genres: labels})
	if err != nil {
		return nil, fmt.Errorf("failed to encode recommend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/recommend", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build recommend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn("Recommend request failed", zap.Error(err))
		return nil, p.mapTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		p.log.Warn("Recommend service rejected credentials", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("recommend service returned status %d: %w", resp.StatusCode, session.ErrAuthRequired)
	case resp.StatusCode != http.StatusOK:
		p.log.Warn("Recommend service error", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("recommend service returned status %d: %w", resp.StatusCode, session.ErrNetwork)
	}

	var payload recommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode recommend response: %w", err)
	}

	return payload.toEntity()
}

// mapTransportError folds transport failures into the session sentinels.
// Timeouts win over connectivity, a dial timeout reads as "took too long"
// to the user, not as "offline".
func (p *recommendProvider) mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("recommend request timed out: %w", session.ErrTimedOut)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("recommend request canceled: %w", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("recommend request timed out: %w", session.ErrTimedOut)
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) {
		return fmt.Errorf("recommend service unreachable: %w", session.ErrNoConnectivity)
	}

	return fmt.Errorf("recommend request failed: %w", session.ErrNetwork)
}

func (r *recommendResponse) toEntity() (*entity.Movie, error) {
	if strings.TrimSpace(r.Title) == "" {
		return nil, errors.New("recommend response missing title")
	}

	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &entity.Movie{
		ID:            id,
		Title:         r.Title,
		Overview:      r.Overview,
		PosterURL:     r.PosterURL,
		ReleaseDate:   r.ReleaseDate,
		Genres:        r.Genres,
		Platforms:     r.Platforms,
		Director:      r.Director,
		Actors:        r.Actors,
		Runtime:       r.Runtime,
		Rating:        r.Rating,
		ExternalID:    r.ExternalID,
		Year:          r.Year,
		Certification: r.Certification,
		Awards:        r.Awards,
	}, nil
}
