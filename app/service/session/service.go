package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pukaar/app/config"
	"pukaar/app/service/redflag"
	"pukaar/app/service/screening"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/samber/oops"
)

var ErrNotFound = errors.New("session not found")

const pingTimeout = 2 * time.Second

type Service struct {
	store store
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Pass,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unavailable, falling back to in-memory session storage",
			"addr", cfg.Redis.Host,
			"error", err,
		)
		_ = client.Close()

		return &Service{store: newMemoryStore()}, nil
	}

	slog.Info("Connected to Redis", "addr", cfg.Redis.Host)

	return &Service{store: &redisStore{client: client}}, nil
}

// NewInMemory builds a service backed by the process-local map. Used in tests
// and as the explicit no-Redis mode.
func NewInMemory() *Service {
	return &Service{store: newMemoryStore()}
}

func (s *Service) Create(ctx context.Context) (*Session, error) {
	now := time.Now()

	sess := &Session{
		ID:          uuid.NewString(),
		CreatedAt:   now,
		LastActive:  now,
		FlowType:    FlowInitial,
		CurrentStep: 0,
		History:     []Message{},
	}

	if err := s.store.put(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	return s.store.get(ctx, id)
}

// Update loads the session, applies mutate and writes it back, refreshing
// LastActive and the expiry.
func (s *Service) Update(ctx context.Context, id string, mutate func(*Session)) (*Session, error) {
	sess, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}

	mutate(sess)
	sess.LastActive = time.Now()

	if err = s.store.put(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *Service) AppendMessage(ctx context.Context, id, role, content string, metadata map[string]string) error {
	_, err := s.Update(ctx, id, func(sess *Session) {
		sess.History = append(sess.History, Message{
			Role:      role,
			Content:   content,
			Timestamp: time.Now(),
			Metadata:  metadata,
		})
	})

	return err
}

func (s *Service) History(ctx context.Context, id string) ([]Message, error) {
	sess, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}

	return sess.History, nil
}

// SetFlow switches the session to a new flow and resets step progress.
func (s *Service) SetFlow(ctx context.Context, id string, flow FlowType) error {
	if !flow.Valid() {
		return oops.With("flow_type", flow).Errorf("unknown flow type")
	}

	_, err := s.Update(ctx, id, func(sess *Session) {
		sess.FlowType = flow
		sess.CurrentStep = 0
	})

	return err
}

func (s *Service) AdvanceStep(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(sess *Session) {
		sess.CurrentStep++
	})

	return err
}

func (s *Service) SetScreeningData(ctx context.Context, id, condition string, result screening.Result) error {
	_, err := s.Update(ctx, id, func(sess *Session) {
		if sess.ScreeningData == nil {
			sess.ScreeningData = make(map[string]screening.Result)
		}

		sess.ScreeningData[condition] = result
	})

	return err
}

func (s *Service) AddRedFlag(ctx context.Context, id string, flag redflag.Result) error {
	_, err := s.Update(ctx, id, func(sess *Session) {
		sess.RedFlags = append(sess.RedFlags, flag)
	})

	return err
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.delete(ctx, id)
}
