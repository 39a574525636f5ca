package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFortuneService struct {
	service.IFortuneService
	recomputed []uuid.UUID
	err        error
}

func (s *stubFortuneService) RecomputeNatalChart(_ context.Context, id uuid.UUID) error {
	s.recomputed = append(s.recomputed, id)
	return s.err
}

func newHandler(svc *stubFortuneService) *NatalRecomputeHandler {
	return NewNatalRecomputeHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).(*NatalRecomputeHandler)
}

func TestHandleMessage_FromBody(t *testing.T) {
	svc := &stubFortuneService{}
	id := uuid.New()

	err := newHandler(svc).HandleMessage(context.Background(), "ignored", []byte(`{"profile_id":"`+id.String()+`"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, svc.recomputed)
}

func TestHandleMessage_FromKey(t *testing.T) {
	svc := &stubFortuneService{}
	id := uuid.New()

	err := newHandler(svc).HandleMessage(context.Background(), id.String(), nil, map[string]string{"reason": "engine_upgrade"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, svc.recomputed)
}

func TestHandleMessage_BusinessErrors(t *testing.T) {
	cases := map[string]struct {
		key   string
		value []byte
		err   error
	}{
		"malformed json":  {value: []byte("{")},
		"invalid uuid":    {key: "not-a-uuid"},
		"unknown profile": {key: uuid.NewString(), err: fmt.Errorf("profile: %w", domain.ErrNotFound)},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubFortuneService{err: tc.err}
			err := newHandler(svc).HandleMessage(context.Background(), tc.key, tc.value, nil)
			require.Error(t, err)
			assert.True(t, domain.IsBusinessError(err))
		})
	}
}

func TestHandleMessage_TransientError(t *testing.T) {
	svc := &stubFortuneService{err: errors.New("db down")}

	err := newHandler(svc).HandleMessage(context.Background(), uuid.NewString(), nil, nil)
	require.Error(t, err)
	assert.False(t, domain.IsBusinessError(err))
}
