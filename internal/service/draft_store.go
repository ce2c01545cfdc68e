package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"uece-planner/internal/form"
	"uece-planner/internal/repository"
	pkgerrors "uece-planner/pkg/errors"
)

// ── Draft store errors ──

var (
	ErrDraftNotFound  = errors.New("nenhum rascunho salvo")
	ErrDraftCorrupted = errors.New("rascunho salvo está corrompido")
	ErrQuotaExceeded  = errors.New("rascunho excede o espaço disponível")
	ErrStorageFailure = errors.New("falha no armazenamento do rascunho")
)

// DraftStore persists the draft under a single key.
type DraftStore struct {
	repo     repository.DraftRepository
	key      string
	maxBytes int
	logger   *zap.Logger
}

// NewDraftStore creates a store. maxBytes <= 0 disables the quota.
func NewDraftStore(repo repository.DraftRepository, key string, maxBytes int, logger *zap.Logger) *DraftStore {
	return &DraftStore{repo: repo, key: key, maxBytes: maxBytes, logger: logger.With(zap.String("key", key))}
}

// Key returns the storage key.
func (s *DraftStore) Key() string { return s.key }

// Persist writes the draft, replacing the stored one.
func (s *DraftStore) Persist(ctx context.Context, d *form.Draft) error {
	payload, err := form.EncodeDraft(d)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if s.maxBytes > 0 && len(payload) > s.maxBytes {
		s.logger.Warn("rascunho acima da quota",
			zap.Int("size", len(payload)),
			zap.Int("max_bytes", s.maxBytes),
		)
		return ErrQuotaExceeded
	}
	if err := s.repo.Put(ctx, s.key, payload); err != nil {
		if errors.Is(err, pkgerrors.ErrQuotaExceeded) {
			s.logger.Warn("armazenamento sem espaço", zap.Error(err))
			return ErrQuotaExceeded
		}
		if errors.Is(err, pkgerrors.ErrStorageUnavailable) {
			s.logger.Warn("armazenamento inacessível", zap.Error(err))
			return fmt.Errorf("%w: %v", ErrStorageFailure, err)
		}
		s.logger.Error("falha ao gravar rascunho", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	s.logger.Debug("rascunho gravado", zap.Int("size", len(payload)))
	return nil
}

// Load reads the stored draft. It returns ErrDraftNotFound when nothing is
// stored and ErrDraftCorrupted when the stored value cannot be decoded.
func (s *DraftStore) Load(ctx context.Context) (*form.Draft, error) {
	payload, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		s.logger.Error("falha ao ler rascunho", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	d, err := form.DecodeDraft(payload)
	if err != nil {
		s.logger.Warn("rascunho ilegível", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrDraftCorrupted, err)
	}
	return d, nil
}

// Clear removes the stored draft.
func (s *DraftStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		s.logger.Error("falha ao apagar rascunho", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}
