package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uece-planner/internal/model"
	pkgerrors "uece-planner/pkg/errors"
)

// DraftRepository stores raw draft payloads by key.
// Get returns pkg/errors.ErrNotFound when nothing is stored. Backend errors
// wrap ErrQuotaExceeded or ErrStorageUnavailable when they mean either.
type DraftRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

type draftRepo struct {
	db *gorm.DB
}

// NewDraftRepo creates the gorm DraftRepository.
func NewDraftRepo(db *gorm.DB) DraftRepository {
	return &draftRepo{db: db}
}

func (r *draftRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var draft model.PlanningDraft
	err := r.db.WithContext(ctx).
		Where("storage_key = ?", key).
		First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, classify(err)
	}
	return []byte(draft.Payload), nil
}

// Put inserts the draft or overwrites it, bumping its version.
func (r *draftRepo) Put(ctx context.Context, key string, payload []byte) error {
	now := time.Now()
	draft := &model.PlanningDraft{
		StorageKey: key,
		Payload:    datatypes.JSON(payload),
		SizeBytes:  len(payload),
	}
	draft.CreatedAt = now
	draft.UpdatedAt = now
	draft.Version = 1

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"payload":    draft.Payload,
				"size_bytes": draft.SizeBytes,
				"updated_at": now,
				"version":    gorm.Expr("planning_drafts.version + 1"),
			}),
		}).
		Create(draft).Error
	return classify(err)
}

func (r *draftRepo) Delete(ctx context.Context, key string) error {
	err := r.db.WithContext(ctx).
		Where("storage_key = ?", key).
		Delete(&model.PlanningDraft{}).Error
	return classify(err)
}
