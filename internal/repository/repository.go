package repository

import (
	"gorm.io/gorm"

	"uece-planner/pkg/redis"
)

// Repository aggregates the data access layer.
type Repository struct {
	Draft DraftRepository
}

// NewRepository backs the repositories with a SQL database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Draft: NewDraftRepo(db),
	}
}

// NewRedisRepository backs the repositories with redis.
func NewRedisRepository(client *redis.Client) *Repository {
	return &Repository{
		Draft: NewRedisDraftRepo(client),
	}
}
