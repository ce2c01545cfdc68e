package repository

import (
	"context"

	"uece-planner/pkg/redis"
)

type redisDraftRepo struct {
	client *redis.Client
}

// NewRedisDraftRepo creates a DraftRepository over redis.
func NewRedisDraftRepo(client *redis.Client) DraftRepository {
	return &redisDraftRepo{client: client}
}

func (r *redisDraftRepo) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.GetBytes(ctx, key)
	return b, classify(err)
}

func (r *redisDraftRepo) Put(ctx context.Context, key string, payload []byte) error {
	return classify(r.client.SetBytes(ctx, key, payload))
}

func (r *redisDraftRepo) Delete(ctx context.Context, key string) error {
	return classify(r.client.Delete(ctx, key))
}
