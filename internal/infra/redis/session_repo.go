package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/model"
)

// SessionRepo keeps authenticated sessions in Redis so a restart of the
// dashboard gateway does not log everyone out. The TTL matches the session
// cookie lifetime.
type SessionRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewSessionRepo(client RedisClient, ttl time.Duration) *SessionRepo {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &SessionRepo{client: client, ttl: ttl}
}

func (r *SessionRepo) key(id string) string {
	return fmt.Sprintf("dash_session:%s", id)
}

func (r *SessionRepo) Save(ctx context.Context, sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(sess.ID), data, r.ttl)
}

func (r *SessionRepo) Find(ctx context.Context, id string) (*model.Session, error) {
	data, err := r.client.Get(ctx, r.key(id))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var sess model.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id))
}

// Touch extends the session lifetime, mirroring the sliding cookie expiry.
func (r *SessionRepo) Touch(ctx context.Context, id string) error {
	return r.client.Expire(ctx, r.key(id), r.ttl)
}
