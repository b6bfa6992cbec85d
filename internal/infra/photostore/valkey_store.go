package photostore

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-stylist/internal/domain/photos"
)

// ValkeyStore caches resolved photo URLs in a Valkey-compatible database so
// repeated item queries across replicas skip the live provider.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "photos"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) GetURL(ctx context.Context, query string) (string, bool, error) {
	cmd := s.client.B().Get().Key(s.key(query)).Build()
	url, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return url, true, nil
}

func (s *ValkeyStore) SaveURL(ctx context.Context, query, url string, ttl time.Duration) error {
	builder := s.client.B().Set().Key(s.key(query)).Value(url)
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(query string) string {
	return s.prefix + ":url:" + query
}

var _ photos.Store = (*ValkeyStore)(nil)
