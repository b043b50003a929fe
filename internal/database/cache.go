package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// CacheBuilder reads and writes one JSON encoded key. A nil client turns every operation into
// a miss or a no-op so callers never need to check whether caching is enabled.
type CacheBuilder struct {
	client      CacheClient
	key         string
	hashPattern string
	value       any
	ttl         time.Duration
	ctx         context.Context
}

func NewCacheBuilder(client CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    key,
		ctx:    context.Background(),
	}
}

func (b *CacheBuilder) WithHashPattern(pattern string) *CacheBuilder {
	b.hashPattern = pattern
	return b
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	if ctx != nil {
		b.ctx = ctx
	}
	return b
}

// Key is the stored key, with the hash pattern applied when one is set.
func (b *CacheBuilder) Key() string {
	if b.hashPattern == "" {
		return b.key
	}
	return fmt.Sprintf(b.hashPattern, b.key)
}

func (b *CacheBuilder) Set() error {
	if b.client == nil {
		return nil
	}

	data, err := json.Marshal(b.value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	var cmd valkey.Completed
	if seconds := int64(b.ttl / time.Second); seconds > 0 {
		cmd = b.client.B().Set().Key(b.Key()).Value(string(data)).ExSeconds(seconds).Build()
	} else {
		cmd = b.client.B().Set().Key(b.Key()).Value(string(data)).Build()
	}

	return b.client.Do(b.ctx, cmd).Error()
}

// Get decodes the cached value into out and reports whether the key existed.
func (b *CacheBuilder) Get(out any) (bool, error) {
	if b.client == nil {
		return false, nil
	}

	raw, err := b.client.Do(b.ctx, b.client.B().Get().Key(b.Key()).Build()).ToString()
	if valkey.IsValkeyNil(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.client == nil {
		return nil
	}

	return b.client.Do(b.ctx, b.client.B().Del().Key(b.Key()).Build()).Error()
}
