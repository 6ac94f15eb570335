// Package redisregistry provides a core.Registry backed by Redis so the
// current user can be observed by other processes. Values are stored as JSON;
// the absence of a session is stored as JSON null rather than deleting the
// key, so readers can distinguish "logged out" from "never published".
package redisregistry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Options configure the Redis registry.
type Options struct {
	// KeyPrefix is prepended to every register key. Defaults to "sessionhub:".
	KeyPrefix string
}

// Registry mirrors register writes into a Redis instance.
type Registry struct {
	client *redis.Client
	opts   Options
}

// New creates a registry on top of an existing Redis client.
func New(client *redis.Client, optFns ...func(o *Options)) *Registry {
	opts := Options{
		KeyPrefix: "sessionhub:",
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{client: client, opts: opts}
}

// Set JSON-encodes value and writes it under the prefixed key.
func (r *Registry) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode registry value: %w", err)
	}
	if err := r.client.Set(ctx, r.opts.KeyPrefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("write registry key %q: %w", key, err)
	}
	return nil
}
