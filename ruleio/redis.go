package ruleio

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the slice of the go-redis API that Redis needs. Satisfied by
// *redis.Client, *redis.ClusterClient and redis.UniversalClient.
type RedisClient interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// Redis loads a ruleset from a Redis hash, one field per rule key. Useful for
// distributing a single ruleset to a fleet; each process reads it once at
// startup when it builds its classifier.
type Redis struct {
	Client RedisClient
	Key    string
}

func (r Redis) Load(ctx context.Context) (map[string]string, error) {
	if r.Client == nil {
		return nil, fmt.Errorf("%w: nil redis client", ErrSourceUnavailable)
	}

	ruleset, err := r.Client.HGetAll(ctx, r.Key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if len(ruleset) == 0 {
		return nil, fmt.Errorf("%w: empty hash %q", ErrRulesetNotFound, r.Key)
	}
	return ruleset, nil
}
