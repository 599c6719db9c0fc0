package config

import "context"

// SecretProvider resolves secret references to plaintext values. The keys are
// the raw reference strings taken from *_SECRET_REF variables. Keys the
// provider cannot find are omitted from the result.
type SecretProvider interface {
	GetParametersBatch(ctx context.Context, keys []string) (map[string]string, error)
}
