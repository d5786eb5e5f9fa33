package ports

import "context"

// SecretStore holds wallet credentials (bundler API key, signing key
// material, device secrets) between runs. Keys use "wallet://…" refs.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
