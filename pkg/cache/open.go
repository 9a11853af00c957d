package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists every backend name.
var Backends = []string{BackendNone, BackendMemory, BackendFile, BackendRedis, BackendMongo}

// Options selects and configures a backend.
type Options struct {
	Backend       string
	Dir           string
	Size          int
	RedisAddr     string
	MongoURI      string
	MongoDatabase string
}

// Open creates the backend named by opts.Backend. An empty name selects
// the file cache in DefaultDir.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendMemory:
		return NewMemoryCache(opts.Size)
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return NewFileCache(dir)
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache: no address configured")
		}
		return NewRedisCache(ctx, opts.RedisAddr)
	case BackendMongo:
		if opts.MongoURI == "" {
			return nil, fmt.Errorf("mongo cache: no uri configured")
		}
		return NewMongoCache(ctx, opts.MongoURI, opts.MongoDatabase)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, opts.Backend)
	}
}

// DefaultDir returns the per-user cache directory for the file backend.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cache dir: %w", err)
	}
	return filepath.Join(base, "tilegrid"), nil
}
