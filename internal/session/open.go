package session

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Persister kinds, as named by SESSION_STORE.
const (
	KindFile     = "file"
	KindRedis    = "redis"
	KindDatabase = "database"
	KindMemory   = "memory"
)

// Backends carries the connections a persister may need. Only the one the
// chosen kind uses has to be set.
type Backends struct {
	Dir   string
	Redis *redis.Client
	DB    *gorm.DB
}

// NewPersister builds the persister for kind.
func NewPersister(kind string, b Backends) (Persister, error) {
	switch kind {
	case KindFile, "":
		if b.Dir == "" {
			return nil, fmt.Errorf("session: file store needs a directory")
		}
		return NewFilePersister(b.Dir), nil
	case KindRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("session: redis store needs a redis connection")
		}
		return NewRedisPersister(b.Redis), nil
	case KindDatabase:
		if b.DB == nil {
			return nil, fmt.Errorf("session: database store needs DATABASE_URL")
		}
		return NewGormPersister(b.DB)
	case KindMemory:
		return NewMemoryPersister(), nil
	default:
		return nil, fmt.Errorf("session: unknown store %q", kind)
	}
}
