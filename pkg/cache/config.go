package cache

import "time"

// RedisConfig holds connection settings for the Redis cache.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	PoolTimeout  time.Duration
	MinIdleConns int
	Prefix       string
}

// RedisOption overrides a RedisConfig default.
type RedisOption func(*RedisConfig)

func WithRedisHost(host string) RedisOption {
	return func(c *RedisConfig) { c.Host = host }
}

func WithRedisPort(port int) RedisOption {
	return func(c *RedisConfig) { c.Port = port }
}

func WithRedisPassword(password string) RedisOption {
	return func(c *RedisConfig) { c.Password = password }
}

func WithRedisDB(db int) RedisOption {
	return func(c *RedisConfig) { c.DB = db }
}

// WithRedisPool tunes the connection pool.
func WithRedisPool(poolSize, minIdleConns int, timeout time.Duration) RedisOption {
	return func(c *RedisConfig) {
		c.PoolSize = poolSize
		c.MinIdleConns = minIdleConns
		c.PoolTimeout = timeout
	}
}

// WithRedisPrefix sets the namespace prepended to every key.
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *RedisConfig) { c.Prefix = prefix }
}

// MemoryConfig holds in-process cache settings.
type MemoryConfig struct {
	MaxEntries      int
	CleanupInterval time.Duration
}

// MemoryOption overrides a MemoryConfig default.
type MemoryOption func(*MemoryConfig)

func WithMemoryMaxEntries(n int) MemoryOption {
	return func(c *MemoryConfig) { c.MaxEntries = n }
}

func WithMemoryCleanup(interval time.Duration) MemoryOption {
	return func(c *MemoryConfig) { c.CleanupInterval = interval }
}

// LayeredOption overrides a layered cache default.
type LayeredOption func(*layeredConfig)

type layeredConfig struct {
	memoryMaxEntries int
	refillTTL        time.Duration
}

// WithLayeredMemorySize caps the L1 entry count.
func WithLayeredMemorySize(n int) LayeredOption {
	return func(c *layeredConfig) { c.memoryMaxEntries = n }
}

// WithLayeredRefillTTL bounds how long an L2 hit stays in L1.
func WithLayeredRefillTTL(ttl time.Duration) LayeredOption {
	return func(c *layeredConfig) { c.refillTTL = ttl }
}
