package constants

import "time"

const HealthCheckTimeout = 3 * time.Second

// Database pool defaults, used when config leaves them at zero.
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
)

const (
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverSQLite   = "sqlite"
)

// Upcoming-events query limits.
const (
	DefaultUpcomingLimit = 50
	MaxUpcomingLimit     = 100
)

const (
	HeaderRequestID     = "X-Request-ID"
	ContextRequestID    = "request_id"
	RequestIDLength     = 16
	RequestIDCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

const (
	RedisKeyEvent   = "reminder:event:"
	DefaultCacheTTL = 5 * time.Minute
)

const (
	TaskTypeDomainEvent = "reminder:domain_event"
	DefaultQueueName    = "reminder"
	TaskMaxRetry        = 5
)

const ServiceName = "eventrely-api"

const DateLayout = "2006-01-02"
