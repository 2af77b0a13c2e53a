package lookup

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrFailedToParsePostgresConfig  = errors.New("failed to parse postgres config")
	ErrPostgresNotReady             = errors.New("failed to open postgres connection")
	ErrFailedToParseMongoConfig     = errors.New("failed to parse mongo config")
	ErrMongoNotReady                = errors.New("failed to connect to mongo")
	ErrInvalidIdentifier            = errors.New("invalid lookup identifier")
	ErrNilClient                    = errors.New("lookup client is nil")
	ErrLookupFailed                 = errors.New("lookup failed")
)
