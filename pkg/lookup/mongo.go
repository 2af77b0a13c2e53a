package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	mongooptions "go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoConfig configures ConnectMongo.
type MongoConfig struct {
	ConnectionURL   string        `env:"MONGODB_URL,required"`
	Database        string        `env:"MONGODB_DATABASE" envDefault:"formkit"`
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// ConnectMongo creates a client and pings the primary up to
// cfg.RetryAttempts times. Each ping waits at most cfg.ConnectTimeout for
// server selection.
//
// Returns ErrFailedToParseMongoConfig if the URL is invalid and
// ErrMongoNotReady if every attempt fails.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	opts := mongooptions.Client().
		ApplyURI(cfg.ConnectionURL).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime)
	if cfg.ConnectTimeout > 0 {
		opts = opts.SetConnectTimeout(cfg.ConnectTimeout).SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseMongoConfig, err)
	}

	var lastErr error
	for range max(cfg.RetryAttempts, 1) {
		if lastErr = client.Ping(ctx, nil); lastErr == nil {
			return client, nil
		}

		select {
		case <-ctx.Done():
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, errors.Join(ErrMongoNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	_ = client.Disconnect(context.WithoutCancel(ctx))
	return nil, errors.Join(ErrMongoNotReady, lastErr)
}

// MongoCounter is the subset of *mongo.Collection a MongoCollection needs.
type MongoCounter interface {
	CountDocuments(ctx context.Context, filter any, opts ...mongooptions.Lister[mongooptions.CountOptions]) (int64, error)
}

// foldCollation compares strings ignoring case.
var foldCollation = &mongooptions.Collation{Locale: "en", Strength: 2}

// MongoCollection checks whether any document of a collection holds the value
// in a top-level or dotted field.
type MongoCollection struct {
	coll  MongoCounter
	field string
	opts  options
}

// NewMongoCollection creates a checker over field of coll. With FoldCase the
// lookup uses a case-insensitive collation, which an index on field should
// share.
func NewMongoCollection(coll MongoCounter, field string, opts ...Option) (*MongoCollection, error) {
	if coll == nil {
		return nil, ErrNilClient
	}
	field = strings.TrimSpace(field)
	if field == "" || strings.HasPrefix(field, "$") || strings.ContainsRune(field, 0) {
		return nil, errors.Join(ErrInvalidIdentifier, fmt.Errorf("field %q", field))
	}
	return &MongoCollection{coll: coll, field: field, opts: newOptions(opts)}, nil
}

// Exists reports whether a document with field equal to value exists.
func (c *MongoCollection) Exists(ctx context.Context, value string) (bool, error) {
	count := mongooptions.Count().SetLimit(1)
	if c.opts.fold {
		count = count.SetCollation(foldCollation)
	}
	n, err := c.coll.CountDocuments(ctx, bson.D{{Key: c.field, Value: strings.TrimSpace(value)}}, count)
	if err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return n > 0, nil
}
