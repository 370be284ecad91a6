// Package mongo holds the MongoDB persistence layer: connection setup,
// the sequence counters behind integer ids, and the repositories for
// users, accounts and the audit trail.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	defaultTimeout = 10 * time.Second
	appName        = "finances-api"
)

// Config names the server and database the repositories operate on.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect dials the server named in cfg, verifies a primary answers a
// ping, and returns the client together with the database handle. The
// caller owns the client and must Disconnect it on shutdown. A zero
// Timeout falls back to connectTimeout.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = connectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("pinging mongo primary: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}
