// Copyright (c) 2026 Ludex. All rights reserved.

/*
Package mongodb provides a managed client for the document store.

It owns connection establishment, pool tuning, and health probing for the
MongoDB deployment that persists the videogame catalog.

Core Responsibilities:

  - Connectivity: Fails fast at startup if the store is unreachable.
  - Pooling: Bounds the connection pool so a traffic spike cannot exhaust the server.
  - Health: Exposes a Ping used by the /ready probe.

No collection-level logic lives here; repositories own their own queries.
*/
package mongodb

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Opinionated defaults for the MongoDB connection.
const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 2 * time.Second
	maxPoolSize    = 20
	minPoolSize    = 2
)

// Connect establishes the MongoDB client and verifies connectivity.
//
// # Parameters
//   - context: Context for the initial ping.
//   - uri: MongoDB connection string.
//   - logger: Structured logger for connection events.
func Connect(context stdctx.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetMaxPoolSize(maxPoolSize).
		SetMinPoolSize(minPoolSize)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: invalid client configuration: %w", err)
	}

	// Validate connectivity immediately at startup.
	if err := Ping(context, client); err != nil {
		_ = client.Disconnect(stdctx.Background())
		return nil, err
	}

	logger.Info("mongodb client connected",
		slog.Uint64("max_pool_size", maxPoolSize),
	)

	return client, nil
}

// Ping verifies that the MongoDB client is healthy.
func Ping(context stdctx.Context, client *mongo.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb: ping failed: %w", err)
	}

	return nil
}
