package database

import (
	"context"
	"database/sql"
	"net/url"
	"strings"
	"time"

	"messageboard/pkg/logger"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

type Driver string

const (
	DriverMongo    Driver = "mongodb"
	DriverPostgres Driver = "postgres"

	pingTimeout = 10 * time.Second
)

// DriverFor picks the store from the connection string scheme. Anything
// that is not PostgreSQL is handed to the Mongo driver.
func DriverFor(uri string) Driver {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		return DriverPostgres
	}
	return DriverMongo
}

// ConnectMongo opens the Mongo client and reports whether the deployment
// answers. A failed ping does not prevent startup: the driver keeps
// trying and operations fail until it succeeds. A nil database is returned
// only when the client could not be created at all.
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Sugar.Errorf("Failed to connect to MongoDB: %v", err)
		return nil, nil
	}

	if cs, err := connstring.ParseAndValidate(uri); err == nil && cs.Database != "" {
		dbName = cs.Database
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Sugar.Errorf("Failed to connect to MongoDB: %v", err)
	} else {
		logger.Sugar.Info("Connected to MongoDB")
	}

	return client, client.Database(dbName)
}

// ConnectPostgres opens the pool and pings once. Like ConnectMongo it never
// aborts startup on connectivity errors.
func ConnectPostgres(ctx context.Context, uri string) (*sql.DB, bool) {
	db, err := sql.Open("postgres", uri)
	if err != nil {
		logger.Sugar.Errorf("Failed to open database connection: %v", err)
		return nil, false
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Sugar.Errorf("Failed to connect to PostgreSQL: %v", err)
		return db, false
	}
	logger.Sugar.Info("Connected to PostgreSQL")
	return db, true
}
