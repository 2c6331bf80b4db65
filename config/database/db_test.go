package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriverFor(t *testing.T) {
	cases := map[string]Driver{
		"mongodb://localhost:27017/board":               DriverMongo,
		"mongodb+srv://user:pw@cluster0.example.net/db": DriverMongo,
		"postgres://user:pw@localhost:5432/board":       DriverPostgres,
		"postgresql://localhost/board?sslmode=disable":  DriverPostgres,
		"":                                              DriverMongo,
	}
	for uri, want := range cases {
		assert.Equal(t, want, DriverFor(uri), uri)
	}
}

func TestConnectMongoWithInvalidURI(t *testing.T) {
	client, db := ConnectMongo(context.Background(), "", "messageboard")

	assert.Nil(t, client)
	assert.Nil(t, db)
}
