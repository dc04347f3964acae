package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	assert.ErrorContains(t, err, "DATABASE_URL")

	_, err = NewClient(context.Background(), Config{DatabaseURL: "postgres://%zz"})
	assert.ErrorContains(t, err, "failed to parse database URL")
}
