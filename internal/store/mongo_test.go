package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalokdeep/workbench-api/internal/config"
)

func TestGatewayNotConfigured(t *testing.T) {
	g := NewGateway(config.MongoDBConfig{URI: "", Database: "workbench-content"})

	_, err := g.Projects(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = g.Blogs(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)

	// a gateway that never connected closes cleanly
	assert.NoError(t, g.Close(context.Background()))
}
