package cmd

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"printshop/internal/adapters/out/eventlog"
	"printshop/internal/adapters/out/postgres/sqlitetest"
	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) CompositionRoot {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCompositionRoot(Config{}, sqlitetest.Open(t), nil, eventlog.NewPublisher(logger), logger)
}

func TestCompositionRoot_HandlersShareTheStore(t *testing.T) {
	ctx := context.Background()
	root := newTestRoot(t)

	cmd, err := commands.NewCreateClientCommand(kernel.NewUUID(), "Ada Lovelace", "+33 6 00 00 00 00", "")
	require.NoError(t, err)
	created, err := root.CreateCreateClientCommandHandler().Handle(ctx, cmd)
	require.NoError(t, err)

	clients, err := root.CreateListClientsQueryHandler().Handle(ctx, queries.NewListClientsQuery())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.True(t, clients[0].ID.IsEqual(created.ID()))
	assert.Nil(t, clients[0].Email)
}

func TestCompositionRoot_RelayWithNothingPending(t *testing.T) {
	root := newTestRoot(t)

	relay, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)
	published, err := root.CreateRelayOutboxCommandHandler().Handle(context.Background(), relay)
	require.NoError(t, err)
	assert.Zero(t, published)
}

func TestCompositionRoot_CreateServerAndJobs(t *testing.T) {
	root := newTestRoot(t)

	assert.NotNil(t, root.CreateServer())

	jobs := root.CreateJobManager()
	require.NoError(t, jobs.StartAll())
	jobs.StopAll()
}
