package postgresql_test

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
	"github.com/flowdeck/flowdeck/pkg/persistence/postgresql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var postgresContainer *postgres.PostgresContainer

func dropDB(ctx context.Context, t *testing.T, databaseURL string) {
	t.Helper()

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	for _, table := range []string{"workflows", "schema_migrations"} {
		_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE")
		require.NoError(t, err)
	}

	err = db.Close()
	require.NoError(t, err)
}

func setupTestDB(t *testing.T) (*postgresql.Persistence, context.Context) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)

	if postgresContainer == nil || !postgresContainer.IsRunning() {
		var err error

		postgresContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("flowdeck_test"),
			postgres.WithUsername("flowdeck"),
			postgres.WithPassword("flowdeck"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
	}

	databaseURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dropDB(ctx, t, databaseURL)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		dropDB(ctx, t, databaseURL)

		err = p.Close(ctx)
		require.NoError(t, err)

		cancel()
	})

	return p, ctx
}

func testWorkflow() *models.Workflow {
	now := time.Now().UTC().Truncate(time.Microsecond)

	return &models.Workflow{
		ID:          uuid.New().String(),
		Name:        "Knowledge base bot",
		Description: "Answers from the product dataset",
		Status:      models.WorkflowStatusDraft,
		Nodes: []*models.StoredNode{
			{
				ID:   "node-1",
				Kind: "dataset:search",
				Inputs: []models.NodeInput{
					{
						Key:         "datasets",
						ValueType:   models.ValueTypeArrayString,
						Required:    true,
						RenderTypes: []models.RenderType{models.RenderTypeSelect},
						Value:       []any{"ds-1"},
					},
				},
				Outputs: []models.NodeOutput{
					{Key: "quoteQA", ValueType: models.ValueTypeDatasetQuote},
				},
			},
		},
		Edges: []*models.Edge{
			{ID: "edge-1", SourcePort: "node-0:userChatInput", TargetPort: "node-1:userChatInput"},
		},
		ChatConfig: models.ChatConfig{
			Variables: []models.VariableItem{
				{Key: "lang", ValueType: models.ValueTypeString},
			},
		},
		Owner:     "user-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgresPersistence_SaveAndGet(t *testing.T) {
	p, ctx := setupTestDB(t)

	saved := testWorkflow()
	require.NoError(t, p.SaveWorkflow(ctx, saved))

	loaded, err := p.WorkflowByID(ctx, saved.ID)
	require.NoError(t, err)

	assert.Equal(t, saved.Name, loaded.Name)
	assert.Equal(t, saved.Status, loaded.Status)
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, "dataset:search", loaded.Nodes[0].Kind)
	require.Len(t, loaded.Edges, 1)
	assert.Equal(t, "node-1", loaded.Edges[0].TargetNodeID())
	require.Len(t, loaded.ChatConfig.Variables, 1)
}

func TestPostgresPersistence_Upsert(t *testing.T) {
	p, ctx := setupTestDB(t)

	workflow := testWorkflow()
	require.NoError(t, p.SaveWorkflow(ctx, workflow))

	workflow.Name = "Renamed bot"
	workflow.Status = models.WorkflowStatusPublished
	require.NoError(t, p.SaveWorkflow(ctx, workflow))

	loaded, err := p.WorkflowByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed bot", loaded.Name)
	assert.Equal(t, models.WorkflowStatusPublished, loaded.Status)

	all, err := p.Workflows(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPostgresPersistence_SoftDelete(t *testing.T) {
	p, ctx := setupTestDB(t)

	workflow := testWorkflow()
	require.NoError(t, p.SaveWorkflow(ctx, workflow))
	require.NoError(t, p.DeleteWorkflow(ctx, workflow.ID))

	_, err := p.WorkflowByID(ctx, workflow.ID)
	assert.True(t, persistence.IsWorkflowNotFound(err))

	err = p.DeleteWorkflow(ctx, workflow.ID)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}
