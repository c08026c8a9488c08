package services

import (
	"context"
	"errors"
	"testing"

	"github.com/flowdeck/flowdeck/pkg/eventbus"
	"github.com/flowdeck/flowdeck/pkg/events"
	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock interfaces for testing.
type MockPersistence struct {
	mock.Mock
}

func (m *MockPersistence) Workflows(ctx context.Context) ([]*models.Workflow, error) {
	args := m.Called(ctx)

	return args.Get(0).([]*models.Workflow), args.Error(1)
}

func (m *MockPersistence) SaveWorkflow(ctx context.Context, workflow *models.Workflow) error {
	args := m.Called(ctx, workflow)

	return args.Error(0)
}

func (m *MockPersistence) WorkflowByID(ctx context.Context, id string) (*models.Workflow, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Workflow), args.Error(1)
}

func (m *MockPersistence) DeleteWorkflow(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

type recordingPublisher struct {
	published []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event eventbus.Event) error {
	p.published = append(p.published, event)

	return nil
}

type templateMap map[string]*models.NodeTemplate

func (m templateMap) TemplateByKind(kind string) (*models.NodeTemplate, bool) {
	tpl, ok := m[kind]

	return tpl, ok
}

func serviceTemplates() templateMap {
	return templateMap{
		"chat:answer": {
			Kind: "chat:answer",
			Name: "Answer",
			Inputs: []models.NodeInput{
				{
					Key:         "text",
					ValueType:   models.ValueTypeString,
					Required:    true,
					RenderTypes: []models.RenderType{models.RenderTypeTextarea, models.RenderTypeReference},
				},
			},
		},
	}
}

func identity(s string) string { return s }

func answerNode(id string, value any) *models.StoredNode {
	return &models.StoredNode{
		ID:   id,
		Kind: "chat:answer",
		Inputs: []models.NodeInput{
			{
				Key:         "text",
				ValueType:   models.ValueTypeString,
				Required:    true,
				RenderTypes: []models.RenderType{models.RenderTypeTextarea, models.RenderTypeReference},
				Value:       value,
			},
		},
	}
}

func newTestService(p persistence.Persistence, pub eventbus.EventPublisher) *Workflow {
	return NewWorkflow(p, serviceTemplates(), identity, pub)
}

func TestListWorkflows_FilterSortPaginate(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)

	workflows := []*models.Workflow{
		{ID: "a", Name: "alpha", Owner: "u1", Status: models.WorkflowStatusDraft},
		{ID: "b", Name: "beta", Owner: "u2", Status: models.WorkflowStatusDraft},
		{ID: "c", Name: "gamma", Owner: "u1", Status: models.WorkflowStatusPublished},
	}
	mockPersistence.On("Workflows", ctx).Return(workflows, nil)

	service := newTestService(mockPersistence, nil)

	result, err := service.ListWorkflows(ctx, ListWorkflowsRequest{
		OwnerID:   "u1",
		SortBy:    "name",
		SortOrder: "asc",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalCount)
	require.Len(t, result.Workflows, 2)
	assert.Equal(t, "alpha", result.Workflows[0].Name)
	assert.Equal(t, "gamma", result.Workflows[1].Name)
	assert.False(t, result.HasNextPage)

	paged, err := service.ListWorkflows(ctx, ListWorkflowsRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, paged.Workflows, 2)
	assert.True(t, paged.HasNextPage)
}

func TestListWorkflows_InvalidSortField(t *testing.T) {
	service := newTestService(new(MockPersistence), nil)

	_, err := service.ListWorkflows(context.Background(), ListWorkflowsRequest{SortBy: "owner"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSortField))
	assert.True(t, IsValidationError(err))
}

func TestCreate_SetsDefaults(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)
	mockPersistence.On("SaveWorkflow", ctx, mock.AnythingOfType("*models.Workflow")).Return(nil)

	publisher := &recordingPublisher{}
	service := newTestService(mockPersistence, publisher)

	created, err := service.Create(ctx, &models.Workflow{Name: "New bot"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.WorkflowStatusDraft, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.WorkflowCreatedEvent, publisher.published[0].GetType())
}

func TestCreate_NilWorkflow(t *testing.T) {
	service := newTestService(new(MockPersistence), nil)

	_, err := service.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrWorkflowNil)
}

func TestUpdate_RejectsPublished(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)
	mockPersistence.On("WorkflowByID", ctx, "wf-1").Return(&models.Workflow{
		ID:     "wf-1",
		Status: models.WorkflowStatusPublished,
	}, nil)

	service := newTestService(mockPersistence, nil)

	_, err := service.Update(ctx, "wf-1", &models.Workflow{Name: "edited"})
	assert.ErrorIs(t, err, ErrCannotModifyPublished)
	assert.True(t, IsConflictError(err))
}

func TestUpdate_PreservesCreatedAtAndStatus(t *testing.T) {
	ctx := context.Background()
	existing := &models.Workflow{
		ID:     "wf-1",
		Name:   "old",
		Status: models.WorkflowStatusDraft,
	}

	mockPersistence := new(MockPersistence)
	mockPersistence.On("WorkflowByID", ctx, "wf-1").Return(existing, nil)
	mockPersistence.On("SaveWorkflow", ctx, mock.AnythingOfType("*models.Workflow")).Return(nil)

	service := newTestService(mockPersistence, nil)

	updated, err := service.Update(ctx, "wf-1", &models.Workflow{Name: "new"})
	require.NoError(t, err)

	assert.Equal(t, "wf-1", updated.ID)
	assert.Equal(t, "new", updated.Name)
	assert.Equal(t, models.WorkflowStatusDraft, updated.Status)
	assert.Equal(t, existing.CreatedAt, updated.CreatedAt)
}

func TestDelete_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)
	mockPersistence.On("DeleteWorkflow", ctx, "wf-1").Return(nil)

	publisher := &recordingPublisher{}
	service := newTestService(mockPersistence, publisher)

	require.NoError(t, service.Delete(ctx, "wf-1"))
	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.WorkflowDeletedEvent, publisher.published[0].GetType())
}

func TestLoadGraph_UnknownKindGetsPlaceholder(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)
	mockPersistence.On("WorkflowByID", ctx, "wf-1").Return(&models.Workflow{
		ID: "wf-1",
		Nodes: []*models.StoredNode{
			{ID: "node-1", Kind: "plugin:retired", Name: "Old plugin"},
		},
	}, nil)

	service := newTestService(mockPersistence, nil)

	_, nodes, err := service.LoadGraph(ctx, "wf-1")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "plugin:retired", nodes[0].Kind)
	assert.Equal(t, "Old plugin", nodes[0].Name)
	assert.Empty(t, nodes[0].Inputs)
}

func TestCheck_ReportsInvalidNodes(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)
	mockPersistence.On("WorkflowByID", ctx, "wf-1").Return(&models.Workflow{
		ID: "wf-1",
		Nodes: []*models.StoredNode{
			answerNode("node-1", "hello"),
			answerNode("node-2", nil),
		},
	}, nil)

	service := newTestService(mockPersistence, nil)

	invalid, err := service.Check(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"node-2"}, invalid)
}

func TestPublish_ValidGraph(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)
	mockPersistence.On("WorkflowByID", ctx, "wf-1").Return(&models.Workflow{
		ID:     "wf-1",
		Name:   "Support bot",
		Status: models.WorkflowStatusDraft,
		Nodes:  []*models.StoredNode{answerNode("node-1", "hello")},
	}, nil)
	mockPersistence.On("SaveWorkflow", ctx, mock.AnythingOfType("*models.Workflow")).Return(nil)

	publisher := &recordingPublisher{}
	service := newTestService(mockPersistence, publisher)

	published, err := service.Publish(ctx, "wf-1")
	require.NoError(t, err)

	assert.Equal(t, models.WorkflowStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.WorkflowPublishedEvent, publisher.published[0].GetType())
}

func TestPublish_InvalidGraph(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)
	mockPersistence.On("WorkflowByID", ctx, "wf-1").Return(&models.Workflow{
		ID:     "wf-1",
		Name:   "Support bot",
		Status: models.WorkflowStatusDraft,
		Nodes: []*models.StoredNode{
			answerNode("node-1", nil),
			answerNode("node-2", "ok"),
		},
	}, nil)

	service := newTestService(mockPersistence, nil)

	_, err := service.Publish(ctx, "wf-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGraphInvalid))

	var graphErr *GraphError

	require.True(t, errors.As(err, &graphErr))
	assert.Equal(t, []string{"node-1"}, graphErr.InvalidNodeIDs)
}

func TestPublish_AlreadyPublished(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)
	mockPersistence.On("WorkflowByID", ctx, "wf-1").Return(&models.Workflow{
		ID:     "wf-1",
		Name:   "Support bot",
		Status: models.WorkflowStatusPublished,
		Nodes:  []*models.StoredNode{answerNode("node-1", "hello")},
	}, nil)

	service := newTestService(mockPersistence, nil)

	_, err := service.Publish(ctx, "wf-1")
	assert.ErrorIs(t, err, ErrAlreadyPublished)
}

func TestPublish_RequiresNodes(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)
	mockPersistence.On("WorkflowByID", ctx, "wf-1").Return(&models.Workflow{
		ID:     "wf-1",
		Name:   "Support bot",
		Status: models.WorkflowStatusDraft,
	}, nil)

	service := newTestService(mockPersistence, nil)

	_, err := service.Publish(ctx, "wf-1")
	assert.ErrorIs(t, err, ErrNodesRequired)
}

func TestFetchByID_NotFound(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)
	mockPersistence.On("WorkflowByID", ctx, "missing").Return(nil, persistence.ErrWorkflowNotFound)

	service := newTestService(mockPersistence, nil)

	_, err := service.FetchByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrWorkflowNotFound)
}

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()
	mockPersistence := new(MockPersistence)
	mockPersistence.On("HealthCheck", ctx).Return(nil)

	service := newTestService(mockPersistence, nil)

	message, healthy := service.HealthCheck(ctx)
	assert.True(t, healthy)
	assert.NotEmpty(t, message)
}
