// Package web provides HTTP handlers and REST API endpoints for the
// workflow editor.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/flowdeck/flowdeck/pkg/graph"
	"github.com/flowdeck/flowdeck/pkg/modelcaps"
	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
	"github.com/flowdeck/flowdeck/pkg/registry"
	"github.com/flowdeck/flowdeck/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	workflowService *services.Workflow
	validator       *validator.Validate
	registry        *registry.Registry
	catalog         modelcaps.Catalog
	translate       graph.Translator
	ids             graph.IDSource
}

func NewAPIHandlers(
	workflowService *services.Workflow,
	validator *validator.Validate,
	registry *registry.Registry,
	catalog modelcaps.Catalog,
	translate graph.Translator,
) *APIHandlers {
	return &APIHandlers{
		workflowService: workflowService,
		validator:       validator,
		registry:        registry,
		catalog:         catalog,
		translate:       translate,
		ids:             graph.NewIDSource(),
	}
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	req, err := h.parseListWorkflowsRequest(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	result, err := h.workflowService.ListWorkflows(c.Context(), *req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"workflows":     result.Workflows,
		"total_count":   result.TotalCount,
		"has_next_page": result.HasNextPage,
		"pagination": fiber.Map{
			"limit":  req.Limit,
			"offset": req.Offset,
		},
		"sorting": fiber.Map{
			"sort_by":    req.SortBy,
			"sort_order": req.SortOrder,
		},
	})
}

// parseListWorkflowsRequest parses and validates query parameters for listing workflows.
func (h *APIHandlers) parseListWorkflowsRequest(c fiber.Ctx) (*services.ListWorkflowsRequest, error) {
	req := &services.ListWorkflowsRequest{}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, err
		}

		req.Limit = limit
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, err
		}

		req.Offset = offset
	}

	req.OwnerID = c.Query("owner_id")

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.WorkflowStatus(statusStr)
		req.Status = &status
	}

	req.SortBy = c.Query("sort_by")
	req.SortOrder = c.Query("sort_order")

	return req, nil
}

// GetWorkflow returns the stored workflow together with its nodes reconciled
// against the current template catalog.
func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	workflow, nodes, err := h.workflowService.LoadGraph(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	return c.JSON(WorkflowDetailResponse{Workflow: workflow, Nodes: nodes})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()
	repositoryCheck, repOk := h.workflowService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Flowdeck API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		message = "Flowdeck API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	workflow := &models.Workflow{
		Name:        req.Name,
		Description: req.Description,
		Owner:       req.Owner,
		Nodes:       []*models.StoredNode{},
		Edges:       []*models.Edge{},
	}
	if req.ChatConfig != nil {
		workflow.ChatConfig = *req.ChatConfig
	}

	created, err := h.workflowService.Create(c.Context(), workflow)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req UpdateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	existing, err := h.workflowService.FetchByID(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}

	if req.Description != nil {
		existing.Description = *req.Description
	}

	if req.Nodes != nil {
		existing.Nodes = req.Nodes
	}

	if req.Edges != nil {
		existing.Edges = req.Edges
	}

	if req.ChatConfig != nil {
		existing.ChatConfig = *req.ChatConfig
	}

	updated, err := h.workflowService.Update(c.Context(), id, existing)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	err := h.workflowService.Delete(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) PublishWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	published, err := h.workflowService.Publish(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(published)
}

func (h *APIHandlers) CheckWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	invalid, err := h.workflowService.Check(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(CheckResponse{
		Valid:          len(invalid) == 0,
		InvalidNodeIDs: invalid,
	})
}

// GetTemplates returns the node palette in registration order.
func (h *APIHandlers) GetTemplates(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"templates": h.registry.Templates(),
	})
}

// GetModels returns the capability records for every model the chat node can
// select, sorted by model name.
func (h *APIHandlers) GetModels(c fiber.Ctx) error {
	names := h.catalog.Models()

	capabilities := make([]modelcaps.Capability, 0, len(names))

	for _, name := range names {
		capability, ok, err := h.catalog.Lookup(c.Context(), name)
		if err != nil {
			return internalError(c, err)
		}

		if ok {
			capabilities = append(capabilities, *capability)
		}
	}

	return c.JSON(fiber.Map{
		"models": capabilities,
	})
}

// GetModel returns the capability record for a single model.
func (h *APIHandlers) GetModel(c fiber.Ctx) error {
	model := c.Params("model")
	if model == "" {
		return badRequest(c, "Model name is required")
	}

	capability, ok, err := h.catalog.Lookup(c.Context(), model)
	if err != nil {
		return internalError(c, err)
	}

	if !ok {
		return notFound(c, "Model not found")
	}

	return c.JSON(capability)
}

// MaterializeTemplate instantiates a fresh node from a template at the given
// canvas position.
func (h *APIHandlers) MaterializeTemplate(c fiber.Ctx) error {
	kind := c.Params("kind")
	if kind == "" {
		return badRequest(c, "Template kind is required")
	}

	var req MaterializeNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	tpl, ok := h.registry.TemplateByKind(kind)
	if !ok {
		return notFound(c, "Template not found")
	}

	node := graph.Materialize(tpl, models.Position{X: req.PositionX, Y: req.PositionY}, h.translate, h.ids)

	return c.Status(fiber.StatusCreated).JSON(node)
}
