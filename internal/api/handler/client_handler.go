package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/entitydesk/entity-api/internal/api/metrics"
	"github.com/entitydesk/entity-api/internal/core/ports"
)

// ClientHandler handles HTTP requests for client operations.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create handles POST /api/clients.
//
// @Summary      Create a new client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string               false  "Replay-safe retry key"
// @Param        body             body      createClientRequest  true   "Client details"
// @Success      201              {object}  clientEnvelope
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.CreateClient(c.Request().Context(), ports.CreateClientInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		UserID:         req.UserID,
		CompanyID:      req.CompanyID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	recordMutation("client", "create", err)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
		metrics.IdempotentReplaysTotal.Inc()
	}
	return c.JSON(status, clientEnvelope{
		Message: "Client created successfully",
		Client:  toClientResponse(result.Client),
	})
}

// Update handles PATCH /api/clients/:id.
//
// @Summary      Partially update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Client id"
// @Param        body  body      updateClientRequest  true  "Fields to change"
// @Success      200   {object}  clientEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/clients/{id} [patch]
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	client, err := h.service.UpdateClient(c.Request().Context(), id, ports.UpdateClientInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		UserID:    req.UserID,
		CompanyID: req.CompanyID,
	})
	recordMutation("client", "update", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, clientEnvelope{
		Message: "Client updated successfully",
		Client:  toClientResponse(client),
	})
}

// Get handles GET /api/clients/:id.
//
// @Summary      Get one client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Client id"
// @Success      200 {object}  clientResponse
// @Failure      404 {object}  errorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	client, err := h.service.GetClient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// List handles GET /api/clients.
//
// @Summary      List active clients, newest first
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  clientResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponses(clients))
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
