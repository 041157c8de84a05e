package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/entitydesk/entity-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users with an optional ?username= substring filter.
//
// @Summary      List active users, newest first
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string  false  "Substring match on username"
// @Success      200       {array}   userResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Replace handles PUT /api/users/:id as a full replace, not a patch.
//
// @Summary      Replace a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "User id"
// @Param        body  body      replaceUserRequest  true  "Complete user state"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Replace(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req replaceUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.ReplaceUser(c.Request().Context(), id, ports.ReplaceUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	recordMutation("user", "replace", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userEnvelope{
		Message: "User replaced successfully",
		User:    toUserResponse(user),
	})
}

// Profile handles GET /api/user/profile. The caller id comes from the verified
// token claims, never from the request body or query.
//
// @Summary      Get the caller's own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	callerID, _, err := callerIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetProfile(c.Request().Context(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
