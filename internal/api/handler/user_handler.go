package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stefanramac/online-cv-verison2/internal/core/ports"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile handles GET /api/user.
//
// @Summary      Get the caller's profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /user [get]
func (h *UserHandler) Profile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return unexpected(err, "Failed to fetch profile")
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile handles PUT /api/user. Email cannot be changed; an empty
// password keeps the current one.
//
// @Summary      Update the caller's profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /user [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	err = h.service.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		UserID:   claims.UserID,
		Name:     req.Name,
		Lastname: req.Lastname,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		return unexpected(err, "Failed to update profile")
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Profile updated successfully"})
}
