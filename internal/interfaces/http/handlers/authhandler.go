package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upkeep-inc/upkeep/internal/application/user/dto"
	"github.com/upkeep-inc/upkeep/internal/application/user/usecases"
	"github.com/upkeep-inc/upkeep/internal/shared/constants"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

type AuthHandler struct {
	authenticateUC usecases.AuthenticateExecutor
	logger         logger.Interface
}

func NewAuthHandler(authenticateUC usecases.AuthenticateExecutor, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		authenticateUC: authenticateUC,
		logger:         logger,
	}
}

// Login handles POST /auth/login
// @Summary Log in with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.authenticateUC.Execute(c.Request.Context(), usecases.AuthenticateCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Warnw("login failed", "username", req.Username, "client_ip", c.ClientIP(), "error", err)
		} else if authErr := errors.GetAuthError(err); authErr != nil && authErr.SecurityEvent {
			h.logger.Infow("failed login attempt", "username", req.Username, "client_ip", c.ClientIP())
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", result)
}

// Me handles GET /auth/me
// @Summary Current identity
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"username": c.GetString(constants.ContextKeyUsername),
		"role":     c.GetString(constants.ContextKeyUserRole),
	})
}
