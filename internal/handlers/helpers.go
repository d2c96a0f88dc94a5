package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/logger"
	"spendlog/internal/middleware"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	return userID.(uint), nil
}

// parsePathID parses a uint path parameter.
// Returns ErrExpenseNotFound if the parameter is not a valid positive integer,
// since no expense can live at such a path.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.ErrExpenseNotFound
	}
	return uint(id), nil
}

// render writes an HTML page. Pages rendered behind the auth middleware get
// the logged-in navigation.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	_, data["Authenticated"] = c.Get(middleware.UserIDKey)
	c.HTML(status, name, data)
}

// errorStatus resolves err to the status code and message shown to the user.
// Unexpected errors and AppErrors carrying an internal cause are logged.
func errorStatus(c *gin.Context, err error) (int, string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		return appErr.StatusCode, appErr.Message
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	return apperrors.ErrInternalServer.StatusCode, apperrors.ErrInternalServer.Message
}

// respondWithError renders the generic error page for err.
func respondWithError(c *gin.Context, err error) {
	status, message := errorStatus(c, err)
	render(c, status, middleware.ErrorTemplate, gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports that the process is serving requests.
// @Summary     Liveness probe
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Router      /api/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
