package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"privdm_backend/internal/access"
	"privdm_backend/internal/middleware"
	"privdm_backend/internal/services"
	"privdm_backend/internal/services/dto"
)

type SessionHandler struct {
	*BaseHandler
	sessionService *services.SessionService
}

func NewSessionHandler(base *BaseHandler, sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    base,
		sessionService: sessionService,
	}
}

// RegisterRoutes регистрирует маршруты входа и сессии
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Вход по хэндлу, токена не требует
	rg.POST("/session", h.SubmitHandle)

	protected := rg.Group("/session")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("", h.Me)
		protected.DELETE("", h.Logout)
	}
}

func (h *SessionHandler) SubmitHandle(c *gin.Context) {
	var req dto.SubmitHandleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.sessionService.SubmitHandle(c.Request.Context(), req.Handle)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if response.Outcome == string(access.OutcomeRequestSubmitted) {
		status = http.StatusAccepted
	}
	c.JSON(status, response)
}

func (h *SessionHandler) Me(c *gin.Context) {
	info := h.sessionService.CurrentSession(
		middleware.HandleFromContext(c),
		middleware.UserIDFromContext(c),
		middleware.RoleFromContext(c),
	)
	c.JSON(http.StatusOK, info)
}

func (h *SessionHandler) Logout(c *gin.Context) {
	err := h.sessionService.Logout(
		c.Request.Context(),
		middleware.HandleFromContext(c),
		middleware.UserIDFromContext(c),
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
