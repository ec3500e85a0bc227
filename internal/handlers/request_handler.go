package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"privdm_backend/internal/middleware"
	"privdm_backend/internal/services"
	"privdm_backend/internal/services/dto"
)

// RequestHandler - админское ревью запросов на чат.
type RequestHandler struct {
	*BaseHandler
	requestService *services.RequestService
}

func NewRequestHandler(base *BaseHandler, requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{
		BaseHandler:    base,
		requestService: requestService,
	}
}

func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	requests.Use(middleware.AdminMiddleware())
	{
		requests.GET("", h.List)
		requests.POST("/:id/accept", h.Accept)
		requests.POST("/:id/reject", h.Reject)
	}

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.AdminMiddleware())
	{
		users.POST("/:id/verify", h.MarkVerified)
	}
}

func (h *RequestHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"requests": h.requestService.List()})
}

func (h *RequestHandler) Accept(c *gin.Context) {
	var req dto.AcceptRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.requestService.Accept(c.Request.Context(), c.Param("id"), req.VerificationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *RequestHandler) Reject(c *gin.Context) {
	if err := h.requestService.Reject(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request rejected"})
}

func (h *RequestHandler) MarkVerified(c *gin.Context) {
	user, err := h.requestService.MarkVerified(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
