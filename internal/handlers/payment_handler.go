package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"privdm_backend/internal/middleware"
	"privdm_backend/internal/models"
	"privdm_backend/internal/services"
	"privdm_backend/internal/services/dto"
)

// PaymentHandler - прием кодов подарочных карт. Финансово не авторитативен:
// запись фиксируется, проверка кода происходит вне системы.
type PaymentHandler struct {
	*BaseHandler
	paymentService *services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("/gift-card", h.RecordGiftCard)
		payments.GET("/history", h.History)
	}
}

func (h *PaymentHandler) RecordGiftCard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.GiftCardPaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.paymentService.RecordGiftCardPayment(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *PaymentHandler) History(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if middleware.RoleFromContext(c) == models.UserRoleAdmin {
		// Админ может смотреть историю любого пользователя
		if target := c.Query("user"); target != "" {
			userID = target
		}
	}
	c.JSON(http.StatusOK, gin.H{"giftCards": h.paymentService.History(userID)})
}
