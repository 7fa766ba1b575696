package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

// ContactHandler serves the public subscribe and contact forms plus the
// admin subscriber review.
type ContactHandler struct {
	contactUseCase    usecase.ContactUseCase
	subscriberUseCase usecase.SubscriberUseCase
	log               *logrus.Logger
}

func NewContactHandler(contactUC usecase.ContactUseCase, subscriberUC usecase.SubscriberUseCase, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{
		contactUseCase:    contactUC,
		subscriberUseCase: subscriberUC,
		log:               logger,
	}
}

func (h *ContactHandler) RegisterRoutes(router gin.IRouter, authRequired gin.HandlerFunc) {
	router.POST("/subscribe", h.Subscribe)
	router.POST("/contact", h.SubmitContactMessage)
	router.GET("/subscribers", authRequired, h.ListSubscribers)
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *ContactHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Invalid subscribe payload: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Email address is required")
		return
	}

	subscriber, err := h.subscriberUseCase.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		h.log.Warnf("Subscription failed for %s: %v", req.Email, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to subscribe: "+err.Error())
		return
	}

	h.log.Infof("New subscriber: %s", subscriber.Email)
	SuccessResponse(c, http.StatusCreated, "Thank you for subscribing!", nil)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *ContactHandler) SubmitContactMessage(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Invalid contact payload: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Name, email, and message are required")
		return
	}

	msg := &domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contactUseCase.SubmitMessage(c.Request.Context(), msg); err != nil {
		h.log.Errorf("Contact submission failed for %s: %v", req.Email, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to send message: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Your message has been sent successfully!", nil)
}

func (h *ContactHandler) ListSubscribers(c *gin.Context) {
	subscribers, err := h.subscriberUseCase.ListSubscribers(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list subscribers: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve subscribers: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Subscribers retrieved successfully", subscribers)
}
