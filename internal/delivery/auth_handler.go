package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/usecase"
)

type AuthHandler struct {
	useCase usecase.AuthUseCase
	log     *logrus.Logger
}

func NewAuthHandler(uc usecase.AuthUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/login", h.Login)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Invalid login payload: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		ErrorResponse(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.useCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.log.Warnf("Login failed for %s: %v", req.Username, err)
		status := mapErrorToStatus(err)
		if status == http.StatusUnauthorized {
			ErrorResponse(c, status, "Invalid credentials")
		} else {
			ErrorResponse(c, status, "Server error during login")
		}
		return
	}

	SuccessResponse(c, http.StatusOK, "Login successful", gin.H{"token": token})
}
