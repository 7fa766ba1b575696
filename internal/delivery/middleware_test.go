package delivery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
)

func newTestRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	router := gin.New()
	router.DELETE("/products/:id", AuthMiddleware(tokens, logger), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")
	router := newTestRouter(tokens)

	do := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("MissingHeaderIsUnauthenticated", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("").Code)
	})

	t.Run("MalformedHeaderIsUnauthenticated", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("Basic abc123").Code)
		assert.Equal(t, http.StatusUnauthorized, do("Bearer").Code)
		assert.Equal(t, http.StatusUnauthorized, do("Bearer ").Code)
	})

	t.Run("InvalidTokenIsForbidden", func(t *testing.T) {
		// Present but unverifiable credentials are a distinct outcome from
		// absent ones: 403, not 401.
		assert.Equal(t, http.StatusForbidden, do("Bearer not-a-real-token").Code)

		foreign, err := auth.NewTokenManager("other-secret").Issue(1, "admin")
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, do("Bearer "+foreign).Code)
	})

	t.Run("ValidTokenPasses", func(t *testing.T) {
		token, err := tokens.Issue(1, "admin")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, do("Bearer "+token).Code)
	})
}
