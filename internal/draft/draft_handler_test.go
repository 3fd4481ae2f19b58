package draft_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geraldDev01/onboarding-dashboard/internal/draft"
	"github.com/geraldDev01/onboarding-dashboard/internal/draft/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func setupRouter(store draft.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	draft.RegisterRoutes(r.Group("/api/v1/employees"), draft.NewHandler(store, zap.NewNop()))
	return r
}

func TestDraftHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("get absent draft", func(t *testing.T) {
		store := mock.NewMockStore(ctrl)
		store.EXPECT().Load(gomock.Any()).Return(draft.Draft{}, false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/draft", nil)
		setupRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"found":false`)
	})

	t.Run("put draft", func(t *testing.T) {
		store := mock.NewMockStore(ctrl)
		store.EXPECT().Save(gomock.Any(), draft.Draft{Name: "Ana", Country: "Honduras"})

		w := httptest.NewRecorder()
		body := `{"name":"Ana","country":"Honduras"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/employees/draft", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Ana"`)
	})

	t.Run("put malformed draft", func(t *testing.T) {
		store := mock.NewMockStore(ctrl)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/employees/draft", strings.NewReader(`[1,2]`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("delete draft", func(t *testing.T) {
		store := mock.NewMockStore(ctrl)
		store.EXPECT().Clear(gomock.Any())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/employees/draft", nil)
		setupRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
