package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const key = "idemp:/employees::abc-123"

	newRouter := func(calls *int) (*gin.Engine, redismock.ClientMock) {
		db, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/employees", Idempotency(db, time.Hour), func(c *gin.Context) {
			*calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})
		return r, mock
	}

	post := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/employees", nil)
		req.Header.Set(IdempotencyHeader, "abc-123")
		return req
	}

	t.Run("first request stores the response", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		raw, err := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: []byte(`{"ok":true}`)})
		require.NoError(t, err)

		mock.ExpectGet(key).RedisNil()
		mock.ExpectSetNX(key+":lock", "locked", idempotencyLock).SetVal(true)
		mock.ExpectSet(key, string(raw), time.Hour).SetVal("OK")
		mock.ExpectDel(key + ":lock").SetVal(1)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, post())

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay skips the handler", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		raw, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: []byte(`{"ok":true}`)})
		mock.ExpectGet(key).SetVal(string(raw))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, post())

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Zero(t, calls)
	})

	t.Run("in-flight duplicate conflicts", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		mock.ExpectGet(key).RedisNil()
		mock.ExpectSetNX(key+":lock", "locked", idempotencyLock).SetVal(false)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, post())

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, calls)
	})

	t.Run("no header passes through", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/employees", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
