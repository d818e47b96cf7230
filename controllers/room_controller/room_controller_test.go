package room_controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/services/inventory_service"
	"github.com/joy095/propertyops/store"
	"github.com/joy095/propertyops/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	clock := utils.FixedClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	rc := NewRoomController(inventory_service.NewInventoryService(store.NewMemoryStore(), clock))

	r := gin.New()
	r.POST("/room-types", rc.CreateRoomType)
	r.GET("/room-types", rc.ListRoomTypes)
	r.POST("/rooms", rc.CreateRoom)
	r.GET("/rooms", rc.ListRooms)
	r.GET("/rooms/:id", rc.GetRoom)

	send := func(method, path string, payload any) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest(method, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(http.MethodPost, "/room-types", map[string]any{"name": "Suite", "basePrice": "249.50", "capacity": 4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"basePrice":249.5`)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	typeID := created.Data.ID

	t.Run("CreateRoom", func(t *testing.T) {
		w := send(http.MethodPost, "/rooms", map[string]any{"number": "301", "roomTypeId": typeID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"status":"AVAILABLE"`)

		w = send(http.MethodPost, "/rooms", map[string]any{"number": "301", "roomTypeId": typeID})
		assert.Equal(t, http.StatusConflict, w.Code)

		w = send(http.MethodPost, "/rooms", map[string]any{"number": "302"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CapacityRequired", func(t *testing.T) {
		w := send(http.MethodPost, "/room-types", map[string]any{"name": "Closet", "basePrice": 10})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListRooms", func(t *testing.T) {
		w := send(http.MethodGet, "/rooms?status=available&roomTypeId="+typeID, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"number":"301"`)

		w = send(http.MethodGet, "/rooms?status=OCCUPIED", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)

		w = send(http.MethodGet, "/rooms?status=CLOSED", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetRoom", func(t *testing.T) {
		w := send(http.MethodGet, "/rooms/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
