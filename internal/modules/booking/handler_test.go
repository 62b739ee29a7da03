package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := setupTestService(t)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func doJSONRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		b, _ := json.Marshal(v)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func bookingBody(roomID uuid.UUID, start, end string) map[string]any {
	return map[string]any{
		"room_id":    roomID.String(),
		"start_time": start,
		"end_time":   end,
		"purpose":    "demo",
	}
}

func TestBookingEndpoints_Flow(t *testing.T) {
	r, svc := setupTestRouter(t)
	room := seedRoom(t, svc.store, "R")

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/bookings",
		bookingBody(room.ID, "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		Booking struct {
			ID uuid.UUID `json:"id"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &created))
	id := created.Booking.ID.String()

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/bookings",
		bookingBody(room.ID, "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z"))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "BOOKING_CONFLICT", decode(t, rr).Error.Code)

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/bookings",
		bookingBody(room.ID, "2024-01-01T09:30:00Z", "2024-01-01T10:30:00Z"))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "INVALID_SLOT", decode(t, rr).Error.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/bookings/"+id, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/bookings", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSONRequest(r, http.MethodPut, "/api/v1/bookings/"+id,
		bookingBody(room.ID, "2024-01-01T11:00:00Z", "2024-01-01T12:00:00Z"))
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/rooms/"+room.ID.String()+"/availability?date=2024-01-01", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `"11:00-12:00":"Booked"`)
	assert.Contains(t, body, `"09:00-10:00":"Available"`)
	assert.Less(t, strings.Index(body, `"08:00-09:00"`), strings.Index(body, `"17:00-18:00"`))

	rr = doJSONRequest(r, http.MethodDelete, "/api/v1/bookings/"+id, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/bookings/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rr).Error.Code)
}

func TestBookingEndpoints_BadInput(t *testing.T) {
	r, svc := setupTestRouter(t)
	room := seedRoom(t, svc.store, "R")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"malformed json", http.MethodPost, "/api/v1/bookings", "{", http.StatusBadRequest},
		{"bad room uuid", http.MethodPost, "/api/v1/bookings",
			map[string]any{"room_id": "nope", "start_time": "2024-01-01T09:00:00Z", "end_time": "2024-01-01T10:00:00Z"},
			http.StatusBadRequest},
		{"missing end", http.MethodPost, "/api/v1/bookings",
			map[string]any{"room_id": room.ID.String(), "start_time": "2024-01-01T09:00:00Z"},
			http.StatusBadRequest},
		{"inverted", http.MethodPost, "/api/v1/bookings",
			bookingBody(room.ID, "2024-01-01T10:00:00Z", "2024-01-01T09:00:00Z"),
			http.StatusBadRequest},
		{"unknown room", http.MethodPost, "/api/v1/bookings",
			bookingBody(uuid.New(), "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z"),
			http.StatusNotFound},
		{"bad path id", http.MethodGet, "/api/v1/bookings/123", nil, http.StatusBadRequest},
		{"update unknown", http.MethodPut, "/api/v1/bookings/" + uuid.NewString(),
			bookingBody(room.ID, "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z"),
			http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/api/v1/bookings/" + uuid.NewString(), nil, http.StatusNotFound},
		{"availability without date", http.MethodGet, "/api/v1/rooms/" + room.ID.String() + "/availability", nil, http.StatusBadRequest},
		{"availability bad date", http.MethodGet, "/api/v1/rooms/" + room.ID.String() + "/availability?date=2024-13-01", nil, http.StatusBadRequest},
		{"availability unknown room", http.MethodGet, "/api/v1/rooms/" + uuid.NewString() + "/availability?date=2024-01-01", nil, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSONRequest(r, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, rr.Code, rr.Body.String())
			assert.False(t, decode(t, rr).Success)
		})
	}
}

func TestListSlots(t *testing.T) {
	r, _ := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodGet, "/api/v1/slots", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var data struct {
		Timezone string `json:"timezone"`
		Slots    []struct {
			Label string `json:"label"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &data))
	assert.Equal(t, "UTC", data.Timezone)
	require.Len(t, data.Slots, 10)
	assert.Equal(t, "08:00-09:00", data.Slots[0].Label)
	assert.Equal(t, "17:00-18:00", data.Slots[9].Label)
}

func TestCreateBooking_LongPurposeIsStoredWhole(t *testing.T) {
	r, svc := setupTestRouter(t)
	room := seedRoom(t, svc.store, "R")

	body := bookingBody(room.ID, "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z")
	purpose := strings.Repeat("quarterly planning, ", 400)
	body["purpose"] = purpose

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/bookings", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		Booking struct {
			ID uuid.UUID `json:"id"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &created))

	stored, err := svc.GetBooking(context.Background(), created.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, purpose, stored.Purpose)
}
