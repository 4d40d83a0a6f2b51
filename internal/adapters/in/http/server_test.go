package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "logistics/internal/adapters/in/http"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type MockCommandHandler[C any] struct {
	mock.Mock
}

func (m *MockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockResultHandler[Q, R any] struct {
	mock.Mock
}

func (m *MockResultHandler[Q, R]) Handle(ctx context.Context, q Q) (R, error) {
	args := m.Called(ctx, q)
	var zero R
	if v := args.Get(0); v != nil {
		return v.(R), args.Error(1)
	}
	return zero, args.Error(1)
}

type testAPI struct {
	e    *echo.Echo
	auth *api.TokenAuthenticator
}

func newTestAPI(t *testing.T, handlers api.Handlers, store api.IdempotencyStore) testAPI {
	t.Helper()

	spec, err := api.LoadSpec(t.Context())
	require.NoError(t, err)
	auth, err := api.NewTokenAuthenticator(testSecret)
	require.NoError(t, err)

	e := api.NewRouter(api.NewServer(handlers), api.RouterConfig{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Spec:           spec,
		Auth:           auth,
		Idempotency:    store,
		Gatherer:       prometheus.NewRegistry(),
		RequestTimeout: 5 * time.Second,
	})
	return testAPI{e: e, auth: auth}
}

func (a testAPI) token(t *testing.T, actor kernel.Actor) string {
	t.Helper()
	token, err := a.auth.Issue(actor, time.Now(), time.Hour)
	require.NoError(t, err)
	return token
}

func (a testAPI) do(method, path, body, token string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	if role == kernel.RoleDriver {
		a, err := kernel.NewDriverActor(kernel.NewUUID(), 7)
		require.NoError(t, err)
		return a
	}
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func parcelResponse(t *testing.T, tn kernel.TrackingNumber, clientID kernel.UUID, status parcel.Status) queries.ParcelResponse {
	t.Helper()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return queries.ParcelResponse{
		TrackingNumber: tn,
		ClientID:       clientID,
		Pickup:         queries.AddressResponse{Text: "Connaught Place, Delhi", Lat: 28.6139, Lng: 77.2090},
		Drop:           queries.AddressResponse{Text: "Gateway of India, Mumbai", Lat: 18.9220, Lng: 72.8347},
		WeightKg:       2,
		Price:          decimal.RequireFromString("290.17"),
		DistanceKm:     decimal.RequireFromString("22.02"),
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
		History: []queries.HistoryResponse{
			{Sequence: 1, Status: parcel.Requested, ActorID: clientID, ActorRole: kernel.RoleClient, At: now},
		},
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func mustTrackingNumber(t *testing.T, s string) kernel.TrackingNumber {
	t.Helper()
	tn, err := kernel.ParseTrackingNumber(s)
	require.NoError(t, err)
	return tn
}

func TestServer_CreateParcel(t *testing.T) {
	client := newActor(t, kernel.RoleClient)
	tn := mustTrackingNumber(t, "PMS-1A2B3C4D")

	createHandler := &MockResultHandler[commands.CreateParcelCommand, kernel.TrackingNumber]{}
	createHandler.On("Handle", mock.Anything, mock.AnythingOfType("commands.CreateParcelCommand")).Return(tn, nil).Once()
	getHandler := &MockResultHandler[queries.GetParcelQuery, queries.ParcelResponse]{}
	getHandler.On("Handle", mock.Anything, mock.AnythingOfType("queries.GetParcelQuery")).
		Return(parcelResponse(t, tn, client.UserID(), parcel.Requested), nil).Once()

	a := newTestAPI(t, api.Handlers{CreateParcel: createHandler, GetParcel: getHandler}, nil)

	rec := a.do(http.MethodPost, "/api/v1/parcels", `{
		"from_location": "Connaught Place, Delhi",
		"to_location": "Gateway of India, Mumbai",
		"pickup_lat": 28.6139, "pickup_lng": 77.2090,
		"drop_lat": 18.9220, "drop_lng": 72.8347,
		"weight": 2
	}`, a.token(t, client))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "PMS-1A2B3C4D", body["tracking_number"])
	assert.Equal(t, "290.17", body["price"])
	assert.Equal(t, "requested", body["current_status"])
	assert.Len(t, body["status_history"], 1)
	createHandler.AssertExpectations(t)
	getHandler.AssertExpectations(t)
}

func TestServer_CreateParcelRejectsBodyFailingDocument(t *testing.T) {
	createHandler := &MockResultHandler[commands.CreateParcelCommand, kernel.TrackingNumber]{}
	a := newTestAPI(t, api.Handlers{CreateParcel: createHandler}, nil)

	rec := a.do(http.MethodPost, "/api/v1/parcels",
		`{"from_location":"A","to_location":"B","pickup_lat":95,"pickup_lng":0,"drop_lat":0,"drop_lng":0,"weight":1}`,
		a.token(t, newActor(t, kernel.RoleClient)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, http.StatusBadRequest, decodeBody(t, rec)["code"])
	createHandler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_RequiresBearerToken(t *testing.T) {
	a := newTestAPI(t, api.Handlers{}, nil)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/parcels", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			a.e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.EqualValues(t, http.StatusUnauthorized, decodeBody(t, rec)["code"])
		})
	}
}

func TestServer_AdvanceRejectsNonCanonicalStatus(t *testing.T) {
	advance := &MockCommandHandler[commands.AdvanceParcelStatusCommand]{}
	a := newTestAPI(t, api.Handlers{AdvanceParcelStatus: advance}, nil)

	rec := a.do(http.MethodPatch, "/api/v1/parcels/PMS-1A2B3C4D/status",
		`{"current_status":"in-transit"}`, a.token(t, newActor(t, kernel.RoleDriver)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	advance.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_MapsDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid transition", errs.NewInvalidTransitionError("delivered", "accept"), http.StatusConflict},
		{"terminal state", errs.NewTerminalStateViolationError("rejected", "accept"), http.StatusConflict},
		{"unauthorized role", errs.NewUnauthorizedError("client", "accept"), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("trackingNumber", "PMS-1A2B3C4D"), http.StatusNotFound},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accept := &MockCommandHandler[commands.AcceptParcelCommand]{}
			accept.On("Handle", mock.Anything, mock.AnythingOfType("commands.AcceptParcelCommand")).Return(tt.err).Once()
			a := newTestAPI(t, api.Handlers{AcceptParcel: accept}, nil)

			rec := a.do(http.MethodPatch, "/api/v1/parcels/PMS-1A2B3C4D/accept", "", a.token(t, newActor(t, kernel.RoleAdmin)))

			require.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.EqualValues(t, tt.wantStatus, body["code"])
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, "internal server error", body["message"])
			}
			accept.AssertExpectations(t)
		})
	}
}

func TestServer_AssignBusyDriverIsConflict(t *testing.T) {
	assign := &MockCommandHandler[commands.AssignDriverCommand]{}
	assign.On("Handle", mock.Anything, mock.AnythingOfType("commands.AssignDriverCommand")).
		Return(errs.NewDriverUnavailableError(3)).Once()
	a := newTestAPI(t, api.Handlers{AssignDriver: assign}, nil)

	rec := a.do(http.MethodPost, "/api/v1/assignments", `{"parcel_id":"PMS-1A2B3C4D","driver_id":3}`,
		a.token(t, newActor(t, kernel.RoleAdmin)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assign.AssertExpectations(t)
}

func TestServer_ListParcelsPassesStatusFilter(t *testing.T) {
	admin := newActor(t, kernel.RoleAdmin)
	tn := mustTrackingNumber(t, "PMS-00000001")

	list := &MockResultHandler[queries.ListParcelsQuery, []queries.ParcelResponse]{}
	list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListParcelsQuery) bool {
		return q.Status() != nil && *q.Status() == parcel.InTransit
	})).Return([]queries.ParcelResponse{parcelResponse(t, tn, kernel.NewUUID(), parcel.InTransit)}, nil).Once()
	a := newTestAPI(t, api.Handlers{ListParcels: list}, nil)

	rec := a.do(http.MethodGet, "/api/v1/parcels?status=in_transit", "", a.token(t, admin))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "in_transit", body[0]["current_status"])
	list.AssertExpectations(t)
}

func TestServer_QuotePrice(t *testing.T) {
	quote := &MockResultHandler[queries.QuotePriceQuery, services.Quote]{}
	quote.On("Handle", mock.Anything, mock.AnythingOfType("queries.QuotePriceQuery")).Return(services.Quote{
		DistanceKm: decimal.RequireFromString("1148.43"),
		Price:      decimal.RequireFromString("11544.30"),
	}, nil).Once()
	a := newTestAPI(t, api.Handlers{QuotePrice: quote}, nil)

	rec := a.do(http.MethodGet,
		"/api/v1/pricing/quote?pickup_lat=28.6139&pickup_lng=77.209&drop_lat=19.076&drop_lng=72.8777&weight=2",
		"", a.token(t, newActor(t, kernel.RoleClient)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "1148.43", body["distance_km"])
	assert.Equal(t, "11544.30", body["price"])
}

func TestServer_QuotePriceRequiresWeight(t *testing.T) {
	quote := &MockResultHandler[queries.QuotePriceQuery, services.Quote]{}
	a := newTestAPI(t, api.Handlers{QuotePrice: quote}, nil)

	rec := a.do(http.MethodGet, "/api/v1/pricing/quote?pickup_lat=1&pickup_lng=1&drop_lat=2&drop_lng=2",
		"", a.token(t, newActor(t, kernel.RoleClient)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	quote.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_MarkAllNotificationsRead(t *testing.T) {
	markAll := &MockResultHandler[commands.MarkAllNotificationsReadCommand, int64]{}
	markAll.On("Handle", mock.Anything, mock.AnythingOfType("commands.MarkAllNotificationsReadCommand")).
		Return(int64(3), nil).Once()
	a := newTestAPI(t, api.Handlers{MarkAllNotificationsRead: markAll}, nil)

	rec := a.do(http.MethodPost, "/api/v1/notifications/read-all", "", a.token(t, newActor(t, kernel.RoleDriver)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 3, decodeBody(t, rec)["marked"])
}

func TestServer_ReportLocationNeedsBothCoordinates(t *testing.T) {
	report := &MockCommandHandler[commands.ReportDriverLocationCommand]{}
	a := newTestAPI(t, api.Handlers{ReportDriverLocation: report}, nil)

	rec := a.do(http.MethodPut, "/api/v1/drivers/7/location", `{"lat": 12.97}`, a.token(t, newActor(t, kernel.RoleDriver)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	report.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_ParcelStats(t *testing.T) {
	stats := &MockResultHandler[queries.ParcelStatsQuery, queries.ParcelStatsResponse]{}
	stats.On("Handle", mock.Anything, mock.AnythingOfType("queries.ParcelStatsQuery")).Return(queries.ParcelStatsResponse{
		Total:               3,
		ByStatus:            map[parcel.Status]int64{parcel.Requested: 2, parcel.InTransit: 1, parcel.Delivered: 0},
		UnreadNotifications: 4,
	}, nil).Once()
	a := newTestAPI(t, api.Handlers{ParcelStats: stats}, nil)

	rec := a.do(http.MethodGet, "/api/v1/stats/parcels", "", a.token(t, newActor(t, kernel.RoleClient)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.EqualValues(t, 3, body["total_parcels"])
	assert.EqualValues(t, 4, body["unread_notifications"])
	assert.Equal(t, map[string]any{"requested": 2.0, "in_transit": 1.0, "delivered": 0.0}, body["by_status"])
	stats.AssertExpectations(t)
}

func TestServer_ListLiveDrivers(t *testing.T) {
	status := parcel.PickedUp
	tn := "PMS-00000002"
	lat, lng := 12.97, 77.59
	live := &MockResultHandler[queries.ListLiveDriversQuery, []queries.LiveDriverResponse]{}
	live.On("Handle", mock.Anything, mock.AnythingOfType("queries.ListLiveDriversQuery")).Return([]queries.LiveDriverResponse{
		{ID: 7, Name: "Asha", Lat: &lat, Lng: &lng, ActiveParcel: &tn, ParcelStatus: &status},
		{ID: 8, Name: "Ravi", Available: true},
	}, nil).Once()
	a := newTestAPI(t, api.Handlers{ListLiveDrivers: live}, nil)

	rec := a.do(http.MethodGet, "/api/v1/dashboard/live-drivers", "", a.token(t, newActor(t, kernel.RoleAdmin)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "picked_up", body[0]["parcel_status"])
	assert.Equal(t, tn, body[0]["assigned_parcel"])
	assert.InDelta(t, lat, body[0]["latitude"], 1e-9)
	assert.Nil(t, body[1]["parcel_status"])
	assert.Nil(t, body[1]["latitude"])

	rec = a.do(http.MethodGet, "/api/v1/dashboard/live-drivers", "", a.token(t, newActor(t, kernel.RoleClient)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	live.AssertExpectations(t)
}

func TestServer_GetDriverContact(t *testing.T) {
	tn := mustTrackingNumber(t, "PMS-00000003")
	contact := &MockResultHandler[queries.GetDriverContactQuery, queries.DriverContactResponse]{}
	contact.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetDriverContactQuery) bool {
		return q.TrackingNumber().IsEqual(tn)
	})).Return(queries.DriverContactResponse{
		TrackingNumber: tn, DriverID: 7, Name: "Asha", Phone: "+91 98450 00000", VehicleNumber: "KA05CD7788",
	}, nil).Once()
	contact.On("Handle", mock.Anything, mock.Anything).
		Return(queries.DriverContactResponse{}, errs.NewObjectNotFoundError("driver", "PMS-00000004")).Once()
	a := newTestAPI(t, api.Handlers{GetDriverContact: contact}, nil)
	token := a.token(t, newActor(t, kernel.RoleClient))

	rec := a.do(http.MethodGet, "/api/v1/parcels/PMS-00000003/driver-contact", "", token)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "PMS-00000003", body["parcel_tracking_number"])
	assert.Equal(t, "Asha", body["driver_name"])
	assert.Equal(t, "KA05CD7788", body["vehicle_number"])

	rec = a.do(http.MethodGet, "/api/v1/parcels/PMS-00000004/driver-contact", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	contact.AssertExpectations(t)
}

func TestServer_PublicRoutes(t *testing.T) {
	a := newTestAPI(t, api.Handlers{}, nil)

	health := a.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "ok", decodeBody(t, health)["status"])

	doc := a.do(http.MethodGet, "/openapi.json", "", "")
	assert.Equal(t, http.StatusOK, doc.Code)
	assert.Contains(t, doc.Body.String(), "/api/v1/parcels")

	metrics := a.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, metrics.Code)

	unknown := a.do(http.MethodGet, "/api/v1/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, unknown.Code)
}
