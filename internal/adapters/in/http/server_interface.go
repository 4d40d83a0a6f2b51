package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const BearerAuthScopes = "bearerAuth.Scopes"

type ListParcelsParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Search *string `form:"search,omitempty" json:"search,omitempty"`
}

type UnassignDriverParams struct {
	Reason *string `form:"reason,omitempty" json:"reason,omitempty"`
}

type ListDriversParams struct {
	Available *bool `form:"available,omitempty" json:"available,omitempty"`
}

type QuotePriceParams struct {
	PickupLat float64  `form:"pickup_lat" json:"pickup_lat"`
	PickupLng float64  `form:"pickup_lng" json:"pickup_lng"`
	DropLat   float64  `form:"drop_lat" json:"drop_lat"`
	DropLng   float64  `form:"drop_lng" json:"drop_lng"`
	Weight    float64  `form:"weight" json:"weight"`
	Breadth   *float64 `form:"breadth,omitempty" json:"breadth,omitempty"`
}

type ListNotificationsParams struct {
	Unread *bool `form:"unread,omitempty" json:"unread,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/v1/parcels)
	ListParcels(ctx echo.Context, params ListParcelsParams) error
	// (POST /api/v1/parcels)
	CreateParcel(ctx echo.Context) error
	// (GET /api/v1/parcels/{id})
	GetParcel(ctx echo.Context, id string) error
	// (PATCH /api/v1/parcels/{id}/accept)
	AcceptParcel(ctx echo.Context, id string) error
	// (PATCH /api/v1/parcels/{id}/reject)
	RejectParcel(ctx echo.Context, id string) error
	// (PATCH /api/v1/parcels/{id}/status)
	AdvanceParcelStatus(ctx echo.Context, id string) error
	// (GET /api/v1/parcels/{id}/driver-suggestion)
	SuggestDriver(ctx echo.Context, id string) error
	// (GET /api/v1/parcels/{id}/driver-contact)
	GetDriverContact(ctx echo.Context, id string) error
	// (GET /api/v1/stats/parcels)
	GetParcelStats(ctx echo.Context) error
	// (GET /api/v1/dashboard/live-drivers)
	ListLiveDrivers(ctx echo.Context) error
	// (POST /api/v1/assignments)
	AssignDriver(ctx echo.Context) error
	// (DELETE /api/v1/assignments/{parcel_id})
	UnassignDriver(ctx echo.Context, parcelID string, params UnassignDriverParams) error
	// (GET /api/v1/drivers)
	ListDrivers(ctx echo.Context, params ListDriversParams) error
	// (POST /api/v1/drivers)
	CreateDriver(ctx echo.Context) error
	// (PUT /api/v1/drivers/{id})
	UpdateDriver(ctx echo.Context, id int64) error
	// (DELETE /api/v1/drivers/{id})
	DeleteDriver(ctx echo.Context, id int64) error
	// (PUT /api/v1/drivers/{id}/location)
	ReportDriverLocation(ctx echo.Context, id int64) error
	// (GET /api/v1/pricing/quote)
	QuotePrice(ctx echo.Context, params QuotePriceParams) error
	// (GET /api/v1/notifications)
	ListNotifications(ctx echo.Context, params ListNotificationsParams) error
	// (POST /api/v1/notifications/{id}/read)
	MarkNotificationRead(ctx echo.Context, id openapi_types.UUID) error
	// (POST /api/v1/notifications/read-all)
	MarkAllNotificationsRead(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListParcels(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	var params ListParcelsParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "search", ctx.QueryParams(), &params.Search)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter search: %s", err))
	}

	return w.Handler.ListParcels(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateParcel(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CreateParcel(ctx)
}

func (w *ServerInterfaceWrapper) GetParcel(ctx echo.Context) error {
	id, err := bindTrackingNumberParam(ctx, "id")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetParcel(ctx, id)
}

func (w *ServerInterfaceWrapper) AcceptParcel(ctx echo.Context) error {
	id, err := bindTrackingNumberParam(ctx, "id")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.AcceptParcel(ctx, id)
}

func (w *ServerInterfaceWrapper) RejectParcel(ctx echo.Context) error {
	id, err := bindTrackingNumberParam(ctx, "id")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.RejectParcel(ctx, id)
}

func (w *ServerInterfaceWrapper) AdvanceParcelStatus(ctx echo.Context) error {
	id, err := bindTrackingNumberParam(ctx, "id")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.AdvanceParcelStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) SuggestDriver(ctx echo.Context) error {
	id, err := bindTrackingNumberParam(ctx, "id")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.SuggestDriver(ctx, id)
}

func (w *ServerInterfaceWrapper) GetDriverContact(ctx echo.Context) error {
	id, err := bindTrackingNumberParam(ctx, "id")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetDriverContact(ctx, id)
}

func (w *ServerInterfaceWrapper) GetParcelStats(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetParcelStats(ctx)
}

func (w *ServerInterfaceWrapper) ListLiveDrivers(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.ListLiveDrivers(ctx)
}

func (w *ServerInterfaceWrapper) AssignDriver(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.AssignDriver(ctx)
}

func (w *ServerInterfaceWrapper) UnassignDriver(ctx echo.Context) error {
	parcelID, err := bindTrackingNumberParam(ctx, "parcel_id")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	var params UnassignDriverParams

	err = runtime.BindQueryParameter("form", true, false, "reason", ctx.QueryParams(), &params.Reason)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter reason: %s", err))
	}

	return w.Handler.UnassignDriver(ctx, parcelID, params)
}

func (w *ServerInterfaceWrapper) ListDrivers(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	var params ListDriversParams

	err = runtime.BindQueryParameter("form", true, false, "available", ctx.QueryParams(), &params.Available)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter available: %s", err))
	}

	return w.Handler.ListDrivers(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateDriver(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CreateDriver(ctx)
}

func (w *ServerInterfaceWrapper) UpdateDriver(ctx echo.Context) error {
	id, err := bindDriverIDParam(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.UpdateDriver(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteDriver(ctx echo.Context) error {
	id, err := bindDriverIDParam(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.DeleteDriver(ctx, id)
}

func (w *ServerInterfaceWrapper) ReportDriverLocation(ctx echo.Context) error {
	id, err := bindDriverIDParam(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.ReportDriverLocation(ctx, id)
}

func (w *ServerInterfaceWrapper) QuotePrice(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	var params QuotePriceParams

	required := []struct {
		name string
		dest *float64
	}{
		{"pickup_lat", &params.PickupLat},
		{"pickup_lng", &params.PickupLng},
		{"drop_lat", &params.DropLat},
		{"drop_lng", &params.DropLng},
		{"weight", &params.Weight},
	}
	for _, p := range required {
		err = runtime.BindQueryParameter("form", true, true, p.name, ctx.QueryParams(), p.dest)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", p.name, err))
		}
	}

	err = runtime.BindQueryParameter("form", true, false, "breadth", ctx.QueryParams(), &params.Breadth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter breadth: %s", err))
	}

	return w.Handler.QuotePrice(ctx, params)
}

func (w *ServerInterfaceWrapper) ListNotifications(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	var params ListNotificationsParams

	err = runtime.BindQueryParameter("form", true, false, "unread", ctx.QueryParams(), &params.Unread)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter unread: %s", err))
	}

	return w.Handler.ListNotifications(ctx, params)
}

func (w *ServerInterfaceWrapper) MarkNotificationRead(ctx echo.Context) error {
	var err error

	var id openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.MarkNotificationRead(ctx, id)
}

func (w *ServerInterfaceWrapper) MarkAllNotificationsRead(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.MarkAllNotificationsRead(ctx)
}

func bindTrackingNumberParam(ctx echo.Context, name string) (string, error) {
	var value string

	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func bindDriverIDParam(ctx echo.Context) (int64, error) {
	var id int64

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the subset of echo routing used by RegisterHandlers. Both
// *echo.Echo and *echo.Group satisfy it.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes with baseURL prepended to
// their paths.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/parcels", wrapper.ListParcels)
	router.POST(baseURL+"/api/v1/parcels", wrapper.CreateParcel)
	router.GET(baseURL+"/api/v1/parcels/:id", wrapper.GetParcel)
	router.PATCH(baseURL+"/api/v1/parcels/:id/accept", wrapper.AcceptParcel)
	router.PATCH(baseURL+"/api/v1/parcels/:id/reject", wrapper.RejectParcel)
	router.PATCH(baseURL+"/api/v1/parcels/:id/status", wrapper.AdvanceParcelStatus)
	router.GET(baseURL+"/api/v1/parcels/:id/driver-suggestion", wrapper.SuggestDriver)
	router.GET(baseURL+"/api/v1/parcels/:id/driver-contact", wrapper.GetDriverContact)
	router.GET(baseURL+"/api/v1/stats/parcels", wrapper.GetParcelStats)
	router.GET(baseURL+"/api/v1/dashboard/live-drivers", wrapper.ListLiveDrivers)
	router.POST(baseURL+"/api/v1/assignments", wrapper.AssignDriver)
	router.DELETE(baseURL+"/api/v1/assignments/:parcel_id", wrapper.UnassignDriver)
	router.GET(baseURL+"/api/v1/drivers", wrapper.ListDrivers)
	router.POST(baseURL+"/api/v1/drivers", wrapper.CreateDriver)
	router.PUT(baseURL+"/api/v1/drivers/:id", wrapper.UpdateDriver)
	router.DELETE(baseURL+"/api/v1/drivers/:id", wrapper.DeleteDriver)
	router.PUT(baseURL+"/api/v1/drivers/:id/location", wrapper.ReportDriverLocation)
	router.GET(baseURL+"/api/v1/pricing/quote", wrapper.QuotePrice)
	router.GET(baseURL+"/api/v1/notifications", wrapper.ListNotifications)
	router.POST(baseURL+"/api/v1/notifications/:id/read", wrapper.MarkNotificationRead)
	router.POST(baseURL+"/api/v1/notifications/read-all", wrapper.MarkAllNotificationsRead)
}
