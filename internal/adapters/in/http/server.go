package http

import (
	"context"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handler contracts the Server depends on. Command handlers are passed as pointers.
type (
	CreateParcelHandler interface {
		Handle(ctx context.Context, cmd commands.CreateParcelCommand) (kernel.TrackingNumber, error)
	}
	AcceptParcelHandler interface {
		Handle(ctx context.Context, cmd commands.AcceptParcelCommand) error
	}
	RejectParcelHandler interface {
		Handle(ctx context.Context, cmd commands.RejectParcelCommand) error
	}
	AdvanceParcelStatusHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceParcelStatusCommand) error
	}
	AssignDriverHandler interface {
		Handle(ctx context.Context, cmd commands.AssignDriverCommand) error
	}
	UnassignDriverHandler interface {
		Handle(ctx context.Context, cmd commands.UnassignDriverCommand) error
	}
	CreateDriverHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDriverCommand) (int64, error)
	}
	UpdateDriverHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDriverCommand) error
	}
	DeleteDriverHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteDriverCommand) error
	}
	ReportDriverLocationHandler interface {
		Handle(ctx context.Context, cmd commands.ReportDriverLocationCommand) error
	}
	MarkNotificationReadHandler interface {
		Handle(ctx context.Context, cmd commands.MarkNotificationReadCommand) error
	}
	MarkAllNotificationsReadHandler interface {
		Handle(ctx context.Context, cmd commands.MarkAllNotificationsReadCommand) (int64, error)
	}

	GetParcelHandler interface {
		Handle(ctx context.Context, query queries.GetParcelQuery) (queries.ParcelResponse, error)
	}
	ListParcelsHandler interface {
		Handle(ctx context.Context, query queries.ListParcelsQuery) ([]queries.ParcelResponse, error)
	}
	SuggestDriverHandler interface {
		Handle(ctx context.Context, query queries.SuggestDriverQuery) (queries.SuggestDriverQueryResponse, error)
	}
	ListDriversHandler interface {
		Handle(ctx context.Context, query queries.ListDriversQuery) ([]queries.DriverResponse, error)
	}
	QuotePriceHandler interface {
		Handle(ctx context.Context, query queries.QuotePriceQuery) (services.Quote, error)
	}
	ListNotificationsHandler interface {
		Handle(ctx context.Context, query queries.ListNotificationsQuery) ([]queries.NotificationResponse, error)
	}
	GetDriverContactHandler interface {
		Handle(ctx context.Context, query queries.GetDriverContactQuery) (queries.DriverContactResponse, error)
	}
	ParcelStatsHandler interface {
		Handle(ctx context.Context, query queries.ParcelStatsQuery) (queries.ParcelStatsResponse, error)
	}
	ListLiveDriversHandler interface {
		Handle(ctx context.Context, query queries.ListLiveDriversQuery) ([]queries.LiveDriverResponse, error)
	}
)

// Handlers groups everything the Server dispatches to.
type Handlers struct {
	CreateParcel             CreateParcelHandler
	AcceptParcel             AcceptParcelHandler
	RejectParcel             RejectParcelHandler
	AdvanceParcelStatus      AdvanceParcelStatusHandler
	AssignDriver             AssignDriverHandler
	UnassignDriver           UnassignDriverHandler
	CreateDriver             CreateDriverHandler
	UpdateDriver             UpdateDriverHandler
	DeleteDriver             DeleteDriverHandler
	ReportDriverLocation     ReportDriverLocationHandler
	MarkNotificationRead     MarkNotificationReadHandler
	MarkAllNotificationsRead MarkAllNotificationsReadHandler

	GetParcel         GetParcelHandler
	ListParcels       ListParcelsHandler
	SuggestDriver     SuggestDriverHandler
	ListDrivers       ListDriversHandler
	QuotePrice        QuotePriceHandler
	ListNotifications ListNotificationsHandler
	GetDriverContact  GetDriverContactHandler
	ParcelStats       ParcelStatsHandler
	ListLiveDrivers   ListLiveDriversHandler
}

// Server implements ServerInterface on top of the application use cases.
// Errors are returned as is and rendered by NewErrorHandler.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

var _ ServerInterface = (*Server)(nil)

// ListParcels handles GET /api/v1/parcels.
func (s *Server) ListParcels(ctx echo.Context, params ListParcelsParams) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	var status *parcel.Status
	if params.Status != nil && *params.Status != "" {
		st, err := parcel.ParseStatus(*params.Status)
		if err != nil {
			return err
		}
		status = &st
	}

	query, err := queries.NewListParcelsQuery(actor, status, deref(params.Search))
	if err != nil {
		return err
	}

	parcels, err := s.h.ListParcels.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toParcels(parcels))
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	var req NewParcel
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	pickup, err := newAddress("pickup", req.FromLocation, req.PickupLat, req.PickupLng)
	if err != nil {
		return err
	}
	drop, err := newAddress("drop", req.ToLocation, req.DropLat, req.DropLng)
	if err != nil {
		return err
	}
	measurements, err := parcel.NewMeasurements(req.Weight, req.Height, req.Width, req.Breadth)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateParcelCommand(actor, pickup, drop, measurements, req.Description, req.SpecialInstructions)
	if err != nil {
		return err
	}

	tn, err := s.h.CreateParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusCreated, tn, actor)
}

// GetParcel handles GET /api/v1/parcels/{id}.
func (s *Server) GetParcel(ctx echo.Context, id string) error {
	actor, tn, err := actorAndTrackingNumber(ctx, id)
	if err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusOK, tn, actor)
}

// AcceptParcel handles PATCH /api/v1/parcels/{id}/accept.
func (s *Server) AcceptParcel(ctx echo.Context, id string) error {
	actor, tn, err := actorAndTrackingNumber(ctx, id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptParcelCommand(tn, actor)
	if err != nil {
		return err
	}
	if err := s.h.AcceptParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusOK, tn, actor)
}

// RejectParcel handles PATCH /api/v1/parcels/{id}/reject.
func (s *Server) RejectParcel(ctx echo.Context, id string) error {
	actor, tn, err := actorAndTrackingNumber(ctx, id)
	if err != nil {
		return err
	}

	var req RejectParcel
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRejectParcelCommand(tn, actor, req.Notes)
	if err != nil {
		return err
	}
	if err := s.h.RejectParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusOK, tn, actor)
}

// AdvanceParcelStatus handles PATCH /api/v1/parcels/{id}/status.
func (s *Server) AdvanceParcelStatus(ctx echo.Context, id string) error {
	actor, tn, err := actorAndTrackingNumber(ctx, id)
	if err != nil {
		return err
	}

	var req StatusUpdate
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}
	target, err := parcel.ParseStatus(req.CurrentStatus)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceParcelStatusCommand(tn, actor, target, req.Location, req.Notes)
	if err != nil {
		return err
	}
	if err := s.h.AdvanceParcelStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusOK, tn, actor)
}

// SuggestDriver handles GET /api/v1/parcels/{id}/driver-suggestion.
func (s *Server) SuggestDriver(ctx echo.Context, id string) error {
	actor, tn, err := actorAndTrackingNumber(ctx, id)
	if err != nil {
		return err
	}

	query, err := queries.NewSuggestDriverQuery(tn, actor)
	if err != nil {
		return err
	}
	suggestion, err := s.h.SuggestDriver.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, DriverSuggestion{
		Driver:     toDriver(suggestion.Driver),
		DistanceKm: suggestion.DistanceKm,
	})
}

// GetDriverContact handles GET /api/v1/parcels/{id}/driver-contact.
func (s *Server) GetDriverContact(ctx echo.Context, id string) error {
	actor, tn, err := actorAndTrackingNumber(ctx, id)
	if err != nil {
		return err
	}

	query, err := queries.NewGetDriverContactQuery(tn, actor)
	if err != nil {
		return err
	}
	contact, err := s.h.GetDriverContact.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toDriverContact(contact))
}

// GetParcelStats handles GET /api/v1/stats/parcels.
func (s *Server) GetParcelStats(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewParcelStatsQuery(actor)
	if err != nil {
		return err
	}
	stats, err := s.h.ParcelStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toParcelStats(stats))
}

// ListLiveDrivers handles GET /api/v1/dashboard/live-drivers.
func (s *Server) ListLiveDrivers(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListLiveDriversQuery(actor)
	if err != nil {
		return err
	}
	drivers, err := s.h.ListLiveDrivers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]LiveDriver, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toLiveDriver(d))
	}
	return ctx.JSON(http.StatusOK, response)
}

// AssignDriver handles POST /api/v1/assignments.
func (s *Server) AssignDriver(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	var req NewAssignment
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}
	tn, err := kernel.ParseTrackingNumber(req.ParcelID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDriverCommand(tn, req.DriverID, actor)
	if err != nil {
		return err
	}
	if err := s.h.AssignDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusOK, tn, actor)
}

// UnassignDriver handles DELETE /api/v1/assignments/{parcel_id}.
func (s *Server) UnassignDriver(ctx echo.Context, parcelID string, params UnassignDriverParams) error {
	actor, tn, err := actorAndTrackingNumber(ctx, parcelID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUnassignDriverCommand(tn, actor, deref(params.Reason))
	if err != nil {
		return err
	}
	if err := s.h.UnassignDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusOK, tn, actor)
}

// ListDrivers handles GET /api/v1/drivers.
func (s *Server) ListDrivers(ctx echo.Context, params ListDriversParams) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListDriversQuery(actor, params.Available != nil && *params.Available)
	if err != nil {
		return err
	}
	drivers, err := s.h.ListDrivers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Driver, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toDriver(d))
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	var req DriverProfile
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}
	profile, err := req.toProfile()
	if err != nil {
		return err
	}
	location, err := optionalLocation(req.Lat, req.Lng)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateDriverCommand(actor, profile, req.CurrentLocation, location)
	if err != nil {
		return err
	}
	id, err := s.h.CreateDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, newDriverResponse(id, profile, req))
}

// UpdateDriver handles PUT /api/v1/drivers/{id}.
func (s *Server) UpdateDriver(ctx echo.Context, id int64) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	var req DriverProfile
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}
	profile, err := req.toProfile()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateDriverCommand(actor, id, profile)
	if err != nil {
		return err
	}
	if err := s.h.UpdateDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteDriver handles DELETE /api/v1/drivers/{id}.
func (s *Server) DeleteDriver(ctx echo.Context, id int64) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteDriverCommand(actor, id)
	if err != nil {
		return err
	}
	if err := s.h.DeleteDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportDriverLocation handles PUT /api/v1/drivers/{id}/location.
func (s *Server) ReportDriverLocation(ctx echo.Context, id int64) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	var req LocationReport
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}
	location, err := optionalLocation(req.Lat, req.Lng)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReportDriverLocationCommand(actor, id, req.CurrentLocation, location)
	if err != nil {
		return err
	}
	if err := s.h.ReportDriverLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// QuotePrice handles GET /api/v1/pricing/quote.
func (s *Server) QuotePrice(ctx echo.Context, params QuotePriceParams) error {
	if _, err := ActorFrom(ctx); err != nil {
		return err
	}

	pickup, err := kernel.NewLocation(params.PickupLat, params.PickupLng)
	if err != nil {
		return err
	}
	drop, err := kernel.NewLocation(params.DropLat, params.DropLng)
	if err != nil {
		return err
	}
	measurements, err := parcel.NewMeasurements(params.Weight, nil, nil, params.Breadth)
	if err != nil {
		return err
	}

	query, err := queries.NewQuotePriceQuery(pickup, drop, measurements)
	if err != nil {
		return err
	}
	quote, err := s.h.QuotePrice.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toQuote(quote))
}

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(ctx echo.Context, params ListNotificationsParams) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListNotificationsQuery(actor, params.Unread != nil && *params.Unread)
	if err != nil {
		return err
	}
	items, err := s.h.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Notification, 0, len(items))
	for _, n := range items {
		response = append(response, toNotification(n))
	}
	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles POST /api/v1/notifications/{id}/read.
func (s *Server) MarkNotificationRead(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	notificationID, err := kernel.UUIDFromString(id.String())
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkNotificationReadCommand(actor, notificationID)
	if err != nil {
		return err
	}
	if err := s.h.MarkNotificationRead.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkAllNotificationsReadCommand(actor)
	if err != nil {
		return err
	}
	marked, err := s.h.MarkAllNotificationsRead.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, MarkedRead{Marked: marked})
}

// respondWithParcel re-reads the parcel as the actor sees it after a command.
func (s *Server) respondWithParcel(ctx echo.Context, status int, tn kernel.TrackingNumber, actor kernel.Actor) error {
	query, err := queries.NewGetParcelQuery(tn, actor)
	if err != nil {
		return err
	}
	p, err := s.h.GetParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, toParcel(p))
}

func actorAndTrackingNumber(ctx echo.Context, id string) (kernel.Actor, kernel.TrackingNumber, error) {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return kernel.Actor{}, kernel.TrackingNumber{}, err
	}
	tn, err := kernel.ParseTrackingNumber(id)
	if err != nil {
		return kernel.Actor{}, kernel.TrackingNumber{}, err
	}
	return actor, tn, nil
}

func bindAndValidate(ctx echo.Context, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return err
	}
	return ctx.Validate(dst)
}

func newAddress(name, text string, lat, lng *float64) (parcel.Address, error) {
	if lat == nil || lng == nil {
		return parcel.Address{}, errs.NewValueIsRequiredError(name + "Location")
	}
	loc, err := kernel.NewLocation(*lat, *lng)
	if err != nil {
		return parcel.Address{}, err
	}
	return parcel.NewAddress(text, loc)
}

func optionalLocation(lat, lng *float64) (*kernel.Location, error) {
	switch {
	case lat == nil && lng == nil:
		return nil, nil
	case lat == nil || lng == nil:
		return nil, errs.NewValueIsRequiredError("lat and lng")
	}
	loc, err := kernel.NewLocation(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r DriverProfile) toProfile() (driver.Profile, error) {
	vehicleType, err := driver.ParseVehicleType(r.VehicleType)
	if err != nil {
		return driver.Profile{}, err
	}
	return driver.Profile{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		VehicleType:   vehicleType,
		VehicleNumber: r.VehicleNumber,
		Rating:        r.Rating,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
