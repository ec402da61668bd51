// Package http exposes the assignment engine over an Echo REST API.
// Handlers translate JSON payloads into commands and queries, and map the
// error taxonomy onto HTTP status codes: unknown object 404, lost race or
// wrong lifecycle state 409, bad input or no viable candidates 400.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/commands"
	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/queries"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
	"github.com/Aliaga23/SIG-Backend/internal/metrics"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	proposeHandler      commands.ProposeAssignmentsCommandHandler
	acceptHandler       commands.AcceptAssignmentCommandHandler
	rejectHandler       commands.RejectAssignmentCommandHandler
	expireHandler       commands.ExpireAssignmentsCommandHandler
	cleanupHandler      commands.CleanupStaleAssignmentsCommandHandler
	completeStopHandler commands.CompleteStopCommandHandler

	courierAssignmentsHandler queries.GetCourierAssignmentsQueryHandler
	pendingAssignmentsHandler queries.GetPendingAssignmentsQueryHandler

	engineMetrics *metrics.Metrics
}

// NewServer creates the HTTP server with the required command and query
// handlers. engineMetrics may be nil when metrics are disabled.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	proposeHandler commands.ProposeAssignmentsCommandHandler,
	acceptHandler commands.AcceptAssignmentCommandHandler,
	rejectHandler commands.RejectAssignmentCommandHandler,
	expireHandler commands.ExpireAssignmentsCommandHandler,
	cleanupHandler commands.CleanupStaleAssignmentsCommandHandler,
	completeStopHandler commands.CompleteStopCommandHandler,
	courierAssignmentsHandler queries.GetCourierAssignmentsQueryHandler,
	pendingAssignmentsHandler queries.GetPendingAssignmentsQueryHandler,
	engineMetrics *metrics.Metrics,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		proposeHandler:            proposeHandler,
		acceptHandler:             acceptHandler,
		rejectHandler:             rejectHandler,
		expireHandler:             expireHandler,
		cleanupHandler:            cleanupHandler,
		completeStopHandler:       completeStopHandler,
		courierAssignmentsHandler: courierAssignmentsHandler,
		pendingAssignmentsHandler: pendingAssignmentsHandler,
		engineMetrics:             engineMetrics,
	}
}

// RegisterRoutes mounts every endpoint on the Echo instance. A non-nil
// gatherer also mounts the Prometheus scrape endpoint.
func (s *Server) RegisterRoutes(e *echo.Echo, gatherer prometheus.Gatherer) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/assignments/propose", s.ProposeAssignments)
	api.POST("/assignments/:id/accept", s.AcceptAssignment)
	api.POST("/assignments/:id/reject", s.RejectAssignment)
	api.POST("/assignments/expire", s.ExpireAssignments)
	api.POST("/couriers/:id/assignments/cleanup", s.CleanupStaleAssignments)
	api.POST("/stops/:id/complete", s.CompleteStop)
	api.GET("/couriers/:id/assignments", s.GetCourierAssignments)
	api.GET("/couriers/:id/assignments/pending", s.GetPendingAssignments)

	e.GET("/health", s.Health)

	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	CustomerID   string             `json:"customer_id"`
	Instructions string             `json:"instructions"`
	Items        []orderItemRequest `json:"items"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer_id")
	}

	items := make([]commands.OrderItemRequest, 0, len(request.Items))
	for _, item := range request.Items {
		productID, productErr := kernel.UUIDFromString(item.ProductID)
		if productErr != nil {
			return badRequest(ctx, "invalid product_id")
		}
		items = append(items, commands.OrderItemRequest{ProductID: productID, Quantity: item.Quantity})
	}

	command, err := commands.NewCreateOrderCommand(customerID, request.Instructions, items)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return respondError(ctx, err)
	}

	if s.engineMetrics != nil {
		s.engineMetrics.OrdersCreated.Inc()
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{ID: orderID.String()})
}

type proposeRequest struct {
	OrderIDs []string `json:"order_ids"`
	RadiusKm float64  `json:"radius_km"`
}

type proposalResponse struct {
	AssignmentID     string   `json:"assignment_id"`
	CourierID        string   `json:"courier_id"`
	RouteID          string   `json:"route_id"`
	OrderIDs         []string `json:"order_ids"`
	DistanceKm       float64  `json:"distance_km"`
	EstimatedMinutes float64  `json:"estimated_minutes"`
}

// ProposeAssignments handles POST /api/v1/assignments/propose.
func (s *Server) ProposeAssignments(ctx echo.Context) error {
	var request proposeRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderIDs := make([]kernel.UUID, 0, len(request.OrderIDs))
	for _, raw := range request.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "invalid order id")
		}
		orderIDs = append(orderIDs, id)
	}

	command, err := commands.NewProposeAssignmentsCommand(orderIDs, request.RadiusKm)
	if err != nil {
		return respondError(ctx, err)
	}

	proposal, err := s.proposeHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return respondError(ctx, err)
	}

	if s.engineMetrics != nil {
		s.engineMetrics.ProposalsCreated.Inc()
	}

	return ctx.JSON(http.StatusOK, toProposalResponse(*proposal))
}

type courierDecisionRequest struct {
	CourierID string `json:"courier_id"`
}

type acceptResponse struct {
	AssignmentID       string             `json:"assignment_id"`
	RouteID            string             `json:"route_id"`
	StopIDs            []string           `json:"stop_ids"`
	AcceptedOrderIDs   []string           `json:"accepted_order_ids"`
	DetachedOrderIDs   []string           `json:"detached_order_ids"`
	CompetingProposals []proposalResponse `json:"competing_proposals"`
}

// AcceptAssignment handles POST /api/v1/assignments/:id/accept.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid assignment id")
	}

	var request courierDecisionRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	command, err := commands.NewAcceptAssignmentCommand(assignmentID, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.acceptHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return respondError(ctx, err)
	}

	if s.engineMetrics != nil {
		s.engineMetrics.AssignmentsAccepted.Inc()
		s.engineMetrics.ProposalsCreated.Add(float64(len(result.CompetingProposals)))
	}

	response := acceptResponse{
		AssignmentID:       result.AssignmentID.String(),
		RouteID:            result.RouteID.String(),
		StopIDs:            uuidsToStrings(result.StopIDs),
		AcceptedOrderIDs:   uuidsToStrings(result.AcceptedOrderIDs),
		DetachedOrderIDs:   uuidsToStrings(result.DetachedOrderIDs),
		CompetingProposals: make([]proposalResponse, 0, len(result.CompetingProposals)),
	}
	for _, proposal := range result.CompetingProposals {
		response.CompetingProposals = append(response.CompetingProposals, toProposalResponse(proposal))
	}

	return ctx.JSON(http.StatusOK, response)
}

// RejectAssignment handles POST /api/v1/assignments/:id/reject.
func (s *Server) RejectAssignment(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid assignment id")
	}

	var request courierDecisionRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	command, err := commands.NewRejectAssignmentCommand(assignmentID, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.rejectHandler.Handle(ctx.Request().Context(), command); err != nil {
		return respondError(ctx, err)
	}

	if s.engineMetrics != nil {
		s.engineMetrics.AssignmentsRejected.Inc()
	}

	return ctx.NoContent(http.StatusNoContent)
}

type expireRequest struct {
	OlderThanMinutes int `json:"older_than_minutes"`
}

type expireResponse struct {
	ExpiredIDs []string `json:"expired_ids"`
}

// ExpireAssignments handles POST /api/v1/assignments/expire.
func (s *Server) ExpireAssignments(ctx echo.Context) error {
	var request expireRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	command, err := commands.NewExpireAssignmentsCommand(request.OlderThanMinutes)
	if err != nil {
		return respondError(ctx, err)
	}

	expiredIDs, err := s.expireHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return respondError(ctx, err)
	}

	if s.engineMetrics != nil {
		s.engineMetrics.AssignmentsExpired.Add(float64(len(expiredIDs)))
	}

	return ctx.JSON(http.StatusOK, expireResponse{ExpiredIDs: uuidsToStrings(expiredIDs)})
}

type cleanupRequest struct {
	OlderThanHours int `json:"older_than_hours"`
}

type cleanupResponse struct {
	Rejected int `json:"rejected"`
}

// CleanupStaleAssignments handles POST /api/v1/couriers/:id/assignments/cleanup.
func (s *Server) CleanupStaleAssignments(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var request cleanupRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	command, err := commands.NewCleanupStaleAssignmentsCommand(courierID, request.OlderThanHours)
	if err != nil {
		return respondError(ctx, err)
	}

	rejected, err := s.cleanupHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return respondError(ctx, err)
	}

	if s.engineMetrics != nil {
		s.engineMetrics.AssignmentsRejected.Add(float64(rejected))
	}

	return ctx.JSON(http.StatusOK, cleanupResponse{Rejected: rejected})
}

type completeStopRequest struct {
	Outcome  string   `json:"outcome"`
	FinalLat *float64 `json:"final_lat"`
	FinalLon *float64 `json:"final_lon"`
	Notes    string   `json:"notes"`
}

type completeStopResponse struct {
	StopID           string  `json:"stop_id"`
	OrderID          *string `json:"order_id"`
	Outcome          string  `json:"outcome"`
	DeductedUnits    int     `json:"deducted_units"`
	ResequencedStops int     `json:"resequenced_stops"`
}

// CompleteStop handles POST /api/v1/stops/:id/complete.
func (s *Server) CompleteStop(ctx echo.Context) error {
	stopID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid stop id")
	}

	var request completeStopRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	outcome, err := route.StopStatusFromString(request.Outcome)
	if err != nil {
		return badRequest(ctx, "invalid outcome")
	}

	var finalLocation *kernel.GeoPoint
	if request.FinalLat != nil && request.FinalLon != nil {
		point, pointErr := kernel.NewGeoPoint(*request.FinalLat, *request.FinalLon)
		if pointErr != nil {
			return badRequest(ctx, "invalid final location")
		}
		finalLocation = &point
	}

	command, err := commands.NewCompleteStopCommand(stopID, outcome, finalLocation, request.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.completeStopHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return respondError(ctx, err)
	}

	if s.engineMetrics != nil {
		s.engineMetrics.StopsCompleted.WithLabelValues(result.Outcome.String()).Inc()
	}

	var orderID *string
	if result.OrderID != nil {
		raw := result.OrderID.String()
		orderID = &raw
	}

	return ctx.JSON(http.StatusOK, completeStopResponse{
		StopID:           result.StopID.String(),
		OrderID:          orderID,
		Outcome:          result.Outcome.String(),
		DeductedUnits:    result.DeductedUnits,
		ResequencedStops: result.ResequencedStops,
	})
}

type courierStopResponse struct {
	ID       string  `json:"id"`
	OrderID  *string `json:"order_id"`
	Sequence int     `json:"sequence"`
	Status   string  `json:"status"`
}

type courierAssignmentResponse struct {
	ID         string                `json:"id"`
	Status     string                `json:"status"`
	CreatedAt  string                `json:"created_at"`
	RouteID    *string               `json:"route_id"`
	OrderIDs   []string              `json:"order_ids"`
	Stops      []courierStopResponse `json:"stops"`
	NextStopID *string               `json:"next_stop_id"`
}

// GetCourierAssignments handles GET /api/v1/couriers/:id/assignments.
func (s *Server) GetCourierAssignments(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	query, err := queries.NewGetCourierAssignmentsQuery(courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	assignments, err := s.courierAssignmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]courierAssignmentResponse, 0, len(assignments))
	for _, item := range assignments {
		stops := make([]courierStopResponse, 0, len(item.Stops))
		for _, stop := range item.Stops {
			stops = append(stops, courierStopResponse{
				ID:       stop.ID.String(),
				OrderID:  optionalUUIDString(stop.OrderID),
				Sequence: stop.Sequence,
				Status:   stop.Status,
			})
		}

		response = append(response, courierAssignmentResponse{
			ID:         item.ID.String(),
			Status:     item.Status,
			CreatedAt:  item.CreatedAt.UTC().Format(time.RFC3339),
			RouteID:    optionalUUIDString(item.RouteID),
			OrderIDs:   uuidsToStrings(item.OrderIDs),
			Stops:      stops,
			NextStopID: optionalUUIDString(item.NextStopID),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

type pendingAssignmentResponse struct {
	ID               string   `json:"id"`
	CreatedAt        string   `json:"created_at"`
	RouteID          *string  `json:"route_id"`
	DistanceKm       float64  `json:"distance_km"`
	EstimatedMinutes float64  `json:"estimated_minutes"`
	OrderIDs         []string `json:"order_ids"`
}

// GetPendingAssignments handles GET /api/v1/couriers/:id/assignments/pending.
func (s *Server) GetPendingAssignments(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	query, err := queries.NewGetPendingAssignmentsQuery(courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	pending, err := s.pendingAssignmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]pendingAssignmentResponse, 0, len(pending))
	for _, item := range pending {
		response = append(response, pendingAssignmentResponse{
			ID:               item.ID.String(),
			CreatedAt:        item.CreatedAt.UTC().Format(time.RFC3339),
			RouteID:          optionalUUIDString(item.RouteID),
			DistanceKm:       item.DistanceKm,
			EstimatedMinutes: item.EstimatedMinutes,
			OrderIDs:         uuidsToStrings(item.OrderIDs),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func toProposalResponse(proposal commands.Proposal) proposalResponse {
	return proposalResponse{
		AssignmentID:     proposal.AssignmentID.String(),
		CourierID:        proposal.CourierID.String(),
		RouteID:          proposal.RouteID.String(),
		OrderIDs:         uuidsToStrings(proposal.OrderIDs),
		DistanceKm:       proposal.DistanceKm,
		EstimatedMinutes: proposal.EstimatedMinutes,
	}
}

func uuidsToStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func optionalUUIDString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	raw := id.String()
	return &raw
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrInvalidState):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrNoCandidates),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}
