// Package http exposes the order lifecycle over REST. It coordinates between
// echo handlers and the application use cases, translating domain errors into
// HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"munchies/internal/core/application/usecases/commands"
	"munchies/internal/core/application/usecases/queries"
	"munchies/internal/core/domain/model/assignment"
	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
	"munchies/internal/pkg/errs"
)

// Error is the JSON body returned for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TransitionRequest is the body of POST /api/v1/orders/:id/status.
type TransitionRequest struct {
	Status string `json:"status"`
}

// AssignRequest is the body of PUT /api/v1/orders/:id/courier.
type AssignRequest struct {
	CourierID string `json:"courier_id"`
}

// NewCourierRequest is the body of POST /api/v1/couriers.
type NewCourierRequest struct {
	Name string `json:"name"`
}

// CourierCreatedResponse carries the id of a newly registered courier.
type CourierCreatedResponse struct {
	ID string `json:"id"`
}

// ShiftRequest is the body of PUT /api/v1/couriers/:id/shift.
type ShiftRequest struct {
	OnShift bool `json:"on_shift"`
}

// PolicyRequest is the body of PUT /api/v1/restaurants/:id/policy.
type PolicyRequest struct {
	AutoAccept bool `json:"auto_accept"`
}

// OrderResponse is the read-model view of an order returned by the queries.
type OrderResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	CustomerID   string    `json:"customer_id"`
	CourierID    *string   `json:"courier_id,omitempty"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"total_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Server implements the REST API for the order lifecycle service.
type Server struct {
	// Command handlers
	transitionHandler    commands.TransitionOrderStatusCommandHandler
	assignHandler        commands.AssignCourierCommandHandler
	unassignHandler      commands.UnassignCourierCommandHandler
	createCourierHandler commands.CreateCourierCommandHandler
	shiftHandler         commands.SetCourierShiftCommandHandler
	policyHandler        commands.SetRestaurantPolicyCommandHandler

	// Query handlers
	getOrderHandler            queries.GetOrderQueryHandler
	getRestaurantOrdersHandler queries.GetRestaurantOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	transitionHandler commands.TransitionOrderStatusCommandHandler,
	assignHandler commands.AssignCourierCommandHandler,
	unassignHandler commands.UnassignCourierCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	shiftHandler commands.SetCourierShiftCommandHandler,
	policyHandler commands.SetRestaurantPolicyCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getRestaurantOrdersHandler queries.GetRestaurantOrdersQueryHandler,
) *Server {
	return &Server{
		transitionHandler:          transitionHandler,
		assignHandler:              assignHandler,
		unassignHandler:            unassignHandler,
		createCourierHandler:       createCourierHandler,
		shiftHandler:               shiftHandler,
		policyHandler:              policyHandler,
		getOrderHandler:            getOrderHandler,
		getRestaurantOrdersHandler: getRestaurantOrdersHandler,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders/:id/status", s.TransitionOrderStatus)
	e.PUT("/api/v1/orders/:id/courier", s.AssignCourier)
	e.DELETE("/api/v1/orders/:id/courier", s.UnassignCourier)
	e.GET("/api/v1/orders/:id", s.GetOrder)
	e.GET("/api/v1/restaurants/:id/orders", s.GetRestaurantOrders)
	e.POST("/api/v1/couriers", s.CreateCourier)
	e.PUT("/api/v1/couriers/:id/shift", s.SetCourierShift)
	e.PUT("/api/v1/restaurants/:id/policy", s.SetRestaurantPolicy)
}

// CreateCourier handles POST /api/v1/couriers - registers a courier in the
// roster mirror.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req NewCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateCourierCommand(req.Name)
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	id, err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CourierCreatedResponse{ID: id.String()})
}

// SetCourierShift handles PUT /api/v1/couriers/:id/shift - marks the courier
// on or off shift.
func (s *Server) SetCourierShift(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	var req ShiftRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetCourierShiftCommand(courierID, req.OnShift)
	if err != nil {
		return badRequest(ctx, "Invalid shift data: "+err.Error())
	}

	if handleErr := s.shiftHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetRestaurantPolicy handles PUT /api/v1/restaurants/:id/policy - records the
// restaurant's auto-accept choice.
func (s *Server) SetRestaurantPolicy(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant id")
	}

	var req PolicyRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetRestaurantPolicyCommand(restaurantID, req.AutoAccept)
	if err != nil {
		return badRequest(ctx, "Invalid policy data: "+err.Error())
	}

	if handleErr := s.policyHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrderStatus handles POST /api/v1/orders/:id/status - advances or
// cancels an order.
func (s *Server) TransitionOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req TransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	next, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+req.Status)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, next)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if handleErr := s.transitionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignCourier handles PUT /api/v1/orders/:id/courier - gives the order an
// active courier assignment.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AssignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	if handleErr := s.assignHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnassignCourier handles DELETE /api/v1/orders/:id/courier - releases the
// active assignment. The courier is named in the courier_id query parameter so
// a stale console cannot release someone else's assignment.
func (s *Server) UnassignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	courierID, err := kernel.UUIDFromString(ctx.QueryParam("courier_id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewUnassignCourierCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, "Invalid release data: "+err.Error())
	}

	if handleErr := s.unassignHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(view))
}

// GetRestaurantOrders handles GET /api/v1/restaurants/:id/orders - retrieves a
// restaurant's orders, optionally filtered by a comma-separated status list.
func (s *Server) GetRestaurantOrders(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant id")
	}

	var statuses []order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			status, err := order.StatusFromString(strings.TrimSpace(name))
			if err != nil {
				return badRequest(ctx, "Unknown status: "+name)
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewGetRestaurantOrdersQuery(restaurantID, statuses)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	views, err := s.getRestaurantOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderResponse, len(views))
	for i, view := range views {
		response[i] = toOrderResponse(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

func toOrderResponse(view queries.GetOrderQueryResponse) OrderResponse {
	response := OrderResponse{
		ID:           view.ID.String(),
		RestaurantID: view.RestaurantID.String(),
		CustomerID:   view.CustomerID.String(),
		Status:       view.Status.String(),
		TotalCents:   view.TotalCents,
		CreatedAt:    view.CreatedAt,
		UpdatedAt:    view.UpdatedAt,
	}
	if view.CourierID != nil {
		id := view.CourierID.String()
		response.CourierID = &id
	}
	return response
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain and application errors onto HTTP status codes.
// Conflicts between the request and the order's current state are 409s so
// clients know to refetch and retry.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, assignment.ErrAlreadyAssigned),
		errors.Is(err, assignment.ErrNotAssigned),
		errors.Is(err, assignment.ErrAssignmentLocked),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		code = http.StatusUnprocessableEntity
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
