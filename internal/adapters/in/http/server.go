// Package http exposes the order pipeline over a JSON API. Handlers bind
// requests, construct commands and queries, and map domain errors onto HTTP
// status codes; all business decisions live in the application layer.
package http

import (
	"net/http"

	"ordercart/internal/core/application/usecases/commands"
	"ordercart/internal/core/application/usecases/queries"
	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	intakeHandler         commands.IntakeOrderCommandHandler
	transitionHandler     commands.TransitionOrderCommandHandler
	bulkTransitionHandler commands.BulkTransitionCommandHandler
	createBatchHandler    commands.CreateBatchCommandHandler
	raiseHandler          commands.RaiseExceptionCommandHandler
	analyzeHandler        commands.AnalyzeExceptionCommandHandler
	resolveHandler        commands.ResolveExceptionCommandHandler

	// Query handlers
	getOrdersHandler      queries.GetOrdersQueryHandler
	getExceptionsHandler  queries.GetExceptionsQueryHandler
	getBatchHandler       queries.GetBatchQueryHandler
	suggestBatchesHandler queries.SuggestBatchesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	intakeHandler commands.IntakeOrderCommandHandler,
	transitionHandler commands.TransitionOrderCommandHandler,
	bulkTransitionHandler commands.BulkTransitionCommandHandler,
	createBatchHandler commands.CreateBatchCommandHandler,
	raiseHandler commands.RaiseExceptionCommandHandler,
	analyzeHandler commands.AnalyzeExceptionCommandHandler,
	resolveHandler commands.ResolveExceptionCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getExceptionsHandler queries.GetExceptionsQueryHandler,
	getBatchHandler queries.GetBatchQueryHandler,
	suggestBatchesHandler queries.SuggestBatchesQueryHandler,
) *Server {
	return &Server{
		intakeHandler:         intakeHandler,
		transitionHandler:     transitionHandler,
		bulkTransitionHandler: bulkTransitionHandler,
		createBatchHandler:    createBatchHandler,
		raiseHandler:          raiseHandler,
		analyzeHandler:        analyzeHandler,
		resolveHandler:        resolveHandler,
		getOrdersHandler:      getOrdersHandler,
		getExceptionsHandler:  getExceptionsHandler,
		getBatchHandler:       getBatchHandler,
		suggestBatchesHandler: suggestBatchesHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.IntakeOrder)
	api.POST("/orders/batch", s.IntakeOrderBatch)
	api.GET("/orders", s.GetOrders)
	api.PUT("/orders/:id/status", s.TransitionOrder)
	api.POST("/orders/:id/exception", s.RaiseException)

	api.GET("/batches/suggest", s.SuggestBatches)
	api.POST("/batches", s.CreateBatch)
	api.GET("/batches/:id", s.GetBatch)
	api.POST("/batches/:id/status", s.BulkTransition)

	api.GET("/exceptions", s.GetExceptions)
	api.POST("/exceptions/:id/analyze", s.AnalyzeException)
	api.POST("/exceptions/:id/resolve", s.ResolveException)
}

// actorOf resolves who is acting, from the X-Actor header. Unattributed
// requests are recorded as "api".
func actorOf(ctx echo.Context) string {
	if actor := ctx.Request().Header.Get("X-Actor"); actor != "" {
		return actor
	}
	return "api"
}

// IntakeOrder handles POST /api/v1/orders - admits one raw order payload.
func (s *Server) IntakeOrder(ctx echo.Context) error {
	var payload map[string]any
	if err := ctx.Bind(&payload); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	result, err := s.admit(ctx, payload)
	if err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, result)
}

// IntakeOrderBatch handles POST /api/v1/orders/batch - admits each payload
// independently. One bad order never blocks its neighbors; the response mirrors
// the request order.
func (s *Server) IntakeOrderBatch(ctx echo.Context) error {
	var payloads []map[string]any
	if err := ctx.Bind(&payloads); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	if len(payloads) == 0 {
		return writeBadRequest(ctx, "At least one order payload is required")
	}

	results := make([]BatchIntakeItemResponse, len(payloads))
	for i, payload := range payloads {
		item := BatchIntakeItemResponse{Index: i}
		result, err := s.admit(ctx, payload)
		if err != nil {
			body := domainErrorBody(err)
			item.Error = &body
		} else {
			item.Order = &result
		}
		results[i] = item
	}

	return ctx.JSON(http.StatusMultiStatus, results)
}

func (s *Server) admit(ctx echo.Context, payload map[string]any) (IntakeResponse, error) {
	cmd, err := commands.NewIntakeOrderCommand(kernel.NewUUID(), payload, actorOf(ctx))
	if err != nil {
		return IntakeResponse{}, err
	}

	result, err := s.intakeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return IntakeResponse{}, err
	}

	response := IntakeResponse{
		OrderID:  result.OrderID.String(),
		Status:   result.Status.String(),
		Warnings: result.Warnings,
	}
	if result.ReorderOf != nil {
		response.ReorderOf = result.ReorderOf.String()
	}
	return response, nil
}

// GetOrders handles GET /api/v1/orders - lists order summaries, optionally
// filtered by ?status= and capped by ?limit=.
func (s *Server) GetOrders(ctx echo.Context) error {
	limit := 0
	if rawLimit := ctx.QueryParam("limit"); rawLimit != "" {
		if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
			return writeBadRequest(ctx, "Invalid limit parameter")
		}
	}

	query, err := queries.NewGetOrdersQuery(ctx.QueryParam("status"), limit)
	if err != nil {
		return writeBadRequest(ctx, "Invalid status filter: "+err.Error())
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(orders))
	for i, summary := range orders {
		response[i] = OrderSummaryResponse{
			OrderID:       summary.ID.String(),
			CustomerName:  summary.CustomerName,
			CustomerEmail: summary.CustomerEmail,
			Status:        summary.Status,
			PaymentTotal:  summary.PaymentTotal,
			CreatedAt:     summary.CreatedAt,
			UpdatedAt:     summary.UpdatedAt,
			Version:       summary.Version,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrder handles PUT /api/v1/orders/:id/status - moves one order
// through the lifecycle.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order id")
	}

	var request TransitionRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Target)
	if err != nil {
		return writeBadRequest(ctx, "Unknown target status: "+request.Target)
	}

	actor := request.Actor
	if actor == "" {
		actor = actorOf(ctx)
	}
	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actor)
	if err != nil {
		return writeBadRequest(ctx, "Invalid transition data: "+err.Error())
	}

	result, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		OrderID: result.OrderID.String(),
		From:    result.From.String(),
		To:      result.To.String(),
		Version: result.Version,
	})
}

// SuggestBatches handles GET /api/v1/batches/suggest - returns advisory
// grouping proposals for ?strategy=.
func (s *Server) SuggestBatches(ctx echo.Context) error {
	query, err := queries.NewSuggestBatchesQuery(ctx.QueryParam("strategy"))
	if err != nil {
		return writeBadRequest(ctx, "Unknown strategy: "+ctx.QueryParam("strategy"))
	}

	proposals, err := s.suggestBatchesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]BatchProposalResponse, len(proposals))
	for i, proposal := range proposals {
		memberIDs := make([]string, len(proposal.MemberOrderIDs))
		for j, memberID := range proposal.MemberOrderIDs {
			memberIDs[j] = memberID.String()
		}
		response[i] = BatchProposalResponse{
			Name:           proposal.Name,
			Description:    proposal.Description,
			Strategy:       proposal.Strategy,
			MemberOrderIDs: memberIDs,
			SavingsMinutes: proposal.SavingsMinutes,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateBatch handles POST /api/v1/batches - materializes a proposal as a
// batch, re-verifying membership at write time.
func (s *Server) CreateBatch(ctx echo.Context) error {
	var request CreateBatchRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	strategy, err := batch.StrategyFromString(request.Strategy)
	if err != nil {
		return writeBadRequest(ctx, "Unknown strategy: "+request.Strategy)
	}

	memberIDs := make([]kernel.UUID, 0, len(request.MemberIDs))
	for _, raw := range request.MemberIDs {
		memberID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return writeBadRequest(ctx, "Invalid member id: "+raw)
		}
		memberIDs = append(memberIDs, memberID)
	}

	actor := request.Actor
	if actor == "" {
		actor = actorOf(ctx)
	}
	cmd, err := commands.NewCreateBatchCommand(
		kernel.NewUUID(), request.Name, request.Description, strategy, memberIDs, actor,
	)
	if err != nil {
		return writeBadRequest(ctx, "Invalid batch data: "+err.Error())
	}

	result, err := s.createBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	members := make([]string, len(result.MemberIDs))
	for i, memberID := range result.MemberIDs {
		members[i] = memberID.String()
	}
	return ctx.JSON(http.StatusCreated, CreateBatchResponse{
		BatchID:        result.BatchID.String(),
		MemberIDs:      members,
		Dropped:        result.Dropped,
		SavingsMinutes: result.SavingsMinutes,
	})
}

// GetBatch handles GET /api/v1/batches/:id - returns one batch with its
// membership roster.
func (s *Server) GetBatch(ctx echo.Context) error {
	batchID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid batch id")
	}

	query, err := queries.NewGetBatchQuery(batchID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid batch id")
	}

	result, err := s.getBatchHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	memberIDs := make([]string, len(result.MemberIDs))
	for i, memberID := range result.MemberIDs {
		memberIDs[i] = memberID.String()
	}
	return ctx.JSON(http.StatusOK, BatchResponse{
		BatchID:        result.ID.String(),
		Name:           result.Name,
		Description:    result.Description,
		Strategy:       result.Strategy,
		EligibleStatus: result.EligibleStatus,
		MemberIDs:      memberIDs,
		SavingsMinutes: result.SavingsMinutes,
		CreatedAt:      result.CreatedAt,
		RetiredAt:      result.RetiredAt,
	})
}

// BulkTransition handles POST /api/v1/batches/:id/status - transitions every
// member of the batch independently and reports per-member outcomes.
func (s *Server) BulkTransition(ctx echo.Context) error {
	batchID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid batch id")
	}

	var request TransitionRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Target)
	if err != nil {
		return writeBadRequest(ctx, "Unknown target status: "+request.Target)
	}

	actor := request.Actor
	if actor == "" {
		actor = actorOf(ctx)
	}
	cmd, err := commands.NewBulkTransitionCommand(batchID, target, actor)
	if err != nil {
		return writeBadRequest(ctx, "Invalid transition data: "+err.Error())
	}

	result, err := s.bulkTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BulkTransitionResponse{
		BatchID:      result.BatchID.String(),
		Succeeded:    result.Succeeded,
		Failed:       result.Failed,
		Results:      result.Results,
		BatchRetired: result.BatchRetired,
	})
}

// GetExceptions handles GET /api/v1/exceptions - lists the open exception
// queue, oldest first.
func (s *Server) GetExceptions(ctx echo.Context) error {
	exceptions, err := s.getExceptionsHandler.Handle(
		ctx.Request().Context(), queries.NewGetExceptionsQuery(),
	)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]ExceptionResponse, len(exceptions))
	for i, exc := range exceptions {
		response[i] = ExceptionResponse{
			OrderID:         exc.OrderID.String(),
			CustomerName:    exc.CustomerName,
			CustomerEmail:   exc.CustomerEmail,
			Category:        exc.Category,
			Reasons:         exc.Reasons,
			RootCause:       exc.RootCause,
			SuggestedAction: exc.SuggestedAction,
			Priority:        exc.Priority,
			RaisedAt:        exc.RaisedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// RaiseException handles POST /api/v1/orders/:id/exception - parks an order
// in the exception state.
func (s *Server) RaiseException(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order id")
	}

	var request RaiseExceptionRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	category, err := order.CategoryFromString(request.Category)
	if err != nil {
		return writeBadRequest(ctx, "Unknown category: "+request.Category)
	}

	actor := request.Actor
	if actor == "" {
		actor = actorOf(ctx)
	}
	cmd, err := commands.NewRaiseExceptionCommand(orderID, category, request.Reasons, actor)
	if err != nil {
		return writeBadRequest(ctx, "Invalid exception data: "+err.Error())
	}

	result, err := s.raiseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		OrderID: result.OrderID.String(),
		From:    result.From.String(),
		To:      result.To.String(),
		Version: result.Version,
	})
}

// AnalyzeException handles POST /api/v1/exceptions/:id/analyze - runs the
// classifier over the order's exception and attaches the analysis.
func (s *Server) AnalyzeException(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAnalyzeExceptionCommand(orderID, actorOf(ctx))
	if err != nil {
		return writeBadRequest(ctx, "Invalid analyze request: "+err.Error())
	}

	analysis, err := s.analyzeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AnalysisResponse{
		Category:        analysis.Category.String(),
		RootCause:       analysis.RootCause,
		SuggestedAction: analysis.SuggestedAction,
		Priority:        analysis.Priority,
	})
}

// ResolveException handles POST /api/v1/exceptions/:id/resolve - closes the
// exception and returns the order to processing.
func (s *Server) ResolveException(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order id")
	}

	var request ResolveExceptionRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	actor := request.Actor
	if actor == "" {
		actor = actorOf(ctx)
	}
	cmd, err := commands.NewResolveExceptionCommand(orderID, request.Notes, actor)
	if err != nil {
		return writeBadRequest(ctx, "Invalid resolve request: "+err.Error())
	}

	record, err := s.resolveHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ResolvedExceptionResponse{
		Category:        record.Category.String(),
		Reasons:         record.Reasons,
		RootCause:       record.RootCause,
		SuggestedAction: record.SuggestedAction,
		Priority:        record.Priority,
		Notes:           record.Notes,
		RaisedAt:        record.RaisedAt,
		ResolvedAt:      record.ResolvedAt,
		ResolvedBy:      record.ResolvedBy,
	})
}
