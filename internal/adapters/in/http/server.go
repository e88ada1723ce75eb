package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Commands groups the write use cases served over HTTP.
type Commands struct {
	CreateClient    commands.CreateClientCommandHandler
	DeleteClient    commands.DeleteClientCommandHandler
	CreateProduct   commands.CreateProductCommandHandler
	UpdateProduct   commands.UpdateProductCommandHandler
	DeleteProduct   commands.DeleteProductCommandHandler
	CreateOrder     commands.CreateOrderCommandHandler
	DeleteOrder     commands.DeleteOrderCommandHandler
	CloneOrder      commands.CloneOrderCommandHandler
	SetOrderStatus  commands.SetOrderStatusCommandHandler
	AddOrderItem    commands.AddOrderItemCommandHandler
	RemoveOrderItem commands.RemoveOrderItemCommandHandler
	AdvanceItemStep commands.AdvanceItemStepCommandHandler
	GoToItemStep    commands.GoToItemStepCommandHandler
	SetItemStatus   commands.SetItemStatusCommandHandler
}

// Queries groups the read use cases served over HTTP.
type Queries struct {
	ListClients    queries.ListClientsQueryHandler
	ListProducts   queries.ListProductsQueryHandler
	GetBoard       queries.GetBoardQueryHandler
	GetOrder       queries.GetOrderQueryHandler
	ListOrderItems queries.ListOrderItemsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
// Order mutations answer with the order as re-read after the change.
type Server struct {
	commands Commands
	queries  Queries
}

func NewServer(cmds Commands, qs Queries) *Server {
	return &Server{commands: cmds, queries: qs}
}

// ListClients handles GET /api/v1/clients.
func (s *Server) ListClients(ctx echo.Context) error {
	clients, err := s.queries.ListClients.Handle(ctx.Request().Context(), queries.NewListClientsQuery())
	if err != nil {
		return err
	}

	response := make([]Client, len(clients))
	for i, c := range clients {
		response[i] = clientFromView(c)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateClient handles POST /api/v1/clients.
func (s *Server) CreateClient(ctx echo.Context) error {
	var req NewClientRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateClientCommand(kernel.NewUUID(), req.FullName, req.Phone, req.Email)
	if err != nil {
		return err
	}
	c, err := s.commands.CreateClient.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, clientFromView(queries.NewClientView(c)))
}

// DeleteClient handles DELETE /api/v1/clients/{clientId}. The client's
// orders go with it.
func (s *Server) DeleteClient(ctx echo.Context) error {
	clientID, err := pathUUID(ctx, "clientId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteClientCommand(clientID)
	if err != nil {
		return err
	}
	if err = s.commands.DeleteClient.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(ctx echo.Context) error {
	products, err := s.queries.ListProducts.Handle(ctx.Request().Context(), queries.NewListProductsQuery())
	if err != nil {
		return err
	}

	response := make([]Product, len(products))
	for i, p := range products {
		response[i] = productFromView(p)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/v1/products. The packaging step is
// appended to the submitted steps.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var req SaveProductRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSaveProductCommand(kernel.NewUUID(), req.Name, req.Description, req.ProcessSteps)
	if err != nil {
		return err
	}
	p, err := s.commands.CreateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, productFromView(queries.NewProductView(p)))
}

// UpdateProduct handles PUT /api/v1/products/{productId}.
func (s *Server) UpdateProduct(ctx echo.Context) error {
	productID, err := pathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	var req SaveProductRequest
	if err = bindBody(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSaveProductCommand(productID, req.Name, req.Description, req.ProcessSteps)
	if err != nil {
		return err
	}
	p, err := s.commands.UpdateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, productFromView(queries.NewProductView(p)))
}

// DeleteProduct handles DELETE /api/v1/products/{productId}. Products still
// referenced by an order item are refused with 409.
func (s *Server) DeleteProduct(ctx echo.Context) error {
	productID, err := pathUUID(ctx, "productId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteProductCommand(productID)
	if err != nil {
		return err
	}
	if err = s.commands.DeleteProduct.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetBoard handles GET /api/v1/orders - the order board with status counts.
func (s *Server) GetBoard(ctx echo.Context) error {
	board, err := s.queries.GetBoard.Handle(ctx.Request().Context(), queries.NewGetBoardQuery())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, boardFromView(board))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	clientID, err := parseUUID("client id", req.ClientID)
	if err != nil {
		return err
	}
	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		line, lineErr := orderLine(item)
		if lineErr != nil {
			return lineErr
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), clientID, req.OrderDate, req.IsPriority, req.Notes, lines)
	if err != nil {
		return err
	}
	o, _, err := s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusCreated, o.ID())
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return err
	}
	if err = s.commands.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	status, err := bindStatus(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetOrderStatusCommand(orderID, status)
	if err != nil {
		return err
	}
	if _, err = s.commands.SetOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// CloneOrder handles POST /api/v1/orders/{orderId}/clone.
func (s *Server) CloneOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCloneOrderCommand(orderID)
	if err != nil {
		return err
	}
	clone, err := s.commands.CloneOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusCreated, clone.ID())
}

// AddOrderItem handles POST /api/v1/orders/{orderId}/items.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	var req OrderLineRequest
	if err = bindBody(ctx, &req); err != nil {
		return err
	}
	line, err := orderLine(req)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddOrderItemCommand(orderID, kernel.NewUUID(), line)
	if err != nil {
		return err
	}
	if _, err = s.commands.AddOrderItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusCreated, orderID)
}

// RemoveOrderItem handles DELETE /api/v1/orders/{orderId}/items/{itemId}.
func (s *Server) RemoveOrderItem(ctx echo.Context) error {
	orderID, itemID, err := itemPath(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveOrderItemCommand(orderID, itemID)
	if err != nil {
		return err
	}
	if err = s.commands.RemoveOrderItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceItemStep handles POST /api/v1/orders/{orderId}/items/{itemId}/advance.
func (s *Server) AdvanceItemStep(ctx echo.Context) error {
	orderID, itemID, err := itemPath(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceItemStepCommand(orderID, itemID)
	if err != nil {
		return err
	}
	if _, err = s.commands.AdvanceItemStep.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// SetItemStatus handles PUT /api/v1/orders/{orderId}/items/{itemId}/status.
func (s *Server) SetItemStatus(ctx echo.Context) error {
	orderID, itemID, err := itemPath(ctx)
	if err != nil {
		return err
	}
	status, err := bindStatus(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetItemStatusCommand(orderID, itemID, status)
	if err != nil {
		return err
	}
	if _, err = s.commands.SetItemStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// GoToItemStep handles PUT /api/v1/orders/{orderId}/items/{itemId}/step.
// Only rollbacks to an earlier step are accepted.
func (s *Server) GoToItemStep(ctx echo.Context) error {
	orderID, itemID, err := itemPath(ctx)
	if err != nil {
		return err
	}
	var req StepChangeRequest
	if err = bindBody(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewGoToItemStepCommand(orderID, itemID, *req.Step)
	if err != nil {
		return err
	}
	if _, err = s.commands.GoToItemStep.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// ListOrderItems handles GET /api/v1/items. The "to" date includes the
// whole day.
func (s *Server) ListOrderItems(ctx echo.Context) error {
	var (
		productID, clientID      *uuid.UUID
		minQuantity, maxQuantity *int
		from, to                 *time.Time
	)
	params := ctx.QueryParams()
	for name, dest := range map[string]any{
		"product_id":   &productID,
		"client_id":    &clientID,
		"min_quantity": &minQuantity,
		"max_quantity": &maxQuantity,
		"from":         &from,
		"to":           &to,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, params, dest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}
	}

	filter := queries.ItemFilter{MinQuantity: minQuantity, MaxQuantity: maxQuantity, From: from}
	if to != nil {
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &endOfDay
	}
	var err error
	if filter.ProductID, err = optionalUUID(productID); err != nil {
		return err
	}
	if filter.ClientID, err = optionalUUID(clientID); err != nil {
		return err
	}

	query, err := queries.NewListOrderItemsQuery(filter)
	if err != nil {
		return err
	}
	items, err := s.queries.ListOrderItems.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]ItemRow, len(items))
	for i, item := range items {
		response[i] = itemRowFromView(item)
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) respondWithOrder(ctx echo.Context, code int, orderID kernel.UUID) error {
	detail, err := s.orderDetail(ctx.Request().Context(), orderID)
	if err != nil {
		return err
	}
	return ctx.JSON(code, detail)
}

func (s *Server) orderDetail(ctx context.Context, orderID kernel.UUID) (OrderDetail, error) {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return OrderDetail{}, err
	}
	view, err := s.queries.GetOrder.Handle(ctx, query)
	if err != nil {
		return OrderDetail{}, err
	}
	return orderDetailFromView(view), nil
}

func bindBody(ctx echo.Context, dest any) error {
	if err := ctx.Bind(dest); err != nil {
		return err
	}
	return ctx.Validate(dest)
}

func bindStatus(ctx echo.Context) (order.Status, error) {
	var req StatusChangeRequest
	if err := bindBody(ctx, &req); err != nil {
		return order.Unknown, err
	}
	return order.ParseStatus(req.Status)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return kernel.UUIDFromBytes(id[:])
}

func itemPath(ctx echo.Context) (orderID, itemID kernel.UUID, err error) {
	if orderID, err = pathUUID(ctx, "orderId"); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	if itemID, err = pathUUID(ctx, "itemId"); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return orderID, itemID, nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func orderLine(req OrderLineRequest) (commands.OrderLine, error) {
	productID, err := parseUUID("product id", req.ProductID)
	if err != nil {
		return commands.OrderLine{}, err
	}
	return commands.OrderLine{ProductID: productID, Quantity: req.Quantity, Notes: req.Notes}, nil
}

func parseUUID(name, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
