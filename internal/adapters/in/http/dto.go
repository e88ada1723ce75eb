package http

import (
	"time"

	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/order"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Partial bool   `json:"partial,omitempty"`
}

type NewClientRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type SaveProductRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	ProcessSteps []string `json:"process_steps" validate:"required,min=1,unique,dive,required"`
}

type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes"`
}

type NewOrderRequest struct {
	ClientID   string             `json:"client_id" validate:"required,uuid"`
	OrderDate  time.Time          `json:"order_date" validate:"required"`
	IsPriority bool               `json:"is_priority"`
	Notes      string             `json:"notes"`
	Items      []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

type StatusChangeRequest struct {
	Status string `json:"status" validate:"required,oneof=waiting in_progress postponed cancelled done"`
}

type StepChangeRequest struct {
	Step *int `json:"step" validate:"required,gte=0"`
}

type Client struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email"`
}

type Step struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	ProcessSteps []Step  `json:"process_steps"`
}

type HistoryEntry struct {
	Step      string    `json:"step"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     *string   `json:"notes"`
}

type OrderItem struct {
	ID               string   `json:"id"`
	ProductID        string   `json:"product_id"`
	ProductName      string   `json:"product_name"`
	ProcessSteps     []string `json:"process_steps"`
	Quantity         int      `json:"quantity"`
	Notes            *string  `json:"notes"`
	Status           string   `json:"status"`
	StatusColor      string   `json:"status_color"`
	CurrentStepIndex *int     `json:"current_step_index"`
	CurrentStep      string   `json:"current_step"`
	StepColor        string   `json:"step_color"`
}

type OrderDetail struct {
	ID               string         `json:"id"`
	ClientID         string         `json:"client_id"`
	ClientName       string         `json:"client_name"`
	OrderDate        time.Time      `json:"order_date"`
	Status           string         `json:"status"`
	StatusText       string         `json:"status_text"`
	StatusColor      string         `json:"status_color"`
	CurrentStepIndex int            `json:"current_step_index"`
	CurrentStep      string         `json:"current_step"`
	IsPriority       bool           `json:"is_priority"`
	Notes            *string        `json:"notes"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	Items            []OrderItem    `json:"items"`
	History          []HistoryEntry `json:"history"`
}

type BoardOrder struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	ClientName  string    `json:"client_name"`
	OrderDate   time.Time `json:"order_date"`
	Status      string    `json:"status"`
	StatusColor string    `json:"status_color"`
	IsPriority  bool      `json:"is_priority"`
	Notes       *string   `json:"notes"`
	ItemCount   int       `json:"item_count"`
	CurrentStep string    `json:"current_step"`
}

type Board struct {
	Orders []BoardOrder   `json:"orders"`
	Counts map[string]int `json:"counts"`
}

type ItemRow struct {
	ID               string    `json:"id"`
	OrderID          string    `json:"order_id"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name"`
	ClientID         string    `json:"client_id"`
	ClientName       string    `json:"client_name"`
	OrderDate        time.Time `json:"order_date"`
	IsPriority       bool      `json:"is_priority"`
	Quantity         int       `json:"quantity"`
	Notes            *string   `json:"notes"`
	Status           string    `json:"status"`
	StatusColor      string    `json:"status_color"`
	CurrentStepIndex *int      `json:"current_step_index"`
	CurrentStep      string    `json:"current_step"`
	StepColor        string    `json:"step_color"`
}

func clientFromView(v queries.ClientView) Client {
	return Client{ID: v.ID.String(), FullName: v.FullName, Phone: v.Phone, Email: v.Email}
}

func productFromView(v queries.ProductView) Product {
	steps := make([]Step, 0, len(v.Steps))
	for _, s := range v.Steps {
		steps = append(steps, Step{Name: s.Name, Color: s.Color})
	}
	return Product{ID: v.ID.String(), Name: v.Name, Description: v.Description, ProcessSteps: steps}
}

func orderDetailFromView(v queries.GetOrderQueryResponse) OrderDetail {
	items := make([]OrderItem, 0, len(v.Items))
	for _, i := range v.Items {
		items = append(items, OrderItem{
			ID:               i.ID.String(),
			ProductID:        i.ProductID.String(),
			ProductName:      i.ProductName,
			ProcessSteps:     i.Steps,
			Quantity:         i.Quantity,
			Notes:            i.Notes,
			Status:           i.Status.String(),
			StatusColor:      i.StatusColor,
			CurrentStepIndex: i.StepIndex,
			CurrentStep:      i.CurrentStep,
			StepColor:        i.StepColor,
		})
	}

	history := make([]HistoryEntry, 0, len(v.History))
	for _, e := range v.History {
		history = append(history, HistoryEntry{
			Step:      e.Step,
			Status:    e.Status.String(),
			Timestamp: e.Timestamp,
			Notes:     e.Notes,
		})
	}

	return OrderDetail{
		ID:               v.ID.String(),
		ClientID:         v.ClientID.String(),
		ClientName:       v.ClientName,
		OrderDate:        v.OrderDate,
		Status:           v.Status.String(),
		StatusText:       v.Status.Text(),
		StatusColor:      v.StatusColor,
		CurrentStepIndex: v.CurrentStepIndex,
		CurrentStep:      v.CurrentStep,
		IsPriority:       v.IsPriority,
		Notes:            v.Notes,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
		Items:            items,
		History:          history,
	}
}

func boardFromView(v queries.GetBoardQueryResponse) Board {
	orders := make([]BoardOrder, 0, len(v.Orders))
	for _, o := range v.Orders {
		orders = append(orders, BoardOrder{
			ID:          o.ID.String(),
			ClientID:    o.ClientID.String(),
			ClientName:  o.ClientName,
			OrderDate:   o.OrderDate,
			Status:      o.Status.String(),
			StatusColor: o.StatusColor,
			IsPriority:  o.IsPriority,
			Notes:       o.Notes,
			ItemCount:   o.ItemCount,
			CurrentStep: o.CurrentStep,
		})
	}

	counts := make(map[string]int, len(v.Counts))
	for _, s := range order.AllStatuses() {
		counts[s.String()] = v.Counts[s]
	}
	return Board{Orders: orders, Counts: counts}
}

func itemRowFromView(v queries.ListOrderItemsQueryResponse) ItemRow {
	return ItemRow{
		ID:               v.ID.String(),
		OrderID:          v.OrderID.String(),
		ProductID:        v.ProductID.String(),
		ProductName:      v.ProductName,
		ClientID:         v.ClientID.String(),
		ClientName:       v.ClientName,
		OrderDate:        v.OrderDate,
		IsPriority:       v.IsPriority,
		Quantity:         v.Quantity,
		Notes:            v.Notes,
		Status:           v.Status.String(),
		StatusColor:      v.StatusColor,
		CurrentStepIndex: v.StepIndex,
		CurrentStep:      v.CurrentStep,
		StepColor:        v.StepColor,
	}
}
