package queries

import (
	"context"
	"encoding/json"
	"strings"

	"printshop/internal/adapters/out/postgres/dberr"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const listItemsOperation = "list order items"

// ListOrderItemsQueryHandler reads items joined with their order, product and
// client straight from the record store.
type ListOrderItemsQueryHandler struct {
	db *gorm.DB
}

func NewListOrderItemsQueryHandler(db *gorm.DB) ListOrderItemsQueryHandler {
	return ListOrderItemsQueryHandler{db: db}
}

func (h ListOrderItemsQueryHandler) Handle(
	ctx context.Context,
	query ListOrderItemsQuery,
) ([]ListOrderItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, args := itemConditions(query.Filter())
	args = append(args, order.InProgress.String())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			oi.id,
			oi.order_id,
			oi.product_id,
			p.name,
			p.process_steps,
			o.client_id,
			c.full_name,
			o.order_date,
			o.is_priority,
			oi.quantity,
			oi.notes,
			oi.status,
			oi.step_index
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		JOIN clients c ON c.id = o.client_id
		`+where+`
		ORDER BY
			CASE WHEN oi.status = ? THEN 0 ELSE 1 END,
			o.order_date DESC,
			oi.created_at,
			oi.id
	`, args...).Rows()
	if err != nil {
		return nil, dberr.Translate(listItemsOperation, "order item", nil, err)
	}
	defer rows.Close()

	items := make([]ListOrderItemsQueryResponse, 0)
	for rows.Next() {
		var (
			id, orderID, productID, clientID uuid.UUID
			stepsJSON, status                string
			resp                             ListOrderItemsQueryResponse
		)

		err = rows.Scan(
			&id,
			&orderID,
			&productID,
			&resp.ProductName,
			&stepsJSON,
			&clientID,
			&resp.ClientName,
			&resp.OrderDate,
			&resp.IsPriority,
			&resp.Quantity,
			&resp.Notes,
			&status,
			&resp.StepIndex,
		)
		if err != nil {
			return nil, dberr.Translate(listItemsOperation, "order item", nil, err)
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if resp.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
			return nil, err
		}
		if resp.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}

		var steps []string
		if err = json.Unmarshal([]byte(stepsJSON), &steps); err != nil {
			return nil, err
		}
		resp.StatusColor = StatusColor(resp.Status)
		resp.CurrentStep = CurrentStepLabel(resp.Status, steps, resp.StepIndex)
		resp.StepColor = StepColor(resp.CurrentStep)

		items = append(items, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, dberr.Translate(listItemsOperation, "order item", nil, err)
	}

	return items, nil
}

func itemConditions(f ItemFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.ProductID != nil {
		conds = append(conds, "oi.product_id = ?")
		args = append(args, f.ProductID.Bytes())
	}
	if f.ClientID != nil {
		conds = append(conds, "o.client_id = ?")
		args = append(args, f.ClientID.Bytes())
	}
	if f.MinQuantity != nil {
		conds = append(conds, "oi.quantity >= ?")
		args = append(args, *f.MinQuantity)
	}
	if f.MaxQuantity != nil {
		conds = append(conds, "oi.quantity <= ?")
		args = append(args, *f.MaxQuantity)
	}
	if f.From != nil {
		conds = append(conds, "o.order_date >= ?")
		args = append(args, f.From.UTC())
	}
	if f.To != nil {
		conds = append(conds, "o.order_date <= ?")
		args = append(args, f.To.UTC())
	}
	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

