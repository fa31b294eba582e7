package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/models"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/repo"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/transport"
	"github.com/Skotchmaster/coffee_shop/internal/events"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

const DefaultPaymentMethod = "COD"

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// CreateOrder prices each line from the catalog, not from the request.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create", "user_id", userID)

	if len(req.OrderItems) == 0 {
		return nil, fmt.Errorf("items required: %w", ErrValidation)
	}

	ids := make([]uuid.UUID, 0, len(req.OrderItems))
	for _, it := range req.OrderItems {
		id, err := uuid.Parse(it.Product)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q: %w", it.Product, ErrValidation)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0: %w", ErrValidation)
		}
		ids = append(ids, id)
	}

	prods, err := s.Repo.ProductsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        userID,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Status:        models.OrderStatusPending,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = DefaultPaymentMethod
	}

	var total float64
	for i, it := range req.OrderItems {
		p, ok := prods[ids[i]]
		if !ok {
			return nil, fmt.Errorf("product %s not found: %w", ids[i], ErrNotFound)
		}
		total += p.Price * float64(it.Quantity)
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			Price:       p.Price,
		})
	}
	order.TotalPrice = math.Round(total*100) / 100

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		l.Error("create_order_error", "status", 500, "error", err)
		return nil, err
	}
	if order.TotalPrice != req.TotalPrice {
		l.Warn("order_total_mismatch", "client_total", req.TotalPrice, "total", order.TotalPrice)
	}

	publish(ctx, s.Events, events.TopicOrderEvents, order.ID.String(), events.OrderCreated{
		Type:          events.TypeOrderCreated,
		OrderID:       order.ID.String(),
		UserID:        userID.String(),
		TotalPrice:    order.TotalPrice,
		PaymentMethod: order.PaymentMethod,
		Items:         len(order.Items),
	})
	l.Info("order_created", "order_id", order.ID, "total", order.TotalPrice)
	return order, nil
}

func (s *OrderService) MyOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}
