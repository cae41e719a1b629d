package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/model"
	"github.com/boldserve/boldserve-api/internal/repository"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// Create persists an order snapshot. Orders are independent records: no cart
// is consumed and no cross-collection write happens here.
func (s *OrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*model.Order, error) {
	order := &model.Order{
		CustomerName:  req.CustomerName,
		ServiceName:   req.ServiceName,
		Amount:        req.Amount,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	}
	if order.Status == "" {
		order.Status = "pending"
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = model.PaymentStatusPending
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns orders newest first, optionally filtered by status. Status is
// an open enumeration: an unknown value yields an empty list, not an error.
func (s *OrderService) List(ctx context.Context, status string) ([]model.Order, error) {
	return s.orderRepo.List(ctx, status)
}

func (s *OrderService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateOrderRequest) (*model.Order, error) {
	fields := bson.M{}
	if req.CustomerName != nil {
		fields["customerName"] = *req.CustomerName
	}
	if req.ServiceName != nil {
		fields["serviceName"] = *req.ServiceName
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.PaymentStatus != nil {
		fields["paymentStatus"] = *req.PaymentStatus
	}
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}

	order, err := s.orderRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderService) Count(ctx context.Context) (int64, error) {
	return s.orderRepo.Count(ctx)
}
