package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/model"
	"github.com/boldserve/boldserve-api/internal/repository"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentService struct {
	paymentRepo repository.PaymentRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

func (s *PaymentService) Create(ctx context.Context, req dto.CreatePaymentRequest) (*model.Payment, error) {
	payment := &model.Payment{
		Amount: req.Amount,
		Status: req.Status,
		Method: req.Method,
	}
	if payment.Status == "" {
		payment.Status = model.PaymentStatusPending
	}
	if req.OrderID != "" {
		orderID, err := primitive.ObjectIDFromHex(req.OrderID)
		if err != nil {
			return nil, ErrOrderNotFound
		}
		payment.OrderID = orderID
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) List(ctx context.Context) ([]model.Payment, error) {
	return s.paymentRepo.List(ctx)
}

func (s *PaymentService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *PaymentService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Payment, error) {
	payment, err := s.paymentRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *PaymentService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.paymentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPaymentNotFound
	}
	return nil
}

// TotalRevenue sums completed payments only.
func (s *PaymentService) TotalRevenue(ctx context.Context) (float64, error) {
	return s.paymentRepo.TotalRevenue(ctx)
}
