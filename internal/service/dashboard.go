package service

import (
	"context"
	"fmt"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/model"
	"github.com/boldserve/boldserve-api/internal/repository"
)

// DashboardService computes read-only aggregate statistics. Counts are an
// eventually-consistent snapshot: no locking against concurrent writes, two
// concurrent calls may disagree.
type DashboardService struct {
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
}

func NewDashboardService(userRepo repository.UserRepository, orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository) *DashboardService {
	return &DashboardService{userRepo: userRepo, orderRepo: orderRepo, paymentRepo: paymentRepo}
}

// Stats returns the customer count (admin accounts excluded), the order
// count over all statuses, and revenue summed over completed payments.
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	totalUsers, err := s.userRepo.CountCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totalOrders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	totalRevenue, err := s.paymentRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	return &dto.DashboardStats{
		TotalUsers:   totalUsers,
		TotalOrders:  totalOrders,
		TotalRevenue: totalRevenue,
	}, nil
}

// Users lists all accounts for the admin dashboard, passwords stripped by
// the model's json tags.
func (s *DashboardService) Users(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *DashboardService) Orders(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.List(ctx, "")
}

func (s *DashboardService) Payments(ctx context.Context) ([]model.Payment, error) {
	return s.paymentRepo.List(ctx)
}

// Revenue is the sum of completed payment amounts.
func (s *DashboardService) Revenue(ctx context.Context) (float64, error) {
	return s.paymentRepo.TotalRevenue(ctx)
}
