package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/model"
)

type mockPaymentRepo struct {
	payments map[primitive.ObjectID]*model.Payment
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{payments: make(map[primitive.ObjectID]*model.Payment)}
}

func (m *mockPaymentRepo) add(payment *model.Payment) *model.Payment {
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	m.payments[payment.ID] = payment
	return payment
}

func (m *mockPaymentRepo) Create(_ context.Context, payment *model.Payment) error {
	m.add(payment)
	return nil
}

func (m *mockPaymentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Payment, error) {
	return m.payments[id], nil
}

func (m *mockPaymentRepo) List(_ context.Context) ([]model.Payment, error) {
	out := []model.Payment{}
	for _, p := range m.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPaymentRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*model.Payment, error) {
	payment := m.payments[id]
	if payment == nil {
		return nil, nil
	}
	payment.Status = status
	return payment, nil
}

func (m *mockPaymentRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := m.payments[id]; !ok {
		return false, nil
	}
	delete(m.payments, id)
	return true, nil
}

func (m *mockPaymentRepo) TotalRevenue(_ context.Context) (float64, error) {
	var total float64
	for _, p := range m.payments {
		if p.Status == model.PaymentStatusCompleted {
			total += p.Amount
		}
	}
	return total, nil
}

func TestDashboardService_Stats(t *testing.T) {
	users := newMockUserRepo()
	users.add(&model.User{Email: "a@example.com"})
	users.add(&model.User{Email: "b@example.com"})
	users.add(&model.User{Email: "admin@example.com", IsAdmin: true})

	orders := newMockOrderRepo()
	orders.add(&model.Order{Status: "pending"})
	orders.add(&model.Order{Status: "delivered"})

	payments := newMockPaymentRepo()
	payments.add(&model.Payment{Amount: 100, Status: model.PaymentStatusCompleted})
	payments.add(&model.Payment{Amount: 50, Status: model.PaymentStatusPending})

	svc := NewDashboardService(users, orders, payments)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, 100.0, stats.TotalRevenue)
}

func TestDashboardService_Stats_Empty(t *testing.T) {
	svc := NewDashboardService(newMockUserRepo(), newMockOrderRepo(), newMockPaymentRepo())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalUsers)
	assert.Equal(t, int64(0), stats.TotalOrders)
	assert.Equal(t, 0.0, stats.TotalRevenue)
}

func TestPaymentService_Create_DefaultStatus(t *testing.T) {
	repo := newMockPaymentRepo()
	svc := NewPaymentService(repo)

	payment, err := svc.Create(context.Background(), dto.CreatePaymentRequest{
		Amount: 250, Method: "upi",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, payment.Status)
	assert.Equal(t, "upi", payment.Method)
}

func TestPaymentService_Create_BadOrderID(t *testing.T) {
	svc := NewPaymentService(newMockPaymentRepo())

	_, err := svc.Create(context.Background(), dto.CreatePaymentRequest{
		OrderID: "not-a-hex-id", Amount: 250, Method: "card",
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPaymentService_UpdateStatus_NotFound(t *testing.T) {
	svc := NewPaymentService(newMockPaymentRepo())

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID(), model.PaymentStatusCompleted)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
