package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/model"
)

type mockOrderRepo struct {
	orders map[primitive.ObjectID]*model.Order
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[primitive.ObjectID]*model.Order)}
}

func (m *mockOrderRepo) add(order *model.Order) *model.Order {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	m.orders[order.ID] = order
	return order
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	m.add(order)
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Order, error) {
	return m.orders[id], nil
}

func (m *mockOrderRepo) List(_ context.Context, status string) ([]model.Order, error) {
	out := []model.Order{}
	for _, order := range m.orders {
		if status != "" && order.Status != status {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (m *mockOrderRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*model.Order, error) {
	order := m.orders[id]
	if order == nil {
		return nil, nil
	}
	if v, ok := fields["customerName"].(string); ok {
		order.CustomerName = v
	}
	if v, ok := fields["serviceName"].(string); ok {
		order.ServiceName = v
	}
	if v, ok := fields["amount"].(float64); ok {
		order.Amount = v
	}
	if v, ok := fields["status"].(string); ok {
		order.Status = v
	}
	if v, ok := fields["paymentStatus"].(string); ok {
		order.PaymentStatus = v
	}
	return order, nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := m.orders[id]; !ok {
		return false, nil
	}
	delete(m.orders, id)
	return true, nil
}

func (m *mockOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.orders)), nil
}

func TestOrderService_Create_Defaults(t *testing.T) {
	repo := newMockOrderRepo()
	svc := NewOrderService(repo)

	order, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerName: "Jane", ServiceName: "Banner Printing", Amount: 1200,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	assert.False(t, order.ID.IsZero())
}

func TestOrderService_List_FilterByStatus(t *testing.T) {
	repo := newMockOrderRepo()
	repo.add(&model.Order{CustomerName: "A", Status: "pending"})
	repo.add(&model.Order{CustomerName: "B", Status: "delivered"})
	svc := NewOrderService(repo)

	orders, err := svc.List(context.Background(), "delivered")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "B", orders[0].CustomerName)

	orders, err = svc.List(context.Background(), "no-such-status")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_Update(t *testing.T) {
	repo := newMockOrderRepo()
	existing := repo.add(&model.Order{CustomerName: "Jane", Amount: 100, Status: "pending"})
	svc := NewOrderService(repo)

	status := "delivered"
	updated, err := svc.Update(context.Background(), existing.ID, dto.UpdateOrderRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "delivered", updated.Status)
	assert.Equal(t, "Jane", updated.CustomerName)
}

func TestOrderService_Update_Empty(t *testing.T) {
	repo := newMockOrderRepo()
	existing := repo.add(&model.Order{CustomerName: "Jane", Status: "pending"})
	svc := NewOrderService(repo)

	// No fields set reads back the current record.
	order, err := svc.Update(context.Background(), existing.ID, dto.UpdateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "pending", order.Status)
}

func TestOrderService_Delete_NotFound(t *testing.T) {
	svc := NewOrderService(newMockOrderRepo())

	err := svc.Delete(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
