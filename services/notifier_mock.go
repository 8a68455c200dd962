package services

import (
	"context"
	"sync"

	"github.com/ohm-hive/orders-api/models"
)

// MockNotifier records notifications for testing
type MockNotifier struct {
	mu     sync.Mutex
	orders []models.Order
	Err    error
	sent   chan string
}

// NewMockNotifier creates a mock whose Sent channel receives each order number
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{sent: make(chan string, 16)}
}

// SetAsMockForTesting sets this mock as the global notifier
func (m *MockNotifier) SetAsMockForTesting() {
	SetNotifier(m)
}

func (m *MockNotifier) NotifyNewOrder(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	m.orders = append(m.orders, *order)
	m.mu.Unlock()

	select {
	case m.sent <- order.OrderNumber:
	default:
	}
	return m.Err
}

// Sent delivers the order number of every notification
func (m *MockNotifier) Sent() <-chan string {
	return m.sent
}

// Orders returns the notified orders
func (m *MockNotifier) Orders() []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Order, len(m.orders))
	copy(out, m.orders)
	return out
}
