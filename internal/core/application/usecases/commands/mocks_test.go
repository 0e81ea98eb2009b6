package commands_test

import (
	"context"
	"log/slog"
	"time"

	"ordercart/internal/core/application/usecases/commands"
	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockFingerprintRepository struct{ mock.Mock }

func (m *MockFingerprintRepository) Reserve(ctx context.Context, fingerprint string, orderID kernel.UUID) error {
	args := m.Called(ctx, fingerprint, orderID)
	return args.Error(0)
}

func (m *MockFingerprintRepository) Owner(ctx context.Context, fingerprint string) (kernel.UUID, error) {
	args := m.Called(ctx, fingerprint)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockFingerprintRepository) Transfer(ctx context.Context, fingerprint string, from, to kernel.UUID) error {
	args := m.Called(ctx, fingerprint, from, to)
	return args.Error(0)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) GetAllActive(ctx context.Context) ([]*batch.Batch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*batch.Batch), args.Error(1)
}

type MockIntakeUoW struct{ mock.Mock }

func (m *MockIntakeUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIntakeUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIntakeUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIntakeUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockIntakeUoW) FingerprintRepository() ports.FingerprintRepository {
	args := m.Called()
	return args.Get(0).(ports.FingerprintRepository)
}

type MockIntakeUoWFactory struct{ mock.Mock }

func (m *MockIntakeUoWFactory) Create() commands.IntakeUoW {
	args := m.Called()
	return args.Get(0).(commands.IntakeUoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBatchUoW struct{ mock.Mock }

func (m *MockBatchUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockBatchUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockBatchUoWFactory struct{ mock.Mock }

func (m *MockBatchUoWFactory) Create() commands.BatchUoW {
	args := m.Called()
	return args.Get(0).(commands.BatchUoW)
}

type MockClassifier struct{ mock.Mock }

func (m *MockClassifier) Normalize(ctx context.Context, payload map[string]any) (order.Candidate, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(order.Candidate), args.Error(1)
}

func (m *MockClassifier) ClassifyException(ctx context.Context, aggregate *order.Order) (ports.ExceptionAnalysis, error) {
	args := m.Called(ctx, aggregate)
	return args.Get(0).(ports.ExceptionAnalysis), args.Error(1)
}

func (m *MockClassifier) DraftMessage(ctx context.Context, aggregate *order.Order, reason string) (ports.Message, error) {
	args := m.Called(ctx, aggregate, reason)
	return args.Get(0).(ports.Message), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) (string, error) {
	args := m.Called(ctx, to, subject, body)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testCandidate() order.Candidate {
	return order.Candidate{
		CustomerName:  "Alice Smith",
		CustomerEmail: "alice@example.com",
		CustomerPhone: "555-123-4567",
		Street:        "1 Main St",
		City:          "Springfield",
		State:         "IL",
		Zip:           "62701",
		Country:       "USA",
		Items: []order.CandidateItem{
			{SKU: "SKU-1", Name: "Widget", Quantity: 2, UnitPrice: 10},
		},
		PaymentMethod: "card",
		Total:         20,
	}
}

func testOrder(status order.Status) *order.Order {
	return testOrderWithID(kernel.NewUUID(), status)
}

func testOrderWithID(id kernel.UUID, status order.Status) *order.Order {
	candidate := testCandidate()
	customer, _ := order.NewCustomer(
		candidate.CustomerName,
		candidate.CustomerEmail,
		candidate.CustomerPhone,
		order.NewAddress(candidate.Street, candidate.City, candidate.State, candidate.Zip, candidate.Country),
	)
	item, _ := order.NewItem("SKU-1", "Widget", 2, 10)
	payment, _ := order.NewPayment("card", 20)

	var exception *order.ExceptionRecord
	if status == order.Exception {
		record, _ := order.NewExceptionRecord(order.CategoryPayment, []string{"card declined"}, time.Now().UTC())
		exception = &record
	}

	aggregate, err := order.RestoreOrder(
		id,
		"fingerprint-"+id.String(),
		nil,
		customer,
		[]order.Item{item},
		payment,
		status,
		order.NewValidationResult(nil, nil),
		exception,
		nil,
		time.Now().UTC(),
		time.Now().UTC(),
		"test",
		1,
	)
	if err != nil {
		panic(err)
	}
	return aggregate
}
