package queries_test

import (
	"context"
	"testing"
	"time"

	"ordercart/internal/adapters/out/postgres/orderrepo"
	"ordercart/internal/core/application/usecases/queries"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetOrdersQuery("", 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_ReturnsSummaries() {
	ctx := context.Background()
	seeded := seedOrder(order.Validated, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))

	query, err := queries.NewGetOrdersQuery("", 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(seeded.ID(), result[0].ID)
	suite.Equal("Alice Smith", result[0].CustomerName)
	suite.Equal("alice@example.com", result[0].CustomerEmail)
	suite.Equal("validated", result[0].Status)
	suite.InDelta(20.0, result[0].PaymentTotal, 0.001)
	suite.Equal(int64(1), result[0].Version)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_StatusFilter() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)
	validated := seedOrder(order.Validated, base)
	shipped := seedOrder(order.Shipped, base.Add(time.Second))
	suite.Require().NoError(suite.orderRepo.Add(ctx, validated))
	suite.Require().NoError(suite.orderRepo.Add(ctx, shipped))

	query, err := queries.NewGetOrdersQuery("shipped", 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(shipped.ID(), result[0].ID)
	suite.Equal("shipped", result[0].Status)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_OldestFirstAndLimit() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)
	oldest := seedOrder(order.Validated, base.Add(-2*time.Hour))
	middle := seedOrder(order.Validated, base.Add(-time.Hour))
	newest := seedOrder(order.Validated, base)
	suite.Require().NoError(suite.orderRepo.Add(ctx, newest))
	suite.Require().NoError(suite.orderRepo.Add(ctx, oldest))
	suite.Require().NoError(suite.orderRepo.Add(ctx, middle))

	query, err := queries.NewGetOrdersQuery("", 2)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(oldest.ID(), result[0].ID)
	suite.Equal(middle.ID(), result[1].ID)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalidQuery queries.GetOrdersQuery

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOrdersQuery constructor")
}

func TestGetOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrdersQueryHandlerTestSuite))
}

// mockAggregateTracker satisfies the repositories' tracker dependency where
// the test exercises reads rather than unit-of-work semantics.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// seedOrder builds a persisted-shape order for query tests. Panics on fixture
// errors so call sites stay readable.
func seedOrder(status order.Status, createdAt time.Time) *order.Order {
	id := kernel.NewUUID()
	customer, err := order.NewCustomer(
		"Alice Smith", "alice@example.com", "555-123-4567",
		order.NewAddress("1 Main St", "Springfield", "IL", "62701", "USA"),
	)
	if err != nil {
		panic(err)
	}
	item, err := order.NewItem("SKU-1", "Widget", 2, 10)
	if err != nil {
		panic(err)
	}
	payment, err := order.NewPayment("card", 20)
	if err != nil {
		panic(err)
	}

	var exception *order.ExceptionRecord
	if status == order.Exception {
		record, recErr := order.NewExceptionRecord(
			order.CategoryPayment, []string{"card declined"}, createdAt,
		)
		if recErr != nil {
			panic(recErr)
		}
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
		createdAt,
		createdAt,
		"test",
		1,
	)
	if err != nil {
		panic(err)
	}
	return aggregate
}
