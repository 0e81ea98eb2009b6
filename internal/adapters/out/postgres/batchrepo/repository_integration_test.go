package batchrepo_test

import (
	"context"
	"testing"
	"time"

	"ordercart/internal/adapters/out/postgres/batchrepo"
	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type BatchRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	tracker    *MockAggregateTracker
	repository *batchrepo.GormBatchRepository
}

func (suite *BatchRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&batchrepo.BatchDTO{}))
}

func (suite *BatchRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE batches").Error)
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = batchrepo.NewGormBatchRepository(suite.db, suite.tracker)
}

func (suite *BatchRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BatchRepositoryIntegrationTestSuite) createTestBatch(createdAt time.Time) *batch.Batch {
	aggregate, err := batch.NewBatch(
		kernel.NewUUID(),
		"Springfield, IL orders",
		"orders shipping to the same destination",
		batch.StrategyRegion,
		order.Validated,
		[]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()},
		2.0,
		createdAt,
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *BatchRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	aggregate := suite.createTestBatch(createdAt)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), loaded.ID())
	suite.Equal("Springfield, IL orders", loaded.Name())
	suite.Equal(batch.StrategyRegion, loaded.Strategy())
	suite.Equal(order.Validated, loaded.EligibleStatus())
	suite.Equal(aggregate.MemberIDs(), loaded.MemberIDs())
	suite.InDelta(2.0, loaded.SavingsMinutes(), 0.001)
	suite.Equal(createdAt, loaded.CreatedAt().UTC())
	suite.False(loaded.IsRetired())
}

func (suite *BatchRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BatchRepositoryIntegrationTestSuite) TestUpdate_Retire() {
	ctx := context.Background()
	aggregate := suite.createTestBatch(time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	retiredAt := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(aggregate.Retire(retiredAt))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().True(loaded.IsRetired())
	suite.Equal(retiredAt, loaded.RetiredAt().UTC())
}

func (suite *BatchRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesRetired() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	older := suite.createTestBatch(base.Add(-time.Hour))
	newer := suite.createTestBatch(base)
	retired := suite.createTestBatch(base.Add(-2 * time.Hour))
	suite.Require().NoError(retired.Retire(base))

	suite.Require().NoError(suite.repository.Add(ctx, older))
	suite.Require().NoError(suite.repository.Add(ctx, newer))
	suite.Require().NoError(suite.repository.Add(ctx, retired))

	active, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(active, 2)
	suite.Equal(newer.ID(), active[0].ID())
	suite.Equal(older.ID(), active[1].ID())
}

func TestBatchRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(BatchRepositoryIntegrationTestSuite))
}
