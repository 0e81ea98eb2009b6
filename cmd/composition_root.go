package cmd

import (
	"log/slog"
	"net/http"
	"os"

	"ordercart/internal/adapters/out/genai"
	"ordercart/internal/adapters/out/kafka"
	"ordercart/internal/adapters/out/postgres"
	"ordercart/internal/adapters/out/postgres/orderrepo"
	"ordercart/internal/adapters/out/smtp"
	"ordercart/internal/core/application/usecases/commands"
	"ordercart/internal/core/application/usecases/queries"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	logger     *slog.Logger
	registry   *metrics.Registry
	classifier *genai.Client
	publisher  *kafka.Publisher
	mailer     *smtp.Mailer
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		registry:   metrics.NewRegistry(),
		classifier: genai.NewClient(
			configs.AIServiceURL,
			&http.Client{Timeout: configs.AITimeout},
			logger,
		),
		publisher: kafka.NewPublisher(configs.KafkaHost, configs.KafkaEventsTopic),
		mailer: smtp.NewMailer(
			configs.SMTPHost, configs.SMTPPort,
			configs.SMTPUser, configs.SMTPPassword, configs.MailFrom,
		),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) MetricsHandler() http.Handler {
	return c.registry.Handler()
}

func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateIntakeOrderCommandHandler() commands.IntakeOrderCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIntakeOrderCommandHandler(
		f, c.classifier, c.publisher, c.mailer, c.registry, c.logger,
		c.configs.AllowReorderAfterClosed,
	)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(
		f, c.classifier, c.publisher, c.mailer, c.registry, c.logger,
	)
}

func (c *CompositionRoot) CreateBulkTransitionCommandHandler() commands.BulkTransitionCommandHandler {
	var f commands.BatchUoWFactory = FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBulkTransitionCommandHandler(
		f, c.CreateTransitionOrderCommandHandler(), c.logger,
	)
}

func (c *CompositionRoot) CreateCreateBatchCommandHandler() commands.CreateBatchCommandHandler {
	var f commands.BatchUoWFactory = FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBatchCommandHandler(f, c.registry, c.logger)
}

func (c *CompositionRoot) CreateRaiseExceptionCommandHandler() commands.RaiseExceptionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRaiseExceptionCommandHandler(f, c.publisher, c.registry, c.logger)
}

func (c *CompositionRoot) CreateAnalyzeExceptionCommandHandler() commands.AnalyzeExceptionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAnalyzeExceptionCommandHandler(f, c.classifier, c.logger)
}

func (c *CompositionRoot) CreateResolveExceptionCommandHandler() commands.ResolveExceptionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveExceptionCommandHandler(f, c.publisher, c.registry, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetExceptionsQueryHandler() queries.GetExceptionsQueryHandler {
	return queries.NewGetExceptionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBatchQueryHandler() queries.GetBatchQueryHandler {
	return queries.NewGetBatchQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSuggestBatchesQueryHandler() queries.SuggestBatchesQueryHandler {
	// Planner reads run outside any unit of work; the tracker is a no-op.
	reader := orderrepo.NewGormOrderRepository(c.gormDB, noopTracker{})
	return queries.NewSuggestBatchesQueryHandler(reader)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBatchUoWFactory func() commands.BatchUoW

func (f FuncBatchUoWFactory) Create() commands.BatchUoW {
	return f()
}
