package main

import (
	"context"
	"log/slog"
	"syscall"

	evbus "github.com/vardius/message-bus"

	"github.com/tkrause/expense-portal/internal"
	"github.com/tkrause/expense-portal/internal/adapters"
	"github.com/tkrause/expense-portal/internal/app/api/core"
	handlersV1 "github.com/tkrause/expense-portal/internal/app/api/v1/handlers"
	"github.com/tkrause/expense-portal/internal/app/audit"
	"github.com/tkrause/expense-portal/internal/app/categories"
	"github.com/tkrause/expense-portal/internal/app/expenses"
	"github.com/tkrause/expense-portal/internal/app/receipts"
	"github.com/tkrause/expense-portal/internal/config"
	"github.com/tkrause/expense-portal/internal/validation"
)

func main() {
	ctx := internal.SignalAwareContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.GetConfig()
	internal.AssertNoError(err)

	internal.SetupLogging(cfg.Advanced.LogLevel, cfg.Advanced.LogPretty, cfg.Advanced.LogJson)

	slog.Info("starting expense portal", "version", internal.Version)

	rawDb, err := adapters.NewDatabase(cfg.Database)
	internal.AssertNoError(err)

	database, err := adapters.NewSqlRepository(rawDb)
	internal.AssertNoError(err)

	fileStore, err := adapters.NewFilesystemRepository(cfg.Upload.BasePath)
	internal.AssertNoError(err)

	queueSize := 100
	eventBus := evbus.New(queueSize)

	categoryManager := categories.NewManager(eventBus, database)
	expenseManager := expenses.NewManager(eventBus, database)
	receiptManager := receipts.NewManager(&cfg.Upload, eventBus, database, fileStore)

	_, err = audit.NewAuditRecorder(cfg, eventBus, database)
	internal.AssertNoError(err)

	if cfg.Statistics.MetricsEnabled {
		metricsSrv, err := adapters.NewMetricsServer(cfg, eventBus)
		internal.AssertNoError(err)
		go metricsSrv.Run(ctx)
	}

	validator := validation.NewValidator()
	apiV1 := handlersV1.NewRestApi(cfg,
		handlersV1.NewCategoryEndpoint(categoryManager, validator),
		handlersV1.NewExpenseEndpoint(expenseManager, validator),
		handlersV1.NewReceiptEndpoint(&cfg.Upload, receiptManager),
	)

	webSrv, err := core.NewServer(cfg, apiV1)
	internal.AssertNoError(err)

	go webSrv.Run(ctx, cfg.Web.ListeningAddress)

	// wait until context gets cancelled
	<-ctx.Done()

	slog.Info("stopped expense portal")
}
