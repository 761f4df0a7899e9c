package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movequote/internal/config"
	httpapi "movequote/internal/http"
	"movequote/internal/logger"
	"movequote/internal/repository"
	"movequote/internal/service"
	"movequote/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "movequote")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// row store: hosted spreadsheet when configured, local workbook otherwise
	var rows store.RowStore
	var excel *store.ExcelStore
	if cfg.Sheet.SpreadsheetID != "" {
		rows = store.NewSheetClient(
			cfg.Sheet.APIBase,
			cfg.Sheet.APIKey,
			cfg.Sheet.SpreadsheetID,
			cfg.Sheet.SheetName,
			repository.NumColumns(),
			log,
		)
		log.Info("Using hosted spreadsheet row store",
			zap.String("spreadsheet_id", cfg.Sheet.SpreadsheetID),
			zap.String("sheet", cfg.Sheet.SheetName),
		)
	} else {
		excel, err = store.NewExcelStore(cfg.Sheet.WorkbookPath, cfg.Sheet.SheetName, repository.ColumnHeaders(), log)
		if err != nil {
			log.Fatal("Failed to open local workbook", zap.Error(err))
		}
		rows = excel
		log.Info("Using local workbook row store", zap.String("path", cfg.Sheet.WorkbookPath))
	}

	// optional row-position hint cache
	var redisClient *redis.Client
	var hints store.KV
	if cfg.RedisEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		hints = store.NewRedisKV(redisClient)
	}

	repo := repository.NewQuotesRepo(rows, hints, log)

	var mailer service.Mailer
	if cfg.Mail.APIKey != "" {
		mailer = service.NewAPIMailer(cfg.Mail.APIBase, cfg.Mail.APIKey, cfg.Mail.From, log)
	} else {
		mailer = service.NewNopMailer(log)
	}

	// optional archive mirror of completed quotes
	var db *sql.DB
	var archive service.Archiver
	if cfg.DBEnabled {
		if d, err := repository.OpenPostgres(&cfg.Database); err == nil {
			db = d
			archive = repository.NewPostgresArchive(db)
			log.Info("Quote archive DB enabled")
		} else {
			log.Warn("Archive DB enabled but connection failed, continuing without it", zap.Error(err))
		}
	}

	svc := service.NewSubmissionService(repo, mailer, archive, cfg.Mail.NotifyTo, log)
	handler := httpapi.NewQuoteHandler(svc, cfg.Production(), log)
	router := httpapi.NewRouter(cfg.HTTP.AllowedOrigin, log)
	router.RegisterQuoteRoutes(handler)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if excel != nil {
		_ = excel.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}
