package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biosecret/go-todo/config"
	"github.com/biosecret/go-todo/database"
	"github.com/biosecret/go-todo/handlers"
	"github.com/biosecret/go-todo/notify"
	"github.com/biosecret/go-todo/router"
	"github.com/biosecret/go-todo/services"
	"github.com/biosecret/go-todo/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// NewLogger tạo zap logger theo LOG_LEVEL
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

// NewFiberApp tạo ứng dụng Fiber với middleware và route
func NewFiberApp(cfg *config.Config, h *handlers.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "go-todo",
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Đính kèm middleware để xử lý lỗi và ghi log
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
	}))

	router.SetupRoutes(app, h)

	config.AddSwaggerRoutes(app)

	return app
}

// NewNotifier ghép các kênh thông báo đã được cấu hình.
// Hàm close giải phóng kết nối MQTT nếu có.
func NewNotifier(ctx context.Context, cfg *config.Config, broker *notify.Broker, log *zap.Logger) (notify.Notifier, func(), error) {
	notifiers := notify.Multi{broker}
	closeFn := func() {}

	if cfg.SMTP.Enabled() {
		mailer, err := notify.NewMailer(cfg.SMTP)
		if err != nil {
			return nil, nil, err
		}
		// Không chặn khởi động nếu SMTP chưa sẵn sàng
		if err := mailer.Verify(ctx); err != nil {
			log.Warn("Email transport verification failed", zap.Error(err))
		} else {
			log.Info("Email transport is ready", zap.String("host", cfg.SMTP.Host))
		}
		notifiers = append(notifiers, mailer)
	}

	if cfg.MQTT.Enabled() {
		publisher, err := notify.ConnectMQTT("go-todo-"+utils.GenerateRandomID(), cfg.MQTT)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Connected to MQTT broker", zap.String("broker", cfg.MQTT.Broker), zap.String("topic", cfg.MQTT.Topic))
		notifiers = append(notifiers, publisher)
		closeFn = publisher.Close
	}

	return notifiers, closeFn, nil
}

// SetupAndRunApp khởi động ứng dụng Fiber
func SetupAndRunApp() error {
	// Load biến môi trường từ file .env
	err := config.LoadENV()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	passwords, err := utils.NewPasswordHasher(cfg.PasswordHashing)
	if err != nil {
		return err
	}
	if cfg.AdminName == "" || cfg.AdminPassword == "" {
		log.Warn("ADMIN_NAME or ADMIN_PASSWORD not set, admin endpoints are disabled")
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, err := database.Open(startCtx, cfg, log)
	if err != nil {
		return err
	}

	// Đảm bảo kết nối với cơ sở dữ liệu được đóng sau khi ứng dụng kết thúc
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error("Error closing store", zap.Error(err))
		}
	}()

	broker := notify.NewBroker()
	notifier, closeNotifier, err := NewNotifier(startCtx, cfg, broker, log)
	if err != nil {
		return err
	}
	defer closeNotifier()

	dispatcher := services.NewDispatcher(notifier, cfg.NotifyTimeout, log)
	defer dispatcher.Wait()

	admin := services.AdminCredentials{Name: cfg.AdminName, Password: cfg.AdminPassword}
	h := &handlers.Handler{
		Accounts: services.NewAccountService(store, passwords, admin, dispatcher, log),
		Todos:    services.NewTodoService(store, dispatcher),
		Admin:    services.NewAdminService(store, admin, dispatcher),
		Store:    store,
		Broker:   broker,
		Logger:   log,
	}

	app := NewFiberApp(cfg, h)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		log.Info("Server running", zap.String("port", cfg.Port), zap.String("db", cfg.DBDriver))
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		return Shutdown(app, broker, shutdownTimeout)
	}
}

// Shutdown đóng các stream SSE trước, rồi mới tắt Fiber.
// Stream còn mở sẽ giữ kết nối và làm shutdown quá hạn.
func Shutdown(app *fiber.App, broker *notify.Broker, timeout time.Duration) error {
	broker.Close()
	return app.ShutdownWithTimeout(timeout)
}
