package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/marianaduarte/erp-estetica/internal/adapter/api/controller"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/route"
	"github.com/marianaduarte/erp-estetica/internal/adapter/repository"
	"github.com/marianaduarte/erp-estetica/internal/infrastructure/database"
	"github.com/marianaduarte/erp-estetica/internal/service"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
	"github.com/marianaduarte/erp-estetica/pkg/logger"
	"github.com/marianaduarte/erp-estetica/pkg/metrics"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger

	authController       *controller.AuthController
	clientController     *controller.ClientController
	procedureController  *controller.ProcedureController
	attendanceController *controller.AttendanceController
	productController    *controller.ProductController
	stockController      *controller.StockController
	financialController  *controller.FinancialController
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	appLogger := logger.NewLogger()

	// Configurar banco de dados
	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	// Executar migrações pendentes
	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := database.RunMigrations(); err != nil {
			return nil, err
		}
		appLogger.Info("migrações executadas com sucesso")
	}

	// Criar repositórios
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	procedureRepo := repository.NewProcedureRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	configRepo := repository.NewDistributionConfigRepository(db)
	distRepo := repository.NewDistributionRepository(db)

	// Criar serviços
	financialService := service.NewFinancialService(attendanceRepo, configRepo, distRepo, appLogger)
	stockService := service.NewStockService(productRepo, movementRepo, appLogger)
	clientService := service.NewClientService(clientRepo, attendanceRepo, appLogger)

	// Criar serviço de JWT
	jwtService, err := auth.NewJWTService()
	if err != nil {
		return nil, err
	}

	// Criar controllers
	authController := controller.NewAuthController(userRepo, jwtService, appLogger)
	clientController := controller.NewClientController(clientRepo, clientService, appLogger)
	procedureController := controller.NewProcedureController(procedureRepo, appLogger)
	attendanceController := controller.NewAttendanceController(attendanceRepo, appLogger)
	productController := controller.NewProductController(productRepo, appLogger)
	stockController := controller.NewStockController(stockService, movementRepo, appLogger)
	financialController := controller.NewFinancialController(financialService, configRepo, distRepo, attendanceRepo, appLogger)

	// Configurar router
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configurar CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Métricas HTTP expostas para o Prometheus
	httpMetrics := metrics.NewHTTPMetrics("erp-estetica-api")
	router.Use(httpMetrics.Middleware())
	router.GET("/metrics", metrics.Handler())

	app := &App{
		router:               router,
		db:                   db,
		logger:               appLogger,
		authController:       authController,
		clientController:     clientController,
		procedureController:  procedureController,
		attendanceController: attendanceController,
		productController:    productController,
		stockController:      stockController,
		financialController:  financialController,
	}

	app.setupRoutes("/api/v1")

	return app, nil
}

// setupRoutes configura as rotas da aplicação
func (a *App) setupRoutes(basePath string) {
	// Documentação Swagger
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := a.router.Group(basePath)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.RegisterAuthRoutes(api, a.authController)
	route.RegisterClientRoutes(api, a.clientController)
	route.RegisterProcedureRoutes(api, a.procedureController)
	route.RegisterAttendanceRoutes(api, a.attendanceController)
	route.RegisterProductRoutes(api, a.productController)
	route.RegisterStockRoutes(api, a.stockController)
	route.RegisterFinancialRoutes(api, a.financialController)
}

// Start inicia o servidor HTTP e aguarda o sinal de encerramento
func (a *App) Start() error {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      a.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.logger.Info("encerrando servidor", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	a.logger.Info("servidor encerrado")
	return nil
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
