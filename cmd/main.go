package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"autoparts_erp_v1_202608/internal/controller"
	"autoparts_erp_v1_202608/internal/middleware"
	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/repository"
	"autoparts_erp_v1_202608/internal/router"
	"autoparts_erp_v1_202608/internal/service"
	"autoparts_erp_v1_202608/internal/task"
	"autoparts_erp_v1_202608/pkg/database"
)

func main() {
	// .env 不存在时静默跳过，直接用环境变量
	_ = godotenv.Load()

	// 1. 初始化数据库
	db := initDatabase()

	// 2. JWT 配置
	initJWT()

	// 3. 初始化依赖
	deps := initDependencies(db)

	// 4. 管理员种子账号
	seedAdmin(deps)

	// 5. 启动定时任务
	initTasks(deps)

	// 6. 初始化路由并启动服务
	r := router.SetupRouter(deps.Controllers)
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Brand        repository.BrandRepository
	Part         repository.PartRepository
	Supplier     repository.SupplierRepository
	Price        repository.PriceRepository
	Rate         repository.RateRepository
	DeliveryCost repository.DeliveryCostRepository
	Expected     repository.ExpectedPriceRepository
	SalesStat    repository.SalesStatRepository
	UploadLog    repository.UploadLogRepository
	User         repository.UserRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Brand    *service.BrandService
	Supplier *service.SupplierService
	Currency *service.CurrencyService
	Catalog  *service.CatalogService
	Price    *service.PriceService
	Order    *service.OrderService
	Expected *service.ExpectedPriceService
	Stat     *service.SalesStatService
	Storage  *service.StorageService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN", fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "autoparts"),
		getEnv("DB_PORT", "5432"),
	))

	return database.InitDB(dsn,
		// Manager
		&model.SysUser{},
		// Catalog
		&model.Brand{}, &model.BrandSynonym{}, &model.Part{},
		// Supplier
		&model.Region{}, &model.Supplier{}, &model.DeliveryCost{},
		// Price
		&model.PriceList{}, &model.Price{}, &model.CurrencyRate{},
		// Sales
		&model.ExpectedSalePrice{}, &model.SalesStatistic{},
		// Log
		&model.UploadLog{},
	)
}

// initJWT JWT 配置从环境变量读取
func initJWT() {
	cfg := middleware.DefaultJWTConfig()
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.SecretKey = secret
	}
	middleware.SetJWTConfig(cfg)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Brand:        repository.NewBrandRepository(db),
		Part:         repository.NewPartRepository(db),
		Supplier:     repository.NewSupplierRepository(db),
		Price:        repository.NewPriceRepository(db),
		Rate:         repository.NewRateRepository(db),
		DeliveryCost: repository.NewDeliveryCostRepository(db),
		Expected:     repository.NewExpectedPriceRepository(db),
		SalesStat:    repository.NewSalesStatRepository(db),
		UploadLog:    repository.NewUploadLogRepository(db),
		User:         repository.NewUserRepository(db),
	}

	// -------- 存储服务（可选，失败不阻塞启动） --------
	storageSvc := initStorageService()

	// -------- 业务服务 --------
	services := &Services{Storage: storageSvc}
	services.Auth = service.NewAuthService(repos.User)
	services.Brand = service.NewBrandService(repos.Brand)
	services.Supplier = service.NewSupplierService(repos.Supplier, repos.Price)
	services.Currency = service.NewCurrencyService(repos.Rate, repos.DeliveryCost,
		getEnv("BASE_CURRENCY", service.DefaultBaseCurrency))
	services.Catalog = service.NewCatalogService(services.Brand, repos.Part, repos.Price, repos.UploadLog)
	services.Price = service.NewPriceService(
		services.Catalog, services.Brand, services.Currency,
		repos.Price, repos.Part, repos.Supplier, repos.UploadLog,
		storageSvc, getEnvInt("PRICE_MAX_AGE_DAYS", 0),
	)
	services.Order = service.NewOrderService(
		services.Brand, services.Currency,
		repos.Part, repos.Price, repos.Supplier, repos.DeliveryCost, repos.Expected,
	)
	services.Expected = service.NewExpectedPriceService(services.Brand, repos.Expected, repos.UploadLog)
	services.Stat = service.NewSalesStatService(services.Brand, repos.SalesStat, repos.UploadLog)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:      controller.NewAuthController(services.Auth),
		Brand:     controller.NewBrandController(services.Brand),
		Supplier:  controller.NewSupplierController(services.Supplier),
		Catalog:   controller.NewCatalogController(services.Catalog),
		PriceList: controller.NewPriceListController(services.Price),
		Order:     controller.NewOrderController(services.Order, services.Expected),
		Rate:      controller.NewRateController(services.Currency),
		SalesStat: controller.NewSalesStatController(services.Stat),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorageService 初始化存储服务
func initStorageService() *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Endpoint:  getEnv("S3_ENDPOINT", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "autoparts-erp"),
	})
	if err != nil {
		log.Printf("警告: 存储服务初始化失败，原始文件将不归档: %v", err)
		return nil
	}
	return storageSvc
}

// seedAdmin 管理员种子账号
func seedAdmin(deps *Dependencies) {
	username := getEnv("ADMIN_USERNAME", "admin")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD 未设置，跳过管理员初始化")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := deps.Services.Auth.EnsureAdmin(ctx, username, password); err != nil {
		log.Fatalf("管理员初始化失败: %v", err)
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	rateCheck := task.NewRateCheckTask(deps.Services.Currency)
	rateCheck.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
