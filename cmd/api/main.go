package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/infra/cache"
	"marketplace/internal/infra/db"
	"marketplace/internal/infra/memory"
	infraRepo "marketplace/internal/infra/repository"
	repo "marketplace/internal/repository"
	"marketplace/internal/server"
	"marketplace/internal/usecase"
	"marketplace/internal/worker"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now().UTC()
}

func openStore(cfg config.Config, logger echo.Logger) (repo.Store, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warnf("using in-memory store; data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(gormDB); err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return infraRepo.NewGormStore(gormDB), closeFn, nil
}

func main() {
	//.env は任意
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	e := server.New(cfg)
	logger := e.Logger

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatalf("store: %v", err)
	}
	defer closeStore()

	//商品キャッシュ（REDIS_ADDR があるときだけ）
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(cfg)
		if err != nil {
			logger.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		store = cache.NewCachedStore(store, cache.NewRedisProductCache(rdb, cfg.ProductCacheTTL), logger)
	}

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher(cfg.BcryptCost)

	//Usecase生成
	userUC := usecase.NewUserUsecase(store, hasher, idGen, clock)
	sellerUC := usecase.NewSellerUsecase(store, idGen, clock)
	categoryUC := usecase.NewCategoryUsecase(store, idGen, clock)
	productUC := usecase.NewProductUsecase(store, idGen, clock)
	cartUC := usecase.NewCartUsecase(store, idGen, clock)
	orderUC := usecase.NewOrderUsecase(store, idGen, clock)
	returnUC := usecase.NewReturnUsecase(store, idGen, clock)
	reviewUC := usecase.NewReviewUsecase(store, idGen, clock)
	reconcileUC := usecase.NewReconcileUsecase(store)

	//Handler生成
	server.RegisterRoutes(e, server.Handlers{
		Users:      handler.NewUserHandler(userUC),
		Sellers:    handler.NewSellerHandler(sellerUC),
		Categories: handler.NewCategoryHandler(categoryUC),
		Products:   handler.NewProductHandler(productUC),
		Carts:      handler.NewCartHandler(cartUC),
		Orders:     handler.NewOrderHandler(orderUC),
		Returns:    handler.NewReturnHandler(returnUC),
		Reviews:    handler.NewReviewHandler(reviewUC),
	}, cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go worker.NewReconciler(reconcileUC, cfg.ReconcileInterval, logger).Start(ctx)

	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	if err := server.Start(ctx, e, addr); err != nil {
		logger.Errorf("server: %v", err)
	}
}
