package main

import (
	"os"
	"time"

	"laptophub/internal/config"
	"laptophub/internal/domain/model"
	"laptophub/internal/handler"
	"laptophub/internal/infra/db"
	infraRepo "laptophub/internal/infra/repository"
	"laptophub/internal/server"
	"laptophub/internal/usecase"
	"laptophub/pkg/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	//.envはあれば読む（コンテナでは環境変数が直接入る）
	_ = godotenv.Load("../.env")
	_ = godotenv.Load()

	setupLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Laptop{},
		&model.Order{},
		&model.OrderItem{},
		&model.Wishlist{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	//RabbitMQは任意。繋がらなくてもAPIは起動する。
	var mq *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq unavailable, order events disabled")
			mq = nil
		} else {
			defer mq.Close()
		}
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	laptopRepo := infraRepo.NewLaptopGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	laptopUC := usecase.NewLaptopUsecase(laptopRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, laptopRepo, userRepo, mq)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, laptopRepo)
	userUC := usecase.NewUserUsecase(userRepo)

	//Handler生成
	h := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Laptop:   handler.NewLaptopHandler(laptopUC),
		Order:    handler.NewOrderHandler(orderUC),
		Wishlist: handler.NewWishlistHandler(wishlistUC),
		User:     handler.NewUserHandler(userUC, authUC),
	}

	//Server起動
	e := server.New(cfg, h)
	if err := server.Start(e, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("GO_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
