package main

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-ledger/money-transfer/pkg/configpkg"
	"github.com/go-ledger/money-transfer/pkg/dbpkg"
	"github.com/go-ledger/money-transfer/pkg/lockpkg"
	_ "github.com/lib/pq"

	"github.com/go-ledger/money-transfer/internal/accountdelivery"
	"github.com/go-ledger/money-transfer/internal/accountrepo"
	"github.com/go-ledger/money-transfer/internal/accountservice"
	"github.com/go-ledger/money-transfer/internal/middleware"
	"github.com/go-ledger/money-transfer/internal/transferdelivery"
	"github.com/go-ledger/money-transfer/internal/transferrepo"
	"github.com/go-ledger/money-transfer/internal/transferservice"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	server, err := createServer(logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(logger zerolog.Logger, config configpkg.Config) (*gin.Engine, error) {
	var (
		accountRepo  accountservice.Repo
		transferRepo transferservice.Repo
	)

	if config.DBDriver == "memory" {
		accountRepo = accountrepo.NewRepoMem()
		transferRepo = transferrepo.NewRepoMem()
	} else {
		conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot connect to db")
		}

		accountRepo = accountrepo.NewRepoPGS(conn)
		transferRepo = transferrepo.NewRepoPGS(conn)
	}

	// Both services share one lock set so balance updates and transfers
	// exclude each other on the same account.
	locks := lockpkg.New()

	accountService := accountservice.New(accountRepo, locks)
	transferService := transferservice.New(accountRepo, transferRepo, locks)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/accounts", accountHandler.Create)
	server.GET("/accounts/:number", accountHandler.Get)
	server.PUT("/accounts/:number/deposit", accountHandler.Deposit)
	server.PUT("/accounts/:number/withdraw", accountHandler.Withdraw)

	server.POST("/transfers", transferHandler.Create)
	server.GET("/transfers/:id", transferHandler.Get)
	server.GET("/transfers", transferHandler.List)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("amount", accountdelivery.ValidAmount)
		if err != nil {
			return nil, errors.New("cannot register amount validator")
		}
	}

	return server, nil
}
