package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/controller"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/middleware"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/router"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/memory"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/postgres"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger-engine/src/internal/config"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/services"
)

type repositories struct {
	uow           repo_interfaces.UnitOfWork
	accounts      repo_interfaces.AccountRepository
	transactions  repo_interfaces.TransactionRepository
	loans         repo_interfaces.LoanRepository
	deposits      repo_interfaces.DepositRepository
	scores        repo_interfaces.CreditScoreRepository
	profile       repo_interfaces.CreditProfileRepository
	actors        repo_interfaces.ActorRepository
	audit         repo_interfaces.AuditRepository
	notifications repo_interfaces.NotificationRepository
}

func main() {
	if err := run(); err != nil {
		logger.Error("server exited", err, logger.Fields{})
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	audit := services.NewAuditService(repos.audit)
	notifier := services.NewNotificationService(repos.notifications)
	ledger := services.NewLedger(repos.uow, repos.accounts, audit)
	credit := services.NewCreditScoreService(repos.profile, repos.scores)
	actors := services.NewActorService(repos.actors, audit, cfg.BcryptCost)
	accounts := services.NewAccountService(repos.uow, repos.accounts, repos.actors, ledger, audit)
	transactions := services.NewTransactionService(repos.uow, repos.accounts, repos.transactions, ledger, audit, notifier)
	loans := services.NewLoanService(repos.uow, repos.loans, repos.accounts, credit, audit)
	deposits := services.NewDepositService(repos.uow, repos.deposits, repos.accounts, audit)

	if cfg.AdminPIN != "" {
		if _, err := actors.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPIN); err != nil {
			return err
		}
	} else {
		logger.Info("admin bootstrap skipped, ADMIN_PIN not set", logger.Fields{})
	}

	mux := router.New(
		middleware.BasicAuth(actors),
		controller.NewAccountController(accounts),
		controller.NewTransactionController(transactions),
		controller.NewLoanController(loans),
		controller.NewDepositController(deposits),
		controller.NewCreditScoreController(credit),
		controller.NewActorController(actors),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go deposits.RunMaturityScan(ctx, cfg.MaturityScanInterval)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", logger.Fields{"addr": cfg.HTTPAddr, "store": cfg.Store})
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("http server shutting down", logger.Fields{})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config) (repositories, func(), error) {
	if cfg.Store == config.StoreMemory {
		store := memory.NewStore()
		return repositories{
			uow:           store,
			accounts:      store.Accounts(),
			transactions:  store.Transactions(),
			loans:         store.Loans(),
			deposits:      store.Deposits(),
			scores:        store.CreditScores(),
			profile:       store.CreditProfile(),
			actors:        store.Actors(),
			audit:         store.Audit(),
			notifications: store.Notifications(),
		}, func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return repositories{}, nil, err
	}
	if err := migrate(ctx, db, cfg.MigrationsDir); err != nil {
		_ = db.Close()
		return repositories{}, nil, err
	}

	return repositories{
		uow:           postgres.NewUnitOfWork(db),
		accounts:      postgres.NewAccountRepository(db),
		transactions:  postgres.NewTransactionRepository(db),
		loans:         postgres.NewLoanRepository(db),
		deposits:      postgres.NewDepositRepository(db),
		scores:        postgres.NewCreditScoreRepository(db),
		profile:       postgres.NewCreditProfileRepository(db),
		actors:        postgres.NewActorRepository(db),
		audit:         postgres.NewAuditRepository(db),
		notifications: postgres.NewNotificationRepository(db),
	}, func() { _ = db.Close() }, nil
}

func migrate(ctx context.Context, db *sql.DB, dir string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, db, dir); err != nil {
		return err
	}
	logger.Info("migrations completed successfully", logger.Fields{"dir": dir})
	return nil
}
