package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/duarteol2000/sisreq/internal/application/inventory"
	"github.com/duarteol2000/sisreq/internal/application/requisition"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
	"github.com/duarteol2000/sisreq/internal/infrastructure/excel"
	"github.com/duarteol2000/sisreq/internal/infrastructure/memory"
	infrapdf "github.com/duarteol2000/sisreq/internal/infrastructure/pdf"
	"github.com/duarteol2000/sisreq/internal/infrastructure/postgres"
	httpRouter "github.com/duarteol2000/sisreq/internal/interfaces/http"
	"github.com/duarteol2000/sisreq/pkg/config"
	"github.com/duarteol2000/sisreq/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage adaptadores de persistência escolhidos por STORAGE_DRIVER.
type storage struct {
	tx interface {
		inventory.TxRunner
		requisition.TxRunner
	}
	materials    repository.MaterialRepository
	requisitions repository.RequisitionRepository
	receipts     repository.ReceiptRepository
	movements    repository.StockMovementRepository
	units        repository.UnitRepository
	close        func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		if err := memory.SeedDemo(ctx, store); err != nil {
			return nil, err
		}
		log.Warn().
			Str("prefeitura_id", memory.DemoScope.PrefeituraID).
			Str("secretaria_id", memory.DemoScope.SecretariaID).
			Msg("armazenamento em memória: os dados somem ao reiniciar")
		return &storage{
			tx:           store,
			materials:    store.Materials(),
			requisitions: store.Requisitions(),
			receipts:     store.Receipts(),
			movements:    store.Movements(),
			units:        store.Units(),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Storage.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema do banco aplicado")
	}
	return &storage{
		tx:           postgres.NewTxRunner(pool),
		materials:    postgres.NewMaterialRepository(pool),
		requisitions: postgres.NewRequisitionRepository(pool),
		receipts:     postgres.NewReceiptRepository(pool),
		movements:    postgres.NewStockMovementRepository(pool),
		units:        postgres.NewUnitRepository(pool),
		close:        pool.Close,
	}, nil
}

// @title                       SisReq API
// @version                     1.0
// @description                 Requisições de material e livro de estoque do almoxarifado municipal.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		App:   cfg.App.Name,
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicação")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar armazenamento")
	}
	defer st.close()

	requisitionUC := requisition.NewUseCase(st.tx, st.units, st.requisitions, st.receipts, log)
	receiptUC := requisition.NewReceiptUseCase(st.receipts, st.requisitions, st.units, infrapdf.NewMarotoPDFGenerator())
	materialUC := inventory.NewMaterialUseCase(st.materials, st.movements, st.units, excel.NewStockSheetGenerator())
	registerMovementUC := inventory.NewRegisterMovementUseCase(st.tx, log)
	replenishmentUC := inventory.NewReplenishmentUseCase(st.materials)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Log:         log,
	}, httpRouter.RouterDeps{
		Requisitions:     requisitionUC,
		Receipts:         receiptUC,
		Materials:        materialUC,
		RegisterMovement: registerMovementUC,
		Replenishment:    replenishmentUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	// Swagger UI em http://localhost:<port>/docs quando docs/swagger.json foi gerado (swag init)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "SisReq API",
		}))
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
