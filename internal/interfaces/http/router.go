package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/duarteol2000/sisreq/internal/application/inventory"
	"github.com/duarteol2000/sisreq/internal/application/requisition"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/pkg/logger"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	Requisitions     *requisition.UseCase
	Receipts         *requisition.ReceiptUseCase
	Materials        *inventory.MaterialUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	JWTSecret        string
}

// AppConfig parâmetros do servidor Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins string
	Log         *logger.Logger
}

// NewApp cria a aplicação Fiber com tratamento de erros, middlewares e rotas.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(AccessLog(log))
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,OPTIONS",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	// Todas as rotas de /api exigem Bearer Token com usuário e unidade
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleEmployee)

	requisitions := api.Group("/requisitions", anyRole)
	requisitionHandler := NewRequisitionHandler(deps.Requisitions)
	requisitions.Post("/", requisitionHandler.Create)
	requisitions.Get("/", requisitionHandler.List)
	requisitions.Get("/:id", requisitionHandler.GetByID)
	requisitions.Post("/:id/analysis", adminOnly, requisitionHandler.Analyze)
	requisitions.Post("/:id/delivery", adminOnly, requisitionHandler.ConfirmDelivery)
	requisitions.Post("/:id/close", adminOnly, requisitionHandler.Close)
	requisitions.Get("/:id/delivery-report", requisitionHandler.DeliveryReport)

	receipts := api.Group("/receipts", anyRole)
	receiptHandler := NewReceiptHandler(deps.Receipts)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Get("/:id/pdf", adminOnly, receiptHandler.DownloadPDF)

	materials := api.Group("/materials", anyRole)
	materialHandler := NewMaterialHandler(deps.Materials, deps.Replenishment)
	materials.Get("/", materialHandler.List)
	materials.Get("/available", materialHandler.Available)
	materials.Get("/export", adminOnly, materialHandler.Export)
	materials.Get("/replenishment", adminOnly, materialHandler.GetReplenishmentList)

	stock := api.Group("/stock", adminOnly)
	stockHandler := NewStockHandler(deps.RegisterMovement, deps.Materials)
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Post("/purchase-entries", stockHandler.PurchaseEntry)
}
