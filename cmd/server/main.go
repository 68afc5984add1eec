package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/comprobante"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/config"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/db"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/es"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/handlers"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/logging"
	loggingmw "github.com/SantiPratti/FerrariMenudencias-Backend/internal/middleware/logging"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/models"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/mykafka"
	httpserver "github.com/SantiPratti/FerrariMenudencias-Backend/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")

	logger := logging.New(configuration.LOG_LEVEL)

	ctx := context.Background()
	gdb, err := db.Open(ctx, configuration.DSN())
	if err != nil {
		log.Fatalf("error de inicialización de la BD: %v", err)
	}

	if err := config.InitDB(gdb); err != nil {
		log.Fatalf("error de migración: %v", err)
	}

	estadoEntregado, err := config.ResolverEstado(gdb, models.EstadoEntregado)
	if err != nil {
		log.Fatal(err)
	}
	estadoInicial, err := config.ResolverEstado(gdb, models.EstadoPendiente)
	if err != nil {
		log.Fatal(err)
	}
	metodoPorDefecto, err := config.ResolverMetodoPago(gdb, "Efectivo")
	if err != nil {
		log.Fatal(err)
	}

	prod := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})

	var searchHandler handlers.SearchHandler
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		searchHandler = handlers.SearchHandler{ES: esClient, Index: es.IndexStock}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:           gdb,
		AuthHandler:  &handlers.AuthHandler{DB: gdb, JWTSecret: []byte(configuration.JWT_SECRET), Producer: prod},
		StockHandler: &handlers.StockHandler{DB: gdb, Producer: prod},
		PedidoHandler: &handlers.PedidoHandler{
			DB:                   gdb,
			Producer:             prod,
			EstadoEntregado:      estadoEntregado,
			EstadoInicial:        estadoInicial,
			MetodoPagoPorDefecto: metodoPorDefecto,
		},
		DashboardHandler:   &handlers.DashboardHandler{DB: gdb},
		ComprobanteHandler: &handlers.ComprobanteHandler{DB: gdb, Renderer: comprobante.NewRenderer(comprobante.EstiloPorDefecto())},
		SearchHandler:      &searchHandler,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("servidor escuchando", "addr", configuration.HTTP_ADDR)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("apagando el servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("apagado completo")
}
