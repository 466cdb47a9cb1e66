package main

import (
	"context"
	"log"

	"github.com/eventio/ticketing-service/config"
	"github.com/eventio/ticketing-service/internal/consumer"
	"github.com/eventio/ticketing-service/internal/gateway"
	"github.com/eventio/ticketing-service/internal/handler"
	"github.com/eventio/ticketing-service/internal/middleware"
	"github.com/eventio/ticketing-service/internal/repository"
	"github.com/eventio/ticketing-service/internal/service"
	"github.com/eventio/ticketing-service/pkg/database"
	"github.com/eventio/ticketing-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ consumer: sync the event catalog from the event service
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	eventConsumer := consumer.NewEventConsumer(db)
	eventConsumer.Start(msgs)

	// RabbitMQ publisher: settlement and issuance notifications
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect publisher to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	// Payment provider
	gw := gateway.NewMercadoPago(cfg.MPBaseURL, cfg.MPAccessToken)

	// Services
	capacitySvc := service.NewCapacityService(eventRepo, reservationRepo, db)
	reservationSvc := service.NewReservationService(
		eventRepo, paymentRepo, reservationRepo, capacitySvc, gw,
		cfg.HoldDuration, cfg.FrontendURL, cfg.WebhookURL,
	)
	ticketSvc := service.NewTicketService(ticketRepo, paymentRepo, eventRepo, reservationRepo, publisher)
	settlementSvc := service.NewSettlementService(paymentRepo, reservationRepo, ticketSvc, gw, publisher, cfg.WebhookSecret)
	paymentSvc := service.NewPaymentService(paymentRepo, reservationRepo)

	// Expiry sweeper
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	sweeper := service.NewSweeper(reservationRepo, cfg.SweepInterval)
	sweeper.Start(sweepCtx)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "ticketing-service"})
	})

	handler.NewHoldHandler(reservationSvc, capacitySvc).RegisterRoutes(e)
	handler.NewWebhookHandler(settlementSvc).RegisterRoutes(e)
	handler.NewTicketHandler(ticketSvc, paymentSvc).RegisterRoutes(e)
	handler.NewAdminHandler(reservationSvc, sweeper).RegisterRoutes(e)

	log.Printf("Ticketing Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
