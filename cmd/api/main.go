package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "modernc.org/sqlite"

	"officebook/internal/database"
	"officebook/internal/events"
	"officebook/internal/gateway"
	"officebook/internal/metrics"
	"officebook/internal/middleware"
	"officebook/internal/modules/auth"
	"officebook/internal/modules/booking"
	"officebook/internal/modules/membership"
	"officebook/internal/modules/office"
	"officebook/internal/modules/payment"
	"officebook/internal/notification"
	jwtsvc "officebook/internal/pkg/jwt"
	"officebook/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("level=info msg=no .env file, using process environment")
	}

	dsn := envOrDefault("DATABASE_URL", "officebook.db")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	metrics.Register()

	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	officeRepo := repository.NewOfficeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	payGateway := gateway.NewClient(log.Printf)
	bus := events.NewEventBus()
	hub := notification.NewHub()
	defer hub.Close()

	var emailSender notification.EmailSender
	if sg := notification.NewSendGridSender(notification.SendGridConfig{
		APIKey:    os.Getenv("SENDGRID_API_KEY"),
		FromEmail: envOrDefault("EMAIL_FROM", "no-reply@officebook.local"),
		FromName:  os.Getenv("EMAIL_FROM_NAME"),
	}); sg != nil {
		emailSender = sg
	}
	notifier := notification.NewService(emailSender, hub, log.Printf)

	// Confirmed membership bookings skip the webhook path, so their realtime
	// push is driven off the event bus instead of the payment resolver.
	bus.Subscribe(events.EventBookingConfirmed, func(e *events.Event) error {
		var p events.BookingConfirmedPayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return err
		}
		hub.SendToRenter(p.RenterEmail, map[string]interface{}{
			"type":       "booking_confirmed",
			"booking_id": p.BookingID,
			"office_id":  p.OfficeID,
			"date":       p.Date,
		})
		return nil
	})

	authService := auth.NewService(userRepo, j, log.Printf)
	authHandler := auth.NewHandler(authService)

	officeService := office.NewService(officeRepo, branchRepo, log.Printf)
	officeHandler := office.NewHandler(officeService)

	bookingService := booking.NewService(officeRepo, bookingRepo, membershipRepo, payGateway, bus, log.Printf)
	bookingHandler := booking.NewHandler(bookingService)

	membershipService := membership.NewService(membershipRepo, payGateway, log.Printf)
	membershipHandler := membership.NewHandler(membershipService)

	paymentService := payment.NewService(
		payGateway,
		bookingRepo,
		membershipRepo,
		officeRepo,
		branchRepo,
		notifier,
		bus,
		log.Printf,
	)
	paymentHandler := payment.NewHandler(paymentService)

	wsHandler := notification.NewWSHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		officeHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			membershipHandler.RegisterRoutes(protected)
			wsHandler.RegisterRoutes(protected)

			owner := protected.Group("/")
			owner.Use(middleware.BranchOwnerOnly())
			{
				officeHandler.RegisterOwnerRoutes(owner)
			}
		}
	}

	addr := ":" + envOrDefault("PORT", "8080")
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
