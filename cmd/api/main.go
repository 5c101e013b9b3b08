package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"petcare/internal/config"
	"petcare/internal/database"
	"petcare/internal/middleware"
	"petcare/internal/modules/admin"
	"petcare/internal/modules/auth"
	"petcare/internal/modules/booking"
	"petcare/internal/modules/catalog"
	"petcare/internal/modules/notification"
	"petcare/internal/modules/payment"
	"petcare/internal/modules/pets"
	"petcare/internal/modules/review"
	"petcare/internal/modules/trainer"
	"petcare/internal/pkg/cache"
	"petcare/internal/pkg/jwt"
	"petcare/internal/pkg/mailer"
	"petcare/internal/reminders"
	"petcare/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	redisCache, err := cache.Connect(context.Background(), cfg.RedisAddr)
	if err != nil {
		log.Printf("redis unavailable, catalog cache disabled: %v", err)
		redisCache = nil
	}

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	} else {
		log.Println("SMTP not configured, emails go to the log")
		mail = mailer.NewDevConsoleMailer(cfg.AppEnv != "prod")
	}

	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(
		userRepo,
		j,
		mail,
		cfg.VerificationCodePepper,
		cfg.VerifyCodeTTL,
		cfg.VerifyResendCooldown,
		cfg.RefreshTokenPepper,
		cfg.RefreshTTL,
	)
	authHandler := auth.NewHandler(authService)

	petService := pets.NewService(petRepo)
	petHandler := pets.NewHandler(petService)

	catalogService := catalog.NewService(serviceRepo, redisCache)
	catalogHandler := catalog.NewHandler(catalogService)

	hub := notification.NewHub()
	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub, j)

	bookingService := booking.NewService(bookingRepo, serviceRepo, petRepo, userRepo, availabilityRepo, notificationService)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(paymentRepo, bookingRepo, serviceRepo, bookingService, payment.Config{
		MerchantID: cfg.GatewayMerchantID,
		Password1:  cfg.GatewayPassword1,
		Password2:  cfg.GatewayPassword2,
		BaseURL:    cfg.GatewayBaseURL,
		ResultURL:  cfg.GatewayResultURL,
		SuccessURL: cfg.GatewaySuccessURL,
		IsTest:     cfg.GatewayIsTest,
	}, log.Printf)
	paymentHandler := payment.NewHandler(paymentService)

	reviewService := review.NewService(reviewRepo, bookingRepo)
	reviewHandler := review.NewHandler(reviewService)

	trainerService := trainer.NewService(userRepo, availabilityRepo)
	trainerHandler := trainer.NewHandler(trainerService)

	adminService := admin.NewService(userRepo, bookingRepo)
	adminHandler := admin.NewHandler(adminService)

	reminderJob := reminders.New(bookingRepo, userRepo, serviceRepo, mail, notificationService)
	if err := reminderJob.Start(); err != nil {
		log.Fatal(err)
	}
	defer reminderJob.Stop()

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)
		trainerHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterAvailabilityRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			petHandler.RegisterRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			notificationHandler.RegisterProtectedRoutes(protected)

			// customers must complete their profile before touching bookings
			bookingGroup := protected.Group("/")
			bookingGroup.Use(middleware.RequireCompleteProfile(userRepo))
			{
				bookingHandler.RegisterRoutes(bookingGroup)
			}

			trainerOnly := protected.Group("/")
			trainerOnly.Use(middleware.TrainerOnly())
			{
				bookingHandler.RegisterTrainerRoutes(trainerOnly)
				trainerHandler.RegisterTrainerRoutes(trainerOnly.Group("/trainer"))
			}

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
				catalogHandler.RegisterAdminRoutes(adminGroup)
			}
		}
	}

	notificationHandler.RegisterWSRoutes(r)

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
