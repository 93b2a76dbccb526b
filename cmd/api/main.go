package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/umerqur/cottagetrip/docs"
	"github.com/umerqur/cottagetrip/internal/balance"
	"github.com/umerqur/cottagetrip/internal/config"
	"github.com/umerqur/cottagetrip/internal/database"
	"github.com/umerqur/cottagetrip/internal/expense"
	"github.com/umerqur/cottagetrip/internal/reminder"
	"github.com/umerqur/cottagetrip/internal/rental"
	"github.com/umerqur/cottagetrip/internal/room"
	"github.com/umerqur/cottagetrip/internal/user"
	mw "github.com/umerqur/cottagetrip/pkg/middleware"
)

// @title           CottageTrip API
// @version         1.0
// @description     Trip expense rooms with equal splits, settlement suggestions, a pinned cottage rental and payment reminders.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Redis is optional; with no client the balance cache is a pass-through
	redisClient := database.NewRedisClient(cfg.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}
	balanceCache := balance.NewCache(redisClient)

	mailer := reminder.NewSendGridMailer(cfg.SendGridAPIKey, cfg.SendGridFrom, cfg.SendGridFromName)

	// User feature
	userRepo := user.NewRepository(db)
	userHandler := user.NewHandler(userRepo)

	// Room feature
	roomRepo := room.NewRepository(db)
	roomService := room.NewService(roomRepo)
	roomHandler := room.NewHandler(roomService)

	// Expense feature
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, roomService, balanceCache)
	expenseHandler := expense.NewHandler(expenseService)

	// Balance feature
	balanceService := balance.NewService(expenseRepo, roomService, userRepo, balanceCache)
	balanceHandler := balance.NewHandler(balanceService)

	// Rental feature
	rentalRepo := rental.NewRepository(db)
	rentalService := rental.NewService(rentalRepo, expenseRepo, roomService, balanceCache)
	rentalHandler := rental.NewHandler(rentalService)

	// Reminder feature
	reminderRepo := reminder.NewRepository(db)
	reminderService := reminder.NewService(reminderRepo, roomService, userRepo, mailer)
	reminderHandler := reminder.NewHandler(reminderService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(cfg.JWTSecret))

		// Mount feature routers
		r.Mount("/users", userHandler.Routes())
		r.Mount("/rooms", roomHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/rooms/{roomId}/expenses", expenseHandler.RoomRoutes())
		r.Mount("/rooms/{roomId}/balances", balanceHandler.Routes())
		r.Mount("/rooms/{roomId}/rental", rentalHandler.Routes())
		r.Mount("/rooms/{roomId}/reminders", reminderHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
