package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/auth"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/config"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/db"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/handlers"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/kv"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/reminder"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/services"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/session"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/store"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	log.Println("Successfully connected to MongoDB")

	st := store.New(kv.NewMongo(client.Database(cfg.DatabaseName)))
	if err := st.Initialize(ctx); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	// Initialize services and handlers
	sessionService := session.NewService(st)
	if err := sessionService.Hydrate(ctx); err != nil {
		log.Printf("Warning: could not restore session: %v", err)
	}
	tokens := auth.NewManager(cfg.JWTSecret)

	renterService := services.NewRenterService(st)
	paymentService := services.NewPaymentService(st, cfg.PaymentReview)
	notificationService := services.NewNotificationService(st)

	evaluator := reminder.NewEvaluator(st)
	scheduler := reminder.NewScheduler(evaluator, func(r reminder.Reminder) {
		log.Printf("Payment reminder (%s): %s", r.Severity, r.Message)
	})
	defer scheduler.Stop()
	sessionService.OnLogin(func(u models.User) {
		if u.Role == models.RoleRenter {
			scheduler.Start(u.ID)
		}
	})
	sessionService.OnLogout(func(models.User) {
		scheduler.Stop()
	})
	if current := sessionService.Current(); current != nil && current.Role == models.RoleRenter {
		scheduler.Start(current.ID)
	}

	userHandler := handlers.NewUserHandler(sessionService, tokens)
	renterHandler := handlers.NewRenterHandler(renterService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reminderHandler := handlers.NewReminderHandler(evaluator)

	authed := func(h http.HandlerFunc) http.Handler {
		return tokens.Authenticate(h)
	}
	ownerOnly := func(h http.HandlerFunc) http.Handler {
		return tokens.Authenticate(auth.RequireRole(models.RoleOwner)(h))
	}
	renterOnly := func(h http.HandlerFunc) http.Handler {
		return tokens.Authenticate(auth.RequireRole(models.RoleRenter)(h))
	}

	// Set up router
	router := mux.NewRouter()
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	router.HandleFunc("/api/register", userHandler.Register).Methods("POST")
	router.HandleFunc("/api/login", userHandler.Login).Methods("POST")

	router.Handle("/api/logout", authed(userHandler.Logout)).Methods("POST")
	router.Handle("/api/me", authed(userHandler.Me)).Methods("GET")
	router.Handle("/api/me", authed(userHandler.UpdateMe)).Methods("PATCH")

	router.Handle("/api/renter", ownerOnly(renterHandler.AddRenter)).Methods("POST")
	router.Handle("/api/renter/request", ownerOnly(renterHandler.SendRequest)).Methods("POST")
	router.Handle("/api/renters", ownerOnly(renterHandler.ListRenters)).Methods("GET")
	router.Handle("/api/renter/{renterID}", ownerOnly(renterHandler.EditRenter)).Methods("PATCH")
	router.Handle("/api/renter/{renterID}", ownerOnly(renterHandler.DeleteRenter)).Methods("DELETE")
	router.Handle("/api/renter/{renterID}/respond", authed(renterHandler.Respond)).Methods("POST")
	router.Handle("/api/requests", authed(renterHandler.PendingRequests)).Methods("GET")
	router.Handle("/api/connection", renterOnly(renterHandler.MyConnection)).Methods("GET")
	router.Handle("/api/owner/request", renterOnly(renterHandler.RequestOwner)).Methods("POST")

	router.Handle("/api/payments", authed(paymentHandler.ListPayments)).Methods("GET")
	router.Handle("/api/payment/{paymentID}", authed(paymentHandler.GetPayment)).Methods("GET")
	router.Handle("/api/payment/{paymentID}/proof", renterOnly(paymentHandler.SubmitProof)).Methods("POST")
	router.Handle("/api/payment/{paymentID}/approve", ownerOnly(paymentHandler.Approve)).Methods("POST")

	router.Handle("/api/notifications", authed(notificationHandler.List)).Methods("GET")
	router.Handle("/api/notifications/read-all", authed(notificationHandler.MarkAllRead)).Methods("POST")
	router.Handle("/api/notification/{notificationID}/read", authed(notificationHandler.MarkRead)).Methods("PATCH")
	router.Handle("/api/notification/{notificationID}", authed(notificationHandler.Delete)).Methods("DELETE")

	router.Handle("/api/reminders", renterOnly(reminderHandler.List)).Methods("GET")

	// Start server
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(server.ListenAndServe())
}
