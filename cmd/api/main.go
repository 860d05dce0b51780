package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/vruddhi2107/on2cookXUP/internal/auth"
	"github.com/vruddhi2107/on2cookXUP/internal/entity"
	"github.com/vruddhi2107/on2cookXUP/internal/infra/database"
	"github.com/vruddhi2107/on2cookXUP/internal/infra/http/handlers"
	"github.com/vruddhi2107/on2cookXUP/internal/infra/http/middleware"
	"github.com/vruddhi2107/on2cookXUP/internal/infra/integration/supabase"
	"github.com/vruddhi2107/on2cookXUP/internal/infra/mail"
	"github.com/vruddhi2107/on2cookXUP/internal/infra/queue"
	"github.com/vruddhi2107/on2cookXUP/internal/usecase"
)

func main() {
	godotenv.Load()

	// Store coordinates are the one non-negotiable: without them the
	// engine cannot sync anything. Fatal, not a toast.
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_ANON_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		log.Fatal("❌ SUPABASE_URL and SUPABASE_ANON_KEY are required")
	}

	thresholds := loadThresholds()

	// 1. Stores — direct Postgres when DATABASE_URL is set (service
	// deployments), PostgREST otherwise (same four primitives).
	var (
		leadStore  usecase.LeadStoreInterface
		scoreStore usecase.ScoreStoreInterface
		db         *sql.DB
	)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		var err error
		db, err = database.NewDBConnection(dsn)
		if err != nil {
			log.Fatalf("❌ Postgres unreachable: %v", err)
		}
		defer db.Close()
		leadStore = database.NewLeadRepository(db)
		scoreStore = database.NewScoreRepository(db)
	} else {
		client := supabase.NewClient(supabaseURL, supabaseKey)
		leadStore = client
		scoreStore = client
	}

	// 2. Broker + mail are best-effort: scoring works without them.
	var producer usecase.QueueProducerInterface
	var rabbitMQ *queue.RabbitMQ
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		var err error
		rabbitMQ, err = queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
			host, os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Printf("⚠️ RabbitMQ unavailable, events disabled: %v", err)
		} else {
			defer rabbitMQ.Conn.Close()
			defer rabbitMQ.Ch.Close()
			producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
		}
	}

	var mailSender *mail.EmailSender
	if host := os.Getenv("MAIL_HOST"); host != "" {
		mailSender = mail.NewEmailSender(
			host, 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("TEAM_INBOX"),
		)
	}

	// 3. Engine
	pipeline := usecase.NewPipeline(leadStore, scoreStore, thresholds)
	if err := pipeline.LoadAll(context.Background()); err != nil {
		// Transport trouble at boot is survivable — the UI can re-sync.
		log.Printf("⚠️ Initial sync failed: %v", err)
	}

	gate := auth.NewGate(loadSecrets())

	var mailSvc usecase.MailServiceInterface
	if mailSender != nil {
		mailSvc = mailSender
	}
	saveUC := usecase.NewSaveScoreUseCase(pipeline, scoreStore, thresholds, producer, mailSvc)
	importUC := usecase.NewImportLeadsUseCase(pipeline, leadStore)

	// 4. Worker (fast-track alerts off the queue)
	if rabbitMQ != nil && mailSender != nil {
		worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
		go worker.Start(queue.QueueName)
	}

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(gate)
	leadHandler := handlers.NewLeadHandler(pipeline, gate)
	scoreHandler := handlers.NewScoreHandler(saveUC, thresholds)
	importHandler := handlers.NewImportHandler(importUC)
	dashHandler := handlers.NewDashboardHandler(pipeline)
	configHandler := handlers.NewConfigHandler(supabaseURL, supabaseKey)
	var brokerConn *amqp091.Connection
	if rabbitMQ != nil {
		brokerConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, brokerConn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/config", configHandler.Handle)

	r.Post("/api/auth/request", authHandler.HandleRequest)
	r.Post("/api/auth/unlock", authHandler.HandleUnlock)
	r.Post("/api/auth/cancel", authHandler.HandleCancel)
	r.Get("/api/auth/session", authHandler.HandleSession)

	r.Get("/api/leads", leadHandler.HandleList)
	r.Get("/api/leads/{leadID}", leadHandler.HandleGet)
	r.Post("/api/sync", leadHandler.HandleSync)
	r.Post("/api/leads/{leadID}/score", scoreHandler.HandleSave)
	r.Post("/api/score/preview", scoreHandler.HandlePreview)
	r.Post("/api/leads/import", importHandler.Handle)
	r.Get("/api/dashboard", dashHandler.Handle)

	port := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		port = ":" + p
	}
	log.Printf("🔥 Lead portal API running on %s", port)
	http.ListenAndServe(port, r)
}

// loadThresholds reads the score cut-offs, falling back to the shipped
// defaults (17/12). These are product configuration.
func loadThresholds() entity.Thresholds {
	t := entity.DefaultThresholds()
	if v, err := strconv.Atoi(os.Getenv("FAST_TRACK_THRESHOLD")); err == nil && v > 0 {
		t.FastTrack = v
	}
	if v, err := strconv.Atoi(os.Getenv("NURTURE_THRESHOLD")); err == nil && v > 0 {
		t.Nurture = v
	}
	return t
}

// loadSecrets reads the team password map: TEAM_PASSWORDS as a JSON
// object {"master": "...", "Anil": "...", ...}. With nothing set, only
// MASTER_PASSWORD unlocks anything.
func loadSecrets() map[string]string {
	secrets := map[string]string{}
	if raw := os.Getenv("TEAM_PASSWORDS"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &secrets); err != nil {
			log.Printf("⚠️ TEAM_PASSWORDS is not valid JSON, ignoring: %v", err)
			secrets = map[string]string{}
		}
	}
	if mp := os.Getenv("MASTER_PASSWORD"); mp != "" {
		secrets[auth.MasterIdentity] = mp
	}
	if secrets[auth.MasterIdentity] == "" {
		log.Printf("⚠️ No master password configured — only per-member unlocks will work")
	}
	return secrets
}
