package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/api"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/asr"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/auth"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/config"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/db"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/job"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/search"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/pipeline"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/translate"
)

func main() {
	cfg := config.Load()

	// Ensure data directories exist
	for _, dir := range []string{cfg.DataPath, cfg.UploadPath, cfg.VTTPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	// ASR engine availability is a startup concern, not a per-request one
	asrService, err := asr.NewService(asr.Config{
		Engine:     cfg.ASREngine,
		ServerURL:  cfg.WhisperURL,
		BinaryPath: cfg.WhisperBin,
		ModelPath:  cfg.WhisperModel,
		OpenAIKey:  cfg.OpenAIKey,
	})
	if err != nil {
		log.Fatalf("ASR engine unavailable: %v", err)
	}

	translator := buildTranslator(cfg)
	if translator == nil {
		log.Println("WARNING: no translation engine configured, non-English tracks will carry source-language text")
	}
	batcher := translate.NewBatcher(translator)

	pipe := pipeline.New(asrService, batcher, cfg.VTTPath)
	indexManager := search.NewManager(database.DB(), cfg.VTTPath)

	// Job queue for async generation and background index builds
	queue := job.NewJobQueue(database.DB())
	defer queue.Stop()
	pipeService := pipeline.NewService(pipe, cfg.UploadPath, queue)
	queue.RegisterHandler(job.JobGenerate, pipeService.HandleJob)
	queue.RegisterHandler(job.JobIndex, indexManager.HandleJob)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Create router
	router := api.NewRouter(database, jwtService, cfg, pipe, indexManager, queue)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Upload path: %s", cfg.UploadPath)
	log.Printf("VTT path: %s", cfg.VTTPath)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func buildTranslator(cfg *config.Config) translate.Translator {
	switch cfg.TranslateEngine {
	case "google":
		return translate.NewGoogleTranslator()
	case "openai":
		if cfg.OpenAIKey == "" {
			log.Fatalf("openai translation engine selected but OPENAI_API_KEY is not set")
		}
		return translate.NewOpenAITranslator(cfg.OpenAIKey, "")
	case "none", "":
		return nil
	default:
		log.Fatalf("unknown translation engine: %q", cfg.TranslateEngine)
		return nil
	}
}
