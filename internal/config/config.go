package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DataPath      string
	UploadPath    string
	VTTPath       string
	DBPath        string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string
	MaxUploadSize int64

	// ASR engine selection
	ASREngine    string // "whisper-bin", "whisper.cpp" or "openai"
	WhisperBin   string
	WhisperModel string
	WhisperURL   string

	// Translation engine selection
	TranslateEngine string // "google", "openai" or "none"

	OpenAIKey string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "./data")

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("Failed to generate random JWT secret: %v", err)
		}
		jwtSecret = hex.EncodeToString(b)
		log.Println("WARNING: JWT_SECRET not set, using random secret. Sessions will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	maxUpload, _ := strconv.ParseInt(getEnv("MAX_UPLOAD_SIZE", "2147483648"), 10, 64) // 2GB

	return &Config{
		Port:            port,
		DataPath:        dataPath,
		UploadPath:      getEnv("UPLOAD_PATH", dataPath+"/uploads"),
		VTTPath:         getEnv("VTT_PATH", dataPath+"/vtts"),
		DBPath:          getEnv("DB_PATH", dataPath+"/index.db"),
		JWTSecret:       jwtSecret,
		AdminUsername:   getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "admin"),
		CORSOrigins:     corsOrigins,
		MaxUploadSize:   maxUpload,
		ASREngine:       getEnv("ASR_ENGINE", "whisper-bin"),
		WhisperBin:      getEnv("WHISPER_BIN", "whisper-cli"),
		WhisperModel:    getEnv("WHISPER_MODEL", ""),
		WhisperURL:      getEnv("WHISPER_URL", ""),
		TranslateEngine: getEnv("TRANSLATE_ENGINE", "google"),
		OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
