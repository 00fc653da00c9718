package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is read once at process start and treated as immutable
// afterwards. Every knob has a default, so a completely unconfigured
// process still boots; it just answers with the backend-less
// placeholder reply.
type Config struct {
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	StaticDir string `env:"STATIC_DIR" envDefault:"web/static"`

	// DB_DRIVER selects sqlite (file-backed, the default) or mysql.
	DBDriver   string `env:"DB_DRIVER" envDefault:"sqlite"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"chatkiosk.db"`
	MySQLDSN   string `env:"MYSQL_DSN" envDefault:"app:apppass@tcp(127.0.0.1:3306)/chatkiosk?charset=utf8mb4&parseTime=true&loc=Local"`

	DefaultChatModel   string `env:"CHAT_MODEL" envDefault:"llama2:7b"`
	DefaultReasonModel string `env:"REASON_MODEL" envDefault:"phi4-reasoning:14b"`
	ContextWindow      int    `env:"CONTEXT_WINDOW" envDefault:"20"`

	// Backend chain: local CLI first, then the local daemon, then an
	// optional remote endpoint. FORCE_OLLAMA_CLI disables all
	// fallback beyond the CLI.
	OllamaBin     string `env:"OLLAMA_BIN" envDefault:"ollama"`
	UseOllamaCLI  bool   `env:"USE_OLLAMA_CLI" envDefault:"true"`
	CLIOnly       bool   `env:"FORCE_OLLAMA_CLI" envDefault:"false"`
	DaemonBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	RemoteBaseURL string `env:"REMOTE_BASE_URL"`
	RemoteAPIKey  string `env:"REMOTE_API_KEY"`
	RemoteSiteURL string `env:"REMOTE_SITE_URL"`
	RemoteAppName string `env:"REMOTE_APP_NAME" envDefault:"chatkiosk"`

	// Speech helpers. Empty WHISPER_URL means audio uploads are
	// rejected; a missing piper voice means /tts reports an error.
	WhisperURL   string `env:"WHISPER_URL"`
	CaptionModel string `env:"CAPTION_MODEL" envDefault:"llava:7b"`
	PiperBin     string `env:"PIPER_BIN" envDefault:"piper"`
	PiperVoice   string `env:"PIPER_VOICE" envDefault:"sound/en_GB-southern_english_female-low.onnx"`

	// Admin gate. ADMIN_PASSWORD_HASH (bcrypt) wins over the plain
	// development password when set.
	AdminPassword     string `env:"ADMIN_PASSWORD" envDefault:"123"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
}

func Load() Config {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	if cfg.ContextWindow <= 0 || cfg.ContextWindow > 100 {
		cfg.ContextWindow = 20
	}
	return cfg
}
