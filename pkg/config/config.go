package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (lida via Viper do ambiente e, opcionalmente, de arquivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Google  GoogleConfig
	Storage StorageConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	CEP     CEPConfig
}

// AppConfig configuração geral.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // fuso usado para datas de vencimento e numeração anual
}

// Location devolve o fuso configurado (America/Sao_Paulo por padrão; UTC se inválido).
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completa.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool // aplica as migrations embutidas ao subir a API
}

// ConnectionString devolve DATABASE_URL se definido; senão o DSN montado.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN monta a connection string com URL encoding da senha.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimitMB int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GoogleConfig credenciais OAuth do login com Google. ClientID vazio desativa o fluxo.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled indica se o login com Google está configurado.
func (c GoogleConfig) Enabled() bool { return c.ClientID != "" && c.ClientSecret != "" }

// StorageConfig armazenamento de objetos compatível com S3 (AWS, MinIO).
type StorageConfig struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UseSSL            bool
	UsePathStyle      bool
	PresignExpiration time.Duration
	MaxUploadMB       int
}

// Enabled indica se o armazenamento foi configurado.
func (c StorageConfig) Enabled() bool { return c.Bucket != "" && c.AccessKey != "" }

// RedisConfig configuração do Redis (chaves de idempotência).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled indica se o Redis foi configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// KafkaConfig configuração do barramento de eventos.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Enabled indica se há brokers configurados.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

// CEPConfig cliente de consulta de CEP.
type CEPConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries uint64
}

// Load lê a configuração das variáveis de ambiente (e opcionalmente de .env/config.env).
// As env vars têm prioridade. Nomes esperados: APP_ENV, DB_HOST, JWT_SECRET, S3_BUCKET etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // arquivo opcional

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "limpcred-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Sao_Paulo"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "limpcred"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "limpcred"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 12),
		},
		Google: GoogleConfig{
			ClientID:     getString(v, "GOOGLE_CLIENT_ID", ""),
			ClientSecret: getString(v, "GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getString(v, "GOOGLE_REDIRECT_URL", ""),
		},
		Storage: StorageConfig{
			Endpoint:          getString(v, "S3_ENDPOINT", ""),
			Region:            getString(v, "S3_REGION", "us-east-1"),
			Bucket:            getString(v, "S3_BUCKET", ""),
			AccessKey:         getString(v, "S3_ACCESS_KEY", ""),
			SecretKey:         getString(v, "S3_SECRET_KEY", ""),
			UseSSL:            getBool(v, "S3_USE_SSL", true),
			UsePathStyle:      getBool(v, "S3_USE_PATH_STYLE", false),
			PresignExpiration: time.Duration(getInt(v, "S3_PRESIGN_MINUTES", 15)) * time.Minute,
			MaxUploadMB:       getInt(v, "S3_MAX_UPLOAD_MB", 10),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			TTL:      time.Duration(getInt(v, "IDEMPOTENCY_TTL_HOURS", 24)) * time.Hour,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getString(v, "KAFKA_BROKERS", "")),
			Topic:   getString(v, "KAFKA_TOPIC", "limpcred.events"),
			GroupID: getString(v, "KAFKA_GROUP_ID", "limpcred-notifier"),
		},
		CEP: CEPConfig{
			BaseURL:    getString(v, "CEP_BASE_URL", "https://viacep.com.br/ws"),
			Timeout:    time.Duration(getInt(v, "CEP_TIMEOUT_SECONDS", 5)) * time.Second,
			MaxRetries: uint64(getInt(v, "CEP_MAX_RETRIES", 3)),
		},
	}

	if cfg.JWT.Secret == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("config: JWT_SECRET é obrigatório em produção")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
