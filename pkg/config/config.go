package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Quote   QuoteConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	Migrate     bool // aplica migraciones embebidas al arrancar
	MaxConns    int
	MinConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host                   string
	Port                   int
	CORSOrigins            string
	AuthRateLimitPerMinute int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché opcional del catálogo de referencias. URL vacía = sin caché.
type RedisConfig struct {
	URL string
	TTL time.Duration
}

// CatalogConfig ubicación del archivo de tarifas usado para sembrar los catálogos.
type CatalogConfig struct {
	File string
}

// QuoteConfig valores por defecto de los presupuestos.
type QuoteConfig struct {
	DefaultTaxRate      decimal.Decimal
	DefaultValidityDays int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	taxRate, err := decimal.NewFromString(getString(v, "QUOTE_DEFAULT_TAX_RATE", "20"))
	if err != nil {
		return nil, fmt.Errorf("config: QUOTE_DEFAULT_TAX_RATE inválido: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "devis-renovation"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "devis_renovation"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Migrate:     getBool(v, "DB_MIGRATE", true),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			MinConns:    getInt(v, "DB_MIN_CONNS", 1),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 1440),
			Issuer:     getString(v, "JWT_ISSUER", "devis-renovation"),
		},
		HTTP: HTTPConfig{
			Host:                   getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:                   getInt(v, "HTTP_PORT", 8080),
			CORSOrigins:            getString(v, "CORS_ORIGINS", "*"),
			AuthRateLimitPerMinute: getInt(v, "AUTH_RATE_LIMIT_PER_MINUTE", 20),
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", ""),
			TTL: time.Duration(getInt(v, "CACHE_TTL_MINUTES", 60)) * time.Minute,
		},
		Catalog: CatalogConfig{
			File: getString(v, "CATALOG_FILE", "config/tarifs.json"),
		},
		Quote: QuoteConfig{
			DefaultTaxRate:      taxRate,
			DefaultValidityDays: getInt(v, "QUOTE_DEFAULT_VALIDITY_DAYS", 30),
		},
	}

	return cfg, nil
}

// Validate comprueba los valores obligatorios antes de arrancar el servidor.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	if c.DB.MaxConns <= 0 || c.DB.MinConns < 0 || c.DB.MinConns > c.DB.MaxConns {
		return fmt.Errorf("config: DB_MIN_CONNS/DB_MAX_CONNS inválidos (%d/%d)", c.DB.MinConns, c.DB.MaxConns)
	}
	if c.Quote.DefaultValidityDays <= 0 {
		return fmt.Errorf("config: QUOTE_DEFAULT_VALIDITY_DAYS debe ser positivo")
	}
	if c.Quote.DefaultTaxRate.IsNegative() {
		return fmt.Errorf("config: QUOTE_DEFAULT_TAX_RATE no puede ser negativo")
	}
	if !c.Quote.DefaultTaxRate.Equal(c.Quote.DefaultTaxRate.Round(2)) {
		return fmt.Errorf("config: QUOTE_DEFAULT_TAX_RATE admite como máximo dos decimales")
	}
	return nil
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
