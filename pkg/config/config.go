package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // el contenedor puede no traer zoneinfo

	"github.com/spf13/viper"
)

// Config agrupa la configuración del portal (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Log    LogConfig
	Portal PortalConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel de log (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// PortalConfig parámetros del dominio: zona horaria de los registros, caché de reportes y uploads.
type PortalConfig struct {
	Timezone       string        // zona fija de los registros de Entrada/Saída
	ReportCacheTTL time.Duration // 0 = sin caché
	ReportTopN     int           // OS-Item en el ranking de tiempo total
	UploadMaxMB    int           // límite del cuerpo HTTP para .zip/.xml/.xlsx
}

// UploadMaxBytes devuelve el límite de upload en bytes.
func (c PortalConfig) UploadMaxBytes() int {
	return c.UploadMaxMB * 1024 * 1024
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
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN arma el connection string con URL encoding (la contraseña puede tener caracteres especiales).
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
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env / config.env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, PORTAL_TIMEZONE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "portal-os"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "portal_os"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "portal-os"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Portal: PortalConfig{
			Timezone:       getString(v, "PORTAL_TIMEZONE", "America/Sao_Paulo"),
			ReportCacheTTL: time.Duration(getInt(v, "REPORT_CACHE_TTL_SECONDS", 180)) * time.Second,
			ReportTopN:     getInt(v, "REPORT_TOP_N", 10),
			UploadMaxMB:    getInt(v, "UPLOAD_MAX_MB", 200),
		},
	}

	if cfg.Portal.ReportCacheTTL < 0 {
		return nil, fmt.Errorf("config: REPORT_CACHE_TTL_SECONDS no puede ser negativo")
	}
	if cfg.Portal.ReportTopN <= 0 {
		cfg.Portal.ReportTopN = 10
	}
	if cfg.Portal.UploadMaxMB <= 0 {
		cfg.Portal.UploadMaxMB = 200
	}
	if _, err := time.LoadLocation(cfg.Portal.Timezone); err != nil {
		return nil, fmt.Errorf("config: PORTAL_TIMEZONE inválida %q: %w", cfg.Portal.Timezone, err)
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
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}
