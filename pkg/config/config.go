package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
	Notice  NoticeConfig
	JWT     JWTConfig
	Log     LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host             string
	Port             int
	LoginRatePerMin  int    // intentos de login por IP y minuto
	SwaggerFilePath  string // vacío = sin /docs
	ReadTimeoutSecs  int
	WriteTimeoutSecs int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig backend REST (sistema de registro).
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig almacenamiento y cookie de sesión.
type SessionConfig struct {
	Store        string // memory | redis
	CookieName   string
	CookieSecure bool
	TTL          time.Duration // tope de vida en el store; el token manda si expira antes
}

// RedisConfig conexión para SESSION_STORE=redis.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NoticeConfig notificaciones efímeras.
type NoticeConfig struct {
	ResetDelay time.Duration
}

// JWTConfig verificación opcional de la firma del token del backend.
// Con Secret vacío los claims se decodifican sin verificar (el backend sigue siendo quien valida).
type JWTConfig struct {
	Secret string
}

// LogConfig nivel de log.
type LogConfig struct {
	Level string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_BASE_URL, SESSION_STORE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "access-console"),
		},
		HTTP: HTTPConfig{
			Host:             getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:             getInt(v, "HTTP_PORT", 8080),
			LoginRatePerMin:  getInt(v, "LOGIN_RATE_PER_MINUTE", 10),
			SwaggerFilePath:  getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
			ReadTimeoutSecs:  getInt(v, "HTTP_READ_TIMEOUT_SECONDS", 10),
			WriteTimeoutSecs: getInt(v, "HTTP_WRITE_TIMEOUT_SECONDS", 60),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getString(v, "BACKEND_BASE_URL", "http://localhost:8000"), "/"),
			Timeout: getDuration(v, "BACKEND_TIMEOUT", 30*time.Second),
		},
		Session: SessionConfig{
			Store:        strings.ToLower(getString(v, "SESSION_STORE", "memory")),
			CookieName:   getString(v, "SESSION_COOKIE_NAME", "console_session"),
			CookieSecure: getBool(v, "SESSION_COOKIE_SECURE", false),
			TTL:          getDuration(v, "SESSION_TTL", 2*time.Hour),
		},
		Redis: RedisConfig{
			Addr:      getString(v, "REDIS_ADDR", "localhost:6379"),
			Password:  getString(v, "REDIS_PASSWORD", ""),
			DB:        getInt(v, "REDIS_DB", 0),
			KeyPrefix: getString(v, "REDIS_KEY_PREFIX", "console:session:"),
		},
		Notice: NoticeConfig{
			ResetDelay: getDuration(v, "NOTICE_RESET_DELAY", 2*time.Second),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate comprueba combinaciones inválidas antes de arrancar.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL es requerido")
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("SESSION_STORE inválido: %q (memory|redis)", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL debe ser positivo")
	}
	if c.Notice.ResetDelay < 0 {
		return fmt.Errorf("NOTICE_RESET_DELAY no puede ser negativo")
	}
	if c.App.Env == "production" && !c.Session.CookieSecure {
		return fmt.Errorf("SESSION_COOKIE_SECURE debe estar activo en production")
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
		return v.GetBool(key)
	}
	return def
}

// getDuration acepta "30s", "2h" o un número entero de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
