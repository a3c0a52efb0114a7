package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Upload  UploadConfig
	Catalog CatalogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de persistencia.
// Driver "memory" usa el almacén en memoria (desarrollo local); "postgres" usa el pool pgx.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver         string
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrateOnStart bool
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
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UploadConfig configuración de subida de imágenes.
// AllowedTypes mapea MIME declarado -> extensión del archivo guardado.
type UploadConfig struct {
	Dir             string // directorio en disco, ej. public/uploads
	PublicPath      string // prefijo de URL desde el que se sirven, ej. /public/uploads
	PublicBaseURL   string // opcional: https://cdn.tienda.com; vacío = protocolo + host de la petición
	MaxFileSize     int64  // bytes por archivo
	MaxGalleryFiles int
	AllowedTypes    map[string]string
}

// BodyLimit calcula el límite de cuerpo HTTP: una galería con un archivo de más
// todavía llega al caso de uso y recibe TOO_MANY_FILES en lugar de 413.
func (c UploadConfig) BodyLimit() int {
	return int(c.MaxFileSize)*(c.MaxGalleryFiles+1) + 1<<20
}

// DefaultAllowedTypes lista blanca de tipos de imagen aceptados.
func DefaultAllowedTypes() map[string]string {
	return map[string]string{
		"image/png":  "png",
		"image/jpeg": "jpeg",
		"image/jpg":  "jpg",
	}
}

// CatalogConfig límites del listado de destacados.
type CatalogConfig struct {
	FeaturedDefaultLimit int
	FeaturedMaxLimit     int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, UPLOAD_DIR, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "tienda-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:         getString(v, "DB_DRIVER", "postgres"),
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "tienda"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			MigrateOnStart: getBool(v, "MIGRATE_ON_START", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "tienda-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Upload: UploadConfig{
			Dir:             getString(v, "UPLOAD_DIR", "public/uploads"),
			PublicPath:      getString(v, "UPLOAD_PUBLIC_PATH", "/public/uploads"),
			PublicBaseURL:   strings.TrimRight(getString(v, "PUBLIC_BASE_URL", ""), "/"),
			MaxFileSize:     int64(getInt(v, "UPLOAD_MAX_FILE_SIZE", 1_000_000)),
			MaxGalleryFiles: getInt(v, "UPLOAD_MAX_GALLERY_FILES", 10),
			AllowedTypes:    DefaultAllowedTypes(),
		},
		Catalog: CatalogConfig{
			FeaturedDefaultLimit: getInt(v, "FEATURED_DEFAULT_LIMIT", 10),
			FeaturedMaxLimit:     getInt(v, "FEATURED_MAX_LIMIT", 50),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa combinaciones inválidas antes de arrancar.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" && c.App.Env != "development" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio fuera de development")
	}
	switch c.DB.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: DB_DRIVER desconocido %q", c.DB.Driver)
	}
	if c.Upload.MaxFileSize <= 0 || c.Upload.MaxGalleryFiles <= 0 {
		return fmt.Errorf("config: límites de subida deben ser positivos")
	}
	if c.Catalog.FeaturedDefaultLimit <= 0 || c.Catalog.FeaturedMaxLimit < c.Catalog.FeaturedDefaultLimit {
		return fmt.Errorf("config: FEATURED_DEFAULT_LIMIT debe ser > 0 y <= FEATURED_MAX_LIMIT")
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
