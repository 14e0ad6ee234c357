package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "kindbridge"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "KINDBRIDGE_DB_DSN"
	EnvDBHost = "KINDBRIDGE_DB_HOST"
	EnvDBUser = "KINDBRIDGE_DB_USER"
	EnvDBName = "KINDBRIDGE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Identity     IdentityConfig
	Uploads      UploadsConfig
	Normalize    NormalizeConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Normalize.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KINDBRIDGE_APP_ENV" required:"true"`
	Port         string `envconfig:"KINDBRIDGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"KINDBRIDGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KINDBRIDGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"KINDBRIDGE_DB_DSN"`
	Driver string `envconfig:"KINDBRIDGE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"KINDBRIDGE_DB_HOST"`
	LegacyPort     int    `envconfig:"KINDBRIDGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KINDBRIDGE_DB_USER"`
	LegacyPassword string `envconfig:"KINDBRIDGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"KINDBRIDGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"KINDBRIDGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KINDBRIDGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KINDBRIDGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KINDBRIDGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KINDBRIDGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KINDBRIDGE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"KINDBRIDGE_REDIS_ADDR"`
	Password     string        `envconfig:"KINDBRIDGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"KINDBRIDGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KINDBRIDGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KINDBRIDGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KINDBRIDGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KINDBRIDGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KINDBRIDGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// IdentityConfig wires the external identity provider that owns
// authentication and sessions. The backend only verifies the provider's
// session tokens against its JWKS endpoint.
type IdentityConfig struct {
	JWKSURL         string        `envconfig:"KINDBRIDGE_IDENTITY_JWKS_URL" required:"true"`
	Issuer          string        `envconfig:"KINDBRIDGE_IDENTITY_ISSUER" required:"true"`
	Audience        string        `envconfig:"KINDBRIDGE_IDENTITY_AUDIENCE"`
	RefreshInterval time.Duration `envconfig:"KINDBRIDGE_IDENTITY_JWKS_REFRESH_INTERVAL" default:"1h"`
}

type UploadsConfig struct {
	Dir         string `envconfig:"KINDBRIDGE_UPLOADS_DIR" default:"public/uploads/children"`
	PublicPath  string `envconfig:"KINDBRIDGE_UPLOADS_PUBLIC_PATH" default:"/uploads/children/"`
	MaxUploadMB int    `envconfig:"KINDBRIDGE_MAX_UPLOAD_MB" default:"10"`
}

// MaxUploadBytes returns the multipart memory/read ceiling in bytes.
func (u UploadsConfig) MaxUploadBytes() int64 {
	if u.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(u.MaxUploadMB) << 20
}

const (
	DateParsePassthrough = "passthrough"
	DateParseReject      = "reject"
)

// NormalizeConfig controls how unparseable date-like input is handled.
// Passthrough keeps the raw value and logs a warning; reject fails the
// request with a validation error.
type NormalizeConfig struct {
	OnDateParseFailure string `envconfig:"KINDBRIDGE_ON_DATE_PARSE_FAILURE" default:"passthrough"`
}

func (n NormalizeConfig) validate() error {
	switch n.OnDateParseFailure {
	case DateParsePassthrough, DateParseReject:
		return nil
	}
	return fmt.Errorf("invalid KINDBRIDGE_ON_DATE_PARSE_FAILURE %q (expected passthrough or reject)", n.OnDateParseFailure)
}

func (n NormalizeConfig) RejectsBadDates() bool {
	return n.OnDateParseFailure == DateParseReject
}

type RateLimitConfig struct {
	RegisterWindow    time.Duration `envconfig:"KINDBRIDGE_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIPLimit   int           `envconfig:"KINDBRIDGE_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
	RegisterUserLimit int           `envconfig:"KINDBRIDGE_RATE_LIMIT_REGISTER_USER_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"KINDBRIDGE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   "/" + db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
