package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config exposes typed getters over viper so call sites never touch raw keys.
type Config struct {
	App       App
	PG        PG
	HTTP      HTTP
	RedisConf Redis
	SMTP      SMTP
	Auth      Auth
	Logger    Logger
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Env-only deployments run without a config file.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("app.storage_dir", "./uploads")
	v.SetDefault("app.push_timeout", "10s")
	v.SetDefault("logger.logs_dir", "./logs")

	return &Config{
		App:       App{v: v},
		PG:        PG{v: v},
		HTTP:      HTTP{v: v},
		RedisConf: Redis{v: v},
		SMTP:      SMTP{v: v},
		Auth:      Auth{v: v},
		Logger:    Logger{v: v},
	}, nil
}

type App struct{ v *viper.Viper }

// BaseURL is the public URL of the SPA, used for registration deep links.
func (a App) BaseURL() string { return a.v.GetString("app.base_url") }

// CommunityStatuses is the full known tag set; a target set equal to it means
// "everyone".
func (a App) CommunityStatuses() []string { return a.v.GetStringSlice("app.community_statuses") }

// StrictRegistrationCheck re-validates capacity and deadline inside the
// registration gate. Off by default to match the reference behavior.
func (a App) StrictRegistrationCheck() bool { return a.v.GetBool("app.strict_registration_check") }

func (a App) StorageDir() string         { return a.v.GetString("app.storage_dir") }
func (a App) StorageBaseURL() string     { return a.v.GetString("app.storage_base_url") }
func (a App) PushTimeout() time.Duration { return a.v.GetDuration("app.push_timeout") }

type PG struct{ v *viper.Viper }

func (p PG) DSN() string { return p.v.GetString("postgres.dsn") }

type HTTP struct{ v *viper.Viper }

func (h HTTP) Addr() string                { return h.v.GetString("http.addr") }
func (h HTTP) ReadTimeout() time.Duration  { return h.v.GetDuration("http.read_timeout") }
func (h HTTP) WriteTimeout() time.Duration { return h.v.GetDuration("http.write_timeout") }
func (h HTTP) IdleTimeout() time.Duration  { return h.v.GetDuration("http.idle_timeout") }

type Redis struct{ v *viper.Viper }

func (r Redis) Enabled() bool    { return r.v.GetBool("redis.enabled") }
func (r Redis) Host() string     { return r.v.GetString("redis.host") }
func (r Redis) Port() string     { return r.v.GetString("redis.port") }
func (r Redis) Password() string { return r.v.GetString("redis.password") }
func (r Redis) DB() int          { return r.v.GetInt("redis.db") }

type SMTP struct{ v *viper.Viper }

func (s SMTP) Host() string     { return s.v.GetString("smtp.host") }
func (s SMTP) Port() int        { return s.v.GetInt("smtp.port") }
func (s SMTP) Login() string    { return s.v.GetString("smtp.login") }
func (s SMTP) Password() string { return s.v.GetString("smtp.password") }
func (s SMTP) From() string     { return s.v.GetString("smtp.from") }

type Auth struct{ v *viper.Viper }

func (a Auth) Secret() string { return a.v.GetString("auth.secret") }

type Logger struct{ v *viper.Viper }

func (l Logger) Debug() bool          { return l.v.GetBool("logger.debug") }
func (l Logger) TimeLocation() string { return l.v.GetString("logger.time_location") }
func (l Logger) LogToFile() bool      { return l.v.GetBool("logger.log_to_file") }
func (l Logger) LogsDir() string      { return l.v.GetString("logger.logs_dir") }
