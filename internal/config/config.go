package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // fusos disponíveis mesmo em imagens sem zoneinfo

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Origens possíveis dos dados de referência
const (
	SourceSupabase = "supabase"
	SourcePostgres = "postgres"
)

type Config struct {
	App             App        `mapstructure:",squash"`
	Server          Server     `mapstructure:",squash"`
	Database        Database   `mapstructure:",squash"`
	Supabase        Supabase   `mapstructure:",squash"`
	Template        Template   `mapstructure:",squash"`
	StoreProbe      StoreProbe `mapstructure:",squash"`
	ReferenceSource string     `mapstructure:"reference_source"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN             string        `mapstructure:"-"`
	Driver          string        `mapstructure:"database_driver"`
	Password        string        `mapstructure:"database_password"`
	URL             string        `mapstructure:"database_url"`
	User            string        `mapstructure:"database_user"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type Supabase struct {
	URL     string        `mapstructure:"supabase_url"`
	Key     string        `mapstructure:"supabase_key"`
	Timeout time.Duration `mapstructure:"supabase_timeout"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Template struct {
	IncludeCommissionType bool   `mapstructure:"template_include_commission_type"`
	IncludeCreatorData    bool   `mapstructure:"template_include_creator_data"`
	IncludeExamples       bool   `mapstructure:"template_include_examples"`
	IncludeInstructions   bool   `mapstructure:"template_include_instructions"`
	Filename              string `mapstructure:"template_filename"`
	Timezone              string `mapstructure:"template_timezone"`
}

type StoreProbe struct {
	CronSchedule string `mapstructure:"store_probe_cron"`
	Enabled      bool   `mapstructure:"store_probe_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 3001)

	viper.SetDefault("REFERENCE_SOURCE", SourceSupabase)

	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_KEY", "")
	viper.SetDefault("SUPABASE_TIMEOUT", "30s")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/postgres")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "postgres")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	// Conteúdo do arquivo gerado
	viper.SetDefault("TEMPLATE_INCLUDE_COMMISSION_TYPE", true)
	viper.SetDefault("TEMPLATE_INCLUDE_CREATOR_DATA", true)
	viper.SetDefault("TEMPLATE_INCLUDE_EXAMPLES", true)
	viper.SetDefault("TEMPLATE_INCLUDE_INSTRUCTIONS", true)
	viper.SetDefault("TEMPLATE_FILENAME", "order_template_complete.xlsx")
	viper.SetDefault("TEMPLATE_TIMEZONE", "Asia/Bangkok")

	viper.SetDefault("STORE_PROBE_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("STORE_PROBE_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "development")
}

func NewConfig() (*Config, error) {
	config, err := load()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// NewDatabaseConfig carrega apenas a configuração do Postgres, sem exigir as demais chaves
func NewDatabaseConfig() (Database, error) {
	config, err := load()
	if err != nil {
		return Database{}, err
	}
	return config.Database, nil
}

func load() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.ReferenceSource = strings.ToLower(strings.TrimSpace(config.ReferenceSource))
	config.Supabase.URL = strings.TrimRight(config.Supabase.URL, "/")

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate confere as combinações que impedem o serviço de subir
func (c *Config) Validate() error {
	switch c.ReferenceSource {
	case SourceSupabase:
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			return fmt.Errorf("SUPABASE_URL e SUPABASE_KEY são obrigatórios quando REFERENCE_SOURCE=%s", SourceSupabase)
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL é obrigatório quando REFERENCE_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("REFERENCE_SOURCE inválido: %q", c.ReferenceSource)
	}

	if _, err := c.Template.Location(); err != nil {
		return err
	}

	return nil
}

// Location carrega o fuso usado para a data padrão do template
func (t Template) Location() (*time.Location, error) {
	if t.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TEMPLATE_TIMEZONE inválido %q: %w", t.Timezone, err)
	}
	return loc, nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
