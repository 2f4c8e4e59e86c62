package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Parser   ParserConfig
	Template TemplateConfig
	S3       S3Config
	Upload   UploadConfig
	Log      LogConfig
	CORS     CORSConfig
	Auth     AuthConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig enables bearer-token protection of the API when Secret is set.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// Enabled reports whether requests must carry a valid bearer token.
func (a *AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// ParserProviderConfig holds settings for a single LLM parser provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds LLM extraction settings with multi-provider support.
type ParserConfig struct {
	// Legacy flat fields
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
	Tertiary  ParserProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary parser provider config, falling back to legacy flat fields.
func (p *ParserConfig) PrimaryConfig() *ParserProviderConfig {
	if p.Primary.Provider != "" {
		return &p.Primary
	}
	return &ParserProviderConfig{
		Provider:     p.Provider,
		APIKey:       p.APIKey,
		DefaultModel: p.DefaultModel,
		MaxTokens:    p.MaxTokens,
		TimeoutSecs:  p.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary parser provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary parser provider config, or nil if not configured.
func (p *ParserConfig) TertiaryConfig() *ParserProviderConfig {
	if p.Tertiary.Provider != "" {
		return &p.Tertiary
	}
	return nil
}

// Chain returns the configured providers in fallback order.
func (p *ParserConfig) Chain() []*ParserProviderConfig {
	chain := []*ParserProviderConfig{p.PrimaryConfig()}
	if s := p.SecondaryConfig(); s != nil {
		chain = append(chain, s)
	}
	if t := p.TertiaryConfig(); t != nil {
		chain = append(chain, t)
	}
	return chain
}

// TemplateConfig selects the affidavit template and how it is filled.
type TemplateConfig struct {
	// Strategy is "contentcontrol" or "placeholder".
	Strategy string `mapstructure:"strategy"`
	// Source is "builtin", "file" or "s3".
	Source      string   `mapstructure:"source"`
	FileName    string   `mapstructure:"file_name"`
	SearchPaths []string `mapstructure:"search_paths"`
	S3Bucket    string   `mapstructure:"s3_bucket"`
	S3Key       string   `mapstructure:"s3_key"`
	NameStyle   string   `mapstructure:"name_style"`
	ProcessName string   `mapstructure:"process_name"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	// OutputBucket, when set, receives every batch bundle so it can be fetched by presigned URL.
	OutputBucket      string `mapstructure:"output_bucket"`
	PresignExpirySecs int64  `mapstructure:"presign_expiry_secs"`
}

// PresignExpiry is the lifetime of bundle download links, one hour when unset.
func (s *S3Config) PresignExpiry() time.Duration {
	if s.PresignExpirySecs <= 0 {
		return time.Hour
	}
	return time.Duration(s.PresignExpirySecs) * time.Second
}

// UploadConfig bounds incoming PDFs.
type UploadConfig struct {
	MaxFileSizeMB  int64 `mapstructure:"max_file_size_mb"`
	MaxBatchFiles  int   `mapstructure:"max_batch_files"`
	ExtractPDFText bool  `mapstructure:"extract_pdf_text"`
}

// MaxFileBytes returns the per-file limit in bytes.
func (u *UploadConfig) MaxFileBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	// DebugErrors exposes underlying error text in 5xx responses.
	DebugErrors bool `mapstructure:"debug_errors"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Debug reports whether verbose step logging is on.
func (l *LogConfig) Debug() bool {
	return strings.EqualFold(l.Level, "debug")
}

// New returns a viper instance with every default and env binding applied.
// Callers may bind flags onto it before calling FromViper.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("AFFIDAVIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.debug_errors", false)

	// Template defaults
	v.SetDefault("template.strategy", "contentcontrol")
	v.SetDefault("template.source", "builtin")
	v.SetDefault("template.file_name", "Form_11_-_Affidavit_of_Service.docx")
	v.SetDefault("template.search_paths", "./templates,./netlify/functions,/var/task,/var/task/templates")
	v.SetDefault("template.s3_bucket", "")
	v.SetDefault("template.s3_key", "")
	v.SetDefault("template.name_style", "court")
	v.SetDefault("template.process_name", "General Procedure Claim")

	// S3 defaults
	v.SetDefault("s3.region", "ap-southeast-2")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.output_bucket", "")
	v.SetDefault("s3.presign_expiry_secs", 3600)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)
	v.SetDefault("upload.max_batch_files", 50)
	v.SetDefault("upload.extract_pdf_text", true)

	// Log defaults
	v.SetDefault("log.level", "info")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8888")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "gpcaffidavit")

	// Parser defaults (legacy flat)
	v.SetDefault("parser.provider", "claude")
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.default_model", "claude-sonnet-4-20250514")
	v.SetDefault("parser.max_tokens", 2048)
	v.SetDefault("parser.timeout_secs", 120)

	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("parser."+tier+".provider", "")
		v.SetDefault("parser."+tier+".api_key", "")
		v.SetDefault("parser."+tier+".default_model", "")
		v.SetDefault("parser."+tier+".max_tokens", 2048)
		v.SetDefault("parser."+tier+".timeout_secs", 120)
	}

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "AFFIDAVIT_SERVER_PORT",
		"server.read_timeout":     "AFFIDAVIT_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "AFFIDAVIT_SERVER_WRITE_TIMEOUT",
		"server.environment":      "AFFIDAVIT_SERVER_ENVIRONMENT",
		"server.debug_errors":     "AFFIDAVIT_SERVER_DEBUG_ERRORS",
		"template.strategy":       "AFFIDAVIT_TEMPLATE_STRATEGY",
		"template.source":         "AFFIDAVIT_TEMPLATE_SOURCE",
		"template.file_name":      "AFFIDAVIT_TEMPLATE_FILE_NAME",
		"template.search_paths":   "AFFIDAVIT_TEMPLATE_SEARCH_PATHS",
		"template.s3_bucket":      "AFFIDAVIT_TEMPLATE_S3_BUCKET",
		"template.s3_key":         "AFFIDAVIT_TEMPLATE_S3_KEY",
		"template.name_style":     "AFFIDAVIT_TEMPLATE_NAME_STYLE",
		"template.process_name":   "AFFIDAVIT_TEMPLATE_PROCESS_NAME",
		"s3.region":               "AFFIDAVIT_S3_REGION",
		"s3.endpoint":             "AFFIDAVIT_S3_ENDPOINT",
		"s3.access_key":           "AFFIDAVIT_S3_ACCESS_KEY",
		"s3.secret_key":           "AFFIDAVIT_S3_SECRET_KEY",
		"s3.output_bucket":        "AFFIDAVIT_S3_OUTPUT_BUCKET",
		"s3.presign_expiry_secs":  "AFFIDAVIT_S3_PRESIGN_EXPIRY_SECS",
		"upload.max_file_size_mb": "AFFIDAVIT_UPLOAD_MAX_FILE_SIZE_MB",
		"upload.max_batch_files":  "AFFIDAVIT_UPLOAD_MAX_BATCH_FILES",
		"upload.extract_pdf_text": "AFFIDAVIT_UPLOAD_EXTRACT_PDF_TEXT",
		"log.level":               "AFFIDAVIT_LOG_LEVEL",
		"cors.allowed_origins":    "AFFIDAVIT_CORS_ALLOWED_ORIGINS",
		"auth.jwt_secret":         "AFFIDAVIT_AUTH_JWT_SECRET",
		"auth.issuer":             "AFFIDAVIT_AUTH_ISSUER",
		"parser.provider":         "AFFIDAVIT_PARSER_PROVIDER",
		"parser.api_key":          "AFFIDAVIT_PARSER_API_KEY",
		"parser.default_model":    "AFFIDAVIT_PARSER_DEFAULT_MODEL",
		"parser.max_tokens":       "AFFIDAVIT_PARSER_MAX_TOKENS",
		"parser.timeout_secs":     "AFFIDAVIT_PARSER_TIMEOUT_SECS",
	}
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		for _, field := range []string{"provider", "api_key", "default_model", "max_tokens", "timeout_secs"} {
			key := "parser." + tier + "." + field
			envBindings[key] = "AFFIDAVIT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	return v
}

// Load reads configuration from environment variables with the AFFIDAVIT_ prefix.
func Load() (*Config, error) {
	return FromViper(New()), nil
}

// FromViper materialises a Config from an already-populated viper instance.
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	// Netlify/Railway/Heroku set a PORT env var. Use it if AFFIDAVIT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("AFFIDAVIT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		DebugErrors:  v.GetBool("server.debug_errors"),
	}
	cfg.Template = TemplateConfig{
		Strategy:    v.GetString("template.strategy"),
		Source:      v.GetString("template.source"),
		FileName:    v.GetString("template.file_name"),
		SearchPaths: splitList(v.GetString("template.search_paths")),
		S3Bucket:    v.GetString("template.s3_bucket"),
		S3Key:       v.GetString("template.s3_key"),
		NameStyle:   v.GetString("template.name_style"),
		ProcessName: v.GetString("template.process_name"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),

		OutputBucket:      v.GetString("s3.output_bucket"),
		PresignExpirySecs: v.GetInt64("s3.presign_expiry_secs"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB:  v.GetInt64("upload.max_file_size_mb"),
		MaxBatchFiles:  v.GetInt("upload.max_batch_files"),
		ExtractPDFText: v.GetBool("upload.extract_pdf_text"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
	}

	cfg.Parser = ParserConfig{
		Provider:     v.GetString("parser.provider"),
		APIKey:       v.GetString("parser.api_key"),
		DefaultModel: v.GetString("parser.default_model"),
		MaxTokens:    v.GetInt("parser.max_tokens"),
		TimeoutSecs:  v.GetInt("parser.timeout_secs"),
		Primary:      providerFromViper(v, "primary"),
		Secondary:    providerFromViper(v, "secondary"),
		Tertiary:     providerFromViper(v, "tertiary"),
	}
	// Accept the key name the Anthropic tooling uses.
	if cfg.Parser.APIKey == "" && cfg.Parser.Provider == "claude" {
		cfg.Parser.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	return cfg
}

func providerFromViper(v *viper.Viper, tier string) ParserProviderConfig {
	prefix := "parser." + tier + "."
	return ParserProviderConfig{
		Provider:     v.GetString(prefix + "provider"),
		APIKey:       v.GetString(prefix + "api_key"),
		DefaultModel: v.GetString(prefix + "default_model"),
		MaxTokens:    v.GetInt(prefix + "max_tokens"),
		TimeoutSecs:  v.GetInt(prefix + "timeout_secs"),
	}
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
