package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	Debug   bool   `yaml:"debug"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
	SessionTTL string `yaml:"session_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
	AcceptAny    bool   `yaml:"accept_any"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type GoogleMockConfig struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

type PaymentsConfig struct {
	PurchaseDelay string `yaml:"purchase_delay"`
	MockLatency   string `yaml:"mock_latency"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig        `yaml:"app"`
	Database DatabaseConfig   `yaml:"database"`
	Redis    RedisConfig      `yaml:"redis"`
	JWT      JWTConfig        `yaml:"jwt"`
	OTP      OTPConfig        `yaml:"otp"`
	Twilio   TwilioConfig     `yaml:"twilio"`
	Google   GoogleMockConfig `yaml:"google"`
	Payments PaymentsConfig   `yaml:"payments"`
	Casbin   CasbinConfig     `yaml:"casbin"`
}

type Config struct {
	Port             string
	GinMode          string
	Debug            bool
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	SessionTTL       time.Duration
	OTPTTL           time.Duration
	OTPLength        int
	OTPMaxAttempts   int
	OTPResendWindow  time.Duration
	OTPAcceptAny     bool
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
	GoogleMockEmail  string
	GoogleMockName   string
	PurchaseDelay    time.Duration
	MockLatency      time.Duration
	CasbinModelPath  string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml, parsing duration strings up front so wiring
// code deals only in time.Duration.
func Load() (*Config, error) {
	path := env("BOOKA_CONFIG", "config/config.yml")
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}
	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}
	sesTTL, err := time.ParseDuration(configFile.JWT.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}
	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}
	resWnd, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}
	purchaseDelay, err := time.ParseDuration(configFile.Payments.PurchaseDelay)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase delay: %w", err)
	}
	mockLatency, err := time.ParseDuration(configFile.Payments.MockLatency)
	if err != nil {
		return nil, fmt.Errorf("invalid mock latency: %w", err)
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		Debug:           configFile.App.Debug,
		DSN:             env("BOOKA_DSN", configFile.Database.DSN),
		RedisAddr:       env("BOOKA_REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   configFile.Redis.Password,
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       env("BOOKA_JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		AccessTTL:       accTTL,
		RefreshTTL:      refTTL,
		SessionTTL:      sesTTL,
		OTPTTL:          otpTTL,
		OTPLength:       configFile.OTP.Length,
		OTPMaxAttempts:  configFile.OTP.MaxAttempts,
		OTPResendWindow: resWnd,
		OTPAcceptAny:    configFile.OTP.AcceptAny,
		TwilioSID:       configFile.Twilio.AccountSID,
		TwilioToken:     configFile.Twilio.AuthToken,
		TwilioFrom:      configFile.Twilio.FromNumber,
		GoogleMockEmail: configFile.Google.Email,
		GoogleMockName:  configFile.Google.Name,
		PurchaseDelay:   purchaseDelay,
		MockLatency:     mockLatency,
		CasbinModelPath: configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
