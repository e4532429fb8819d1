package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cdn-service/domain/model"
	"cdn-service/infrastructure/logger"

	"github.com/spf13/viper"
)

const (
	ChannelTNORadio  = "tnoradio"
	ChannelProgramas = "programas"

	defaultPort           = 19000
	defaultPageSize       = 50
	defaultMaxPages       = 1000
	defaultRequestTimeout = 15 * time.Second
	defaultStorageZone    = "shows-tnoradio"
	defaultStorageHost    = "storage.bunnycdn.com"
	defaultStreamBaseURL  = "https://video.bunnycdn.com/library"
	defaultEmbedBaseURL   = "https://iframe.mediadelivery.net/embed"
	defaultVideoLibraryID = 286671
)

type Config struct {
	App         App         `json:"app"`
	YouTube     YouTube     `json:"youtube"`
	Bunny       Bunny       `json:"bunny"`
	RateLimit   RateLimit   `json:"rateLimit"`
	RedisClient RedisClient `json:"redisClient"`
	Sentry      Sentry      `json:"sentry"`
	Logger      Logger      `json:"logger"`
	CORS        CORS        `json:"cors"`
}

type App struct {
	Port        int    `json:"port"`
	Release     string `json:"release"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
}

type YouTube struct {
	// Channels is iterated in order by the episode aggregator.
	Channels       []model.Channel `json:"channels"`
	PageSize       int64           `json:"pageSize"`
	MaxPages       int             `json:"maxPages"`
	RequestTimeout time.Duration   `json:"requestTimeout"`
	StrictChannels bool            `json:"strictChannels"`
	ClientID       string          `json:"clientId"`
	ClientSecret   string          `json:"clientSecret"`
}

type Bunny struct {
	StorageAPIKey     string        `json:"storageApiKey"`
	StorageZone       string        `json:"storageZone"`
	StorageHost       string        `json:"storageHost"`
	StoragePullZone   string        `json:"storagePullZone"`
	StreamAPIKey      string        `json:"streamApiKey"`
	StreamBaseURL     string        `json:"streamBaseUrl"`
	StreamCDNHost     string        `json:"streamCdnHost"`
	EmbedBaseURL      string        `json:"embedBaseUrl"`
	VideoLibraryID    int64         `json:"videoLibraryId"`
	TrailersLibraryID int64         `json:"trailersLibraryId"`
	RequestTimeout    time.Duration `json:"requestTimeout"`
}

type RateLimit struct {
	Enabled           bool `json:"enabled"`
	RequestsPerMinute int  `json:"requestsPerMinute"`
	Burst             int  `json:"burst"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type Sentry struct {
	DSN              string  `json:"dsn"`
	Environment      string  `json:"environment"`
	TracesSampleRate float64 `json:"tracesSampleRate"`
}

type Logger struct {
	Format string `json:"format"` // json or text

}

type CORS struct {
	AllowOrigins []string `json:"allowOrigins"`
}

var C Config

func init() {
	LoadEnvFromFile("config.env", ".env")
	LoadConfig()
}

// LoadConfig reads config.json (or config-<ENV>.json) into C and fills the gaps
// from the environment and defaults.
func LoadConfig() {
	name := getConfig()
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("../../")
	v.AutomaticEnv()
	v.SetDefault("rateLimit.enabled", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().WithField("config", name).Warn("Config file not found, using environment and defaults")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	initApp(&cfg)
	initYouTube(&cfg)
	initBunny(&cfg)
	initRateLimit(&cfg)
	initRedis(&cfg)
	initSentry(&cfg)
	initLogger(&cfg)
	C = cfg
	logger.SetFormat(C.Logger.Format)

	logger.GetLogger().WithFields(map[string]interface{}{
		"config":   name,
		"port":     C.App.Port,
		"channels": channelNames(C.YouTube.Channels),
	}).Info("Config set up successfully")
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = defaultPort
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			C.App.TLSEnabled = false
		}
	}
	C.App.TLSCertFile = getConfigValue(C.App.TLSCertFile, "TLS_CERT_FILE", "")
	C.App.TLSKeyFile = getConfigValue(C.App.TLSKeyFile, "TLS_KEY_FILE", "")
	C.App.Release = getConfigValue(C.App.Release, "RELEASE", "dev")
}

// initYouTube falls back to the two historical channels and their env variables
// when the config file declares none.
func initYouTube(C *Config) {
	if len(C.YouTube.Channels) == 0 {
		C.YouTube.Channels = []model.Channel{
			{
				Name:      ChannelTNORadio,
				APIKey:    getEnv("YOUTUBE_TNORADIO_API_KEY", ""),
				ChannelID: getEnv("YOUTUBE_TNORADIO_CHANNEL_ID", ""),
			},
			{
				Name:      ChannelProgramas,
				APIKey:    getEnv("YOUTUBE_API_KEY", ""),
				ChannelID: getEnv("YOUTUBE_CHANNEL_ID", ""),
			},
		}
	}
	for i := range C.YouTube.Channels {
		ch := &C.YouTube.Channels[i]
		prefix := "YOUTUBE_" + strings.ToUpper(ch.Name)
		ch.APIKey = getConfigValue(ch.APIKey, prefix+"_API_KEY", "")
		ch.ChannelID = getConfigValue(ch.ChannelID, prefix+"_CHANNEL_ID", "")
		ch.RefreshToken = getConfigValue(ch.RefreshToken, prefix+"_REFRESH_TOKEN", "")
		if ch.APIKey == "" && ch.RefreshToken == "" {
			logger.GetLogger().WithField("channel", ch.Name).Warn("YouTube API key not set for channel")
		}
	}
	if C.YouTube.PageSize <= 0 || C.YouTube.PageSize > defaultPageSize {
		C.YouTube.PageSize = defaultPageSize
	}
	if C.YouTube.MaxPages <= 0 {
		C.YouTube.MaxPages = defaultMaxPages
	}
	if C.YouTube.RequestTimeout <= 0 {
		C.YouTube.RequestTimeout = defaultRequestTimeout
	}
	if v := os.Getenv("YOUTUBE_STRICT_CHANNELS"); v == "true" || v == "1" {
		C.YouTube.StrictChannels = true
	}
	C.YouTube.ClientID = getConfigValue(C.YouTube.ClientID, "YOUTUBE_CLIENT_ID", "")
	C.YouTube.ClientSecret = getConfigValue(C.YouTube.ClientSecret, "YOUTUBE_CLIENT_SECRET", "")
}

func initBunny(C *Config) {
	C.Bunny.StorageAPIKey = getConfigValue(C.Bunny.StorageAPIKey, "BUNNY_STORAGE_API_KEY", "")
	C.Bunny.StorageZone = getConfigValue(C.Bunny.StorageZone, "BUNNY_STORAGE_ZONE", defaultStorageZone)
	C.Bunny.StorageHost = getConfigValue(C.Bunny.StorageHost, "BUNNY_STORAGE_HOST", defaultStorageHost)
	C.Bunny.StoragePullZone = getConfigValue(C.Bunny.StoragePullZone, "BUNNY_STORAGE_PULL_ZONE", "")
	C.Bunny.StreamAPIKey = getConfigValue(C.Bunny.StreamAPIKey, "BUNNY_API_KEY", "")
	C.Bunny.StreamBaseURL = getConfigValue(C.Bunny.StreamBaseURL, "BUNNY_STREAM_BASE_URL", defaultStreamBaseURL)
	C.Bunny.StreamCDNHost = getConfigValue(C.Bunny.StreamCDNHost, "BUNNY_STREAM_CDN_HOST", "")
	C.Bunny.EmbedBaseURL = getConfigValue(C.Bunny.EmbedBaseURL, "BUNNY_EMBED_BASE_URL", defaultEmbedBaseURL)
	if v := os.Getenv("BUNNY_VIDEO_LIBRARY_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			C.Bunny.VideoLibraryID = id
		}
	}
	if C.Bunny.VideoLibraryID == 0 {
		C.Bunny.VideoLibraryID = defaultVideoLibraryID
	}
	// Trailers historically live in the main library.
	if C.Bunny.TrailersLibraryID == 0 {
		C.Bunny.TrailersLibraryID = C.Bunny.VideoLibraryID
	}
	if C.Bunny.RequestTimeout <= 0 {
		C.Bunny.RequestTimeout = defaultRequestTimeout
	}
}

func initRateLimit(C *Config) {
	if C.RateLimit.RequestsPerMinute <= 0 {
		C.RateLimit.RequestsPerMinute = 120
	}
	if C.RateLimit.Burst <= 0 {
		C.RateLimit.Burst = 20
	}
}

func initRedis(C *Config) {
	C.RedisClient.Host = getConfigValue(C.RedisClient.Host, "REDIS_HOST", "")
	C.RedisClient.Port = getConfigValue(C.RedisClient.Port, "REDIS_PORT", "6379")
	C.RedisClient.Username = getConfigValue(C.RedisClient.Username, "REDIS_USERNAME", "")
	C.RedisClient.Password = getConfigValue(C.RedisClient.Password, "REDIS_PASSWORD", "")
}

func initSentry(C *Config) {
	C.Sentry.DSN = getConfigValue(C.Sentry.DSN, "SENTRY_DSN", "")
	C.Sentry.Environment = getConfigValue(C.Sentry.Environment, "ENV", "development")
	if C.Sentry.TracesSampleRate <= 0 {
		C.Sentry.TracesSampleRate = 0.2
	}
}

func initLogger(C *Config) {
	C.Logger.Format = strings.ToLower(getConfigValue(C.Logger.Format, "LOG_FORMAT", "json"))
	if C.Logger.Format != "text" {
		C.Logger.Format = "json"
	}
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (r RedisClient) RedisAddr() string {
	if r.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func channelNames(channels []model.Channel) []string {
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch.Name)
	}
	return names
}

// getConfigValue gets value from environment first, then config, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
