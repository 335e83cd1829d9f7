package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ENV_PREFIX = "MERCHANTPLUS_CONSOLE"

	API_BASE_URL             = "Api_Base_Url"
	WEBSOCKET_URL            = "Websocket_Url"
	AUTH_TOKEN               = "Auth_Token"
	URL_APP_NAME             = "URL_App_Name"
	URL_PATH_PREFIX          = "URL_Path_Prefix"
	URL_BASE_PATH            = "URL_Base_Path"
	HTTP_SHUTDOWN_TIMEOUT    = "HTTP_Shutdown_Timeout"
	HTTP_CLIENT_TIMEOUT      = "HTTP_Client_Timeout"
	SNAPSHOT_CACHE_SIZE      = "Snapshot_Cache_Size"
	SNAPSHOT_CACHE_TTL       = "Snapshot_Cache_TTL"
	PROFILE                  = "Enable_Profile"
	DEFAULT_API_BASE_URL     = "http://localhost:8000"
	DEFAULT_WEBSOCKET_URL    = "ws://localhost:8000/ws/admin/dashboard/"
)

type Config struct {
	ApiBaseUrl          string
	WebsocketUrl        string
	AuthToken           string
	UrlAppName          string
	UrlPathPrefix       string
	UrlBasePath         string
	HttpShutdownTimeout time.Duration
	HttpClientTimeout   time.Duration
	SnapshotCacheSize   int
	SnapshotCacheTTL    time.Duration
	Profile             bool
}

func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", API_BASE_URL, c.ApiBaseUrl)
	fmt.Fprintf(&b, "%s: %s\n", WEBSOCKET_URL, c.WebsocketUrl)
	fmt.Fprintf(&b, "%s: %s\n", URL_PATH_PREFIX, c.UrlPathPrefix)
	fmt.Fprintf(&b, "%s: %s\n", URL_APP_NAME, c.UrlAppName)
	fmt.Fprintf(&b, "%s: %s\n", URL_BASE_PATH, c.UrlBasePath)
	fmt.Fprintf(&b, "%s: %s\n", HTTP_SHUTDOWN_TIMEOUT, c.HttpShutdownTimeout)
	fmt.Fprintf(&b, "%s: %s\n", HTTP_CLIENT_TIMEOUT, c.HttpClientTimeout)
	fmt.Fprintf(&b, "%s: %d\n", SNAPSHOT_CACHE_SIZE, c.SnapshotCacheSize)
	fmt.Fprintf(&b, "%s: %s\n", SNAPSHOT_CACHE_TTL, c.SnapshotCacheTTL)
	fmt.Fprintf(&b, "%s: %t\n", PROFILE, c.Profile)

	return b.String()
}

func GetConfig() *Config {
	options := viper.New()

	options.SetDefault(API_BASE_URL, DEFAULT_API_BASE_URL)
	options.SetDefault(WEBSOCKET_URL, DEFAULT_WEBSOCKET_URL)
	options.SetDefault(AUTH_TOKEN, "")
	options.SetDefault(URL_PATH_PREFIX, "api")
	options.SetDefault(URL_APP_NAME, "console-sync")
	options.SetDefault(HTTP_SHUTDOWN_TIMEOUT, 2)
	options.SetDefault(HTTP_CLIENT_TIMEOUT, 10)
	options.SetDefault(SNAPSHOT_CACHE_SIZE, 100)
	options.SetDefault(SNAPSHOT_CACHE_TTL, 30)
	options.SetDefault(PROFILE, false)

	options.SetEnvPrefix(ENV_PREFIX)
	options.AutomaticEnv()

	return &Config{
		ApiBaseUrl:          options.GetString(API_BASE_URL),
		WebsocketUrl:        options.GetString(WEBSOCKET_URL),
		AuthToken:           options.GetString(AUTH_TOKEN),
		UrlPathPrefix:       options.GetString(URL_PATH_PREFIX),
		UrlAppName:          options.GetString(URL_APP_NAME),
		UrlBasePath:         buildUrlBasePath(options.GetString(URL_PATH_PREFIX), options.GetString(URL_APP_NAME)),
		HttpShutdownTimeout: options.GetDuration(HTTP_SHUTDOWN_TIMEOUT) * time.Second,
		HttpClientTimeout:   options.GetDuration(HTTP_CLIENT_TIMEOUT) * time.Second,
		SnapshotCacheSize:   options.GetInt(SNAPSHOT_CACHE_SIZE),
		SnapshotCacheTTL:    options.GetDuration(SNAPSHOT_CACHE_TTL) * time.Second,
		Profile:             options.GetBool(PROFILE),
	}
}

func buildUrlBasePath(pathPrefix string, appName string) string {
	return fmt.Sprintf("/%s/%s", pathPrefix, appName)
}
