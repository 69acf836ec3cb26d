package main

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config is the container for app configuration
type Config struct {
	// LogLevel - logrus level name
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// HTTPServerAddress - listen address for http server
	HTTPServerAddress string `default:"0.0.0.0:8080"`

	// HTTPProfileServerAddress - listen address for profiler http server. If empty, profiler server is disabled
	HTTPProfileServerAddress string `default:""`

	// HTTPHandlerTimeout - timeout for handling single http request
	HTTPHandlerTimeout time.Duration `default:"60s"`

	// GRPCServerAddress - listen address for grpc server
	GRPCServerAddress string `default:"0.0.0.0:9090"`

	// ServiceTimeout - timeout for whole profile or reputation call, including rate limiter waits. Zero means no limit
	ServiceTimeout time.Duration `default:"30s"`

	// ServiceLookupTimeout - timeout for every single upstream lookup
	ServiceLookupTimeout time.Duration `default:"10s"`

	// GithubAPIAddress - address for rest api with protocol
	GithubAPIAddress string `default:"https://api.github.com"`

	// GithubAPIToken - auth token for rest github api (optional, rate limit is lower without this token)
	GithubAPIToken string `default:""`

	// GithubAPIRateLimit - max frequency for github rest api calls
	GithubAPIRateLimit float64 `default:"5"`

	// GithubAPIRateBurst - number of github rest api calls allowed at once
	GithubAPIRateBurst int `default:"4"`

	// GithubClientCacheSize - maximum number of elements in cache for each github client method
	GithubClientCacheSize int `default:"10000"`

	// GithubClientCacheTTL - maximum lifetime for github client cache entries
	GithubClientCacheTTL time.Duration `default:"10m"`

	// ContributionsAPIAddress - address for contributions aggregation api with protocol
	ContributionsAPIAddress string `default:"https://github-contributions-api.jogruber.de"`

	// ContributionsDBPath - filepath for bolt db data
	ContributionsDBPath string `default:"./ghreputation.data"`

	// ContributionsDBBucketName - bolt db bucket name
	ContributionsDBBucketName string `default:"contributions"`

	// ContributionsDBDataTTL - maximum age of saved contributions served when upstream fails
	ContributionsDBDataTTL time.Duration `default:"24h"`
}

// loadConfig reads config from environment. Variables from .env file are loaded first if the file exists.
func loadConfig(l logrus.FieldLogger, envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		l.Debugf("no env file loaded: %v", err)
	}

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	return conf, nil
}
