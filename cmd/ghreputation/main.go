package main

import (
	"context"
	"fmt"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-zajac/ghreputation/internal/adapter/github"
	"github.com/m-zajac/ghreputation/internal/api/grpc"
	"github.com/m-zajac/ghreputation/internal/api/http"
	"github.com/m-zajac/ghreputation/internal/api/http/limiter"
	"github.com/m-zajac/ghreputation/internal/app"
	"github.com/m-zajac/ghreputation/internal/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	l := logrus.New()
	l.Level = logrus.InfoLevel
	l.Formatter = &logrus.JSONFormatter{}

	conf, err := loadConfig(l)
	if err != nil {
		l.Fatalf("couldn't load config: %v", err)
	}
	level, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		l.Fatalf("invalid log level: %v", err)
	}
	l.Level = level

	if err := run(conf, l); err != nil {
		l.Fatal(err)
	}
}

func run(conf Config, l *logrus.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	httpClient := &netHttp.Client{
		Timeout: 30 * time.Second,
	}
	instrumentedHTTPClient := github.NewInstrumentedDoer(httpClient, reg)
	limitedHTTPClient := limiter.NewHTTPDoer(
		instrumentedHTTPClient,
		conf.GithubAPIRateLimit,
		conf.GithubAPIRateBurst,
	)

	kvStore, err := database.NewBoltKVStore(
		conf.ContributionsDBPath,
		conf.ContributionsDBBucketName,
		time.Second,
	)
	if err != nil {
		return fmt.Errorf("couldn't create bolt kv store: %w", err)
	}
	defer kvStore.Close()
	if n, err := kvStore.Len(); err == nil {
		l.Infof("contributions snapshots in db: %d", n)
	}

	githubClient := github.NewClient(
		limitedHTTPClient,
		conf.GithubAPIAddress,
		conf.GithubAPIToken,
		conf.ServiceLookupTimeout,
	)
	githubCachedClient, err := github.NewCachedClient(
		githubClient,
		conf.GithubClientCacheSize,
		conf.GithubClientCacheTTL,
	)
	if err != nil {
		return fmt.Errorf("couldn't create github client cache: %w", err)
	}

	contributionsClient := github.NewContributionsClient(
		instrumentedHTTPClient,
		conf.ContributionsAPIAddress,
		conf.ServiceLookupTimeout,
	)
	contributionsStaleDataClient := github.NewContributionsWithStaleData(
		contributionsClient,
		kvStore,
		conf.ContributionsDBDataTTL,
		l,
	)

	service := app.NewService(
		githubCachedClient,
		contributionsStaleDataClient,
		conf.ServiceTimeout,
		l.WithField("component", "service"),
	)

	mux := http.NewMux(service, conf.HTTPHandlerTimeout, l, reg)
	server := http.NewServer(
		conf.HTTPServerAddress,
		conf.HTTPProfileServerAddress,
		mux,
		l,
	)

	grpcServer := grpc.NewServer(
		grpc.NewService(service),
		conf.GRPCServerAddress,
		l,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})
	g.Go(func() error {
		return grpcServer.Run(ctx)
	})

	return g.Wait()
}
