package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Sternrassler/dota2-api-client/internal/config"
	"github.com/Sternrassler/dota2-api-client/pkg/client"
	"github.com/Sternrassler/dota2-api-client/pkg/logging"
	"github.com/Sternrassler/dota2-api-client/pkg/metrics"
	"github.com/Sternrassler/dota2-api-client/pkg/refdata"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	cfgFile     string
	metricsAddr string
	outFile     string
	quiet       bool

	cfg     *config.Config
	logger  zerolog.Logger
	client  *client.Client
	redis   *redis.Client
	metrics *http.Server
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "d2stats",
		Short: "Query the Dota 2 Web API and aggregate match histories",
		Long: `d2stats wraps the Dota 2 Web API. It fetches single match history pages,
match details and reference data, and can collect every match of an account
by walking its history page by page (or hero by hero above 500 results).

The API key is read from api.key in the config file or from D2_API_KEY.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.initialize,
		PersistentPostRunE: a.shutdown,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./d2stats.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.PersistentFlags().StringVarP(&a.outFile, "out", "o", "", "write JSON output to this file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "only log warnings and errors")

	rootCmd.AddCommand(
		newMatchesCmd(a),
		newHistoryCmd(a),
		newMatchCmd(a),
		newHeroesCmd(a),
		newItemsCmd(a),
		newLeaguesCmd(a),
		newLiveCmd(a),
		newTeamsCmd(a),
		newPrizePoolCmd(a),
		newPlayersCmd(a),
		newRefDataCmd(a),
	)

	return rootCmd
}

// initialize loads configuration, sets up logging and creates the client.
func (a *app) initialize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Addr = a.metricsAddr
	}

	logCfg := cfg.LoggingConfig()
	if a.quiet {
		logCfg.Level = logging.LevelWarn
	}
	logging.Setup(logCfg)
	a.logger = logging.NewLogger("d2stats")

	a.client, err = client.New(cfg.ClientConfig())
	if err != nil {
		return fmt.Errorf("failed to create Web API client: %w", err)
	}

	if cfg.Metrics.Addr != "" {
		a.startMetrics(cfg.Metrics.Addr)
	}
	return nil
}

func (a *app) startMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	a.metrics = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().Err(err).Str("addr", addr).Msg("Metrics server failed")
		}
	}()
	a.logger.Info().Str("addr", addr).Msg("Serving Prometheus metrics")
}

func (a *app) shutdown(cmd *cobra.Command, args []string) error {
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.metrics.Shutdown(ctx)
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

// store returns the configured reference data store.
func (a *app) store(ctx context.Context) (refdata.Store, error) {
	if a.cfg.RefData.Backend != "redis" {
		return refdata.NewFileStore(a.cfg.RefData.Dir), nil
	}

	if a.redis == nil {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", a.cfg.Redis.Addr, err)
		}
		a.logger.Debug().Str("addr", a.cfg.Redis.Addr).Msg("Connected to Redis")
	}
	return refdata.NewRedisStore(a.redis, a.cfg.RefData.TTL), nil
}

func (a *app) updater(ctx context.Context) (*refdata.Updater, error) {
	store, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	return refdata.NewUpdater(a.client, store), nil
}

// writeJSON writes v indented to --out or to the command output.
func (a *app) writeJSON(cmd *cobra.Command, v any) error {
	var w io.Writer = cmd.OutOrStdout()
	if a.outFile != "" {
		f, err := os.Create(a.outFile)
		if err != nil {
			return fmt.Errorf("create %s: %w", a.outFile, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
