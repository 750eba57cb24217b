// Command polaris-index scans a music directory, builds a search index
// over it, and serves queries over HTTP — optionally watching the
// directory and rebuilding the index as files change.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/0xZaitsev/polaris/internal/scanner"
	"github.com/0xZaitsev/polaris/internal/searchapi"
	"github.com/0xZaitsev/polaris/pkg/config"
	"github.com/0xZaitsev/polaris/pkg/searchindex"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	flagDir       string
	flagHTTPAddr  string
	flagWatch     bool
	flagWorkers   int
	flagDebounce  time.Duration
	flagRedisAddr string
	flagAuditDSN  string
	flagNoRedis   bool
	flagNoAudit   bool
)

var rootCmd = &cobra.Command{
	Use:   "polaris-index",
	Short: "Scan a music directory and serve a search index over HTTP",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flagDir, "dir", config.Env("MUSIC_DIR", "/music"), "Music directory to scan")
	rootCmd.Flags().StringVar(&flagHTTPAddr, "http-addr", config.Env("HTTP_ADDR", ":8090"), "HTTP listen address")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Watch the directory and rebuild the index on changes")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "Number of parallel tag-reading workers")
	rootCmd.Flags().DurationVar(&flagDebounce, "debounce", 2*time.Second, "Settle time before a watch-triggered rebuild")
	rootCmd.Flags().StringVar(&flagRedisAddr, "redis-addr", config.Env("REDIS_ADDR", "localhost:6379"), "Redis address for result caching")
	rootCmd.Flags().StringVar(&flagAuditDSN, "audit-dsn", config.DSN(), "Postgres DSN for the search query audit log")
	rootCmd.Flags().BoolVar(&flagNoRedis, "no-cache", false, "Disable result caching")
	rootCmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "Disable the search query audit log")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flagDir == "" {
		return fmt.Errorf("--dir is required")
	}

	coll, err := buildIndex(ctx, flagDir, flagWorkers)
	if err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}

	svc := searchapi.New(coll)

	if !flagNoRedis {
		rdb := redis.NewClient(&redis.Options{Addr: flagRedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("result cache disabled: redis unreachable", "addr", flagRedisAddr, "err", err)
		} else {
			svc.WithCache(searchapi.NewResultCache(rdb))
			slog.Info("result cache connected", "addr", flagRedisAddr)
		}
	}

	if !flagNoAudit {
		audit, err := searchapi.NewAuditLog(ctx, flagAuditDSN)
		if err != nil {
			slog.Warn("audit log disabled", "err", err)
		} else {
			svc.WithAudit(audit)
			defer audit.Close()
			slog.Info("audit log connected")
		}
	}

	if flagWatch {
		stopWatch := make(chan struct{})
		go func() {
			<-ctx.Done()
			close(stopWatch)
		}()
		go func() {
			err := scanner.Watch(flagDir, flagDebounce, stopWatch, func() {
				rebuilt, err := buildIndex(ctx, flagDir, flagWorkers)
				if err != nil {
					slog.Error("rebuild failed", "err", err)
					return
				}
				svc.Swap(rebuilt)
			})
			if err != nil {
				slog.Error("watch failed", "err", err)
			}
		}()
	}

	r := chi.NewRouter()
	svc.Routes(r)

	srv := &http.Server{
		Addr:         flagHTTPAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	slog.Info("listening", "addr", flagHTTPAddr, "dir", flagDir, "watch", flagWatch)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func buildIndex(ctx context.Context, dir string, workers int) (*searchindex.Collection, error) {
	start := time.Now()
	songs, err := scanner.Scan(ctx, dir, workers)
	if err != nil {
		return nil, err
	}
	coll := searchindex.Build(songs)
	slog.Info("index built", "songs", len(songs), "elapsed", time.Since(start))
	return coll, nil
}
