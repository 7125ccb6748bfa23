package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"impostorparty/internal/config"
	"impostorparty/internal/game"
	"impostorparty/internal/handlers"
	"impostorparty/internal/leaderboard"
	localMiddleware "impostorparty/internal/middleware"
	"impostorparty/internal/netinfo"
)

const releaseVersion = "0.1.0"

func main() {
	// Optional .env for local development; absence is fine.
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}

	cobra.CheckErr(newCmd().Execute())
}

func newCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "impostorparty",
		Short:         "A small impostor party-game server: join a lobby, find the impostor, climb the leaderboard.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	fs.StringVarP(&configPath, "config", "c", "", "path to server.yaml (env: IMPOSTORPARTY_CONFIG)")
	if env := os.Getenv("IMPOSTORPARTY_CONFIG"); env != "" && configPath == "" {
		configPath = env
	}

	return cmd
}

func run(ctx context.Context, cfg *config.ServerConfig) error {
	board, err := leaderboard.Open(cfg.Game.LeaderboardFile)
	if err != nil {
		return err
	}

	words := game.WordSource{
		WordsFile:      cfg.Game.WordsFile,
		SpicyWordsFile: cfg.Game.SpicyWordsFile,
	}
	session := game.NewSession(
		cfg.SessionSettings(),
		words,
		board,
		game.WordMode(cfg.Game.WordMode),
		cfg.Game.ControlUsers,
		cfg.Game.ControlPassword,
	)

	h := handlers.New(session, board, cfg)

	opts := &handlers.RouterOptions{}
	if cfg.Server.EnableMetrics {
		metrics := localMiddleware.NewMetrics("impostorparty")
		opts.Metrics = metrics
		go func() {
			log.Printf("metrics listening on :%s", cfg.Server.MetricsPort)
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(":"+cfg.Server.MetricsPort, mux); err != nil {
				log.Printf("metrics server failed: %v", err)
			}
		}()
	}
	router := handlers.SetupRouter(h, cfg, opts)

	// Background presence sweep, serialized against handlers through the
	// session mutex.
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go game.NewSweeper(session).Run(sweepCtx)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout, // 0 for SSE support
	}

	go func() {
		log.Printf("starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start: ", err)
		}
	}()

	// Best-effort address discovery for the shareable join link and QR.
	if !cfg.Server.SkipIPDiscovery {
		localIP := netinfo.LocalIP()
		publicIP := netinfo.PublicIP(ctx)
		h.SetJoinURL("http://" + publicIP + ":" + cfg.Server.Port)
		log.Printf("local address:  http://%s:%s", localIP, cfg.Server.Port)
		log.Printf("public address: http://%s:%s", publicIP, cfg.Server.Port)
	}
	log.Printf("presence sweep active (timeout %s, interval %s)", cfg.Game.HeartbeatTimeout, cfg.Game.SweepInterval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	log.Println("shutting down server...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Println("server gracefully stopped")
	return nil
}
