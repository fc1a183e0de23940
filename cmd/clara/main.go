package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-go-golems/clara/pkg/config"
	"github.com/go-go-golems/clara/pkg/events"
	"github.com/go-go-golems/clara/pkg/health"
	"github.com/go-go-golems/clara/pkg/places"
	"github.com/go-go-golems/clara/pkg/session"
	"github.com/go-go-golems/clara/pkg/telephony"
	"github.com/go-go-golems/clara/pkg/tools"
	"github.com/go-go-golems/clara/pkg/transfer"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clara",
		Short: "Voice restaurant concierge agent",
	}
	rootCmd.AddCommand(newRunCommand(), newToolsCommand())
	cobra.CheckErr(rootCmd.Execute())
}

func newRunCommand() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the agent with health endpoint and room intake",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			initLogging(cfg.LogLevel, pretty)
			return run(cfg)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Human-readable console logs")
	return cmd
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	placesClient := places.NewClient(cfg.PlacesAPIKey,
		places.WithBaseURL(cfg.PlacesBaseURL),
		places.WithAPIVersion(cfg.PlacesAPIVersion))
	roomClient := telephony.NewClient(cfg.TelephonyURL, cfg.TelephonyAPIKey, cfg.TelephonyAPISecret)
	orchestrator := transfer.NewOrchestrator(roomClient, cfg)
	toolbox := tools.NewToolbox(placesClient, roomClient, orchestrator)

	router, err := events.NewRouter()
	if err != nil {
		return err
	}
	defer func() {
		_ = router.Close()
	}()
	router.AddHandler("tool-event-log", events.LogEvents)

	manager := session.NewManager(
		toolbox,
		events.NewPublisher(router.Publisher),
		newRuntimeFactory(),
		session.DefaultRuntimeOptions(),
	)
	source := session.NewChannelSource(16)

	mux := http.NewServeMux()
	mux.Handle("/health", health.NewChecker().Handler())
	mux.HandleFunc("/rooms", roomIntakeHandler(source))
	server := &http.Server{Addr: cfg.HealthAddr, Handler: mux}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return router.Run(groupCtx)
	})

	group.Go(func() error {
		log.Info().Str("addr", cfg.HealthAddr).Msg("health server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	group.Go(func() error {
		log.Info().Msg("agent started")
		return manager.Run(groupCtx, source)
	})

	err = group.Wait()
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("shutting down")
		return nil
	}
	return err
}

// roomIntakeHandler accepts room dispatch requests from the transport layer.
func roomIntakeHandler(source *session.ChannelSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			Room string `json:"room"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Room == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if !source.Enqueue(body.Room) {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool schema surface exposed to the runtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Config{}
			rooms := telephony.NewClient("", "", "")
			toolbox := tools.NewToolbox(
				places.NewClient(""),
				rooms,
				transfer.NewOrchestrator(rooms, cfg),
			)
			defs := toolbox.RegistryFor("example-room").List()
			out, err := json.MarshalIndent(defs, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}
}

func initLogging(level string, pretty bool) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
