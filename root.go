package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"widviz/api"
	"widviz/config"
	"widviz/logging"
	"widviz/mail"
	"widviz/shared/kafka"
	"widviz/store"
	"widviz/transcript"
	"widviz/worker"
)

func newRootCommand() *cobra.Command {
	var cfg config.Config

	rootCmd := &cobra.Command{
		Use:           "widviz",
		Short:         "Turn YouTube videos into transcripts, summaries and quizzes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newServeCommand(&cfg))
	rootCmd.AddCommand(newWorkerCommand(&cfg))
	rootCmd.AddCommand(newTranscribeCommand(&cfg))
	rootCmd.AddCommand(newQuizCommand(&cfg))
	return rootCmd
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newServeCommand(cfg *config.Config) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			if port == "" {
				port = cfg.Port
			}
			a, err := newApp(ctx, *cfg)
			if err != nil {
				return err
			}

			db, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			janitor, err := transcript.NewJanitor(cfg.AudioDir, cfg.SweepSchedule, cfg.AudioMaxAge)
			if err != nil {
				return fmt.Errorf("audio janitor: %w", err)
			}
			janitor.Start()
			defer janitor.Stop()

			deps := api.Deps{
				Study:    a.study,
				Accounts: db,
				Notes:    db,
				Goals:    db,
				Mailer:   mail.FromConfig(ctx, cfg.GmailCredentialsFile, cfg.GmailTokenFile),
				Health:   db.Ping,
			}
			if a.youtube != nil {
				deps.Search = a.youtube
			}

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           api.NewRouter(deps),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				slog.Info("starting API server", "addr", srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			slog.Info("shutting down API server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (defaults to PORT or 5000)")
	return cmd
}

func newWorkerCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Process study requests from Kafka",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			a, err := newApp(ctx, *cfg)
			if err != nil {
				return err
			}

			publisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaResultTopic)
			if err != nil {
				return fmt.Errorf("kafka producer: %w", err)
			}
			defer publisher.Close()

			w := worker.New(a.study, publisher)
			consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
				Brokers: cfg.KafkaBrokers,
				Topic:   cfg.KafkaRequestTopic,
				GroupID: cfg.KafkaGroupID,
				Handler: w.Handler(),
			})
			if err != nil {
				return fmt.Errorf("kafka consumer: %w", err)
			}
			defer consumer.Close()

			janitor, err := transcript.NewJanitor(cfg.AudioDir, cfg.SweepSchedule, cfg.AudioMaxAge)
			if err != nil {
				return fmt.Errorf("audio janitor: %w", err)
			}
			janitor.Start()
			defer janitor.Stop()

			if err := consumer.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			slog.Info("worker shutting down")
			return nil
		},
	}
}

func newTranscribeCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <video>",
		Short: "Print the transcript of a video ID or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			a, err := newApp(ctx, *cfg)
			if err != nil {
				return err
			}
			id, t, err := a.study.Transcribe(ctx, args[0])
			if err != nil {
				return err
			}
			slog.Info("transcript ready", "video_id", id, "source", t.Source)
			fmt.Fprintln(cmd.OutOrStdout(), t.Text)
			return nil
		},
	}
}

func newQuizCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz <video>",
		Short: "Generate a multiple-choice quiz for a video ID or URL as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			a, err := newApp(ctx, *cfg)
			if err != nil {
				return err
			}
			_, t, err := a.study.Transcribe(ctx, args[0])
			if err != nil {
				return err
			}
			questions, err := a.study.Quiz(ctx, t.Text)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(questions)
		},
	}
}
