package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/caknak/email_check_api/config"
	"github.com/caknak/email_check_api/models"
	"github.com/caknak/email_check_api/pkg/breach"
)

const shutdownTimeout = 10 * time.Second

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("WARN: Error loading .env file, using environment variables from system if set.")
	}

	app := &cli.App{
		Name:   "email_check_api",
		Usage:  "breach lookup proxy for the caKnak email checker",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:  "check",
				Usage: "look up one address and print the result as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
				},
				Action: check,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	app, err := NewApp(cfg)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := app.Server(cfg.Addr())
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("API server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func check(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	result, err := newChecker(cfg).CheckEmail(c.Context, c.String("email"))
	if err != nil {
		return checkError(err)
	}

	if result.Simulated {
		log.Println("WARN: breach registry unreachable, showing a simulated result.")
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(models.NewCheckEmailResponse(result))
}

// checkError rewords lookup errors for the terminal.
func checkError(err error) error {
	var upstreamErr *breach.UpstreamError
	switch {
	case errors.Is(err, breach.ErrInvalidInput):
		return cli.Exit("an email address is required", 2)
	case errors.Is(err, breach.ErrConfiguration):
		return cli.Exit("no API key configured (set HIBP_API_KEY)", 1)
	case errors.Is(err, breach.ErrRateLimited):
		return cli.Exit("rate limited by the breach registry, try again later", 1)
	case errors.As(err, &upstreamErr):
		return cli.Exit(fmt.Sprintf("breach registry answered %d", upstreamErr.StatusCode), 1)
	default:
		return err
	}
}
