// Command domalign aligns elements inside live Chrome pages.
//
// Usage:
//
//	domalign -config domalign.yaml                             # apply all configured pages
//	domalign -url https://example.com -target "#hero" \
//	         -mover "#badge" -pos tlr -x 5 -y -3               # one-shot alignment
//	domalign -config domalign.yaml -serve :8080                # HTTP API
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/domalign"
)

func main() {
	configPath := flag.String("config", "", "path to domalign.yaml config file")
	serveAddr := flag.String("serve", "", "serve the HTTP API on this address")
	singleURL := flag.String("url", "", "one-shot: page URL")
	target := flag.String("target", "", "one-shot: target CSS selector")
	movers := flag.String("mover", "", "one-shot: mover CSS selectors, comma-separated")
	pos := flag.String("pos", "c", "one-shot: position code (0-4 letters from t,b,c,m,l,r)")
	offX := flag.Int("x", 0, "one-shot: horizontal offset in px")
	offY := flag.Int("y", 0, "one-shot: vertical offset in px")
	reparent := flag.Bool("reparent", false, "one-shot: move movers to document.body first")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := oneShot{
		url:      *singleURL,
		target:   *target,
		movers:   splitSelectors(*movers),
		position: *pos,
		offsetX:  float64(*offX),
		offsetY:  float64(*offY),
		reparent: *reparent,
	}

	if err := run(ctx, logger, *configPath, *serveAddr, opts); err != nil {
		logger.Error("domalign: fatal", "error", err)
		os.Exit(1)
	}
}

type oneShot struct {
	url, target, position string
	movers                []string
	offsetX, offsetY      float64
	reparent              bool
}

func run(ctx context.Context, logger *slog.Logger, configPath, serveAddr string, one oneShot) error {
	cfg := &domalign.Config{}
	if configPath != "" {
		loaded, err := domalign.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg.ApplyDefaults()
	}

	var sinks []domalign.Sink
	for _, sc := range cfg.Sinks {
		switch sc.Type {
		case "stdout":
			sinks = append(sinks, domalign.NewStdoutSink(nil))
		case "webhook":
			sinks = append(sinks, domalign.NewWebhookSink(sc.URL, logger))
		default:
			logger.Warn("domalign: unknown sink type", "type", sc.Type)
		}
	}
	if len(sinks) == 0 {
		sinks = append(sinks, domalign.NewStdoutSink(nil))
	}

	a := domalign.New(cfg, logger, sinks...)
	if err := a.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer a.Stop()

	switch {
	case serveAddr != "":
		return serve(ctx, logger, a, serveAddr)
	case one.url != "":
		return runOne(ctx, a, one)
	case configPath != "":
		return a.RunAll(ctx)
	}

	fmt.Fprintln(os.Stderr, "usage: domalign -config <file> | -url <url> -target <sel> -mover <sel> | -serve <addr>")
	os.Exit(1)
	return nil
}

func runOne(ctx context.Context, a *domalign.Aligner, one oneShot) error {
	if one.target == "" || len(one.movers) == 0 {
		return fmt.Errorf("one-shot mode requires -target and -mover")
	}

	_, err := a.AlignPage(ctx, domalign.PageConfig{
		ID:  "oneshot",
		URL: one.url,
		Rules: []domalign.Rule{{
			Target:         one.target,
			Movers:         one.movers,
			Position:       one.position,
			OffsetX:        one.offsetX,
			OffsetY:        one.offsetY,
			ReparentToRoot: one.reparent,
		}},
	})
	return err
}

func serve(ctx context.Context, logger *slog.Logger, a *domalign.Aligner, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      a.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("domalign: serving HTTP API", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

func splitSelectors(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
