package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/oncorag/oncology-assistant/internal/bootstrap"
	"github.com/oncorag/oncology-assistant/internal/config"
	"github.com/oncorag/oncology-assistant/internal/observability/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := logging.NewJSONLogger("oncology-assistant", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	if cfg.MetricsPort != "" {
		go serveMetrics(cfg.MetricsPort, app)
	}

	if len(os.Args) > 1 {
		answer(ctx, app, strings.Join(os.Args[1:], " "))
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Ask an oncology question (Ctrl+D to exit):")
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		answer(ctx, app, query)
		if ctx.Err() != nil {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}
}

func answer(ctx context.Context, app *bootstrap.App, query string) {
	queryCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	result := app.Answers.Generate(queryCtx, query)
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encode answer: %v", err)
	}
	fmt.Println(string(encoded))
}

func serveMetrics(port string, app *bootstrap.App) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.Metrics.Handler())
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Printf("metrics listener stopped: %v", err)
	}
}
