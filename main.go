package main

import (
	"context"
	"embed"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/proxy"

	"github.com/mivanic/redscan/cache"
	"github.com/mivanic/redscan/config"
	"github.com/mivanic/redscan/data"
	"github.com/mivanic/redscan/data/repos"
	"github.com/mivanic/redscan/handlers"
	"github.com/mivanic/redscan/sources"
)

var SessionContextKey = "session"

//go:embed data/migrations/*.sql
var embedMigrations embed.FS

func main() {
	config.LoadConfig()

	opts := slog.HandlerOptions{Level: config.Config.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts))
	slog.SetDefault(logger)

	db, err := sqlx.Connect("postgres", config.Config.PostgresURL)
	if err != nil {
		slog.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	if err := data.RunMigrations(db.DB, embedMigrations); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(config.Config.RedisURL)
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)

	client, err := httpClient(config.Config.ProxyURL)
	if err != nil {
		slog.Error("failed to create http client", "error", err)
		os.Exit(1)
	}

	searchRepo := repos.NewSearchRepo(db)
	postRepo := repos.NewPostRepo(db)
	resultCache := cache.NewResultCache(redisClient, time.Duration(config.Config.ResultTTLMinutes)*time.Minute)

	redditClient := sources.NewClient(client, config.Config.RedditBaseURL, config.Config.UserAgent)
	scanner := sources.NewScanner(logger, redditClient, config.Config.CommentScanLimit, config.Config.ScanConcurrency)

	search := handlers.NewSearchHandler(scanner, resultCache, searchRepo, postRepo)
	results := handlers.NewResultHandler(resultCache)
	history := handlers.NewHistoryHandler(searchRepo, postRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	janitor := NewJanitor(searchRepo, time.Duration(config.Config.HistoryRetentionDays)*24*time.Hour)
	janitor.Start(ctx)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /search", session(search.RunSearch))

	mux.HandleFunc("GET /results", session(results.GetResults))
	mux.HandleFunc("POST /results/filter", session(results.FilterResults))
	mux.HandleFunc("DELETE /results", session(results.ClearResults))
	mux.HandleFunc("GET /results/stats", session(results.GetStats))
	mux.HandleFunc("GET /results/export", session(results.Export))

	mux.HandleFunc("GET /history", session(history.GetHistory))
	mux.HandleFunc("GET /history/{id}/posts", session(history.GetHistoryPosts))

	mux.HandleFunc("GET /health", public(handlers.GetHealth))
	mux.Handle("GET /metrics", promhttp.Handler())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
		if err := db.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
		if err := redisClient.Close(); err != nil {
			slog.Error("failed to close redis connection", "error", err)
		}
		os.Exit(0)
	}()

	slog.Info("Starting server", "addr", config.Config.ListenAddr)
	err = http.ListenAndServe(config.Config.ListenAddr, withCORS(mux))
	if err != nil {
		slog.Error("failed to start server", "error", err)
	}
}

func httpClient(proxyURL string) (*http.Client, error) {
	client := &http.Client{Timeout: 15 * time.Second}

	if proxyURL == "" {
		return client, nil
	}

	parsedURL, err := url.Parse(proxyURL)
	if err != nil {
		return nil, err
	}
	if parsedURL.Scheme != "socks5" {
		return client, nil
	}

	// SOCKS5 proxy with authentication
	var auth *proxy.Auth
	if parsedURL.User != nil {
		password, _ := parsedURL.User.Password()
		auth = &proxy.Auth{
			User:     parsedURL.User.Username(),
			Password: password,
		}
	}

	dialer, err := proxy.SOCKS5("tcp", parsedURL.Host, auth, proxy.Direct)
	if err != nil {
		return nil, err
	}

	client.Transport = &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		},
	}
	slog.Info("using SOCKS5 proxy", "proxy", parsedURL.Host)

	return client, nil
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Session-Token")
		w.Header().Set("Access-Control-Expose-Headers", "X-Session-Token, Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// session resolves the caller's session token, minting one when the header
// is absent or malformed, and echoes it back so the UI can hold on to it.
func session(handler handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Session-Token")
		sessionID, err := uuid.Parse(token)
		if token == "" || err != nil {
			sessionID = uuid.New()
		}

		w.Header().Set("X-Session-Token", sessionID.String())
		ctx := context.WithValue(r.Context(), SessionContextKey, sessionID)

		public(handler)(w, r.WithContext(ctx))
	}
}

func public(handler handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts := time.Now()
		res := handler(w, r)
		elapsedMs := time.Since(ts).Milliseconds()
		slog.Debug("req", "method", r.Method, "path", r.URL.Path, "code", res.Code, "elapsed", elapsedMs)
		writeResult(w, res)
	}
}

func writeResult(w http.ResponseWriter, res handlers.Result) {
	// Code 0 means the handler streamed the response itself.
	if res.Code == 0 {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.Code)
	if res.Body != nil {
		if err := json.NewEncoder(w).Encode(res.Body); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
	if res.Code == http.StatusInternalServerError {
		slog.Error("internal error", "error", res.Error.Error())
	}
}
