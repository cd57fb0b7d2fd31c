package main

import (
	"database/sql"
	"ev-route-service/internal/adapters/cache"
	"ev-route-service/internal/adapters/repositories"
	"ev-route-service/internal/adapters/routing"
	"ev-route-service/internal/api"
	"ev-route-service/internal/config"
	platformdb "ev-route-service/internal/platform/db"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	stationsPath := config.Get("STATIONS_SEED_PATH", "data/seeds/stations.json")
	landmarksPath := config.Get("LANDMARKS_PATH", "data/seeds/landmarks.json")
	port := config.Get("PORT", "8080")

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, stationsPath); err != nil {
		log.Fatal(err)
	}

	landmarks, err := repositories.LoadLandmarksFromJSON(landmarksPath)
	if err != nil {
		log.Fatal(err)
	}

	geocodeCache, err := selectGeocodeCache(db, dbPath)
	if err != nil {
		log.Fatal(err)
	}

	ors, err := routing.NewORSClient(orsKey, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteStationRepository(db)
	planner := services.NewTripPlanner(ors, ors, repo, landmarks, services.DefaultPlannerConfig())
	router := api.NewRouter(repo, planner)

	// Timeouts are tuned for cold-cache trip planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// selectGeocodeCache picks the forward geocode cache backend: Redis when
// REDIS_ADDR is set, a shared Postgres table when DATABASE_URL is set,
// otherwise a table in the local SQLite file.
func selectGeocodeCache(sqliteDB *sql.DB, dbPath string) (ports.GeocodeCache, error) {
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		log.Printf("geocode cache backend=redis addr=%s", addr)
		return cache.NewRedisGeocodeCache(client), nil
	}

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := platformdb.Open(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("select geocode cache: %w", err)
		}
		log.Printf("geocode cache backend=postgres")
		return cache.NewSQLGeocodeCache(pg), nil
	}

	log.Printf("geocode cache backend=sqlite path=%s", dbPath)
	return cache.NewSqliteGeocodeCache(sqliteDB), nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, stationsPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedStationsFromJSON(db, stationsPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
