// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ahmadnk31/5g-leuven/internal/adapters/db"
	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_store",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_store",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	ctx := context.Background()
	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		SourcePath: "../../migrations",
		TableName:  "schema_migrations",
		SchemaName: "public",
	}

	err = db.RunMigrationsWithRetry(ctx, migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_store",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			PoolSize: 10,
		},
		Cart: config.CartConfig{
			TTL:           time.Hour,
			SweepInterval: time.Hour,
			MaxLineItems:  100,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestVariant creates a test catalog variant with stock
func CreateTestVariant(overrides ...func(*domain.Variant)) *domain.Variant {
	productID := uuid.New()
	variantID := uuid.New()
	price := decimal.NewFromFloat(699.00)

	variant := &domain.Variant{
		ID:         variantID,
		ProductID:  productID,
		Name:       "Pixel 9 128GB Obsidian",
		SKU:        "PX9-128-OBS",
		Price:      &price,
		SizeLabel:  "128GB",
		ColorLabel: "Obsidian",
		ImageURLs:  []string{"https://cdn.example.com/px9-obs.jpg"},
		Product: &domain.Product{
			ID:         productID,
			Name:       "Pixel 9",
			Price:      decimal.NewFromFloat(749.00),
			CategoryID: uuid.New(),
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		},
		Stock: []domain.StockRow{
			{VariantID: variantID, Location: "leuven", Quantity: 5},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for _, override := range overrides {
		override(variant)
	}

	return variant
}

// CreateTestLineItem creates a test cart line item
func CreateTestLineItem(overrides ...func(*domain.LineItem)) domain.LineItem {
	item := domain.LineItem{
		VariantID: uuid.New(),
		Quantity:  1,
		Snapshot: domain.VariantSnapshot{
			VariantName: "Pixel 9 128GB Obsidian",
			SKU:         "PX9-128-OBS",
			ProductID:   uuid.New(),
			ProductName: "Pixel 9",
			UnitPrice:   decimal.NewFromFloat(699.00),
			SizeLabel:   "128GB",
			ColorLabel:  "Obsidian",
		},
		AddedAt: time.Now(),
	}

	for _, override := range overrides {
		override(&item)
	}

	return item
}

// CreateTestStockRows creates stock rows summing to the given quantity,
// split across two locations when possible
func CreateTestStockRows(variantID uuid.UUID, total int) []domain.StockRow {
	if total <= 1 {
		return []domain.StockRow{
			{VariantID: variantID, Location: "leuven", Quantity: total},
		}
	}
	half := total / 2
	return []domain.StockRow{
		{VariantID: variantID, Location: "leuven", Quantity: half},
		{VariantID: variantID, Location: "warehouse", Quantity: total - half},
	}
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	tables := []string{
		"stock",
		"images",
		"product_variants",
		"products",
		"categories",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}

// SeedTestVariant inserts a variant with its product and stock rows
func SeedTestVariant(t *testing.T, pool *pgxpool.Pool, variant *domain.Variant) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO products (id, name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, variant.Product.ID, variant.Product.Name, variant.Product.Description,
		variant.Product.Price, variant.Product.CreatedAt, variant.Product.UpdatedAt)
	require.NoError(t, err, "Failed to seed product")

	_, err = pool.Exec(ctx, `
		INSERT INTO product_variants (id, product_id, name, sku, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, variant.ID, variant.ProductID, variant.Name, variant.SKU, variant.Price,
		variant.CreatedAt, variant.UpdatedAt)
	require.NoError(t, err, "Failed to seed variant")

	for _, row := range variant.Stock {
		_, err = pool.Exec(ctx, `
			INSERT INTO stock (variant_id, location, quantity)
			VALUES ($1, $2, $3)
		`, row.VariantID, row.Location, row.Quantity)
		require.NoError(t, err, "Failed to seed stock row")
	}
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}
