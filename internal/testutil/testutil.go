// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/foodgram/foodgram/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 640640

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// migrationOrder lists migration basenames in apply order.
var migrationOrder = []string{
	"000001_users",
	"000002_catalog",
	"000003_recipes",
	"000004_interactions",
}

// ResetSchema drops and recreates the full schema for tests.
// Down migrations run in reverse order, then all ups.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for i := len(migrationOrder) - 1; i >= 0; i-- {
		if err := execMigration(ctx, pool, root, migrationOrder[i]+".down.sql"); err != nil {
			return err
		}
	}

	for _, name := range migrationOrder {
		if err := execMigration(ctx, pool, root, name+".up.sql"); err != nil {
			return err
		}
	}

	return nil
}

func execMigration(ctx context.Context, pool *pgxpool.Pool, root, filename string) error {
	sql, err := os.ReadFile(filepath.Join(root, "migrations", filename))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", filename, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply migration %s: %w", filename, err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a user model with unique email and username.
func NewTestUser(t testing.TB, prefix string) *model.User {
	t.Helper()
	nano := time.Now().UnixNano()
	return &model.User{
		Email:        fmt.Sprintf("%s-%d@example.com", prefix, nano),
		Username:     fmt.Sprintf("%s_%d", prefix, nano),
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: fmt.Sprintf("hash-%d", nano),
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestIngredient creates an ingredient with a unique name.
func NewTestIngredient(t testing.TB, prefix string) *model.Ingredient {
	t.Helper()
	return &model.Ingredient{
		Name:            fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()),
		MeasurementUnit: "г",
	}
}

// NewTestRecipe creates a recipe model owned by authorID.
func NewTestRecipe(t testing.TB, authorID int64, name string) *model.Recipe {
	t.Helper()
	return &model.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Text:        "Приготовить и подать.",
		CookingTime: 15,
		PubDate:     time.Now().UTC(),
	}
}
