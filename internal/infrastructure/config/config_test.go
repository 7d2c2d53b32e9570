package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"STOREFRONT_APP_NAME":           os.Getenv("STOREFRONT_APP_NAME"),
		"STOREFRONT_APP_ENV":            os.Getenv("STOREFRONT_APP_ENV"),
		"STOREFRONT_APP_PORT":           os.Getenv("STOREFRONT_APP_PORT"),
		"STOREFRONT_DATABASE_HOST":      os.Getenv("STOREFRONT_DATABASE_HOST"),
		"STOREFRONT_DATABASE_PASSWORD":  os.Getenv("STOREFRONT_DATABASE_PASSWORD"),
		"STOREFRONT_DATABASE_SSLMODE":   os.Getenv("STOREFRONT_DATABASE_SSLMODE"),
		"STOREFRONT_JWT_SECRET":         os.Getenv("STOREFRONT_JWT_SECRET"),
		"STOREFRONT_STORAGE_PROVIDER":   os.Getenv("STOREFRONT_STORAGE_PROVIDER"),
		"STOREFRONT_STORAGE_BUCKET":     os.Getenv("STOREFRONT_STORAGE_BUCKET"),
		"STOREFRONT_CART_BACKEND":       os.Getenv("STOREFRONT_CART_BACKEND"),
		"STOREFRONT_PAYMENT_SECRET_KEY": os.Getenv("STOREFRONT_PAYMENT_SECRET_KEY"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storefront", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "storefront", cfg.Database.DBName)
		assert.Equal(t, "local", cfg.Storage.Provider)
		assert.Equal(t, "./uploads", cfg.Storage.LocalDir)
		assert.Equal(t, "redis", cfg.Cart.Backend)
		assert.Equal(t, "https://api.paystack.co", cfg.Payment.BaseURL)
	})

	t.Run("loads values from environment variables", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_APP_NAME", "test-store")
		os.Setenv("STOREFRONT_APP_PORT", "9000")
		os.Setenv("STOREFRONT_DATABASE_HOST", "testdb.local")
		os.Setenv("STOREFRONT_CART_BACKEND", "memory")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-store", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, "memory", cfg.Cart.Backend)
	})

	t.Run("s3 provider requires a bucket", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_STORAGE_PROVIDER", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")
	})

	t.Run("unknown cart backend rejected", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_CART_BACKEND", "carrier-pigeon")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cart.backend")
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_APP_ENV", "production")
		os.Setenv("STOREFRONT_DATABASE_PASSWORD", "supersecret")
		os.Setenv("STOREFRONT_DATABASE_SSLMODE", "require")
		os.Setenv("STOREFRONT_PAYMENT_SECRET_KEY", "sk_live_xxx")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production accepts complete configuration", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_APP_ENV", "production")
		os.Setenv("STOREFRONT_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("STOREFRONT_DATABASE_PASSWORD", "supersecret")
		os.Setenv("STOREFRONT_DATABASE_SSLMODE", "require")
		os.Setenv("STOREFRONT_PAYMENT_SECRET_KEY", "sk_live_xxx")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "store",
		Password: "p@ss/word",
		DBName:   "storefront",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())
}
