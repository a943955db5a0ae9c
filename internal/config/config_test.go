package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "fitzone")
	t.Setenv("DB_NAME", "fitzone")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.UseS3())
	assert.False(t, cfg.SMTPConfigured())
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"DB_USER", "DB_NAME", "JWT_SECRET"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "gym", DBSSLMode: "require",
	}
	assert.Equal(t, "host=db user=u password=p dbname=gym port=5433 sslmode=require", cfg.DSN())
}

func TestConfig_UseS3(t *testing.T) {
	cfg := &Config{AWSRegion: "eu-west-1", AWSAccessKey: "a", AWSSecretKey: "s"}
	assert.False(t, cfg.UseS3(), "bucket is required")

	cfg.S3Bucket = "uploads"
	assert.True(t, cfg.UseS3())
}
