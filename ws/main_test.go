package ws

import (
	"os"
	"testing"

	"privdm_backend/internal/config"
	"privdm_backend/internal/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("SERVER_ENV", "test")
	os.Setenv("JWT_SECRET", "unit_test_secret_key_12345")
	config.LoadConfig()
	logger.Init("test")
	os.Exit(m.Run())
}
