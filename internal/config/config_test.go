package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"pokerledger-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("PL_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("PL_SHARETOKEN_PRIVATE_KEY", "private2.key")
	defer clear2()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal("postgres://postgres@testhost:5432/pokerledger?sslmode=disable", cfg.PGDSN)
	a.Equal("public.pem", cfg.ShareToken.PublicKey)
	a.Equal("private2.key", cfg.ShareToken.PrivateKey)

	// ensure that it's only loaded once
	_ = os.Setenv("PL_SHARETOKEN_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.ShareToken.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.ShareToken.PrivateKey)
}

func TestDefaults(t *testing.T) {
	clear1 := util.SetEnv("PL_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, "./sql", cfg.MigrationsPath)
	assert.Equal(t, "info", cfg.Log.Level)
}
