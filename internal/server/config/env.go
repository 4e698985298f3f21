package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/expensetracker/internal/flagx"
	"github.com/joho/godotenv"
)

// defaultEnvFile is read when no -env flag is given; its absence is not an error.
const defaultEnvFile = ".env"

// parseEnv overlays Config with environment variables. A dotenv file
// (the -env flag, or ./.env) is loaded first; variables already present in
// the process environment are never overwritten by it.
//
// Only variables that are set touch the config, so defaults survive.
// Malformed values (e.g. JWT_TTL=soon) panic, like the other loaders.
func parseEnv(config *Config) {
	if err := loadEnvFile(flagx.EnvFileFlag()); err != nil {
		panic(err)
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}

func loadEnvFile(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	err := godotenv.Load(defaultEnvFile)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
