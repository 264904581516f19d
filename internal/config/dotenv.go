package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env.<APP_ENV>, .env.local and .env in that order of priority.
// godotenv.Load never overwrites variables that are already set, so the
// process environment always wins. Returns the files that were loaded.
func LoadDotEnv() []string {
	var candidates []string
	if env := os.Getenv("APP_ENV"); env != "" {
		candidates = append(candidates, ".env."+env)
	}
	candidates = append(candidates, ".env.local", ".env")

	var loaded []string
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}
