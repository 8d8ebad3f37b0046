package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	AllowedOrigins []string
	Debug          bool
}

func Load() *Config {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	port := 8080
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	origins := []string{"*"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	debug, _ := strconv.ParseBool(os.Getenv("DEBUG"))

	return &Config{
		Port:           port,
		AllowedOrigins: origins,
		Debug:          debug,
	}
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
