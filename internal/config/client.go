package config

import (
	"flag"
	"strings"
)

type Client struct {
	APIBaseURL string
	Username   string
}

// LoadClient reads the terminal client settings; -user overrides MOVIEMATCH_USER.
func LoadClient() *Client {
	configPath := flag.String("config", "", "path env file")
	user := flag.String("user", "", "username to swipe as")
	flag.Parse()

	loadEnvFile(*configPath)
	cfg := ClientFromEnv()
	if *user != "" {
		cfg.Username = *user
	}
	return cfg
}

func ClientFromEnv() *Client {
	return &Client{
		APIBaseURL: strings.TrimRight(getenv("API_BASE_URL", "http://localhost:8080/api"), "/"),
		Username:   getenv("MOVIEMATCH_USER", "demo"),
	}
}
