package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	DataDir  string `env:"DATA_DIR,required,notEmpty"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`

	BanAPIURL string `env:"BAN_API_URL"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4.1-nano"`

	PricePer1MInputUSD  float64 `env:"PRICE_PER_1M_INPUT_USD" envDefault:"0.1"`
	PricePer1MOutputUSD float64 `env:"PRICE_PER_1M_OUTPUT_USD" envDefault:"0.4"`

	CooldownSeconds      int64 `env:"COOLDOWN_SECONDS" envDefault:"43200"`
	SnapshotIntervalMins int   `env:"SNAPSHOT_INTERVAL_MINUTES" envDefault:"0"`

	SeedUserName string `env:"SEED_USER_NAME"`
	SeedUserKey  string `env:"SEED_USER_KEY"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
