package llm

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Env carries the credentials read from the process environment.
type Env struct {
	APIKey  string `env:"LLM_API_KEY,required"`
	BaseURL string `env:"LLM_BASE_URL"`
}

// LoadEnv reads credentials from the process environment.
func LoadEnv(ctx context.Context) (Env, error) {
	return loadEnv(ctx, envconfig.OsLookuper())
}

func loadEnv(ctx context.Context, lookuper envconfig.Lookuper) (Env, error) {
	var env Env
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookuper,
	}); err != nil {
		return Env{}, fmt.Errorf("load llm environment: %w", err)
	}
	return env, nil
}
