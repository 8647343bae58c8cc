package main

import (
	"github.com/sherifabdlnaby/configuro"
)

// Config values can be set using either environment variables with `CONFIG_`
// prefix or config.yml file placed in working directory.
// See https://github.com/sherifabdlnaby/configuro.
type Config struct {
	Logging Logging
	Server  Server
	Account Account
}

type Logging struct {
	Level  string
	Format string
}

type Server struct {
	Address  string
	APIToken string
}

// Account configures the demo account seeded at startup. InitialDeposit
// is a decimal string; empty or "0" leaves the account unfunded.
type Account struct {
	OwnerID        string
	InitialDeposit string
}

func readConfig() (*Config, error) {
	loader, err := configuro.NewConfig()
	if err != nil {
		return nil, err
	}

	// Default config values.
	config := &Config{
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Server: Server{
			Address:  ":8080",
			APIToken: "dev-token",
		},
		Account: Account{
			OwnerID:        "demo",
			InitialDeposit: "10000",
		},
	}

	err = loader.Load(config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
