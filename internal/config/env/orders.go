package envconfig

import "github.com/caarlos0/env/v11"

type ordersEnv struct {
	// Letting admins move orders out of COMPLETED/CANCELLED is disabled
	// unless a deployment explicitly opts in.
	AllowTerminalOverride bool `env:"ORDERS_ALLOW_TERMINAL_OVERRIDE" envDefault:"false"`
}

type orders struct {
	raw ordersEnv
}

func NewOrdersConfig() (*orders, error) {
	var raw ordersEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &orders{raw: raw}, nil
}

func (cfg *orders) AllowTerminalOverride() bool { return cfg.raw.AllowTerminalOverride }
