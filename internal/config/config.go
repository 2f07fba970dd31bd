package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Session SessionConfig
	Shop    ShopConfig
}

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type StoreConfig struct {
	Path string `env:"STORE_PATH" envDefault:"madagaskar.db"`
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET" envDefault:"super-secret-key"`
	Expiry time.Duration `env:"SESSION_EXPIRY" envDefault:"24h"`
}

// ShopConfig is the contact information shown to customers after checkout;
// orders are confirmed over a messaging app, not through the site.
type ShopConfig struct {
	Name         string `env:"SHOP_NAME" envDefault:"Мадагаскар"`
	ContactPhone string `env:"SHOP_CONTACT_PHONE" envDefault:"+380 95 607 16 03"`
	ViberLink    string `env:"SHOP_VIBER_LINK" envDefault:"viber://chat?number=0956071603"`
	TelegramLink string `env:"SHOP_TELEGRAM_LINK" envDefault:"https://t.me/+380956071603"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
