package paystack

import "time"

type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	SecretKey   string        `mapstructure:"secret_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Currency    string        `mapstructure:"currency"`
	CallbackURL string        `mapstructure:"callback_url"`
}
