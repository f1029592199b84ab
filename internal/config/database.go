package config

import (
	"author-registry/internal/infrastructure/database"
)

// DBConfig converts the database section into what the infrastructure layer connects with.
func (c *Config) DBConfig() *database.DBConfig {
	return &database.DBConfig{
		URL:            c.Database.URL,
		MaxRetries:     c.Database.MaxRetries,
		RetryDelay:     c.Database.RetryDelay,
		ConnectTimeout: c.Database.ConnectTimeout,
	}
}
