package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	URL            string `split_words:"true" default:"postgres://localhost:5432/crednest"`
	MaxConns       int32  `split_words:"true" default:"10"`
	ConnectTimeout int    `split_words:"true" default:"5"`
}

func (c *Config) New(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(c.URL)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = c.MaxConns
	cfg.ConnConfig.ConnectTimeout = time.Duration(c.ConnectTimeout) * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
