package warehouse

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/snowflakedb/gosnowflake"

	"github.com/rickgao/tickerload/internal/config"
)

// BuildConnString builds a PostgreSQL connection string from config.
func BuildConnString(cfg config.WarehouseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	// Userinfo escaping handles special characters in passwords
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else {
		u.User = url.User(cfg.User)
	}

	return u.String()
}

// BuildSnowflakeDSN builds a gosnowflake DSN from config.
func BuildSnowflakeDSN(cfg config.WarehouseConfig) (string, error) {
	dsn, err := gosnowflake.DSN(snowflakeConfig(cfg))
	if err != nil {
		return "", fmt.Errorf("build snowflake dsn: %w", err)
	}
	return dsn, nil
}
