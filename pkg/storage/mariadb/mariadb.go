package mariadb

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/hmsdev/hms-backend/config"
)

var (
	db   *sql.DB
	once sync.Once
)

// Connect opens the MariaDB connection pool. Credentials come from the
// environment via config. A failure here is unrecoverable at boot.
func Connect() *sql.DB {
	once.Do(func() {
		cfg := config.LoadConfig()
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

		var err error
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open database connection")
		}

		if err = db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("Failed to ping database")
		}

		log.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).
			Msg("Connected to MariaDB")
	})

	return db
}

// GetDB returns the already established connection pool.
func GetDB() *sql.DB {
	return db
}
