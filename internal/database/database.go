package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const (
	connectRetries    = 10
	connectRetryDelay = 3 * time.Second
)

// OpenDB initializes and returns the MySQL connection pool.
// The DSN is read from the DB_DSN environment variable, with a
// local development fallback.
func OpenDB() (*sql.DB, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "admin:admin123@tcp(127.0.0.1:3306)/motorcycle_shop?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Configure the connection pool settings.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// The database container may still be starting when we boot, so we
	// ping with retries before giving up. Exhausting the retries is fatal
	// to the caller.
	var pingErr error
	for attempt := 1; attempt <= connectRetries; attempt++ {
		pingErr = db.Ping()
		if pingErr == nil {
			log.Println("Database connection pool established successfully")
			return db, nil
		}

		log.Printf("Database connection attempt %d/%d failed: %v", attempt, connectRetries, pingErr)
		if attempt < connectRetries {
			time.Sleep(connectRetryDelay)
		}
	}

	db.Close()
	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", connectRetries, pingErr)
}
