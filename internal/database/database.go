package database

import (
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenDB initializes and returns the primary connection pool.
// The DSN comes from the DB_DSN environment variable.
func OpenDB() (*sql.DB, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		// FALLBACK: local development database.
		dsn = "root:root@tcp(127.0.0.1:3306)/sellquic?parseTime=true"
	}
	return OpenDBWithDSN(dsn)
}

// OpenDBWithDSN creates and configures a connection pool from any DSN.
func OpenDBWithDSN(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Ping to verify the connection before handing the pool out.
	if err := db.Ping(); err != nil {
		log.Printf("Error connecting to database: %v", err)
		return nil, err
	}

	log.Println("Database connection pool established successfully")
	return db, nil
}
