package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver
)

// InitDB initializes the database connection. It takes the database path as input.
func InitDB(dbPath string) (*sql.DB, error) {
	// Ensure the directory for the database file exists.
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open the SQLite database. It will be created if it doesn't exist.
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; a single pooled connection avoids
	// SQLITE_BUSY errors under concurrent command handlers.
	db.SetMaxOpenConns(1)

	// Ping the database to verify the connection.
	if err = db.Ping(); err != nil {
		db.Close() // Close the connection if ping fails
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close() // Close the connection if migration fails
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Successfully connected to the database at", dbPath)
	return db, nil
}

// migrate creates the database schema.
func migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			discord_id TEXT PRIMARY KEY,
			email TEXT UNIQUE,
			confirmation_code TEXT UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS config (
			guild_id TEXT PRIMARY KEY,
			verified_role TEXT,
			admin_role TEXT,
			logging_channel TEXT,
			verification_logging_channel TEXT,
			confession_channel TEXT,
			confession_approval_channel TEXT,
			pin_reaction_threshold INTEGER NOT NULL DEFAULT 4,
			max_spendable_freudpoints INTEGER NOT NULL DEFAULT 5 CHECK (max_spendable_freudpoints >= 0),
			smtp_user TEXT,
			smtp_password TEXT,
			email_subject TEXT NOT NULL DEFAULT 'FreudBot verification code',
			email_body TEXT NOT NULL DEFAULT 'Your verification code is {code}',
			verify_email_message TEXT NOT NULL DEFAULT 'Click the button to verify your email to gain access to {guild_name}',
			new_email_message TEXT NOT NULL DEFAULT 'Your email has been updated from ''{old}'' to ''{new}'' and a new code has been sent to ''{new}''',
			invalid_email_message TEXT NOT NULL DEFAULT '''{email}'' does not look like a valid email, please try again',
			duplicate_email_message TEXT NOT NULL DEFAULT '''{email}'' is already in use',
			verify_code_message TEXT NOT NULL DEFAULT 'A verification code was sent to {email}, use /verify code to submit it',
			invalid_code_message TEXT NOT NULL DEFAULT '''{code}'' is not a valid code',
			already_verified_message TEXT NOT NULL DEFAULT 'You are already verified',
			welcome_message TEXT NOT NULL DEFAULT 'Welcome to {guild_name}'
		);`,
		`CREATE TABLE IF NOT EXISTS profile_statistics (
			profile_discord_id TEXT NOT NULL REFERENCES profile (discord_id),
			config_guild_id TEXT NOT NULL REFERENCES config (guild_id),
			freudpoints INTEGER NOT NULL DEFAULT 0 CHECK (freudpoints >= 0),
			spendable_freudpoints INTEGER NOT NULL DEFAULT 1 CHECK (spendable_freudpoints >= 0),
			confession_exposed_count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (profile_discord_id, config_guild_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_statistics_guild ON profile_statistics (config_guild_id);`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
