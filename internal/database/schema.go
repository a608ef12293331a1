package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL applied at startup. Statements are idempotent so
// the server can be restarted against an existing database.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username      VARCHAR(64)  NOT NULL,
		email         VARCHAR(255) NOT NULL,
		mobile_number VARCHAR(32)  NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          ENUM('CUSTOMER','ADMIN') NOT NULL DEFAULT 'CUSTOMER',
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_user (user_id),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		owner_id       BIGINT UNSIGNED NOT NULL,
		owner_username VARCHAR(64)  NOT NULL,
		mobile_number  VARCHAR(32)  NOT NULL,
		service_type   VARCHAR(64)  NOT NULL,
		vehicle_type   VARCHAR(32)  NOT NULL,
		vehicle_model  VARCHAR(255) NOT NULL,
		date           DATE         NOT NULL,
		time_slot      VARCHAR(16)  NOT NULL,
		description    TEXT         NULL,
		status         ENUM('Pending','Confirmed','Completed','Cancelled') NOT NULL DEFAULT 'Pending',
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_bookings_owner (owner_id, created_at),
		KEY idx_bookings_status (status),
		CONSTRAINT fk_bookings_owner FOREIGN KEY (owner_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application tables when they do not exist
// yet. It is run once at startup before the server begins serving.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
