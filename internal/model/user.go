package model

import "time"

// Role names stored in the users.role column and carried in the JWT
// "role" claim.  Customers create and cancel their own bookings;
// admins confirm, complete and view everything.
const (
    RoleCustomer = "CUSTOMER"
    RoleAdmin    = "ADMIN"
)

// User represents an application account as stored in the `users`
// table.  Customers and admins share the table and are told apart by
// the Role column.  The json tags are omitted because these structs
// are only used by the repository layer; handlers define separate
// response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name (stored lowercased).
//  Email        – contact email address.
//  MobileNumber – contact number, denormalized onto bookings for the
//                 admin table.
//  PasswordHash – bcrypt hashed password.
//  Role         – RoleCustomer or RoleAdmin.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username
    Email        string    // users.email
    MobileNumber string    // users.mobile_number
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its SHA-256
// hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
