package auth

import "time"

// User is an operator account for the sync console. Passwords are stored
// only as bcrypt hashes.
type User struct {
	ID           string    `json:"user_id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
