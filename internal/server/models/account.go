// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered user of the prediction service.
//
// Local accounts store a random salt and an argon2id verifier derived from
// the password; plaintext passwords are never persisted. Federated accounts
// store the identity provider's uid as UserName and carry no credential
// material (verification is delegated to the provider).
type Account struct {
	ID          string
	UserName    string
	Salt        []byte
	Verifier    []byte
	Email       string
	Gender      string
	DateOfBirth string
	CreatedAt   time.Time
}
