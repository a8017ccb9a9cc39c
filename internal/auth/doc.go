// Package auth authenticates admin accounts stored in the local database.
//
// Passwords are hashed with Argon2id. Every active account may edit the site,
// there are no roles. Sign-in state is kept by the web session package; this
// package only answers whether an email/password pair is valid.
//
// Example usage:
//
//	provider := auth.NewLocalProvider(db)
//	user, err := provider.Authenticate(email, password)
package auth
