package models

import "database/sql"

// Profile represents a platform user known to the bot.
// A profile with a confirmation code is pending verification; a profile with
// an email and no code is verified.
type Profile struct {
	DiscordID        string
	Email            sql.NullString
	ConfirmationCode sql.NullString
}

// Verified reports whether the profile has completed email verification.
func (p *Profile) Verified() bool {
	return p.Email.Valid && !p.ConfirmationCode.Valid
}

// Pending reports whether the profile has an outstanding confirmation code.
func (p *Profile) Pending() bool {
	return p.ConfirmationCode.Valid
}
