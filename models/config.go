package models

import "database/sql"

// GuildConfig holds the per-guild settings, one row per guild.
//
// Role and channel references are nullable: an unset option means the related
// feature is disabled, and a reference to a deleted role or channel is treated
// the same as an unset one.
type GuildConfig struct {
	GuildID                    string
	VerifiedRole               sql.NullString
	AdminRole                  sql.NullString
	LoggingChannel             sql.NullString
	VerificationLoggingChannel sql.NullString
	ConfessionChannel          sql.NullString
	ConfessionApprovalChannel  sql.NullString
	PinReactionThreshold       int
	MaxSpendableFreudpoints    int

	// Outgoing mail credentials for verification emails
	SMTPUser     sql.NullString
	SMTPPassword sql.NullString
	EmailSubject string
	EmailBody    string

	// User-facing message templates, substituted with {name} placeholders
	VerifyEmailMessage     string
	NewEmailMessage        string
	InvalidEmailMessage    string
	DuplicateEmailMessage  string
	VerifyCodeMessage      string
	InvalidCodeMessage     string
	AlreadyVerifiedMessage string
	WelcomeMessage         string
}

// HasMailSender reports whether outgoing mail is configured for the guild.
func (c *GuildConfig) HasMailSender() bool {
	return c.SMTPUser.Valid && c.SMTPPassword.Valid
}
