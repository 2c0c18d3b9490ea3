package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/Tibo-Ulens/freud-bot/models"
)

// ConfigDB handles guild configuration persistence.
type ConfigDB struct {
	db *sql.DB
}

// NewConfigDB creates a new guild configuration store on top of an open database.
func NewConfigDB(db *sql.DB) *ConfigDB {
	return &ConfigDB{db: db}
}

const configColumns = `guild_id, verified_role, admin_role, logging_channel,
	verification_logging_channel, confession_channel, confession_approval_channel,
	pin_reaction_threshold, max_spendable_freudpoints,
	smtp_user, smtp_password, email_subject, email_body,
	verify_email_message, new_email_message, invalid_email_message,
	duplicate_email_message, verify_code_message, invalid_code_message,
	already_verified_message, welcome_message`

// Get finds a config given its guild id.
// Returns nil without an error if the guild has no config yet.
func (cdb *ConfigDB) Get(guildID string) (*models.GuildConfig, error) {
	c := &models.GuildConfig{}
	err := cdb.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM config WHERE guild_id = ?`, configColumns),
		guildID,
	).Scan(
		&c.GuildID, &c.VerifiedRole, &c.AdminRole, &c.LoggingChannel,
		&c.VerificationLoggingChannel, &c.ConfessionChannel, &c.ConfessionApprovalChannel,
		&c.PinReactionThreshold, &c.MaxSpendableFreudpoints,
		&c.SMTPUser, &c.SMTPPassword, &c.EmailSubject, &c.EmailBody,
		&c.VerifyEmailMessage, &c.NewEmailMessage, &c.InvalidEmailMessage,
		&c.DuplicateEmailMessage, &c.VerifyCodeMessage, &c.InvalidCodeMessage,
		&c.AlreadyVerifiedMessage, &c.WelcomeMessage,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query config for guild %s: %w", guildID, err)
	}
	return c, nil
}

// GetOrCreate finds a config given its guild id, or creates a default config
// if it does not exist. Calling it twice for the same guild yields the same
// single row.
func (cdb *ConfigDB) GetOrCreate(guildID string) (*models.GuildConfig, error) {
	result, err := cdb.db.Exec(`INSERT OR IGNORE INTO config (guild_id) VALUES (?)`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to create config for guild %s: %w", guildID, err)
	}

	if affected, _ := result.RowsAffected(); affected > 0 {
		log.Printf("created new config for guild %s", guildID)
	}

	return cdb.Get(guildID)
}

// settableOptions whitelists the columns that can be changed through
// SetOption, keyed by their user-facing option name.
var settableOptions = map[string]string{
	"verified_role":                "verified_role",
	"admin_role":                   "admin_role",
	"logging_channel":              "logging_channel",
	"verification_logging_channel": "verification_logging_channel",
	"confession_channel":           "confession_channel",
	"confession_approval_channel":  "confession_approval_channel",
	"email_subject":                "email_subject",
	"email_body":                   "email_body",
	"verify_email_message":         "verify_email_message",
	"new_email_message":            "new_email_message",
	"invalid_email_message":        "invalid_email_message",
	"duplicate_email_message":      "duplicate_email_message",
	"verify_code_message":          "verify_code_message",
	"invalid_code_message":         "invalid_code_message",
	"already_verified_message":     "already_verified_message",
	"welcome_message":              "welcome_message",
}

// SetOption updates a single text option for a guild, creating the config row
// if needed.
func (cdb *ConfigDB) SetOption(guildID, option, value string) error {
	column, ok := settableOptions[option]
	if !ok {
		return fmt.Errorf("unknown config option '%s'", option)
	}

	if _, err := cdb.GetOrCreate(guildID); err != nil {
		return err
	}

	_, err := cdb.db.Exec(
		fmt.Sprintf(`UPDATE config SET %s = ? WHERE guild_id = ?`, column),
		value, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to set option '%s' for guild %s: %w", option, guildID, err)
	}
	return nil
}

// SetPinReactionThreshold updates the number of pin reactions needed before a
// message gets pinned.
func (cdb *ConfigDB) SetPinReactionThreshold(guildID string, threshold int) error {
	if _, err := cdb.GetOrCreate(guildID); err != nil {
		return err
	}

	_, err := cdb.db.Exec(
		`UPDATE config SET pin_reaction_threshold = ? WHERE guild_id = ?`,
		threshold, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to set pin reaction threshold for guild %s: %w", guildID, err)
	}
	return nil
}

// SetMaxSpendableFreudpoints updates the upper bound on spendable FreudPoints.
func (cdb *ConfigDB) SetMaxSpendableFreudpoints(guildID string, max int) error {
	if max < 0 {
		return fmt.Errorf("max spendable FreudPoints must be at least 0")
	}

	if _, err := cdb.GetOrCreate(guildID); err != nil {
		return err
	}

	_, err := cdb.db.Exec(
		`UPDATE config SET max_spendable_freudpoints = ? WHERE guild_id = ?`,
		max, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to set max spendable FreudPoints for guild %s: %w", guildID, err)
	}
	return nil
}

// SetMailSender updates the outgoing mail credentials for a guild.
func (cdb *ConfigDB) SetMailSender(guildID, smtpUser, smtpPassword string) error {
	if _, err := cdb.GetOrCreate(guildID); err != nil {
		return err
	}

	_, err := cdb.db.Exec(
		`UPDATE config SET smtp_user = ?, smtp_password = ? WHERE guild_id = ?`,
		smtpUser, smtpPassword, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to set mail sender for guild %s: %w", guildID, err)
	}
	return nil
}
