package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tibo-Ulens/freud-bot/models"

	"github.com/mattn/go-sqlite3"
)

// ErrDuplicateEmail is returned when a write would claim an email address
// already owned by a different profile.
var ErrDuplicateEmail = errors.New("email is already in use by another profile")

// ProfileDB handles profile persistence.
type ProfileDB struct {
	db *sql.DB
}

// NewProfileDB creates a new profile store on top of an open database.
func NewProfileDB(db *sql.DB) *ProfileDB {
	return &ProfileDB{db: db}
}

// FindByDiscordID finds a profile given its discord id.
// Returns nil without an error if no profile exists.
func (pdb *ProfileDB) FindByDiscordID(discordID string) (*models.Profile, error) {
	p := &models.Profile{}
	err := pdb.db.QueryRow(
		`SELECT discord_id, email, confirmation_code FROM profile WHERE discord_id = ?`,
		discordID,
	).Scan(&p.DiscordID, &p.Email, &p.ConfirmationCode)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile %s: %w", discordID, err)
	}
	return p, nil
}

// FindByEmail finds a profile given its email.
// Returns nil without an error if no profile exists.
func (pdb *ProfileDB) FindByEmail(email string) (*models.Profile, error) {
	p := &models.Profile{}
	err := pdb.db.QueryRow(
		`SELECT discord_id, email, confirmation_code FROM profile WHERE email = ?`,
		email,
	).Scan(&p.DiscordID, &p.Email, &p.ConfirmationCode)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile by email: %w", err)
	}
	return p, nil
}

// Create inserts a new profile.
func (pdb *ProfileDB) Create(p *models.Profile) error {
	_, err := pdb.db.Exec(
		`INSERT INTO profile (discord_id, email, confirmation_code) VALUES (?, ?, ?)`,
		p.DiscordID, p.Email, p.ConfirmationCode,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile %s: %w", p.DiscordID, translateConstraint(err))
	}
	return nil
}

// SetPending stores a new email and confirmation code on a profile,
// overwriting any previously outstanding code.
func (pdb *ProfileDB) SetPending(discordID, email, code string) error {
	_, err := pdb.db.Exec(
		`UPDATE profile SET email = ?, confirmation_code = ? WHERE discord_id = ?`,
		email, code, discordID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile %s: %w", discordID, translateConstraint(err))
	}
	return nil
}

// SetCode stores a new confirmation code on a profile without touching its
// email, overwriting any previously outstanding code.
func (pdb *ProfileDB) SetCode(discordID, code string) error {
	_, err := pdb.db.Exec(
		`UPDATE profile SET confirmation_code = ? WHERE discord_id = ?`,
		code, discordID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile %s: %w", discordID, err)
	}
	return nil
}

// ClearCodeIfMatch clears the confirmation code of a profile in a single
// conditional update and reports whether the submitted code matched. At most
// one concurrent caller can observe a match for the same code.
func (pdb *ProfileDB) ClearCodeIfMatch(discordID, code string) (bool, error) {
	result, err := pdb.db.Exec(
		`UPDATE profile SET confirmation_code = NULL WHERE discord_id = ? AND confirmation_code = ?`,
		discordID, code,
	)
	if err != nil {
		return false, fmt.Errorf("failed to clear confirmation code for %s: %w", discordID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}

// Delete removes a profile.
func (pdb *ProfileDB) Delete(discordID string) error {
	_, err := pdb.db.Exec(`DELETE FROM profile WHERE discord_id = ?`, discordID)
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", discordID, err)
	}
	return nil
}

// FindVerified returns every profile that has completed verification.
func (pdb *ProfileDB) FindVerified() ([]*models.Profile, error) {
	rows, err := pdb.db.Query(
		`SELECT discord_id, email, confirmation_code FROM profile
		 WHERE email IS NOT NULL AND confirmation_code IS NULL`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query verified profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p := &models.Profile{}
		if err := rows.Scan(&p.DiscordID, &p.Email, &p.ConfirmationCode); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// translateConstraint maps a unique-constraint violation on the email column
// to ErrDuplicateEmail so callers don't have to inspect driver errors.
func translateConstraint(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicateEmail
	}
	return err
}
