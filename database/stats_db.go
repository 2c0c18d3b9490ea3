package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tibo-Ulens/freud-bot/models"
)

// ErrNoSpendablePoints is returned when an award would push a profile's
// spendable FreudPoints below zero.
var ErrNoSpendablePoints = errors.New("no spendable FreudPoints available")

// StatsDB handles per-guild profile statistics persistence.
type StatsDB struct {
	db *sql.DB
}

// NewStatsDB creates a new statistics store on top of an open database.
func NewStatsDB(db *sql.DB) *StatsDB {
	return &StatsDB{db: db}
}

// EnsureExists creates the statistics row for a (profile, guild) pair with
// default counters if it does not exist yet.
func (sdb *StatsDB) EnsureExists(discordID, guildID string) error {
	_, err := sdb.db.Exec(
		`INSERT OR IGNORE INTO profile_statistics (profile_discord_id, config_guild_id) VALUES (?, ?)`,
		discordID, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to create statistics for (%s, %s): %w", discordID, guildID, err)
	}
	return nil
}

// Get finds the statistics row for a (profile, guild) pair.
// Returns nil without an error if no row exists.
func (sdb *StatsDB) Get(discordID, guildID string) (*models.ProfileStatistics, error) {
	s := &models.ProfileStatistics{}
	err := sdb.db.QueryRow(
		`SELECT profile_discord_id, config_guild_id, freudpoints, spendable_freudpoints, confession_exposed_count
		 FROM profile_statistics WHERE profile_discord_id = ? AND config_guild_id = ?`,
		discordID, guildID,
	).Scan(&s.ProfileDiscordID, &s.ConfigGuildID, &s.Freudpoints, &s.SpendableFreudpoints, &s.ConfessionExposedCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics for (%s, %s): %w", discordID, guildID, err)
	}
	return s, nil
}

// Award spends one of the awarder's spendable FreudPoints and credits one
// FreudPoint to the awardee, as a single transaction. The spend is a
// conditional update so the budget can never go negative, even under
// concurrent awards.
func (sdb *StatsDB) Award(guildID, awarderID, awardeeID string) error {
	tx, err := sdb.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin award transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE profile_statistics SET spendable_freudpoints = spendable_freudpoints - 1
		 WHERE profile_discord_id = ? AND config_guild_id = ? AND spendable_freudpoints >= 1`,
		awarderID, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to spend FreudPoint: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNoSpendablePoints
	}

	_, err = tx.Exec(
		`INSERT OR IGNORE INTO profile_statistics (profile_discord_id, config_guild_id) VALUES (?, ?)`,
		awardeeID, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to create awardee statistics: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE profile_statistics SET freudpoints = freudpoints + 1
		 WHERE profile_discord_id = ? AND config_guild_id = ?`,
		awardeeID, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to credit FreudPoint: %w", err)
	}

	return tx.Commit()
}

// IncrementSpendableAll increments the spendable FreudPoints of every profile
// by one, capped at the owning guild's configured maximum.
func (sdb *StatsDB) IncrementSpendableAll() error {
	_, err := sdb.db.Exec(
		`UPDATE profile_statistics SET spendable_freudpoints = MIN(
			spendable_freudpoints + 1,
			(SELECT max_spendable_freudpoints FROM config WHERE guild_id = profile_statistics.config_guild_id)
		)`,
	)
	if err != nil {
		return fmt.Errorf("failed to increment spendable FreudPoints: %w", err)
	}
	return nil
}

// IncrementExposed increments the confession exposure counter of a profile in
// a given guild, creating the row if needed.
func (sdb *StatsDB) IncrementExposed(discordID, guildID string) error {
	if err := sdb.EnsureExists(discordID, guildID); err != nil {
		return err
	}

	_, err := sdb.db.Exec(
		`UPDATE profile_statistics SET confession_exposed_count = confession_exposed_count + 1
		 WHERE profile_discord_id = ? AND config_guild_id = ?`,
		discordID, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment exposure count for (%s, %s): %w", discordID, guildID, err)
	}
	return nil
}

// FreudpointTop returns the profiles with the most FreudPoints in a guild.
func (sdb *StatsDB) FreudpointTop(guildID string, limit int) ([]*models.ProfileStatistics, error) {
	return sdb.top(guildID, limit, "freudpoints")
}

// ExposedTop returns the most exposed profiles in a guild.
func (sdb *StatsDB) ExposedTop(guildID string, limit int) ([]*models.ProfileStatistics, error) {
	return sdb.top(guildID, limit, "confession_exposed_count")
}

func (sdb *StatsDB) top(guildID string, limit int, column string) ([]*models.ProfileStatistics, error) {
	rows, err := sdb.db.Query(
		fmt.Sprintf(`SELECT profile_discord_id, config_guild_id, freudpoints, spendable_freudpoints, confession_exposed_count
			FROM profile_statistics WHERE config_guild_id = ? ORDER BY %s DESC LIMIT ?`, column),
		guildID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query top statistics for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	var stats []*models.ProfileStatistics
	for rows.Next() {
		s := &models.ProfileStatistics{}
		if err := rows.Scan(&s.ProfileDiscordID, &s.ConfigGuildID, &s.Freudpoints, &s.SpendableFreudpoints, &s.ConfessionExposedCount); err != nil {
			return nil, fmt.Errorf("failed to scan statistics: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// DeleteAllForProfile removes every statistics row belonging to a profile,
// across all guilds.
func (sdb *StatsDB) DeleteAllForProfile(discordID string) error {
	_, err := sdb.db.Exec(`DELETE FROM profile_statistics WHERE profile_discord_id = ?`, discordID)
	if err != nil {
		return fmt.Errorf("failed to delete statistics for %s: %w", discordID, err)
	}
	return nil
}
