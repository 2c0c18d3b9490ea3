package models

// ProfileStatistics tracks per-(profile, guild) counters.
// Rows are created lazily, the first time a profile is verified in a guild or
// the first time a point-aware command touches the pair.
type ProfileStatistics struct {
	ProfileDiscordID string
	ConfigGuildID    string

	Freudpoints            int
	SpendableFreudpoints   int
	ConfessionExposedCount int
}
