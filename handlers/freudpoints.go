package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Tibo-Ulens/freud-bot/bot"
	"github.com/Tibo-Ulens/freud-bot/database"
	"github.com/Tibo-Ulens/freud-bot/models"
	"github.com/Tibo-Ulens/freud-bot/utils"
)

// handleFreudpoint dispatches the /freudpoint subcommands.
func handleFreudpoint(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub := i.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "award":
		awarder := i.Member.User
		awardee := sub.Options[0].UserValue(s)
		if awardee == nil {
			respond(s, i, genericErrorMessage)
			return
		}

		// Only verified users hold a statistics row and can spend points.
		stats, err := b.Stats.Get(awarder.ID, i.GuildID)
		if err != nil {
			respond(s, i, genericErrorMessage)
			return
		}
		if stats == nil {
			respond(s, i, "You need to be verified to award FreudPoints")
			return
		}

		if err := b.Stats.Award(i.GuildID, awarder.ID, awardee.ID); err != nil {
			if errors.Is(err, database.ErrNoSpendablePoints) {
				respond(s, i, "You don't have any FreudPoints available to give out!\nPlease wait 1 day")
				return
			}
			respond(s, i, genericErrorMessage)
			return
		}

		respond(s, i, fmt.Sprintf("%s has been awarded 1 FreudPoint!", awardee.Username))

	case "top":
		top, err := b.Stats.FreudpointTop(i.GuildID, 10)
		if err != nil {
			respond(s, i, genericErrorMessage)
			return
		}
		respond(s, i, renderLeaderboard("FreudPoint top 10", top, func(s *models.ProfileStatistics) int {
			return s.Freudpoints
		}))
	}
}

// handleExposed dispatches the /exposed subcommands.
func handleExposed(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub := i.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "top":
		top, err := b.Stats.ExposedTop(i.GuildID, 10)
		if err != nil {
			respond(s, i, genericErrorMessage)
			return
		}
		respond(s, i, renderLeaderboard("Most exposed confessors", top, func(s *models.ProfileStatistics) int {
			return s.ConfessionExposedCount
		}))
	}
}

func renderLeaderboard(title string, stats []*models.ProfileStatistics, score func(*models.ProfileStatistics) int) string {
	if len(stats) == 0 {
		return "Nothing to show yet"
	}

	var sb strings.Builder
	sb.WriteString("**" + title + "**\n")
	for rank, stat := range stats {
		fmt.Fprintf(&sb, "%d. %s - %d\n", rank+1, utils.RenderUser(stat.ProfileDiscordID), score(stat))
	}
	return sb.String()
}
