package bot

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"

	"github.com/Tibo-Ulens/freud-bot/auditlog"
	"github.com/Tibo-Ulens/freud-bot/command"
	"github.com/Tibo-Ulens/freud-bot/config"
	"github.com/Tibo-Ulens/freud-bot/database"
	"github.com/Tibo-Ulens/freud-bot/mail"
	"github.com/Tibo-Ulens/freud-bot/verify"
)

// Bot encapsulates the bot's state.
type Bot struct {
	Session *discordgo.Session
	DB      *sql.DB

	Profiles *database.ProfileDB
	Configs  *database.ConfigDB
	Stats    *database.StatsDB

	Engine *verify.Engine
	Router *auditlog.Router
}

// NewBot creates and initializes a new Bot instance.
func NewBot() (*Bot, error) {
	config.LoadConfig()
	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions

	db, err := database.InitDB(viper.GetString("bot.dbPath"))
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	profiles := database.NewProfileDB(db)
	configs := database.NewConfigDB(db)
	stats := database.NewStatsDB(db)

	platform := NewSessionPlatform(dg)
	router := auditlog.NewRouter(configs, platform)
	engine := verify.NewEngine(profiles, configs, stats, platform, mail.NewSMTPMailer(), router)

	return &Bot{
		Session:  dg,
		DB:       db,
		Profiles: profiles,
		Configs:  configs,
		Stats:    stats,
		Engine:   engine,
		Router:   router,
	}, nil
}

// Start opens the bot's session, registers handlers and slash commands, and
// starts the scheduler.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands
	for _, def := range command.GetCommandDefinitions() {
		_, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", def)
		if err != nil {
			log.Printf("Cannot create '%v' command: %v", def.Name, err)
		}
	}

	startScheduler(b.Stats)

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully closes the bot's session and drains background work.
func (b *Bot) Stop() {
	stopScheduler()
	b.Engine.Wait()
	if b.Session != nil {
		b.Session.Close()
	}
	if b.DB != nil {
		b.DB.Close()
	}
	fmt.Println("Bot stopped gracefully.")
}

// Run is the main entry point for the bot application.
func Run(registerHandlers func(*Bot)) {
	bot, err := NewBot()
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	if err := bot.Start(registerHandlers); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
