package verify

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Tibo-Ulens/freud-bot/auditlog"
	"github.com/Tibo-Ulens/freud-bot/database"
	"github.com/Tibo-Ulens/freud-bot/models"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@ugent\.be$`)
	codeRegex  = regexp.MustCompile(`^['|<]?([a-z0-9]{32})[>|']?$`)
)

// Platform is the slice of the chat platform API the engine needs. The bot
// package implements it on top of a discordgo session; tests use a fake.
type Platform interface {
	// GuildIDs returns the ids of every guild the bot is currently in.
	GuildIDs() []string
	GuildName(guildID string) string
	IsMember(guildID, userID string) bool
	// RoleExists reports whether a configured role id still resolves to an
	// actual role. A stale reference is treated as "not configured".
	RoleExists(guildID, roleID string) bool
	HasRole(guildID, userID, roleID string) bool
	GrantRole(guildID, userID, roleID string) error
	RevokeRole(guildID, userID, roleID string) error
	SendDM(userID, content string) error
}

// Mailer delivers a confirmation email using the guild's configured sender.
type Mailer interface {
	Send(smtpUser, smtpPassword, to, subject, body string) error
}

// Engine orchestrates code issuance, code validation, role grants, and
// propagation of verified status across guilds.
type Engine struct {
	profiles *database.ProfileDB
	configs  *database.ConfigDB
	stats    *database.StatsDB
	platform Platform
	mailer   Mailer
	audit    auditlog.Logger

	// Tracks in-flight background work (mail delivery) so shutdown and tests
	// can drain it.
	wg sync.WaitGroup
}

// NewEngine wires up a verification engine.
func NewEngine(
	profiles *database.ProfileDB,
	configs *database.ConfigDB,
	stats *database.StatsDB,
	platform Platform,
	mailer Mailer,
	audit auditlog.Logger,
) *Engine {
	return &Engine{
		profiles: profiles,
		configs:  configs,
		stats:    stats,
		platform: platform,
		mailer:   mailer,
		audit:    audit,
	}
}

// Wait blocks until all background work spawned by the engine has finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// newCode generates a fresh 128-bit hex confirmation code.
func newCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// normalizeCode strips surrounding quote/bracket characters and lowercases a
// submitted code. Returns false if what remains is not a plausible code.
func normalizeCode(raw string) (string, bool) {
	match := codeRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(raw)))
	if match == nil {
		return "", false
	}
	return match[1], true
}

// requireVerifyOptions checks the configuration a guild needs before any
// verification can start.
func requireVerifyOptions(cfg *models.GuildConfig) error {
	if !cfg.VerifiedRole.Valid {
		return &MissingConfigOptionError{GuildID: cfg.GuildID, Option: "verified_role"}
	}
	if !cfg.HasMailSender() {
		return &MissingConfigOptionError{GuildID: cfg.GuildID, Option: "mail_sender"}
	}
	return nil
}

// RequestVerification starts (or restarts) the verification flow for a user:
// it issues a fresh confirmation code and DMs the user the email prompt. If
// the user was already pending with a known email, the new code is mailed out
// again as well.
func (e *Engine) RequestVerification(ctx auditlog.Context, guildID, userID string) error {
	cfg, err := e.configs.GetOrCreate(guildID)
	if err != nil {
		return err
	}
	if err := requireVerifyOptions(cfg); err != nil {
		return err
	}

	profile, err := e.profiles.FindByDiscordID(userID)
	if err != nil {
		return err
	}
	if profile != nil && profile.Verified() {
		e.audit.Log(ctx, auditlog.LevelWarning, auditlog.DoubleVerification(userID))
		return ErrAlreadyVerified
	}

	code := newCode()
	if profile == nil {
		err = e.profiles.Create(&models.Profile{
			DiscordID:        userID,
			ConfirmationCode: toNullString(code),
		})
	} else {
		err = e.profiles.SetCode(userID, code)
	}
	if err != nil {
		return err
	}

	// A pending user who already submitted an email gets the new code mailed
	// straight away; the old code is gone either way.
	if profile != nil && profile.Email.Valid {
		e.deliverCode(ctx, cfg, profile.Email.String, code)
		e.audit.Log(ctx, auditlog.LevelInfo, auditlog.CodeReset(userID, profile.Email.String))
	}

	return e.SendPrompt(cfg, guildID, userID)
}

// SendPrompt DMs a user the guild's verification prompt.
func (e *Engine) SendPrompt(cfg *models.GuildConfig, guildID, userID string) error {
	prompt := models.RenderTemplate(cfg.VerifyEmailMessage, map[string]string{
		"guild_name": e.platform.GuildName(guildID),
	})
	if err := e.platform.SendDM(userID, prompt); err != nil {
		return fmt.Errorf("failed to DM verification prompt to %s: %w", userID, err)
	}
	return nil
}

// SubmitEmail validates and stores a user's email, assigns a new confirmation
// code, and mails it out. Mail delivery is fire-and-forget; its outcome is
// logged, not returned.
func (e *Engine) SubmitEmail(ctx auditlog.Context, guildID, userID, email string) error {
	cfg, err := e.configs.GetOrCreate(guildID)
	if err != nil {
		return err
	}
	if err := requireVerifyOptions(cfg); err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		e.audit.Log(ctx, auditlog.LevelWarning, auditlog.InvalidEmail(userID, email))
		return &InvalidEmailError{Email: email}
	}

	other, err := e.profiles.FindByEmail(email)
	if err != nil {
		return err
	}
	if other != nil && other.DiscordID != userID {
		e.audit.Log(ctx, auditlog.LevelWarning, auditlog.DuplicateEmail(userID, email, other.DiscordID))
		return &DuplicateEmailError{Email: email}
	}

	profile, err := e.profiles.FindByDiscordID(userID)
	if err != nil {
		return err
	}
	if profile != nil && profile.Verified() {
		e.audit.Log(ctx, auditlog.LevelWarning, auditlog.DoubleVerification(userID))
		return ErrAlreadyVerified
	}

	code := newCode()
	hadCode := profile != nil && profile.Pending()

	if profile == nil {
		err = e.profiles.Create(&models.Profile{
			DiscordID:        userID,
			Email:            toNullString(email),
			ConfirmationCode: toNullString(code),
		})
	} else {
		err = e.profiles.SetPending(userID, email, code)
	}
	if err != nil {
		// Concurrent submissions for the same email race at the unique
		// constraint; losing the race is the same as finding the email taken.
		if isDuplicateEmail(err) {
			e.audit.Log(ctx, auditlog.LevelWarning, auditlog.DuplicateEmail(userID, email, "unknown"))
			return &DuplicateEmailError{Email: email}
		}
		return err
	}

	e.deliverCode(ctx, cfg, email, code)

	if hadCode {
		e.audit.Log(ctx, auditlog.LevelInfo, auditlog.CodeReset(userID, email))
	} else {
		e.audit.Log(ctx, auditlog.LevelInfo, auditlog.CodeRequested(userID, email))
	}
	return nil
}

// SubmitCode completes verification: it atomically clears the stored code on
// a match, grants the verified role in the requesting guild, creates the
// statistics row, and propagates verified status to every other guild the bot
// shares with the user. Propagation branches fail independently; SubmitCode
// returns once all branches have finished.
func (e *Engine) SubmitCode(ctx auditlog.Context, guildID, userID, raw string) error {
	profile, err := e.profiles.FindByDiscordID(userID)
	if err != nil {
		return err
	}
	if profile == nil {
		e.audit.Log(ctx, auditlog.LevelWarning, auditlog.MissingCode(userID))
		return ErrNoPendingVerification
	}
	if profile.Verified() {
		e.audit.Log(ctx, auditlog.LevelWarning, auditlog.DoubleVerification(userID))
		return ErrAlreadyVerified
	}

	code, ok := normalizeCode(raw)
	if !ok {
		e.audit.Log(ctx, auditlog.LevelWarning, auditlog.InvalidCode(userID, raw))
		return ErrInvalidCode
	}

	matched, err := e.profiles.ClearCodeIfMatch(userID, code)
	if err != nil {
		return err
	}
	if !matched {
		e.audit.Log(ctx, auditlog.LevelWarning, auditlog.InvalidCode(userID, code))
		return ErrInvalidCode
	}

	cfg, err := e.configs.GetOrCreate(guildID)
	if err != nil {
		return err
	}

	// The requesting guild is verified first; the statistics row is created
	// even if the role grant fails so the verified state stays consistent.
	if err := e.stats.EnsureExists(userID, guildID); err != nil {
		return err
	}

	var grantErr error
	if cfg.VerifiedRole.Valid && e.platform.RoleExists(guildID, cfg.VerifiedRole.String) {
		if grantErr = e.platform.GrantRole(guildID, userID, cfg.VerifiedRole.String); grantErr != nil {
			e.audit.Log(ctx, auditlog.LevelError, auditlog.RoleGrantFailed(userID, grantErr))
		}
	}

	e.audit.Log(ctx, auditlog.LevelInfo, auditlog.Verified(userID, profile.Email.String, e.platform.GuildName(guildID)))

	// Fan out to every other guild the bot shares with the user. Branches are
	// independent; one failure never stops the others.
	var wg sync.WaitGroup
	for _, otherID := range e.platform.GuildIDs() {
		if otherID == guildID || !e.platform.IsMember(otherID, userID) {
			continue
		}

		wg.Add(1)
		go func(otherGuildID string) {
			defer wg.Done()
			e.verifyInGuild(userID, profile.Email.String, otherGuildID)
		}(otherID)
	}
	wg.Wait()

	if grantErr != nil {
		return fmt.Errorf("failed to grant verified role: %w", grantErr)
	}
	return nil
}

// verifyInGuild grants the verified role and creates the statistics row for a
// user in a single propagation branch. Outcomes are logged to that guild's
// own audit channel.
func (e *Engine) verifyInGuild(userID, email, guildID string) {
	branchCtx := auditlog.GuildContext(guildID, userID)

	cfg, err := e.configs.Get(guildID)
	if err != nil || cfg == nil {
		return
	}
	if !cfg.VerifiedRole.Valid || !e.platform.RoleExists(guildID, cfg.VerifiedRole.String) {
		return
	}

	if err := e.platform.GrantRole(guildID, userID, cfg.VerifiedRole.String); err != nil {
		e.audit.Log(branchCtx, auditlog.LevelError, auditlog.PropagationFailed(userID, e.platform.GuildName(guildID), err))
		return
	}

	if err := e.stats.EnsureExists(userID, guildID); err != nil {
		e.audit.Log(branchCtx, auditlog.LevelError, auditlog.PropagationFailed(userID, e.platform.GuildName(guildID), err))
		return
	}

	e.audit.Log(branchCtx, auditlog.LevelInfo, auditlog.AutoVerified(userID, email))
}

// AutoVerify grants the verified role to an already verified user joining a
// guild, without a new code exchange. Reports whether the user was verified.
func (e *Engine) AutoVerify(ctx auditlog.Context, guildID, userID string) (bool, error) {
	profile, err := e.profiles.FindByDiscordID(userID)
	if err != nil {
		return false, err
	}
	if profile == nil || !profile.Verified() {
		return false, nil
	}

	cfg, err := e.configs.GetOrCreate(guildID)
	if err != nil {
		return false, err
	}

	if cfg.VerifiedRole.Valid && e.platform.RoleExists(guildID, cfg.VerifiedRole.String) {
		if err := e.platform.GrantRole(guildID, userID, cfg.VerifiedRole.String); err != nil {
			e.audit.Log(ctx, auditlog.LevelError, auditlog.RoleGrantFailed(userID, err))
			return true, fmt.Errorf("failed to grant verified role: %w", err)
		}
	}

	if err := e.stats.EnsureExists(userID, guildID); err != nil {
		return true, err
	}

	e.audit.Log(ctx, auditlog.LevelInfo, auditlog.AutoVerified(userID, profile.Email.String))
	return true, nil
}

// Unverify deletes a user's profile and all their statistics rows, and
// removes the verified role in the acting guild. Other guilds are left alone.
func (e *Engine) Unverify(ctx auditlog.Context, guildID, targetID string) error {
	if err := e.stats.DeleteAllForProfile(targetID); err != nil {
		return err
	}
	if err := e.profiles.Delete(targetID); err != nil {
		return err
	}

	cfg, err := e.configs.Get(guildID)
	if err != nil {
		return err
	}
	if cfg != nil && cfg.VerifiedRole.Valid && e.platform.RoleExists(guildID, cfg.VerifiedRole.String) {
		if e.platform.HasRole(guildID, targetID, cfg.VerifiedRole.String) {
			if err := e.platform.RevokeRole(guildID, targetID, cfg.VerifiedRole.String); err != nil {
				e.audit.Log(ctx, auditlog.LevelError, auditlog.RoleGrantFailed(targetID, err))
				return fmt.Errorf("failed to revoke verified role: %w", err)
			}
		}
	}

	e.audit.Log(ctx, auditlog.LevelInfo, auditlog.Unverified(targetID))
	return nil
}

// ReconcileGuild makes sure every globally verified member of a guild holds
// the verified role. Returns how many members were checked and how many
// actually had the role granted.
func (e *Engine) ReconcileGuild(ctx auditlog.Context, guildID string) (checked, updated int, err error) {
	cfg, err := e.configs.GetOrCreate(guildID)
	if err != nil {
		return 0, 0, err
	}
	if !cfg.VerifiedRole.Valid || !e.platform.RoleExists(guildID, cfg.VerifiedRole.String) {
		return 0, 0, &MissingConfigOptionError{GuildID: guildID, Option: "verified_role"}
	}
	roleID := cfg.VerifiedRole.String

	profiles, err := e.profiles.FindVerified()
	if err != nil {
		return 0, 0, err
	}

	for _, profile := range profiles {
		if !e.platform.IsMember(guildID, profile.DiscordID) {
			continue
		}
		checked++

		if e.platform.HasRole(guildID, profile.DiscordID, roleID) {
			continue
		}

		if grantErr := e.platform.GrantRole(guildID, profile.DiscordID, roleID); grantErr != nil {
			e.audit.Log(ctx, auditlog.LevelError, auditlog.RoleGrantFailed(profile.DiscordID, grantErr))
			continue
		}
		updated++
	}

	e.audit.Log(ctx, auditlog.LevelInfo, auditlog.ReconcileRun(checked, updated))
	return checked, updated, nil
}

// deliverCode mails a confirmation code in the background. The caller never
// waits on or learns about the outcome; it is logged instead.
func (e *Engine) deliverCode(ctx auditlog.Context, cfg *models.GuildConfig, email, code string) {
	subject := cfg.EmailSubject
	body := models.RenderTemplate(cfg.EmailBody, map[string]string{"code": code})
	smtpUser := cfg.SMTPUser.String
	smtpPassword := cfg.SMTPPassword.String

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		if err := e.mailer.Send(smtpUser, smtpPassword, email, subject, body); err != nil {
			e.audit.Log(ctx, auditlog.LevelError, auditlog.MailFailed(email, err))
			return
		}
		e.audit.Log(ctx, auditlog.LevelInfo, auditlog.MailSent(email))
	}()
}

func isDuplicateEmail(err error) bool {
	return errors.Is(err, database.ErrDuplicateEmail)
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
