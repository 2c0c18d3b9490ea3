package auditlog

import (
	"fmt"

	"github.com/Tibo-Ulens/freud-bot/utils"
)

// Constructors for the events this bot produces. UserMsg is the generic
// fallback reply used when a guild has no template configured for the
// situation; LogMsg is what ends up in the audit channel and process log.

// CodeRequested records a first verification code request.
func CodeRequested(userID, email string) Event {
	return Event{
		Scope:   ScopeVerification,
		Name:    "code_requested",
		UserMsg: fmt.Sprintf("A confirmation code has been sent to '%s'", email),
		LogMsg:  fmt.Sprintf("user %s requested a verification code for '%s'", utils.RenderUser(userID), email),
		Fields:  []Field{{Name: "email", Value: email}},
	}
}

// CodeReset records a repeat request that revoked the previous code.
func CodeReset(userID, email string) Event {
	return Event{
		Scope:   ScopeVerification,
		Name:    "code_reset",
		UserMsg: fmt.Sprintf("Your previous code has been revoked and a new one has been sent to '%s'", email),
		LogMsg:  fmt.Sprintf("user %s re-requested a verification code for '%s'", utils.RenderUser(userID), email),
		Fields:  []Field{{Name: "email", Value: email}},
	}
}

// DoubleVerification records a verification attempt by an already verified user.
func DoubleVerification(userID string) Event {
	return Event{
		Scope:   ScopeVerification,
		Name:    "double_verification",
		UserMsg: "It seems you are trying to verify again despite already having done so in the past\nIf you think this is a mistake please contact a server admin",
		LogMsg:  fmt.Sprintf("user %s attempted to verify despite already being verified", utils.RenderUser(userID)),
	}
}

// DuplicateEmail records an attempt to claim an email owned by another profile.
func DuplicateEmail(userID, email, otherID string) Event {
	return Event{
		Scope:   ScopeVerification,
		Name:    "duplicate_email",
		UserMsg: "A different profile with this email already exists\nIf you think this is a mistake please contact a server admin",
		LogMsg: fmt.Sprintf(
			"user %s attempted to verify with duplicate email '%s', their other account is %s",
			utils.RenderUser(userID), email, utils.RenderUser(otherID),
		),
		Fields: []Field{{Name: "email", Value: email}},
	}
}

// InvalidEmail records a verification attempt with a malformed email.
func InvalidEmail(userID, email string) Event {
	return Event{
		Scope:   ScopeVerification,
		Name:    "invalid_email",
		UserMsg: "This doesn't look like a valid UGent email\nIf you think this is a mistake please contact a server admin",
		LogMsg:  fmt.Sprintf("user %s attempted to verify with invalid email '%s'", utils.RenderUser(userID), email),
		Fields:  []Field{{Name: "email", Value: email}},
	}
}

// MissingCode records a code submission without an outstanding code.
func MissingCode(userID string) Event {
	return Event{
		Scope:   ScopeVerification,
		Name:    "missing_code",
		UserMsg: "It seems you are trying to verify a code without having requested one first",
		LogMsg:  fmt.Sprintf("user %s attempted to verify without a pending code", utils.RenderUser(userID)),
	}
}

// InvalidCode records a code submission that did not match.
func InvalidCode(userID, code string) Event {
	return Event{
		Scope:   ScopeVerification,
		Name:    "invalid_code",
		UserMsg: "This verification code is incorrect",
		LogMsg:  fmt.Sprintf("user %s attempted to verify with an invalid code '%s'", utils.RenderUser(userID), code),
		Fields:  []Field{{Name: "code", Value: code}},
	}
}

// Verified records a completed verification in a guild.
func Verified(userID, email, guildName string) Event {
	return Event{
		Scope:   ScopeVerification,
		Name:    "verified",
		UserMsg: "You have verified succesfully! Welcome to the server",
		LogMsg: fmt.Sprintf(
			"%s verified succesfully with email '%s' in server '%s'",
			utils.RenderUser(userID), email, guildName,
		),
		Fields: []Field{{Name: "email", Value: email}},
	}
}

// AutoVerified records a verified user being granted the role on joining a
// guild, without a new code exchange.
func AutoVerified(userID, email string) Event {
	return Event{
		Scope:  ScopeVerification,
		Name:   "auto_verified",
		LogMsg: fmt.Sprintf("%s has been automatically verified, their email is '%s'", utils.RenderUser(userID), email),
		Fields: []Field{{Name: "email", Value: email}},
	}
}

// PropagationFailed records a failed role grant in one propagation branch.
func PropagationFailed(userID, guildName string, err error) Event {
	return Event{
		Scope:  ScopeVerification,
		Name:   "propagation_failed",
		LogMsg: fmt.Sprintf("failed to propagate verification of %s to server '%s': %v", utils.RenderUser(userID), guildName, err),
		Fields: []Field{{Name: "server", Value: guildName}},
	}
}

// RoleGrantFailed records a failed role grant in the requesting guild.
func RoleGrantFailed(userID string, err error) Event {
	return Event{
		Scope:   ScopeVerification,
		Name:    "role_grant_failed",
		UserMsg: "Unknown error, please contact a server admin",
		LogMsg:  fmt.Sprintf("failed to grant the verified role to %s: %v", utils.RenderUser(userID), err),
	}
}

// MailSent records a successful confirmation email delivery.
func MailSent(email string) Event {
	return Event{
		Scope:  ScopeVerification,
		Name:   "mail_sent",
		LogMsg: fmt.Sprintf("sent confirmation email to '%s'", email),
		Fields: []Field{{Name: "email", Value: email}},
	}
}

// MailFailed records a failed confirmation email delivery.
func MailFailed(email string, err error) Event {
	return Event{
		Scope:   ScopeVerification,
		Name:    "mail_failed",
		UserMsg: "Something went wrong sending your confirmation email, please contact a server admin",
		LogMsg:  fmt.Sprintf("failed to send confirmation email to '%s': %v", email, err),
		Fields:  []Field{{Name: "email", Value: email}},
	}
}

// Unverified records a manual unverify by an admin.
func Unverified(targetID string) Event {
	return Event{
		Scope:  ScopeVerification,
		Name:   "unverified",
		LogMsg: fmt.Sprintf("%s was unverified manually", utils.RenderUser(targetID)),
	}
}

// ReconcileRun records a verifix pass over a guild.
func ReconcileRun(checked, updated int) Event {
	return Event{
		Scope:  ScopeVerification,
		Name:   "reconcile_run",
		LogMsg: fmt.Sprintf("%d verified members checked, %d members updated", checked, updated),
		Fields: []Field{
			{Name: "checked", Value: fmt.Sprint(checked)},
			{Name: "updated", Value: fmt.Sprint(updated)},
		},
	}
}

// ConfigUpdated records a guild configuration change.
func ConfigUpdated(userID, option, value string) Event {
	return Event{
		Scope:  ScopeModeration,
		Name:   "config_updated",
		LogMsg: fmt.Sprintf("%s set config option '%s' to '%s'", utils.RenderUser(userID), option, value),
		Fields: []Field{
			{Name: "option", Value: option},
			{Name: "value", Value: value},
		},
	}
}

// ConfessorExposed records an admin revealing a confessor.
func ConfessorExposed(userID, targetID string, count int) Event {
	return Event{
		Scope:  ScopeModeration,
		Name:   "confessor_exposed",
		LogMsg: fmt.Sprintf("%s exposed confessor %s (%d exposures total)", utils.RenderUser(userID), utils.RenderUser(targetID), count),
		Fields: []Field{
			{Name: "confessor", Value: utils.RenderUser(targetID)},
			{Name: "exposures", Value: fmt.Sprint(count)},
		},
	}
}

// MessagePinned records a message pinned through pin reactions.
func MessagePinned(channelID, messageID string) Event {
	return Event{
		Scope:  ScopeModeration,
		Name:   "message_pinned",
		LogMsg: fmt.Sprintf("pinned message %s in %s", messageID, utils.RenderChannel(channelID)),
		Fields: []Field{{Name: "channel", Value: utils.RenderChannel(channelID)}},
	}
}
