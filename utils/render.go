package utils

// RenderUser renders a user id as a discord mention.
func RenderUser(userID string) string {
	return "<@" + userID + ">"
}

// RenderRole renders a role id as a discord mention.
func RenderRole(roleID string) string {
	return "<@&" + roleID + ">"
}

// RenderChannel renders a channel id as a discord mention.
func RenderChannel(channelID string) string {
	return "<#" + channelID + ">"
}
