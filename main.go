package main

import (
	"github.com/Tibo-Ulens/freud-bot/bot"
	"github.com/Tibo-Ulens/freud-bot/handlers"
)

func main() {
	bot.Run(handlers.Register)
}
