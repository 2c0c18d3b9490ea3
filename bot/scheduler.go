package bot

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/Tibo-Ulens/freud-bot/database"
)

var c *cron.Cron

// startScheduler starts the cron jobs.
func startScheduler(stats *database.StatsDB) {
	log.Println("Initializing scheduler...")
	c = cron.New()
	_, err := c.AddFunc("@daily", func() {
		log.Println("Incrementing spendable FreudPoints...")
		if err := stats.IncrementSpendableAll(); err != nil {
			log.Printf("Could not increment spendable FreudPoints: %v", err)
			return
		}
		log.Println("Spendable FreudPoints incremented.")
	})
	if err != nil {
		log.Fatalf("Could not set up cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduled to run daily.")
}

// stopScheduler stops the cron jobs.
func stopScheduler() {
	if c != nil {
		c.Stop()
		log.Println("Scheduler stopped.")
	}
}
