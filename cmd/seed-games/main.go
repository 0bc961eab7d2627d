package main

import (
	"log"

	"github.com/google/uuid"
	"github.com/josbon93/Elite-Games-Soccer-Room/internal/config"
	"github.com/josbon93/Elite-Games-Soccer-Room/internal/db"
)

// Seeds the three-station catalog. Games are keyed by type, so rerunning
// after an edit updates descriptions without duplicating rows.
func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	games := []db.Game{
		{
			Name:        "Soccer Skeeball",
			Type:        "soccer-skeeball",
			Description: "Roll soccer balls up a ramp to score points in different target holes. Precision meets fun in this classic arcade experience!",
			MaxPlayers:  8,
			MaxTeams:    4,
		},
		{
			Name:        "Elite Shooter",
			Type:        "elite-shooter",
			Description: "Test your shooting accuracy with timed challenges. Hit targets, beat the clock, and show off your elite skills!",
			MaxPlayers:  8,
			MaxTeams:    4,
		},
		{
			Name:        "Team Relay Shootout",
			Type:        "team-relay-shootout",
			Description: "Ultimate team competition! Work together in relay-style shooting challenges. Teamwork makes the dream work!",
			MaxTeams:    4,
			TeamsOnly:   true,
		},
	}

	for _, game := range games {
		var existing db.Game
		err := conn.Where("type = ?", game.Type).First(&existing).Error
		if err == nil {
			game.ID = existing.ID
		} else {
			game.ID = uuid.NewString()
		}
		if err := conn.Save(&game).Error; err != nil {
			log.Fatalf("failed to upsert game %s: %v", game.Type, err)
		}
	}
	log.Printf("seeded %d games", len(games))
}
