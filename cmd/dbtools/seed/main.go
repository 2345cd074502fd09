// cmd/dbtools/seed/main.go
package main

import (
	"context"
	"flag"
	"log"

	"github.com/acereserve/acereserve/internal/db"
	"github.com/acereserve/acereserve/internal/models"
	"github.com/acereserve/acereserve/internal/store"
)

// Seeds a development database with a small club: four courts, a coach with
// individual and group services, an admin, and two members with loyalty
// accounts. Opening the database applies migrations, so this works on an
// empty file.
func main() {
	dbPath := flag.String("db", "data/acereserve.db", "Path to SQLite database")
	flag.Parse()

	database, err := db.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	st := store.New(database)

	courts := []models.Court{
		{Number: 1, Surface: models.SurfaceHard, OpenTime: "08:00", CloseTime: "22:00", HasLighting: true, PricePerHour: 2500, Available: true},
		{Number: 2, Surface: models.SurfaceHard, OpenTime: "08:00", CloseTime: "20:00", HasLighting: false, PricePerHour: 2200, Available: true},
		{Number: 3, Surface: models.SurfaceClay, OpenTime: "09:00", CloseTime: "21:00", HasLighting: true, PricePerHour: 3000, Available: true},
		{Number: 4, Surface: models.SurfaceIndoor, OpenTime: "07:00", CloseTime: "23:00", HasLighting: true, PricePerHour: 3500, Available: true},
	}
	for i := range courts {
		if err := st.CreateCourt(ctx, &courts[i]); err != nil {
			log.Fatalf("Failed to create court %d: %v", courts[i].Number, err)
		}
	}

	users := []models.User{
		{Email: "admin@acereserve.example", FullName: "Front Desk", Role: models.RoleAdmin},
		{Email: "coach@acereserve.example", FullName: "Sam Volley", Role: models.RoleCoach},
		{Email: "alice@acereserve.example", FullName: "Alice Baseline", Role: models.RoleMember},
		{Email: "bob@acereserve.example", FullName: "Bob Netrush", Role: models.RoleMember},
	}
	for i := range users {
		if err := st.CreateUser(ctx, &users[i]); err != nil {
			log.Fatalf("Failed to create user %s: %v", users[i].Email, err)
		}
		if users[i].Role == models.RoleMember {
			if _, err := st.CreateLoyaltyAccount(ctx, users[i].ID); err != nil {
				log.Fatalf("Failed to create loyalty account for %s: %v", users[i].Email, err)
			}
		}
	}

	coachID := users[1].ID
	services := []models.Service{
		{
			Name: "Private lesson", Price: 4000, DurationMinutes: 60, Available: true,
			Category: models.CategoryIndividual, RequiresCoach: true, CoachID: &coachID,
		},
		{
			Name: "Group clinic", Price: 1500, DurationMinutes: 90, Available: true,
			Category: models.CategoryGroup, RequiresCoach: true, CoachID: &coachID, GroupCapacity: 6,
		},
	}
	for i := range services {
		if err := st.CreateService(ctx, &services[i]); err != nil {
			log.Fatalf("Failed to create service %s: %v", services[i].Name, err)
		}
	}

	log.Printf("Seeded %d courts, %d users, %d services into %s", len(courts), len(users), len(services), *dbPath)
}
