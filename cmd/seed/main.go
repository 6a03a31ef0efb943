package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tigertix/internal/events"
	"tigertix/internal/shared/config"
	"tigertix/internal/shared/database"
	"tigertix/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting TigerTix database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"events",
		"users",
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

func (s *Seeder) SeedAll() error {
	adminID, err := s.seedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.seedEvents(adminID); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	return nil
}

// seedUsers creates one admin and a handful of student accounts, all with
// the password "password123"
func (s *Seeder) seedUsers() (adminID string, err error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	seedUsers := []users.User{
		{FirstName: "Avery", LastName: "Admin", Email: "admin@tigertix.edu", Password: string(hashed), Role: users.RoleAdmin},
		{FirstName: "Sam", LastName: "Student", Email: "sam@tigertix.edu", Password: string(hashed), Role: users.RoleUser},
		{FirstName: "Jordan", LastName: "Lee", Email: "jordan@tigertix.edu", Password: string(hashed), Role: users.RoleUser},
		{FirstName: "Riley", LastName: "Chen", Email: "riley@tigertix.edu", Password: string(hashed), Role: users.RoleUser},
	}

	for i := range seedUsers {
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return "", err
		}
		fmt.Printf("  Created user: %s (%s)\n", seedUsers[i].Email, seedUsers[i].Role)
	}

	return seedUsers[0].ID.String(), nil
}

// seedEvents creates a set of campus events with varied inventory levels
func (s *Seeder) seedEvents(adminID string) error {
	now := time.Now()

	createdBy, err := uuid.Parse(adminID)
	if err != nil {
		return fmt.Errorf("invalid admin id: %w", err)
	}

	seedEvents := []events.Event{
		{
			Name:             "Jazz Night",
			Description:      "An evening of live jazz at the student union",
			Location:         "Student Union Ballroom",
			Date:             now.AddDate(0, 0, 14),
			TotalTickets:     150,
			TicketsAvailable: 150,
			Price:            12.50,
		},
		{
			Name:             "Spring Football Game",
			Description:      "Annual spring scrimmage, open to all students",
			Location:         "Memorial Stadium",
			Date:             now.AddDate(0, 1, 0),
			TotalTickets:     5000,
			TicketsAvailable: 5000,
			Price:            8.00,
		},
		{
			Name:             "Hackathon Kickoff",
			Description:      "24-hour hackathon with workshops and prizes",
			Location:         "Engineering Hall Atrium",
			Date:             now.AddDate(0, 0, 21),
			TotalTickets:     300,
			TicketsAvailable: 300,
			Price:            0,
		},
		{
			Name:             "Theatre: A Midsummer Night's Dream",
			Description:      "Student theatre production, two-night run",
			Location:         "Campus Playhouse",
			Date:             now.AddDate(0, 0, 30),
			TotalTickets:     80,
			TicketsAvailable: 12, // nearly sold out for testing low stock paths
			Price:            15.00,
		},
	}

	for i := range seedEvents {
		seedEvents[i].CreatedBy = createdBy
		if err := s.db.PostgreSQL.Create(&seedEvents[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  Created event: %s (%d tickets)\n", seedEvents[i].Name, seedEvents[i].TotalTickets)
	}

	return nil
}
