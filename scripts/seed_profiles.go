package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Seeds a couple of demo profiles for local development. Postgres only.
func main() {
	fmt.Println("seeding demo profiles...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	DSN := os.Getenv("DB_DSN")

	pool, err := pgxpool.New(context.Background(), DSN)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	now := time.Now().UTC()
	// Fixed ids so re-running the script stays a no-op.
	profiles := []struct {
		id         uuid.UUID
		firstName  string
		lastName   string
		role       string
		email      string
		openToWork bool
		years      int
		skills     []string
	}{
		{uuid.MustParse("0b6a2f3e-4c1d-4f9a-8e21-111111111111"), "Linh", "Nguyen", "Backend Engineer", "linh.nguyen@example.com", true, 5, []string{"go", "postgres", "kafka"}},
		{uuid.MustParse("0b6a2f3e-4c1d-4f9a-8e21-222222222222"), "Minh", "Tran", "Fullstack Developer", "minh.tran@example.com", false, 3, []string{"go", "react", "mongodb"}},
		{uuid.MustParse("0b6a2f3e-4c1d-4f9a-8e21-333333333333"), "An", "Pham", "Platform Engineer", "an.pham@example.com", true, 8, []string{"go", "kubernetes", "terraform"}},
	}

	query := `
		INSERT INTO developer_profiles
			(id, first_name, last_name, role, summary, open_to_work, years_of_experience, verified, email, skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (id) DO NOTHING
	`
	for _, p := range profiles {
		_, err = pool.Exec(context.Background(), query,
			p.id, p.firstName, p.lastName, p.role,
			fmt.Sprintf("%s with %d years of experience.", p.role, p.years),
			p.openToWork, p.years, 0, p.email, p.skills, now,
		)
		if err != nil {
			log.Fatalf("cannot seed profile %s %s: %v", p.firstName, p.lastName, err)
		}
	}

	fmt.Printf("seeded %d profiles successfully!\n", len(profiles))
}
