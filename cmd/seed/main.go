// Command seed bootstraps the initial admin account.
// Usage: go run ./cmd/seed -name "Admin" -email admin@example.com -password secret123
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"billdesk/internal/config"
	"billdesk/internal/domain"
	"billdesk/internal/repository/postgres"
	"billdesk/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	name := flag.String("name", "Administrator", "admin display name")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required, min 8 chars)")
	flag.Parse()

	if *email == "" || *password == "" {
		return fmt.Errorf("usage: seed -email <email> -password <password> [-name <name>]")
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	authSvc := service.NewAuthService(postgres.NewUserRepo(db), cfg.JWT)

	result, err := authSvc.Register(context.Background(), service.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     domain.RoleAdmin,
	})
	if errors.Is(err, domain.ErrAdminExists) {
		log.Println("an admin account already exists; nothing to do")
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	log.Printf("admin %s created (registration %s)", result.User.Email, result.User.RegistrationNumber)
	return nil
}
