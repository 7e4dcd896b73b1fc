package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/api/middleware"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/config"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository/postgres"
)

func main() {
	emailFlag := flag.String("email", "", "Staff email address")
	nameFlag := flag.String("name", "", "Staff full name")
	apiKeyFlag := flag.String("api-key", "", "API key for this user (save it; it cannot be retrieved later)")
	roleFlag := flag.String("role", "Dispatcher", "Role name to assign (must already exist)")
	flag.Parse()

	email := strings.TrimSpace(*emailFlag)
	fullName := strings.TrimSpace(*nameFlag)
	apiKey := strings.TrimSpace(*apiKeyFlag)
	roleName := strings.TrimSpace(*roleFlag)

	if email == "" || fullName == "" || apiKey == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/create-user/main.go --email \"ops@example.com\" --name \"Full Name\" --api-key \"key\" [--role Dispatcher]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	role, err := repos.Role.GetByName(ctx, roleName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to look up role %q: %v\n", roleName, err)
		os.Exit(1)
	}

	hash := middleware.HashAPIKey(apiKey)
	if hash == "" {
		fmt.Fprintf(os.Stderr, "Failed to hash API key\n")
		os.Exit(1)
	}

	user := &domain.User{
		Email:      email,
		FullName:   fullName,
		APIKeyHash: hash,
		RoleID:     &role.ID,
		IsActive:   true,
	}
	if err := repos.User.Create(ctx, user); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created user %s (%s) with role %s\n", user.Email, user.ID, role.Name)
}
