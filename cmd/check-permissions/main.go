package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/authz"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/config"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository/postgres"
)

func main() {
	roleFlag := flag.String("role", "", "Role name to inspect")
	flag.Parse()

	roleName := strings.TrimSpace(*roleFlag)
	if roleName == "" && flag.NArg() >= 1 {
		roleName = flag.Arg(0)
	}
	if roleName == "" {
		fmt.Println("Usage: go run cmd/check-permissions/main.go --role Admin")
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

	role, err := repos.Role.GetByName(context.Background(), roleName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to look up role %q: %v\n", roleName, err)
		os.Exit(1)
	}

	fmt.Printf("Role: %s (protected: %v)\n", role.Name, role.Protected)
	if role.Description != "" {
		fmt.Printf("Description: %s\n", role.Description)
	}
	fmt.Println("Effective permissions:")

	for _, section := range domain.SectionOrder {
		schema := domain.PermissionSchema[section]
		if schema.Boolean {
			granted, err := authz.HasPermission(role.Permissions, section, "")
			if err != nil {
				fmt.Fprintf(os.Stderr, "  %s: schema error: %v\n", section, err)
				continue
			}
			fmt.Printf("  %-10s %v\n", section, granted)
			continue
		}

		var parts []string
		for _, action := range schema.Actions {
			granted, err := authz.HasPermission(role.Permissions, section, action)
			if err != nil {
				fmt.Fprintf(os.Stderr, "  %s.%s: schema error: %v\n", section, action, err)
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%v", action, granted))
		}
		fmt.Printf("  %-10s %s\n", section, strings.Join(parts, " "))
	}
}
