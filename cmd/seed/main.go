package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/nareshkanna-nk/Young-wealth/config"
	"github.com/nareshkanna-nk/Young-wealth/internal/application"
	pginfra "github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/postgres"
	"github.com/nareshkanna-nk/Young-wealth/pkg/helpers"
)

var sampleCourses = []application.Fields{
	{
		"title":       "Money Basics for Teens",
		"description": "Saving, spending and the first bank account",
		"category":    "school",
		"level":       "beginner",
		"price":       "0",
		"duration":    "60",
	},
	{
		"title":       "Investing 101",
		"description": "Stocks, bonds, mutual funds and how to compare them",
		"category":    "college",
		"level":       "intermediate",
		"price":       "999",
		"duration":    "180",
	},
	{
		"title":       "Retirement Planning",
		"description": "Provident funds, pensions and long term allocation",
		"category":    "employee",
		"level":       "advanced",
		"price":       "1499",
		"duration":    "240",
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := application.NewUserService(pginfra.NewUserRepository(pool), nil, logger)
	admin, created, err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if created {
		fmt.Printf("seeded admin: id=%s email=%s password=%s\n", admin.ID, admin.Email, cfg.AdminPassword)
	} else {
		fmt.Printf("admin %s already present\n", cfg.AdminEmail)
	}

	courses := application.NewCourseService(pginfra.NewCourseRepository(pool), nil, logger)
	existing, err := courses.List(ctx)
	if err != nil {
		log.Fatalf("failed to list courses: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d courses already present, skipping samples\n", len(existing))
		return
	}
	for _, in := range sampleCourses {
		c, err := courses.Create(ctx, in, nil)
		if err != nil {
			log.Fatalf("failed to seed course %q: %v", in["title"], err)
		}
		fmt.Printf("seeded course: id=%s title=%s\n", c.ID, c.Title)
	}
}
