// Command seed applies the schema and loads a small data set for local
// development: three users, ten companies, and a client per user.
package main

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/entitydesk/entity-api/internal/core/domain"
	"github.com/entitydesk/entity-api/internal/infrastructure/config"
	"github.com/entitydesk/entity-api/internal/infrastructure/db/postgres"
	"github.com/entitydesk/entity-api/pkg/logger"
)

type seedUser struct {
	username, email, password, role string
}

type seedCompany struct {
	name, industry string
	employees      int64
	revenue        int64
}

var users = []seedUser{
	{"admin", "admin@example.com", "admin_password_123", domain.RoleAdmin},
	{"john_doe", "john@example.com", "user_password_123", domain.RoleUser},
	{"jane_smith", "jane@example.com", "user_password_123", domain.RoleUser},
}

var companies = []seedCompany{
	{"Amazon", "E-commerce", 1500000, 469000000000},
	{"Google", "Technology", 190234, 282836000000},
	{"Microsoft", "Technology", 221000, 198000000000},
	{"Walmart", "Retail", 2100000, 648000000000},
	{"Goldman Sachs", "Finance", 40000, 59000000000},
	{"JPMorgan Chase", "Finance", 316000, 161000000000},
	{"Apple", "Technology", 164000, 394000000000},
	{"eBay", "E-commerce", 12800, 5700000000},
	{"Target", "Retail", 440000, 109000000000},
	{"Morgan Stanley", "Finance", 80000, 54000000000},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema setup failed")
	}

	log.Info().Msg("seeding users")
	userIDs := make([]int64, 0, len(users))
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		var id int64
		err = pool.QueryRow(ctx, `
			INSERT INTO users (username, email, password, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			u.username, u.email, string(hash), u.role,
		).Scan(&id)
		if err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("insert user")
		}
		userIDs = append(userIDs, id)
	}

	log.Info().Msg("seeding companies")
	companyIDs := make([]int64, 0, len(companies))
	for _, co := range companies {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO companies (name, industry, employees, revenue)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			co.name, co.industry, co.employees, co.revenue,
		).Scan(&id)
		if err != nil {
			log.Fatal().Err(err).Str("name", co.name).Msg("insert company")
		}
		companyIDs = append(companyIDs, id)
	}

	log.Info().Msg("seeding clients")
	for i, userID := range userIDs {
		_, err := pool.Exec(ctx, `
			INSERT INTO clients (name, email, phone, user_id, company_id)
			VALUES ($1, $2, $3, $4, $5)`,
			users[i].username+" client", "client."+users[i].username+"@example.com",
			"5550100", userID, companyIDs[i],
		)
		if err != nil {
			log.Fatal().Err(err).Int64("user_id", userID).Msg("insert client")
		}
	}

	log.Info().Int("users", len(userIDs)).Int("companies", len(companyIDs)).Msg("seed complete")
}
