// Command setplan assigns a user's billing plan.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"server/internal/sqlinline"
)

func main() {
	_ = godotenv.Load()

	var (
		idFlag   string
		planFlag string
	)

	flag.StringVar(&idFlag, "id", "", "user id to update")
	flag.StringVar(&planFlag, "plan", "premium", "plan to assign (free, premium)")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	plan := strings.TrimSpace(strings.ToLower(planFlag))

	if userID == "" {
		exitWithError(errors.New("-id is required"))
	}
	switch plan {
	case "free", "premium":
	default:
		exitWithError(fmt.Errorf("unsupported plan %q", plan))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("connect database: %w", err))
	}
	defer pool.Close()

	// The --sql marker line is a plain SQL comment, safe to send as-is.
	tag, err := pool.Exec(ctx, sqlinline.QSetProfilePlan, userID, plan)
	if err != nil {
		exitWithError(fmt.Errorf("update plan: %w", err))
	}

	fmt.Printf("user %s set to plan %s (%d row)\n", userID, plan, tag.RowsAffected())
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "setplan:", err)
	os.Exit(1)
}
