// Command migrate applies the SQL files under migrations/ in lexical order.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()

	var dir string
	flag.StringVar(&dir, "dir", "migrations", "directory containing .sql migration files")
	flag.Parse()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(fmt.Errorf("DATABASE_URL is required"))
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("open database: %w", err))
	}
	defer db.Close()

	db.SetConnMaxLifetime(time.Minute)
	if err := db.Ping(); err != nil {
		exitWithError(fmt.Errorf("ping database: %w", err))
	}

	if _, err := db.Exec(`create table if not exists schema_migrations (
		name text primary key,
		applied_at timestamptz not null default now()
	)`); err != nil {
		exitWithError(fmt.Errorf("ensure schema_migrations: %w", err))
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		exitWithError(err)
	}
	sort.Strings(files)

	applied := 0
	for _, file := range files {
		name := filepath.Base(file)
		var exists bool
		if err := db.QueryRow(`select exists(select 1 from schema_migrations where name = $1)`, name).Scan(&exists); err != nil {
			exitWithError(fmt.Errorf("check %s: %w", name, err))
		}
		if exists {
			continue
		}
		contents, err := os.ReadFile(file)
		if err != nil {
			exitWithError(fmt.Errorf("read %s: %w", name, err))
		}
		tx, err := db.Begin()
		if err != nil {
			exitWithError(err)
		}
		if _, err := tx.Exec(string(contents)); err != nil {
			_ = tx.Rollback()
			exitWithError(fmt.Errorf("apply %s: %w", name, err))
		}
		if _, err := tx.Exec(`insert into schema_migrations(name) values ($1)`, name); err != nil {
			_ = tx.Rollback()
			exitWithError(fmt.Errorf("record %s: %w", name, err))
		}
		if err := tx.Commit(); err != nil {
			exitWithError(fmt.Errorf("commit %s: %w", name, err))
		}
		fmt.Printf("applied %s\n", name)
		applied++
	}
	fmt.Printf("done: %d applied, %d total\n", applied, len(files))
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "migrate:", err)
	os.Exit(1)
}
