package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"logistics/cmd"
	"logistics/internal/adapters/out/postgres/migrations"

	_ "github.com/lib/pq"
)

func main() {
	command := flag.String("cmd", "up", "migration command: up|down|status|version|redo|reset")
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	configs, err := cmd.LoadDBConfig(*envFile)
	if err != nil {
		exit("config", err)
	}

	db, err := sql.Open("postgres", configs.DSN())
	if err != nil {
		exit("open database", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		exit("ping database", err)
	}

	if err := migrations.Run(ctx, db, *command, flag.Args()...); err != nil {
		exit("migrate", err)
	}
}

func exit(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
