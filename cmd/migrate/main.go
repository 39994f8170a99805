package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"nerd-math/internal/config"
	"nerd-math/internal/database"
	"nerd-math/internal/logger"

	"go.uber.org/zap"
)

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewPostgresDB(context.Background(), cfg.DB, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	mg, err := database.NewMigrator(db.DB)
	if err != nil {
		l.Fatal("Failed to prepare migrations", zap.Error(err))
	}

	switch command {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down(*steps)
	case "version":
		var version uint
		var dirty bool
		version, dirty, err = mg.Version()
		if err == nil {
			fmt.Printf("version=%d dirty=%t\n", version, dirty)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want up, down or version)\n", command)
		os.Exit(2)
	}
	if err != nil {
		l.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
	l.Info("Migration command finished", zap.String("command", command))
}
