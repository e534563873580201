package main

import (
	"database/sql"
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"tya/internal/logging"
	"tya/internal/store/postgres"
)

func main() {
	if len(os.Args) != 2 || (os.Args[1] != "up" && os.Args[1] != "down") {
		log.Fatal().Msg("usage: migrate [up|down]")
	}
	_ = godotenv.Load()
	logging.SetGlobalLogger(logging.New(logging.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: "text",
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	m, err := postgres.NewMigrator(db)
	if err != nil {
		log.Fatal().Err(err).Msg("create migrator")
	}

	switch os.Args[1] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("direction", os.Args[1]).Msg("migration failed")
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		log.Fatal().Err(verr).Msg("read schema version")
	}
	log.Info().Str("direction", os.Args[1]).Uint("version", version).Bool("dirty", dirty).Msg("migrations complete")
}
