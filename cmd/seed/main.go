// control-tower/cmd/seed/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing the dataset CSV files",
		Value:   "./data/datasets",
		EnvVars: []string{"APP_DATA_DIR"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Create the schema and load dataset CSV files into the database",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create the dataset tables if they do not exist",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runSchema,
			},
			{
				Name:  "dataset",
				Usage: "Load all dataset CSV files and record a new revision",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newDataDirFlag(),
					&cli.BoolFlag{
						Name:  "truncate",
						Usage: "Truncate existing rows before loading",
						Value: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runDatasetSeed,
			},
			{
				Name:  "all",
				Usage: "Create the schema, then load the dataset",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newDataDirFlag(),
					&cli.BoolFlag{
						Name:  "truncate",
						Usage: "Truncate existing rows before loading",
						Value: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					if err := runSchema(c); err != nil {
						return err
					}
					return runDatasetSeed(c)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
