package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "cafe-ops-system.com/cafe-ops-system/internal/configs"
	"cafe-ops-system.com/cafe-ops-system/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed <fixture.json>",
	Short: "Load team, template and slot catalogs from a fixture file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.New(cfg.DatabaseDSN)

		fixture, err := seed.Load(database, args[0])
		if err != nil {
			return err
		}

		log.Printf("seeded %d teams, %d templates, %d slots",
			len(fixture.Teams), len(fixture.Templates), len(fixture.Slots))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
