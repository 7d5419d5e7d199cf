package cmd

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "cafe-ops-system.com/cafe-ops-system/internal/configs"
	"cafe-ops-system.com/cafe-ops-system/internal/lock"
	repository "cafe-ops-system.com/cafe-ops-system/internal/repositories"
	"cafe-ops-system.com/cafe-ops-system/internal/services"
)

var invalidateSlotID string

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Run the housekeeping jobs once",
	Long:  "Removes duplicate occurrences and stale scheduled occurrences; with --invalidate-slot, also invalidates one slot's scheduled occurrences",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.New(cfg.DatabaseDSN)

		occurrenceRepo := repository.NewOccurrenceRepository(database)
		slotRepo := repository.NewSlotRepository(database)
		maintenance := services.NewMaintenanceService(occurrenceRepo, slotRepo, lock.NewLocalLocker())

		ctx := context.Background()

		duplicates, err := maintenance.RemoveDuplicates(ctx)
		if err != nil {
			return err
		}
		stale, err := maintenance.RemovePastScheduled(ctx)
		if err != nil {
			return err
		}
		log.Printf("maintenance done: %d duplicates, %d stale scheduled", duplicates, stale)

		if invalidateSlotID != "" {
			invalidated, err := maintenance.InvalidateSlot(ctx, invalidateSlotID)
			if err != nil {
				return err
			}
			log.Printf("invalidated %d occurrences for slot %s", invalidated, invalidateSlotID)
		}

		return nil
	},
}

func init() {
	maintenanceCmd.Flags().StringVar(&invalidateSlotID, "invalidate-slot", "", "slot id whose scheduled occurrences should be invalidated")
	rootCmd.AddCommand(maintenanceCmd)
}
