// weekly-report prints the current week's roll-up and record list to
// stdout, reading the same database the server writes.
package main

import (
	"context"
	"fmt"
	"os"

	"mealgacha/internal/cli"
	"mealgacha/internal/core"
	"mealgacha/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	records := services.NewRecordService(repo)
	defer records.Close()

	ctx := context.Background()

	stats, err := records.WeekStats(ctx)
	if err != nil {
		logger.Error("Failed to compute week stats", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Week %s\n", stats.Range)
	fmt.Printf("  total:   %s spent, %d kcal over %d meals\n",
		stats.TotalSpend, stats.TotalCalories, stats.TotalMeals)
	fmt.Printf("  weekday: %s spent, %d kcal over %d meals\n",
		stats.WeekdaySpend, stats.WeekdayCalories, stats.WeekdayMeals)
	fmt.Printf("  weekend: %s spent, %d kcal over %d meals\n",
		stats.WeekendSpend, stats.WeekendCalories, stats.WeekendMeals)

	list, err := records.WeekRecords(ctx)
	if err != nil {
		logger.Error("Failed to list week records", "error", err)
		os.Exit(1)
	}
	if len(list) == 0 {
		fmt.Println("\nNo meals logged this week.")
		return
	}

	fmt.Println()
	for _, rec := range list {
		fmt.Printf("  #%d %s  %s  %s  %d kcal  [%s/%s]\n",
			rec.ID,
			rec.CreatedAt.Format(core.TimeLayout),
			rec.Dish,
			rec.Amount,
			rec.Calories,
			rec.Mode,
			rec.Interval)
	}
}
