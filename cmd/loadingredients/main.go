// Command loadingredients imports the ingredient reference data from a
// CSV file with "name,measurement_unit" rows.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/foodgram/foodgram/internal/model"
	"github.com/foodgram/foodgram/internal/repository"
)

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		file        = flag.String("file", "data/ingredients.csv", "Path to the ingredients CSV file")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open csv:", err)
		os.Exit(1)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	inserted, skipped, err := load(ctx, repo, f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Printf("done: %d inserted, %d skipped\n", inserted, skipped)
}

// load reads CSV rows and upserts each ingredient. Rows already present
// (same name and unit) count as skipped.
func load(ctx context.Context, repo *repository.Repository, r io.Reader) (inserted, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return inserted, skipped, fmt.Errorf("line %d: %w", line, err)
		}

		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			return inserted, skipped, fmt.Errorf("line %d: empty name or measurement unit", line)
		}

		ok, err := repo.UpsertIngredient(ctx, &model.Ingredient{Name: name, MeasurementUnit: unit})
		if err != nil {
			return inserted, skipped, fmt.Errorf("line %d: %w", line, err)
		}
		if ok {
			inserted++
		} else {
			skipped++
		}
	}

	return inserted, skipped, nil
}
