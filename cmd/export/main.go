package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"

	"coatlas/internal/colorscale"
	"coatlas/internal/config"
	"coatlas/internal/dataset"
	"coatlas/internal/geo"
	"coatlas/internal/report"
)

// Offline XLSX export of the dashboard's year tables: one sheet per year, or
// a single year with -year. Reads the same dataset file and ramp settings as
// the server.
func main() {
	var (
		dataFile = flag.String("data", "", "path to the GeoJSON dataset (defaults to CO_DATA_FILE)")
		outFile  = flag.String("out", "nigeria_co_report.xlsx", "output workbook path")
		year     = flag.Int("year", 0, "export a single year instead of all years")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *dataFile == "" {
		*dataFile = appConfig.Data.GeoJSONFile
	}

	store := dataset.NewStore(*dataFile)
	if err := store.Warm(); err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	builder := report.NewBuilder(store, colorscale.RampSpec{
		Name:    appConfig.Color.Ramp,
		Classes: appConfig.Color.Classes,
	})

	workbook, err := buildWorkbook(builder, *year)
	if err != nil {
		log.Fatalf("Failed to build report: %v", err)
	}
	defer workbook.Close()

	if err := workbook.SaveAs(*outFile); err != nil {
		log.Fatalf("Failed to write %s: %v", *outFile, err)
	}
	fmt.Printf("Report written to %s\n", *outFile)
}

func buildWorkbook(builder *report.Builder, year int) (*excelize.File, error) {
	if year == 0 {
		return builder.AllYearsWorkbook()
	}
	if !geo.ValidYear(year) {
		return nil, fmt.Errorf("year %d is outside the dataset range %v", year, geo.Years)
	}
	return builder.YearWorkbook(year)
}
