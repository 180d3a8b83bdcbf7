package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"salesdash/internal/models"
	"salesdash/internal/tableau"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	godotenv.Load()

	luid := flag.String("luid", "", "datasource LUID to query (required)")
	months := flag.Int("months", 3, "restrict to the last N months; 0 fetches everything")
	out := flag.String("out", "site/data/latest.json", "output file")
	flag.Parse()

	if *luid == "" {
		log.Fatal("Usage: fetch -luid <DATASOURCE_LUID> [-months N] [-out path]")
	}

	creds, err := tableau.CredentialsFromEnv()
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}

	ctx := context.Background()
	client := tableau.NewClient(creds)
	if err := client.SignIn(ctx); err != nil {
		log.Fatalf("%v", err)
	}
	defer client.SignOut(ctx)

	records, err := client.QueryDatasource(ctx, *luid, *months)
	if err != nil {
		log.Fatalf("%v", err)
	}

	monthsLabel := "ALL"
	if *months > 0 {
		monthsLabel = strconv.Itoa(*months)
	}
	ds := models.Dataset{
		Meta: models.Meta{
			GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
			Source:         "tableau",
			DatasourceLUID: *luid,
			Months:         monthsLabel,
		},
		Records: records,
	}

	if err := writeDataset(*out, &ds); err != nil {
		log.Fatalf("write: %v", err)
	}
	log.Printf("Saved %d records to %s", len(records), *out)
}

func writeDataset(path string, ds *models.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
