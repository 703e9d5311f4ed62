// Command import performs the one-time bulk load of the "Onna Business"
// workbook into the item store, replacing whatever is there.
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/noahjmorrison/onnaflips/internal/database"
	"github.com/noahjmorrison/onnaflips/internal/importer"
	"github.com/noahjmorrison/onnaflips/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	workbook := "Onna Business .xlsx"
	if len(os.Args) > 1 {
		workbook = os.Args[1]
	}
	if _, err := os.Stat(workbook); err != nil {
		log.Fatalf("Could not find workbook %q: %v", workbook, err)
	}

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = filepath.Join("instance", "onna_business.db")
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			log.Fatalf("Failed to create instance directory: %v", err)
		}
	}

	db, err := database.NewConnection(driver, dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	itemRepo := repository.NewItemRepository(db)
	txManager := repository.NewTransactionManager(db)

	log.Printf("Importing from: %s", workbook)
	result, err := importer.New(itemRepo, txManager).Run(context.Background(), workbook)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	if result.Cleared > 0 {
		log.Printf("Cleared %d existing items", result.Cleared)
	}
	log.Printf("Imported %d items successfully (%d rows skipped)", result.Imported, result.Skipped)
	log.Printf("  Sold: %d", result.SoldCount)
	log.Printf("  Listed: %d", result.ListedCount)
	log.Printf("  Total profit: $%.0f", result.TotalProfit)
}
