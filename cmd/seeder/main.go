package main

import (
	"context"
	"flag"
	"log"
	"os"

	"retail-bi/database"
)

var (
	dbPath = flag.String("db", "./retail.db", "sqlite `file` to create")
	orders = flag.Int("orders", 5000, "number of orders to generate")
	years  = flag.Int("years", 4, "number of calendar years of history, ending last year")
	seed   = flag.Uint64("seed", 42, "random seed")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("failed to remove %s: %v", *dbPath, err)
	}

	db, err := database.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	if err := database.CreateSchema(ctx, db); err != nil {
		log.Fatalf("%v", err)
	}

	data := generate(*seed, *orders, *years)
	if err := database.InsertStarData(ctx, db, data); err != nil {
		log.Fatalf("%v", err)
	}

	log.Printf("seeded %s: %d customers, %d products, %d order lines", *dbPath, len(data.Customers), len(data.Products), len(data.Facts))
}
