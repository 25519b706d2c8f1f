package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/autoshop/autoshop-api/internal/auth"
	"github.com/autoshop/autoshop-api/internal/config"
	"github.com/autoshop/autoshop-api/internal/postgres"
)

// Guard rails for demo data only; the API itself never silently rewrites
// a stored price or stock value.
var (
	minPrice = decimal.NewFromFloat(0.50)
	maxStock = 100000
)

type seedProduct struct {
	sku, name, desc, category string
	price                     decimal.Decimal
	stock                     int
}

var categories = []struct{ name, desc string }{
	{"Engine", "Engine parts and consumables"},
	{"Brakes", "Pads, discs and hydraulics"},
	{"Electrical", "Batteries, bulbs and sensors"},
}

var products = []seedProduct{
	{"OIL-5W30-4L", "Synthetic Oil 5W-30 4L", "Fully synthetic engine oil", "Engine", decimal.NewFromFloat(34.90), 120},
	{"FIL-OIL-STD", "Oil Filter", "Spin-on oil filter", "Engine", decimal.NewFromFloat(8.50), 300},
	{"PAD-FRT-CER", "Ceramic Brake Pads, Front", "Low-dust ceramic pad set", "Brakes", decimal.NewFromFloat(42.00), 80},
	{"DSC-FRT-280", "Brake Disc 280mm", "Vented front disc", "Brakes", decimal.NewFromFloat(55.75), 60},
	{"BAT-12V-60", "Battery 12V 60Ah", "Maintenance-free starter battery", "Electrical", decimal.NewFromFloat(89.99), 40},
	{"BLB-H7-55W", "Halogen Bulb H7 55W", "Standard halogen headlight bulb", "Electrical", decimal.NewFromFloat(4.25), 500},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	email := getenv("SEED_USER_EMAIL", "demo@autoshop.local")
	password := getenv("SEED_USER_PASSWORD", "autoshop1demo")
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	if _, err := db.Exec(ctx,
		`INSERT INTO users (id, email, hashed_password, full_name)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(), email, hash, "Demo User"); err != nil {
		log.Fatalf("seed user: %v", err)
	}

	catIDs := map[string]string{}
	for _, c := range categories {
		var id string
		err := db.QueryRow(ctx, `SELECT id FROM categories WHERE name = $1`, c.name).Scan(&id)
		if err != nil {
			id = uuid.NewString()
			if _, err := db.Exec(ctx,
				`INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)`,
				id, c.name, c.desc); err != nil {
				log.Fatalf("seed category %q: %v", c.name, err)
			}
		}
		catIDs[c.name] = id
	}

	for _, p := range products {
		price := p.price
		if price.LessThan(minPrice) {
			price = minPrice
		}
		stock := p.stock
		if stock > maxStock {
			stock = maxStock
		}
		if _, err := db.Exec(ctx,
			`INSERT INTO products (id, sku, name, description, price, stock, category_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (sku) DO NOTHING`,
			uuid.NewString(), p.sku, p.name, p.desc, price, stock, catIDs[p.category]); err != nil {
			log.Fatalf("seed product %q: %v", p.sku, err)
		}
	}

	log.Printf("seeded %d categories, %d products, demo user %s", len(categories), len(products), email)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
