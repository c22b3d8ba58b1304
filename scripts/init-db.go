package main

import (
	"fmt"
	"log"
	"parts_market/internal/config"
	"parts_market/internal/database"
	"parts_market/internal/models"
	"parts_market/internal/repository"
	"parts_market/internal/services"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		"vendor_order_bids",
		&models.Notification{},
		&models.VendorOrder{},
		&models.Bid{},
		&models.RFQItem{},
		&models.RFQ{},
		&models.User{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Create tables with proper schema
	fmt.Println("Creating tables...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed demo accounts
	fmt.Println("Seeding demo accounts...")
	userService := services.NewUserService(repository.NewUserRepository(db))

	demoUsers := []struct {
		user     models.User
		password string
	}{
		{
			user: models.User{
				Username:    "demo_workshop",
				PhoneNumber: "01700000001",
				Role:        models.RoleWorkshop,
				ShopName:    "City Auto Workshop",
				ShopAddress: "12 Workshop Road",
			},
			password: "workshop123",
		},
		{
			user: models.User{
				Username:    "demo_vendor_a",
				PhoneNumber: "01700000002",
				Role:        models.RoleVendor,
				ShopName:    "Alpha Parts House",
			},
			password: "vendor123",
		},
		{
			user: models.User{
				Username:    "demo_vendor_b",
				PhoneNumber: "01700000003",
				Role:        models.RoleVendor,
				ShopName:    "Bravo Spares",
			},
			password: "vendor123",
		},
	}

	for _, demo := range demoUsers {
		user := demo.user
		if err := userService.CreateUser(&user, demo.password); err != nil {
			log.Printf("Warning: failed to create %s: %v", demo.user.Username, err)
			continue
		}
		fmt.Printf("  %s (%s) token: %s\n", user.Username, user.Role, user.APIToken)
	}

	fmt.Println("Done.")
}
