package main

import (
	"fmt"
	"log"
	"time"

	"github.com/circuitology-club/portalgo/internal/config"
	"github.com/circuitology-club/portalgo/internal/database"
	"github.com/circuitology-club/portalgo/internal/models"
	"github.com/circuitology-club/portalgo/internal/services/content"
	"github.com/circuitology-club/portalgo/internal/utils"
	"gorm.io/datatypes"
)

func main() {
	fmt.Println("🌱 Circuitology Portal Demo Data Seeder")
	fmt.Println("=" + string(make([]rune, 60)))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.Profile{},
		&models.Component{},
		&models.ComponentRequest{},
		&models.ComponentReturn{},
		&models.SiteContent{},
		&models.TeamMember{},
		&models.Notification{},
		&models.Event{},
		&models.Project{},
		&models.ActivityLog{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	var componentCount int64
	db.Model(&models.Component{}).Count(&componentCount)
	if componentCount > 0 {
		fmt.Printf("⚠️  Database already has %d components. Clear it first? (y/N): ", componentCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		// Clear existing data
		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE activity_logs CASCADE")
		db.Exec("TRUNCATE TABLE notifications CASCADE")
		db.Exec("TRUNCATE TABLE component_returns CASCADE")
		db.Exec("TRUNCATE TABLE component_requests CASCADE")
		db.Exec("TRUNCATE TABLE components CASCADE")
		db.Exec("TRUNCATE TABLE team_members CASCADE")
		db.Exec("TRUNCATE TABLE events CASCADE")
		db.Exec("TRUNCATE TABLE projects CASCADE")
		db.Exec("TRUNCATE TABLE site_content CASCADE")
		db.Exec("TRUNCATE TABLE profiles CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("📦 Creating demo data...")
	fmt.Println()

	// 1. Create admin account
	fmt.Println("👤 Creating admin account...")
	adminPass := cfg.Club.SeedAdminPass
	if adminPass == "" {
		adminPass = "changeme123"
		fmt.Println("⚠️  SEED_ADMIN_PASSWORD not set, using default: changeme123")
	}
	hash, err := utils.HashPassword(adminPass)
	if err != nil {
		log.Fatalf("❌ Failed to hash admin password: %v", err)
	}
	admin := models.Profile{
		Name:     "Club Admin",
		Email:    cfg.Club.SeedAdminEmail,
		Password: hash,
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("❌ Failed to create admin: %v", err)
	}
	fmt.Printf("   ✓ Created admin: %s\n", admin.Email)
	fmt.Println()

	// 2. Create components
	fmt.Println("🔩 Creating components...")
	components := []models.Component{
		{
			Name:              "Arduino Uno R3",
			Category:          "Microcontrollers",
			Description:       "ATmega328P based microcontroller board, perfect for beginners and prototyping",
			Specifications:    datatypes.JSON([]byte(`{"voltage":"5V","digitalPins":14,"analogPins":6,"flashMemory":"32KB"}`)),
			TotalQuantity:     25,
			AvailableQuantity: 20,
			IssuedQuantity:    5,
			LowStockThreshold: 5,
			Location:          strPtr("Shelf A-1"),
			CreatedBy:         &admin.ID,
		},
		{
			Name:              "Raspberry Pi 4 Model B",
			Category:          "Single Board Computers",
			Description:       "Quad-core ARM Cortex-A72 computer with 4GB RAM for advanced projects",
			Specifications:    datatypes.JSON([]byte(`{"ram":"4GB","cpu":"Quad-core Cortex-A72","connectivity":"WiFi, Bluetooth, Ethernet"}`)),
			TotalQuantity:     10,
			AvailableQuantity: 7,
			IssuedQuantity:    2,
			DamagedQuantity:   1,
			LowStockThreshold: 3,
			Location:          strPtr("Shelf A-2"),
			CreatedBy:         &admin.ID,
		},
		{
			Name:              "Breadboard (830 points)",
			Category:          "Prototyping",
			Description:       "Solderless breadboard for circuit prototyping",
			Specifications:    datatypes.JSON([]byte(`{"points":830,"size":"165x55mm"}`)),
			TotalQuantity:     50,
			AvailableQuantity: 45,
			IssuedQuantity:    5,
			LowStockThreshold: 10,
			Location:          strPtr("Shelf B-1"),
			CreatedBy:         &admin.ID,
		},
		{
			Name:              "HC-SR04 Ultrasonic Sensor",
			Category:          "Sensors",
			Description:       "Ultrasonic distance sensor, 2cm to 400cm range",
			Specifications:    datatypes.JSON([]byte(`{"range":"2-400cm","voltage":"5V","accuracy":"3mm"}`)),
			TotalQuantity:     30,
			AvailableQuantity: 28,
			IssuedQuantity:    2,
			LowStockThreshold: 8,
			Location:          strPtr("Drawer C-3"),
			CreatedBy:         &admin.ID,
		},
		{
			Name:              "SG90 Micro Servo",
			Category:          "Actuators",
			Description:       "9g micro servo motor with 180 degree rotation",
			Specifications:    datatypes.JSON([]byte(`{"torque":"1.8kg/cm","rotation":"180°","voltage":"4.8-6V"}`)),
			TotalQuantity:     20,
			AvailableQuantity: 20,
			LowStockThreshold: 5,
			Location:          strPtr("Drawer C-1"),
			CreatedBy:         &admin.ID,
		},
	}

	for i := range components {
		if err := components[i].CheckQuantities(); err != nil {
			log.Fatalf("❌ Bad seed counters for %s: %v", components[i].Name, err)
		}
		if err := db.Create(&components[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create component %s: %v", components[i].Name, err)
		} else {
			fmt.Printf("   ✓ Created component: %s (%d available)\n", components[i].Name, components[i].AvailableQuantity)
		}
	}
	fmt.Printf("✅ Created %d components\n\n", len(components))

	// 3. Create team members
	fmt.Println("🧑‍🤝‍🧑 Creating team members...")
	team := []models.TeamMember{
		{Name: "Sarah Chen", Role: "President", Email: "president@circuitology.club", SortOrder: 1, IsActive: true},
		{Name: "Marcus Webb", Role: "Vice President", Email: "vp@circuitology.club", SortOrder: 2, IsActive: true},
		{Name: "Priya Sharma", Role: "Inventory Manager", Email: "inventory@circuitology.club", SortOrder: 3, IsActive: true},
		{Name: "Tom Okafor", Role: "Events Coordinator", Email: "events@circuitology.club", SortOrder: 4, IsActive: true},
	}
	for _, m := range team {
		if err := db.Create(&m).Error; err != nil {
			log.Printf("⚠️  Failed to create team member %s: %v", m.Name, err)
		} else {
			fmt.Printf("   ✓ Created team member: %s (%s)\n", m.Name, m.Role)
		}
	}
	fmt.Printf("✅ Created %d team members\n\n", len(team))

	// 4. Create events
	fmt.Println("📅 Creating events...")
	events := []models.Event{
		{
			Title:           "Intro to Arduino Workshop",
			Description:     "Hands-on session covering digital IO, PWM and sensor wiring. Boards provided.",
			Date:            time.Now().Add(7 * 24 * time.Hour),
			Time:            "16:00",
			Location:        "Electronics Lab, Room 204",
			MaxParticipants: 20,
			Tags:            datatypes.NewJSONSlice([]string{"workshop", "beginner", "arduino"}),
			CreatedBy:       admin.ID,
		},
		{
			Title:           "Line Follower Robot Competition",
			Description:     "Annual robotics competition. Teams of up to three, kits available from the inventory desk.",
			Date:            time.Now().Add(30 * 24 * time.Hour),
			Time:            "10:00",
			Location:        "Main Auditorium",
			MaxParticipants: 0, // unlimited
			Tags:            datatypes.NewJSONSlice([]string{"competition", "robotics"}),
			CreatedBy:       admin.ID,
		},
	}
	for _, e := range events {
		if err := db.Create(&e).Error; err != nil {
			log.Printf("⚠️  Failed to create event %s: %v", e.Title, err)
		} else {
			fmt.Printf("   ✓ Created event: %s\n", e.Title)
		}
	}
	fmt.Printf("✅ Created %d events\n\n", len(events))

	// 5. Seed site content with defaults
	fmt.Println("📝 Seeding site content...")
	store := content.NewStore(db.DB)
	if err := store.Reset(); err != nil {
		log.Printf("⚠️  Failed to seed site content: %v", err)
	} else {
		fmt.Printf("✅ Seeded %d content entries\n\n", len(content.Defaults()))
	}

	// Summary
	fmt.Println()
	fmt.Println("=" + string(make([]rune, 60)))
	fmt.Println("🎉 Demo data created successfully!")
	fmt.Println()
	fmt.Println("📊 Summary:")
	fmt.Printf("   • 1 super admin account (%s)\n", admin.Email)
	fmt.Printf("   • %d components\n", len(components))
	fmt.Printf("   • %d team members\n", len(team))
	fmt.Printf("   • %d events\n", len(events))
	fmt.Printf("   • %d content entries\n", len(content.Defaults()))
	fmt.Println()
	fmt.Println("🌐 Start the server:")
	fmt.Println("   go run ./cmd/api/main.go")
	fmt.Printf("   Then visit: http://localhost:%s\n", cfg.Port)
	fmt.Println("=" + string(make([]rune, 60)))
}

func strPtr(s string) *string {
	return &s
}
