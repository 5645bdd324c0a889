package content

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/circuitology-club/portalgo/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPgPort = 5441

// setupTestDB starts a throwaway embedded PostgreSQL for one test. Skips
// when the embedded binaries cannot be provisioned (offline CI).
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dir := t.TempDir()
	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Port(testPgPort).
		DataPath(filepath.Join(dir, "data")).
		RuntimePath(filepath.Join(dir, "runtime")).
		Logger(io.Discard))
	if err := pg.Start(); err != nil {
		t.Skipf("embedded postgres unavailable: %v", err)
	}
	t.Cleanup(func() { _ = pg.Stop() })

	dsn := fmt.Sprintf("host=localhost port=%d user=postgres password=postgres dbname=postgres sslmode=disable", testPgPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.SiteContent{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestResetRestoresDefaults(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	// Drift the content away from the defaults
	assert.NoError(t, store.Set("hero.title", "Centrifuge Club", ""))
	assert.NoError(t, store.Set("custom.banner", "members only", ""))

	all, err := store.All()
	assert.NoError(t, err)
	assert.Equal(t, "Centrifuge Club", all["hero.title"])
	assert.Equal(t, "members only", all["custom.banner"])

	// Reset followed by a read returns exactly the default map
	assert.NoError(t, store.Reset())

	all, err = store.All()
	assert.NoError(t, err)
	assert.Equal(t, Defaults(), all)

	value, err := store.Get("hero.title")
	assert.NoError(t, err)
	assert.Equal(t, "Welcome to Circuitology Club", value)
}

func TestDefaultsReturnsCopy(t *testing.T) {
	a := Defaults()
	a["hero.title"] = "tampered"

	b := Defaults()
	assert.Equal(t, "Welcome to Circuitology Club", b["hero.title"],
		"mutating a returned map must not leak into the defaults")
}

func TestDefaultsCoverExpectedKeys(t *testing.T) {
	d := Defaults()

	keys := []string{
		"hero.title", "hero.subtitle", "hero.description",
		"about.title", "about.description",
		"mission.title", "mission.description",
		"contact.title", "contact.description",
		"events.title", "events.description",
		"special.title", "special.description",
	}
	for _, key := range keys {
		assert.NotEmpty(t, d[key], "default for %q must exist", key)
	}
	assert.Len(t, d, len(keys))
}
