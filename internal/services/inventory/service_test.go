package inventory

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/circuitology-club/portalgo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPgPort = 5442

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
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Profile{},
		&models.Component{},
		&models.ComponentRequest{},
		&models.ComponentReturn{},
		&models.Notification{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func seedMemberAndComponent(t *testing.T, db *gorm.DB, available int) (string, *models.Component) {
	t.Helper()

	member := models.Profile{Name: "Test Member", Email: "member@test.local", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&member).Error)

	component := models.Component{
		Name:              "Arduino Uno R3",
		Category:          "Microcontrollers",
		Description:       "ATmega328P board",
		TotalQuantity:     available,
		AvailableQuantity: available,
	}
	require.NoError(t, db.Create(&component).Error)
	return member.ID, &component
}

func reload(t *testing.T, db *gorm.DB, id string) *models.Component {
	t.Helper()
	var c models.Component
	require.NoError(t, db.First(&c, "id = ?", id).Error)
	return &c
}

func TestRequestLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil)
	memberID, component := seedMemberAndComponent(t, db, 2)

	// Over-quantity submission is rejected and leaves no record
	_, err := svc.Submit(memberID, SubmitInput{
		ComponentID:        component.ID,
		Quantity:           3,
		Purpose:            "LED matrix prototype",
		ExpectedReturnDate: time.Now().Add(72 * time.Hour),
	})
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
	var count int64
	db.Model(&models.ComponentRequest{}).Count(&count)
	assert.Zero(t, count)

	request, err := svc.Submit(memberID, SubmitInput{
		ComponentID:        component.ID,
		Quantity:           2,
		Purpose:            "LED matrix prototype",
		ExpectedReturnDate: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, request.Status)

	// Approval stamps the approver but moves no stock
	request, err = svc.Approve(request.ID, memberID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, request.Status)
	require.NotNil(t, request.ApprovedBy)
	assert.Equal(t, memberID, *request.ApprovedBy)
	c := reload(t, db, component.ID)
	assert.Equal(t, 2, c.AvailableQuantity)
	assert.Equal(t, 0, c.IssuedQuantity)

	// Issuance moves the stock
	request, err = svc.Issue(request.ID, memberID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusIssued, request.Status)
	assert.NotNil(t, request.IssuedDate)
	c = reload(t, db, component.ID)
	assert.Equal(t, 0, c.AvailableQuantity)
	assert.Equal(t, 2, c.IssuedQuantity)

	// Issued requests accept neither a second issue nor a rejection
	_, err = svc.Issue(request.ID, memberID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	_, err = svc.Reject(request.ID, memberID, nil)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	// Return books the stock back in and records the outcome
	request, err = svc.Return(request.ID, memberID, ReturnInput{Condition: models.ReturnConditionGood})
	require.NoError(t, err)
	assert.Equal(t, models.StatusReturned, request.Status)
	c = reload(t, db, component.ID)
	assert.Equal(t, 2, c.AvailableQuantity)
	assert.Equal(t, 0, c.IssuedQuantity)
	assert.NoError(t, c.CheckQuantities())

	var returned models.ComponentReturn
	require.NoError(t, db.First(&returned, "request_id = ?", request.ID).Error)
	assert.Equal(t, 2, returned.QuantityReturned)
	assert.Equal(t, models.ReturnConditionGood, returned.Condition)

	// Returned is terminal
	_, err = svc.Approve(request.ID, memberID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestIssueGuardsAgainstOverlappingApprovals(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil)
	memberID, component := seedMemberAndComponent(t, db, 2)

	submit := func() *models.ComponentRequest {
		req, err := svc.Submit(memberID, SubmitInput{
			ComponentID:        component.ID,
			Quantity:           2,
			Purpose:            "Robot drive train",
			ExpectedReturnDate: time.Now().Add(72 * time.Hour),
		})
		require.NoError(t, err)
		return req
	}

	// Both requests pass the submission check against the same stock and
	// both get approved; only one can actually be issued.
	first := submit()
	second := submit()
	_, err := svc.Approve(first.ID, memberID)
	require.NoError(t, err)
	_, err = svc.Approve(second.ID, memberID)
	require.NoError(t, err)

	_, err = svc.Issue(first.ID, memberID)
	require.NoError(t, err)

	_, err = svc.Issue(second.ID, memberID)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	// The losing request stays approved and the counters are untouched by
	// the failed issuance
	var loser models.ComponentRequest
	require.NoError(t, db.First(&loser, "id = ?", second.ID).Error)
	assert.Equal(t, models.StatusApproved, loser.Status)

	c := reload(t, db, component.ID)
	assert.Equal(t, 0, c.AvailableQuantity)
	assert.Equal(t, 2, c.IssuedQuantity)
	assert.NoError(t, c.CheckQuantities())
}

func TestStatusChangeWritesNotification(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil)
	memberID, component := seedMemberAndComponent(t, db, 5)

	request, err := svc.Submit(memberID, SubmitInput{
		ComponentID:        component.ID,
		Quantity:           1,
		Purpose:            "Sensor calibration rig",
		ExpectedReturnDate: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Approve(request.ID, memberID)
	require.NoError(t, err)

	var notification models.Notification
	require.NoError(t, db.First(&notification, "user_id = ?", memberID).Error)
	assert.Equal(t, models.NotificationSuccess, notification.Type)
	assert.Contains(t, notification.Message, models.StatusApproved)

	var logCount int64
	db.Model(&models.ActivityLog{}).Count(&logCount)
	assert.GreaterOrEqual(t, logCount, int64(2), "submit and approve should both be logged")
}