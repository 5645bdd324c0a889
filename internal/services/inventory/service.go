package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/circuitology-club/portalgo/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate builds a SELECT ... FOR UPDATE clause
func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// Notifier pushes a notification to a connected client. The websocket hub
// satisfies this; a nil notifier disables pushes.
type Notifier interface {
	SendToUser(userID string, message interface{}) bool
}

// Service owns the component request lifecycle and all stock counter
// movements. Every transition runs in a single transaction so a failure
// leaves both the request and the counters untouched.
type Service struct {
	db       *gorm.DB
	notifier Notifier
}

// NewService creates an inventory service
func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

// SubmitInput carries a new borrow request
type SubmitInput struct {
	ComponentID        string
	Quantity           int
	Purpose            string
	ExpectedReturnDate time.Time
}

// ReturnInput carries the outcome of a return
type ReturnInput struct {
	Condition string // good, damaged, missing
	Quantity  int    // 0 means the full requested quantity
	Notes     *string
}

// Submit creates a pending request after validating the quantity against
// current availability. No counters move at submission; stock is only
// reserved at issuance, under a conditional update.
func (s *Service) Submit(userID string, in SubmitInput) (*models.ComponentRequest, error) {
	if in.Quantity < 1 {
		return nil, models.ErrInsufficientStock
	}

	var component models.Component
	if err := s.db.First(&component, "id = ?", in.ComponentID).Error; err != nil {
		return nil, err
	}
	if in.Quantity > component.AvailableQuantity {
		return nil, models.ErrInsufficientStock
	}

	request := models.ComponentRequest{
		UserID:             userID,
		ComponentID:        in.ComponentID,
		Quantity:           in.Quantity,
		Purpose:            in.Purpose,
		ExpectedReturnDate: in.ExpectedReturnDate,
		Status:             models.StatusPending,
		RequestDate:        time.Now().UTC(),
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}

	s.logActivity(userID, "request.submit", request.ID, nil, &request)
	return &request, nil
}

// Approve moves a pending request to approved. Approval does not reserve
// stock; issuance is the explicit stock-moving step.
func (s *Service) Approve(requestID, actorID string) (*models.ComponentRequest, error) {
	return s.transition(requestID, models.StatusApproved, func(tx *gorm.DB, req *models.ComponentRequest) error {
		now := time.Now().UTC()
		req.ApprovedBy = &actorID
		req.ApprovedDate = &now
		return nil
	}, actorID)
}

// Reject moves a pending or approved request to its terminal rejected state
func (s *Service) Reject(requestID, actorID string, notes *string) (*models.ComponentRequest, error) {
	return s.transition(requestID, models.StatusRejected, func(tx *gorm.DB, req *models.ComponentRequest) error {
		if notes != nil {
			req.Notes = notes
		}
		return nil
	}, actorID)
}

// Issue hands the stock out: available -= quantity, issued += quantity.
// The decrement is a conditional update so two concurrent issuances of the
// same low-stock component cannot both succeed.
func (s *Service) Issue(requestID, actorID string) (*models.ComponentRequest, error) {
	return s.transition(requestID, models.StatusIssued, func(tx *gorm.DB, req *models.ComponentRequest) error {
		res := tx.Model(&models.Component{}).
			Where("id = ? AND available_quantity >= ?", req.ComponentID, req.Quantity).
			Updates(map[string]interface{}{
				"available_quantity": gorm.Expr("available_quantity - ?", req.Quantity),
				"issued_quantity":    gorm.Expr("issued_quantity + ?", req.Quantity),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrInsufficientStock
		}
		now := time.Now().UTC()
		req.IssuedDate = &now
		return nil
	}, actorID)
}

// Return closes an issued request and books the stock back in according to
// the returned condition. A ComponentReturn row records the outcome.
func (s *Service) Return(requestID, actorID string, in ReturnInput) (*models.ComponentRequest, error) {
	if in.Condition == "" {
		in.Condition = models.ReturnConditionGood
	}
	return s.transition(requestID, models.StatusReturned, func(tx *gorm.DB, req *models.ComponentRequest) error {
		quantity := in.Quantity
		if quantity == 0 {
			quantity = req.Quantity
		}
		if quantity < 1 || quantity > req.Quantity {
			return models.ErrInsufficientStock
		}

		var component models.Component
		if err := tx.Clauses(lockForUpdate()).First(&component, "id = ?", req.ComponentID).Error; err != nil {
			return err
		}
		if err := component.ApplyReturn(quantity, in.Condition); err != nil {
			return err
		}
		if err := tx.Model(&models.Component{}).Where("id = ?", component.ID).
			Updates(map[string]interface{}{
				"total_quantity":     component.TotalQuantity,
				"available_quantity": component.AvailableQuantity,
				"issued_quantity":    component.IssuedQuantity,
				"damaged_quantity":   component.DamagedQuantity,
			}).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		record := models.ComponentReturn{
			RequestID:        req.ID,
			UserID:           req.UserID,
			ComponentID:      req.ComponentID,
			QuantityReturned: quantity,
			Condition:        in.Condition,
			ReturnDate:       now,
			VerifiedBy:       &actorID,
			Notes:            in.Notes,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		req.ReturnedDate = &now
		return nil
	}, actorID)
}

// transition loads the request, checks the lifecycle table, applies the
// per-transition mutation and persists everything in one transaction.
func (s *Service) transition(requestID, target string, apply func(tx *gorm.DB, req *models.ComponentRequest) error, actorID string) (*models.ComponentRequest, error) {
	var request models.ComponentRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate()).First(&request, "id = ?", requestID).Error; err != nil {
			return err
		}

		before := request
		if !models.CanTransition(request.Status, target) {
			return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, request.Status, target)
		}

		request.Status = target
		if err := apply(tx, &request); err != nil {
			return err
		}
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		return s.logActivityTx(tx, actorID, "request."+target, request.ID, &before, &request)
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatusChange(&request)
	return &request, nil
}

// notifyStatusChange writes a notification row for the requester and pushes
// it over the websocket feed when they are connected.
func (s *Service) notifyStatusChange(req *models.ComponentRequest) {
	title := "Request " + req.Status
	kind := models.NotificationInfo
	switch req.Status {
	case models.StatusApproved, models.StatusReturned:
		kind = models.NotificationSuccess
	case models.StatusRejected:
		kind = models.NotificationError
	}

	notification := models.Notification{
		UserID:  &req.UserID,
		Type:    kind,
		Title:   title,
		Message: fmt.Sprintf("Your component request is now %s.", req.Status),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		// Notification failure must not undo the transition
		return
	}
	if s.notifier != nil {
		s.notifier.SendToUser(req.UserID, map[string]interface{}{
			"type":         "NOTIFICATION",
			"notification": notification,
		})
	}
}

func (s *Service) logActivity(actorID, action, recordID string, oldValue, newValue interface{}) {
	_ = s.logActivityTx(s.db, actorID, action, recordID, oldValue, newValue)
}

func (s *Service) logActivityTx(tx *gorm.DB, actorID, action, recordID string, oldValue, newValue interface{}) error {
	entry := models.ActivityLog{
		Action:   action,
		Entity:   models.ComponentRequest{}.TableName(),
		RecordID: &recordID,
	}
	if actorID != "" {
		entry.UserID = &actorID
	}
	if oldValue != nil {
		if raw, err := json.Marshal(oldValue); err == nil {
			entry.OldValues = datatypes.JSON(raw)
		}
	}
	if newValue != nil {
		if raw, err := json.Marshal(newValue); err == nil {
			entry.NewValues = datatypes.JSON(raw)
		}
	}
	return tx.Create(&entry).Error
}

// IsNotFound reports whether err means the request or component is missing
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
