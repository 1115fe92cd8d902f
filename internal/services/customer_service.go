// internal/services/customer_service.go
package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

const defaultReminderTime = "06:00:00"

var reminderTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)

type CustomerService struct {
	store store.Store
}

type SetReminderRequest struct {
	ReminderDate string `json:"reminder_date" validate:"required"`
	ReminderTime string `json:"reminder_time"`
}

func NewCustomerService(store store.Store) *CustomerService {
	return &CustomerService{store: store}
}

// ListItems returns the customer's claimed items, soonest expiry first.
func (s *CustomerService) ListItems(ctx context.Context, customerID uuid.UUID) ([]models.CustomerItem, error) {
	return s.store.ListCustomerItems(ctx, customerID)
}

// MarkUsed flips an item to USED. Marking an already used item is a no-op.
func (s *CustomerService) MarkUsed(ctx context.Context, customerID, itemID uuid.UUID) error {
	return s.store.MarkCustomerItemUsed(ctx, customerID, itemID)
}

// SetReminder schedules an expiry reminder on one of the customer's items.
// The time of day defaults to early morning when omitted.
func (s *CustomerService) SetReminder(ctx context.Context, customerID, itemID uuid.UUID, req *SetReminderRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}

	date, err := time.Parse("2006-01-02", req.ReminderDate)
	if err != nil {
		return fmt.Errorf("%w: reminder_date must be YYYY-MM-DD", store.ErrInvalidInput)
	}

	timeOfDay := req.ReminderTime
	if timeOfDay == "" {
		timeOfDay = defaultReminderTime
	}
	if !reminderTimePattern.MatchString(timeOfDay) {
		return fmt.Errorf("%w: reminder_time must be HH:MM:SS", store.ErrInvalidInput)
	}

	return s.store.SetCustomerItemReminder(ctx, customerID, itemID, date, timeOfDay)
}
