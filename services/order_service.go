package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"mime/multipart"
	"strings"

	"github.com/ohm-hive/orders-api/models"
	"github.com/ohm-hive/orders-api/pricing"
	"github.com/ohm-hive/orders-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxOrderNumberAttempts bounds the retries after an order number collision
const maxOrderNumberAttempts = 5

// Validation error codes returned to clients
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidServiceType = "INVALID_SERVICE_TYPE"
	CodeInvalidStatus      = "INVALID_STATUS"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")
	ErrStorage              = errors.New("file storage failure")
)

// ValidationError is a client error with a machine-readable code
type ValidationError struct {
	Code    string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// OrderNumberSource hands out candidate order numbers
type OrderNumberSource interface {
	Next() string
}

// OrderInput is a customer's submission
type OrderInput struct {
	FirstName      string
	LastName       string
	Phone          string
	Email          string
	ServiceType    string
	ServiceDetails map[string]interface{}
	Signature      string

	// costs as computed by the form; compared against the server quote only
	ClientCosts models.CostBreakdown
	ClientTotal *float64
}

// OrderUpdate is a partial admin update. Nil fields are left unchanged;
// TotalCostSet distinguishes an explicit null total from an absent one.
type OrderUpdate struct {
	Status          *string
	CalculatedCosts models.CostBreakdown
	TotalCost       *float64
	TotalCostSet    bool
}

// OrderService implements order intake and administration
type OrderService struct {
	db          *gorm.DB
	attachments *AttachmentService
	numbers     OrderNumberSource
}

var orderServiceInstance *OrderService

// NewOrderService creates an order service storing attachments in store
func NewOrderService(db *gorm.DB, store FileStore) *OrderService {
	return &OrderService{
		db:          db,
		attachments: NewAttachmentService(store),
		numbers:     NewOrderNumberGenerator(),
	}
}

// InitOrderService creates the global order service
func InitOrderService(db *gorm.DB, store FileStore) *OrderService {
	orderServiceInstance = NewOrderService(db, store)
	return orderServiceInstance
}

// GetOrderService returns the initialized order service
func GetOrderService() *OrderService {
	return orderServiceInstance
}

// SetOrderService sets the order service instance (primarily for testing)
func SetOrderService(svc *OrderService) {
	orderServiceInstance = svc
}

// WithNumberSource replaces the order number generator
func (s *OrderService) WithNumberSource(src OrderNumberSource) *OrderService {
	s.numbers = src
	return s
}

// CreateOrder validates a submission, prices it, stores its attachments and
// saves the order with its file rows in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, input OrderInput, files []*multipart.FileHeader) (*models.Order, error) {
	st, err := validateInput(&input)
	if err != nil {
		return nil, err
	}

	quote, err := pricing.QuoteDetails(st, input.ServiceDetails)
	if err != nil {
		return nil, &ValidationError{Code: CodeValidation, Message: err.Error(), Err: err}
	}
	if (input.ClientCosts != nil || input.ClientTotal != nil) && !quote.Matches(input.ClientCosts, input.ClientTotal) {
		log.Printf("Client cost estimate for %s %s differs from server quote %s, using server quote",
			input.Email, st, quote.Display("en"))
	}

	stored, err := s.attachments.StoreAll(ctx, files)
	if err != nil {
		var fileErr *utils.FileUploadError
		if errors.As(err, &fileErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	details := input.ServiceDetails
	if details == nil {
		details = map[string]interface{}{}
	}
	order := &models.Order{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Phone:          input.Phone,
		Email:          input.Email,
		ServiceType:    st,
		ServiceDetails: datatypes.JSONMap(details),
		Status:         models.StatusPending,
		Signature:      input.Signature,
	}
	order.SetCosts(quote.Breakdown)

	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		order.ID = 0
		order.OrderNumber = s.numbers.Next()
		rows := Records(0, stored)

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
				return err
			}
			if len(rows) == 0 {
				return nil
			}
			for i := range rows {
				rows[i].OrderID = order.ID
			}
			return tx.Create(&rows).Error
		})
		if err == nil {
			order.Files = rows
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			s.attachments.Discard(ctx, stored)
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		log.Printf("Order number %s already taken (attempt %d/%d)", order.OrderNumber, attempt, maxOrderNumberAttempts)
	}
	if err != nil {
		s.attachments.Discard(ctx, stored)
		return nil, fmt.Errorf("%w after %d attempts", ErrOrderNumberExhausted, maxOrderNumberAttempts)
	}

	if order.Files == nil {
		order.Files = []models.UploadedFile{}
	}
	s.attachments.Link(ctx, order.Files)
	return order, nil
}

func validateInput(input *OrderInput) (models.ServiceType, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.TrimSpace(input.Email)

	required := []struct{ name, value string }{
		{"firstName", input.FirstName},
		{"lastName", input.LastName},
		{"phone", input.Phone},
		{"email", input.Email},
	}
	for _, f := range required {
		if f.value == "" {
			return "", invalid("%s is required", f.name)
		}
	}
	if !strings.Contains(input.Email, "@") {
		return "", invalid("email is not a valid address")
	}

	st, ok := models.ParseServiceType(input.ServiceType)
	if !ok {
		return "", &ValidationError{
			Code:    CodeInvalidServiceType,
			Message: fmt.Sprintf("Unknown service type %q", input.ServiceType),
			Err:     pricing.ErrUnknownServiceType,
		}
	}

	if !strings.HasPrefix(input.Signature, "data:image/") {
		return "", invalid("signature must be a data:image URL")
	}
	return st, nil
}

// ListOrders returns every order, newest first, with its files
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Preload("Files").Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	for i := range orders {
		s.attachments.Link(ctx, orders[i].Files)
	}
	return orders, nil
}

// GetOrderByNumber loads one order with its files
func (s *OrderService) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Files").Where("order_number = ?", number).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	s.attachments.Link(ctx, order.Files)
	return &order, nil
}

// UpdateOrder applies an admin update to status and costs
func (s *OrderService) UpdateOrder(ctx context.Context, number string, upd OrderUpdate) (*models.Order, error) {
	order, err := s.GetOrderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		status := models.OrderStatus(strings.ToLower(strings.TrimSpace(*upd.Status)))
		if !status.Valid() {
			return nil, &ValidationError{
				Code:    CodeInvalidStatus,
				Message: fmt.Sprintf("Invalid status %q", *upd.Status),
				Err:     ErrInvalidStatus,
			}
		}
		order.Status = status
	}

	if upd.CalculatedCosts != nil || upd.TotalCostSet {
		costs := order.Costs().Clone()
		if upd.CalculatedCosts != nil {
			costs = upd.CalculatedCosts.Clone()
		}
		for k, v := range costs {
			if v != nil && (*v < 0 || math.IsNaN(*v)) {
				return nil, invalid("cost component %s must not be negative", k)
			}
		}
		if upd.TotalCostSet {
			if costs, err = applyTotal(costs, upd.TotalCost); err != nil {
				return nil, err
			}
		}
		order.SetCosts(costs)
	}

	if err := order.CheckTotal(); err != nil {
		return nil, fmt.Errorf("order %s: %w", order.OrderNumber, err)
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

// applyTotal reconciles an admin-supplied total with the breakdown.
// On a breakdown whose only open component is baseCost the total is the
// engineer's quote and fixes baseCost; a null total reopens baseCost.
func applyTotal(costs models.CostBreakdown, total *float64) (models.CostBreakdown, error) {
	if total == nil {
		if !costs.HasTBD() {
			costs[models.CostBase] = nil
		}
		return costs, nil
	}
	if *total < 0 {
		return nil, invalid("total cost must not be negative")
	}

	if !costs.HasTBD() {
		if math.Abs(costs.PricedSum()-*total) > 0.005 {
			return nil, invalid("total cost %s does not match the cost breakdown sum %s",
				pricing.FormatAmount(*total), pricing.FormatAmount(costs.PricedSum()))
		}
		return costs, nil
	}

	for k, v := range costs {
		if v == nil && k != models.CostBase {
			return nil, invalid("cost component %s is still to be determined", k)
		}
	}
	base := *total - costs.PricedSum()
	if base < 0 {
		return nil, invalid("total cost %s is below the priced components %s",
			pricing.FormatAmount(*total), pricing.FormatAmount(costs.PricedSum()))
	}
	costs[models.CostBase] = models.Amount(base)
	return costs, nil
}

// DeleteOrder deletes the order and its file rows, then removes the
// attachments from storage. Objects that cannot be removed after the commit
// are logged and left behind.
func (s *OrderService) DeleteOrder(ctx context.Context, number string) error {
	order, err := s.GetOrderByNumber(ctx, number)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.UploadedFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, order.ID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if err := s.attachments.RemoveAll(ctx, order.Files); err != nil {
		log.Printf("warning: order %s deleted but some attachments remain in storage: %v", number, err)
	}
	return nil
}

// FindFile looks up an attachment row by its stored name
func (s *OrderService) FindFile(ctx context.Context, name string) (*models.UploadedFile, error) {
	var file models.UploadedFile
	if err := s.db.WithContext(ctx).Where("filename = ?", name).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	return &file, nil
}

// OpenFile streams a stored attachment
func (s *OrderService) OpenFile(ctx context.Context, name string) (*models.UploadedFile, io.ReadCloser, error) {
	file, err := s.FindFile(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.attachments.store.Open(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return file, rc, nil
}
