package order

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/cafe-altura/internal/apperr"
)

// maxTotal is the first amount that no longer fits numeric(12,2).
var maxTotal = decimal.New(1, 10)

// Service owns order creation and the status lifecycle.
type Service struct {
	repo   Repository
	policy TransitionPolicy
	events Publisher

	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, policy TransitionPolicy, events Publisher) *Service {
	if events == nil {
		events = NopPublisher{}
	}
	return &Service{
		repo:   repo,
		policy: policy,
		events: events,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID:  uuid.NewString,
	}
}

func (s *Service) Policy() TransitionPolicy { return s.policy }

// Create validates req and stores a new Pending order. Nothing is persisted
// when validation fails.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	name := strings.TrimSpace(req.ClientName)
	detail := strings.TrimSpace(req.Detail)
	if name == "" {
		return nil, apperr.Validationf("clientName is required")
	}
	if detail == "" {
		return nil, apperr.Validationf("detail is required")
	}
	if req.TotalAmount == nil {
		return nil, apperr.Validationf("totalAmount is required")
	}
	total := *req.TotalAmount
	if total.IsNegative() {
		return nil, apperr.Validationf("totalAmount must be >= 0")
	}
	if !total.Equal(total.Round(2)) {
		return nil, apperr.Validationf("totalAmount must have at most 2 decimal places")
	}
	if total.GreaterThanOrEqual(maxTotal) {
		return nil, apperr.Validationf("totalAmount must be less than %s", maxTotal)
	}
	ch, ok := ParseChannel(req.Channel)
	if !ok {
		return nil, apperr.Validationf("unknown channel %q", req.Channel)
	}

	o := &Order{
		ID:          s.newID(),
		ClientName:  name,
		Channel:     ch,
		Detail:      detail,
		TotalAmount: total.Round(2),
		Status:      Pending,
		CreatedAt:   s.now().Truncate(time.Microsecond),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, apperr.Wrap(err, "create order")
	}
	s.publish(ctx, Event{
		EventType:   EventCreated,
		OrderID:     o.ID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		Timestamp:   o.CreatedAt,
	})
	return o, nil
}

// List returns every order, newest first.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "list orders")
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFoundf("order not found")
	}
	o, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("order not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "get order")
	}
	return o, nil
}

// SetStatus moves an order to status. status may be the enum value or its
// label. The last write wins.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*Order, error) {
	to, ok := ParseStatus(status)
	if !ok {
		return nil, apperr.Validationf("unknown status %q", status)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFoundf("order not found")
	}

	if s.policy == Strict {
		cur, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if cur.Status == to {
			return cur, nil
		}
		if !s.policy.Allows(cur.Status, to) {
			return nil, apperr.Validationf("cannot move order from %s to %s", cur.Status, to)
		}
	}

	o, prev, err := s.repo.UpdateStatus(ctx, id, to)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("order not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "update order status")
	}
	if prev != to {
		s.publish(ctx, Event{
			EventType:      EventStatusChanged,
			OrderID:        o.ID,
			Status:         o.Status,
			PreviousStatus: prev,
			TotalAmount:    o.TotalAmount,
			Timestamp:      s.now(),
		})
	}
	return o, nil
}

func (s *Service) publish(ctx context.Context, ev Event) {
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Printf("[order] publish %s for %s: %v", ev.EventType, ev.OrderID, err)
	}
}
