package livestock

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/domain/shared"
	"github.com/livestock/backend/internal/infrastructure/telemetry"
)

const spanService = "livestock"

// LivestockService handles count, event, tag and expense operations
type LivestockService struct {
	repos       TransactionalRepositories
	txScope     TransactionScope
	cache       QueryCache
	generations *scopeGenerations
	metrics     MetricsRecorder
	logger      *zap.Logger
	now         func() time.Time
}

// ServiceOption configures a LivestockService
type ServiceOption func(*LivestockService)

// WithQueryCache memoizes read operations in cache
func WithQueryCache(cache QueryCache) ServiceOption {
	return func(s *LivestockService) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithMetrics reports committed mutations to recorder
func WithMetrics(recorder MetricsRecorder) ServiceOption {
	return func(s *LivestockService) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithClock replaces the wall clock used for event and expense dates
func WithClock(now func() time.Time) ServiceOption {
	return func(s *LivestockService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewLivestockService creates a new LivestockService.
// repos serve reads; txScope runs every multi-step mutation.
func NewLivestockService(repos TransactionalRepositories, txScope TransactionScope, logger *zap.Logger, opts ...ServiceOption) *LivestockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &LivestockService{
		repos:       repos,
		txScope:     txScope,
		cache:       noopCache{},
		generations: &scopeGenerations{},
		metrics:     noopMetrics{},
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LivestockService) today() time.Time {
	return livestock.DateOf(s.now().UTC())
}

func (s *LivestockService) validation() *ValidationHelper {
	return ValidationHelperFor(s.repos)
}

// cacheKey is CacheKey suffixed with the current generation of the scope
func (s *LivestockService) cacheKey(userID int64, category livestock.Category, op string, filters ...string) string {
	gen := s.generations.current(ScopePrefix(userID, category))
	return CacheKey(userID, category, op, filters...) + "#" + strconv.FormatUint(gen, 10)
}

// invalidate drops every cached read of the scope. Failures are logged only.
func (s *LivestockService) invalidate(ctx context.Context, userID int64, category livestock.Category) {
	s.generations.bump(ScopePrefix(userID, category))
	if err := s.cache.InvalidateScope(ctx, userID, category); err != nil {
		s.logger.Warn("Query cache invalidation failed",
			zap.Int64("user_id", userID),
			zap.String("category", category.String()),
			zap.Error(err))
	}
}

// InitializeCount creates the count of a (user, category) pair. It can only run once per pair.
func (s *LivestockService) InitializeCount(ctx context.Context, userID int64, req InitializeCountRequest) (_ *CountResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "initialize_count",
		telemetry.AttrUserID.Int64(userID),
		telemetry.AttrCategory.String(req.Category.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	count, err := livestock.NewCount(userID, req.Category, req.MaleCount, req.FemaleCount)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		v := ValidationHelperFor(repos)
		if err := v.ValidateUser(ctx, userID); err != nil {
			return err
		}
		if err := v.ValidateCountNotExists(ctx, userID, req.Category); err != nil {
			return err
		}
		if err := repos.CountRepo().Create(ctx, count); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return livestock.NewCountExistsError(userID, req.Category)
			}
			return fmt.Errorf("creating count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID, req.Category)
	s.logger.Info("Livestock count initialized",
		zap.Int64("user_id", userID),
		zap.String("category", req.Category.String()),
		zap.Int("male_count", count.MaleCount),
		zap.Int("female_count", count.FemaleCount))

	response := ToCountResponse(count)
	return &response, nil
}

// RecordEvent reconciles an event against the locked count of its pair and
// persists the event, the count and every minted or transitioned tag atomically.
func (s *LivestockService) RecordEvent(ctx context.Context, userID int64, req RecordEventRequest) (_ *EventResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "record_event",
		telemetry.AttrUserID.Int64(userID),
		telemetry.AttrCategory.String(req.Category.String()),
		telemetry.AttrEventType.String(req.EventType.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	spec := livestock.EventSpec{
		Type:        req.EventType,
		MaleCount:   req.MaleCount,
		FemaleCount: req.FemaleCount,
		SalePrice:   req.SalePrice,
		Cost:        req.Cost,
		TagNumbers:  req.LivestockIDs,
		EventDate:   s.today(),
	}
	if !req.Category.IsValid() {
		return nil, livestock.NewInvalidRequestError("Invalid category: " + req.Category.String())
	}
	if !spec.Type.IsValid() {
		return nil, livestock.NewInvalidEventTypeError(spec.Type.String())
	}

	var result *livestock.Reconciliation
	labels := telemetry.LivestockLabels("record_event", userID, req.Category.String(), spec.Type.String())
	telemetry.WithProfilingLabels(ctx, labels, func(ctx context.Context) {
		result, err = s.reconcileEvent(ctx, userID, req.Category, spec)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID, req.Category)
	s.metrics.EventRecorded(ctx, req.Category, spec.Type, spec.Total())
	s.logger.Info("Livestock event recorded",
		zap.Int64("user_id", userID),
		zap.String("category", req.Category.String()),
		zap.String("event_type", spec.Type.String()),
		zap.String("event_id", result.Event.ID.String()),
		zap.Int("minted_tags", len(result.MintedTags)),
		zap.Int("updated_tags", len(result.UpdatedTags)))

	affected := result.MintedTags
	if len(affected) == 0 {
		affected = result.UpdatedTags
	}
	response := ToEventResponse(result.Event, tagNumbersOf(affected))
	return &response, nil
}

// reconcileEvent locks the count of the pair, applies spec to it and persists
// the outcome inside one transaction.
func (s *LivestockService) reconcileEvent(ctx context.Context, userID int64, category livestock.Category, spec livestock.EventSpec) (*livestock.Reconciliation, error) {
	var result *livestock.Reconciliation
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		v := ValidationHelperFor(repos)
		if err := v.ValidateUser(ctx, userID); err != nil {
			return err
		}
		count, err := v.ValidateCountForUpdate(ctx, userID, category)
		if err != nil {
			return err
		}

		var resolved []*livestock.Tag
		if spec.ConsumesTags() && len(spec.TagNumbers) > 0 {
			resolved, err = repos.TagRepo().FindByNumbersForUpdate(ctx, userID, category, spec.TagNumbers)
			if err != nil {
				return fmt.Errorf("resolving tags: %w", err)
			}
		}

		result, err = count.Reconcile(spec, resolved)
		if err != nil {
			return err
		}

		if len(result.MintedTags) > 0 {
			numbers := tagNumbersOf(result.MintedTags)
			existing, err := repos.TagRepo().FindByNumbers(ctx, userID, category, numbers)
			if err != nil {
				return fmt.Errorf("checking tag numbers: %w", err)
			}
			if len(existing) > 0 {
				return livestock.NewInvalidLivestockIDsError(livestock.DetailIDsInUse, tagNumbersOf(existing)...)
			}
		}

		if err := repos.EventRepo().Create(ctx, result.Event); err != nil {
			return fmt.Errorf("saving event: %w", err)
		}
		if err := repos.TagRepo().CreateBatch(ctx, result.MintedTags); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return livestock.NewInvalidLivestockIDsError(livestock.DetailIDsInUse)
			}
			return fmt.Errorf("saving tags: %w", err)
		}
		if err := repos.TagRepo().UpdateStatus(ctx, result.UpdatedTags); err != nil {
			return fmt.Errorf("updating tags: %w", err)
		}
		return repos.CountRepo().SaveWithLock(ctx, count)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordExpense records an expense. Expenses do not require an initialized count.
func (s *LivestockService) RecordExpense(ctx context.Context, userID int64, req RecordExpenseRequest) (_ *ExpenseResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "record_expense",
		telemetry.AttrUserID.Int64(userID),
		telemetry.AttrCategory.String(req.Category.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	if err := s.validation().ValidateUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := ValidateExpenseAmount(req.Amount); err != nil {
		return nil, err
	}

	date := req.ExpenseDate
	if date.IsZero() {
		date = s.today()
	}
	expense, err := livestock.NewExpense(userID, req.Category, req.ExpenseCategory, req.Amount, req.Description, date)
	if err != nil {
		return nil, err
	}
	if err := s.repos.ExpenseRepo().Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("saving expense: %w", err)
	}

	s.invalidate(ctx, userID, req.Category)
	s.metrics.ExpenseRecorded(ctx, req.Category, expense.ExpenseCategory, expense.Amount)
	s.logger.Info("Livestock expense recorded",
		zap.Int64("user_id", userID),
		zap.String("category", req.Category.String()),
		zap.String("expense_category", expense.ExpenseCategory.String()),
		zap.String("amount", expense.Amount.String()))

	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetCurrentCount returns the count of a pair
func (s *LivestockService) GetCurrentCount(ctx context.Context, userID int64, category livestock.Category) (*CountResponse, error) {
	key := s.cacheKey(userID, category, CacheOpCount)
	response, err := cachedQuery(ctx, s.cache, s.logger, key, func() (CountResponse, error) {
		count, err := s.validation().ValidateCount(ctx, userID, category)
		if err != nil {
			return CountResponse{}, err
		}
		return ToCountResponse(count), nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetEventHistory lists the events of a pair, oldest first.
// eventType is optional and matched case-insensitively.
func (s *LivestockService) GetEventHistory(ctx context.Context, userID int64, category livestock.Category, eventType string) ([]EventResponse, error) {
	var filter livestock.EventFilter
	if eventType != "" {
		parsed, err := livestock.ParseEventType(eventType)
		if err != nil {
			return nil, err
		}
		filter.Type = parsed
	}

	key := s.cacheKey(userID, category, CacheOpEvents, filter.Type.String())
	return cachedQuery(ctx, s.cache, s.logger, key, func() ([]EventResponse, error) {
		events, err := s.repos.EventRepo().FindByUserAndCategory(ctx, userID, category, filter)
		if err != nil {
			return nil, fmt.Errorf("listing events: %w", err)
		}
		responses := make([]EventResponse, 0, len(events))
		for i := range events {
			responses = append(responses, ToEventResponse(&events[i], nil))
		}
		return responses, nil
	})
}

// GetEvent returns a single event of a user
func (s *LivestockService) GetEvent(ctx context.Context, userID int64, eventID uuid.UUID) (*EventResponse, error) {
	event, err := s.repos.EventRepo().FindByID(ctx, userID, eventID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, livestock.NewEventNotFoundError(eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading event: %w", err)
	}
	response := ToEventResponse(event, nil)
	return &response, nil
}

// ListTags lists the tags of a pair, optionally restricted to one status
func (s *LivestockService) ListTags(ctx context.Context, userID int64, category livestock.Category, status string) ([]TagResponse, error) {
	var filter livestock.TagFilter
	if status != "" {
		parsed, err := livestock.ParseTagStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = parsed
	}
	if err := s.validation().ValidateUser(ctx, userID); err != nil {
		return nil, err
	}

	tags, err := s.repos.TagRepo().FindByUserAndCategory(ctx, userID, category, filter)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	responses := make([]TagResponse, 0, len(tags))
	for i := range tags {
		responses = append(responses, ToTagResponse(&tags[i]))
	}
	return responses, nil
}
