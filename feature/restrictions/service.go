package restrictions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"loot-restrictions/core/metrics"
	"loot-restrictions/core/storage"
	"loot-restrictions/feature/restrictions/engine"
	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/reconcile"
	"loot-restrictions/feature/restrictions/rules"
	"loot-restrictions/feature/restrictions/specs"
	"loot-restrictions/feature/restrictions/store"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrRunInProgress is returned when a reconciliation is requested while another one
	// is still running in this process.
	ErrRunInProgress = errors.New("reconciliation already in progress")
	// ErrSchemaMismatch is returned when the restriction table does not match the model.
	ErrSchemaMismatch = errors.New("restriction schema mismatch")
	// ErrInvalidRestriction is returned for manual restrictions that can never apply.
	ErrInvalidRestriction = errors.New("invalid restriction")
)

// reportPrefix is the object storage folder holding archived run reports.
const reportPrefix = "reports/"

// RunOptions controls a single reconciliation run.
type RunOptions struct {
	// DryRun plans without committing.
	DryRun bool
	// Match overrides the configured match mode when set.
	Match reconcile.MatchMode
}

// RunReport describes one reconciliation run.
type RunReport struct {
	RunID      string              `json:"run_id"`
	StartedAt  time.Time           `json:"started_at"`
	Duration   string              `json:"duration"`
	DryRun     bool                `json:"dry_run"`
	Match      reconcile.MatchMode `json:"match"`
	Items      int                 `json:"items"`
	Flagged    int                 `json:"flagged"`
	Candidates int                 `json:"candidates"`
	Added      int                 `json:"added"`
	Updated    int                 `json:"updated"`
	Removed    int                 `json:"removed"`
	Executed   int                 `json:"executed"`
	Plan       *reconcile.Plan     `json:"plan"`
	Archive    string              `json:"archive,omitempty"`
}

// ItemReport is the full verdict for one item.
type ItemReport struct {
	ItemID         uint32                 `json:"item_id"`
	Name           string                 `json:"name"`
	Allowed        specs.Set              `json:"allowed"`
	Determinations []models.Determination `json:"determinations"`
}

// Service runs reconciliations and answers restriction queries.
type Service struct {
	cfg     Config
	engine  *engine.Engine
	store   *store.RestrictionStore
	source  engine.Catalog
	catalog *store.CachedCatalog
	db      *gorm.DB
	client  storage.Client
	bucket  string
	metrics *metrics.Metrics
	logger  *zap.Logger

	run sync.Mutex
}

// NewService creates a new restriction service using the default rule registry.
func NewService(cfg Config, client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, m *metrics.Metrics) (*Service, error) {
	return NewServiceWithRules(cfg, rules.Default(), client, bucket, logger, db, m)
}

// NewServiceWithRules creates a service evaluating the given registry.
func NewServiceWithRules(cfg Config, registry *rules.Registry, client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, m *metrics.Metrics) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if db == nil {
		return nil, fmt.Errorf("restrictions require a database connection")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var source engine.Catalog
	switch cfg.Catalog {
	case CatalogStorage:
		if client == nil {
			return nil, fmt.Errorf("storage catalog requires a storage client")
		}
		source = store.NewStorageCatalog(client, bucket, cfg.CatalogObject)
	default:
		source = store.NewDBCatalog(db, cfg.BatchSize)
	}

	return &Service{
		cfg:     cfg,
		engine:  engine.New(registry, logger),
		store:   store.NewRestrictionStore(db, cfg.BatchSize),
		source:  source,
		catalog: store.NewCachedCatalog(source, cfg.CacheTTL()),
		db:      db,
		client:  client,
		bucket:  bucket,
		metrics: m,
		logger:  logger,
	}, nil
}

// Prepare migrates the tables the service owns.
func (s *Service) Prepare(ctx context.Context) error {
	if err := s.store.Prepare(ctx); err != nil {
		return err
	}
	if c, ok := s.source.(*store.DBCatalog); ok {
		return c.Prepare(ctx)
	}
	return nil
}

// VerifySchema compares the live tables with the models.
func (s *Service) VerifySchema() (*store.SchemaReport, error) {
	tables := []any{&models.Restriction{}}
	if s.cfg.Catalog == CatalogDatabase {
		tables = append(tables, &models.Item{})
	}
	return store.VerifySchema(s.db, tables...)
}

// RunReconciliation evaluates the whole catalog and brings the automated restrictions
// in line with the result in a single commit.
func (s *Service) RunReconciliation(ctx context.Context, opts RunOptions) (*RunReport, error) {
	if !s.run.TryLock() {
		s.metrics.IncrementRun(metrics.OutcomeRejected)
		return nil, ErrRunInProgress
	}
	defer s.run.Unlock()

	match := opts.Match
	if match == "" {
		match, _ = reconcile.ParseMatchMode(s.cfg.Match)
	}

	report := &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		DryRun:    opts.DryRun,
		Match:     match,
	}
	l := s.logger.With(zap.String("run_id", report.RunID))
	l.Info("Reconciliation started", zap.Bool("dry_run", opts.DryRun), zap.String("match", string(match)))

	err := s.reconcile(ctx, l, report, reconcile.Options{
		DryRun:    opts.DryRun,
		Confirmed: !opts.DryRun,
		Match:     match,
	})
	elapsed := time.Since(report.StartedAt)
	report.Duration = elapsed.String()
	s.metrics.ObserveRunLatency(elapsed)

	if err != nil {
		s.metrics.IncrementRun(metrics.OutcomeFailed)
		l.Error("Reconciliation failed", zap.Error(err), zap.Duration("duration", elapsed))
		return nil, err
	}

	if opts.DryRun {
		s.metrics.IncrementRun(metrics.OutcomeDryRun)
	} else {
		s.metrics.IncrementRun(metrics.OutcomeApplied)
		s.metrics.AddActions(string(reconcile.ActionCreate), report.Added)
		s.metrics.AddActions(string(reconcile.ActionUpdate), report.Updated)
		s.metrics.AddActions(string(reconcile.ActionDelete), report.Removed)
	}

	if s.cfg.ArchiveReports {
		if key, err := s.archive(ctx, report); err != nil {
			l.Warn("Failed to archive run report", zap.Error(err))
		} else {
			report.Archive = key
		}
	}

	l.Info("Reconciliation finished",
		zap.Int("items", report.Items),
		zap.Int("added", report.Added),
		zap.Int("updated", report.Updated),
		zap.Int("removed", report.Removed),
		zap.Int("executed", report.Executed),
		zap.Duration("duration", elapsed),
	)
	return report, nil
}

func (s *Service) reconcile(ctx context.Context, l *zap.Logger, report *RunReport, opts reconcile.Options) error {
	if s.cfg.VerifySchema {
		schema, err := s.VerifySchema()
		if err != nil {
			return fmt.Errorf("verify schema: %w", err)
		}
		if !schema.Matched {
			l.Error("Schema verification failed", zap.Strings("errors", schema.Errors), zap.Any("tables", schema.Tables))
			return ErrSchemaMismatch
		}
	}

	result, err := s.engine.Evaluate(ctx, s.source)
	if err != nil {
		return fmt.Errorf("evaluate catalog: %w", err)
	}
	report.Items = result.Items
	report.Flagged = result.Flagged
	report.Candidates = len(result.Candidates)
	s.metrics.SetItems(result.Items)

	plan, executed, err := reconcile.ReconcileAndApply(ctx, s.store, result.Candidates, opts)
	if err != nil {
		return err
	}
	report.Plan = plan
	report.Executed = executed
	report.Added = plan.Summary.Created
	report.Updated = plan.Summary.Updated
	report.Removed = plan.Summary.Deleted

	s.catalog.Invalidate()
	return nil
}

// archive uploads the report as JSON and returns its object key.
func (s *Service) archive(ctx context.Context, report *RunReport) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("no storage client configured")
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	key := reportPrefix + report.RunID + ".json"
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// Determinations returns every verdict for one item.
func (s *Service) Determinations(ctx context.Context, itemID uint32) (*ItemReport, error) {
	item, dets, err := s.collect(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if dets == nil {
		dets = []models.Determination{}
	}
	return &ItemReport{
		ItemID:         item.ID,
		Name:           item.Name,
		Allowed:        engine.Allowed(slices.Values(dets), false),
		Determinations: dets,
	}, nil
}

// AllowedSpecs returns the specializations that may receive the item.
func (s *Service) AllowedSpecs(ctx context.Context, itemID uint32, includeManualReview bool) (specs.Set, error) {
	_, dets, err := s.collect(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return engine.Allowed(slices.Values(dets), includeManualReview), nil
}

// DisallowedReasons returns the distinct reasons spec may not receive the item.
func (s *Service) DisallowedReasons(ctx context.Context, itemID uint32, spec specs.Specialization, excludeManualReview bool) ([]string, error) {
	if !spec.Valid() {
		return nil, fmt.Errorf("%w: specialization %d", ErrInvalidRestriction, spec)
	}
	_, dets, err := s.collect(ctx, itemID)
	if err != nil {
		return nil, err
	}
	reasons := slices.Collect(engine.Reasons(slices.Values(dets), spec, excludeManualReview))
	if reasons == nil {
		reasons = []string{}
	}
	return reasons, nil
}

func (s *Service) collect(ctx context.Context, itemID uint32) (*models.Item, []models.Determination, error) {
	item, err := s.catalog.Item(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	dets, err := s.engine.Collect(item)
	if err != nil {
		s.logger.Error("Rule evaluation failed", zap.Uint32("item_id", itemID), zap.Error(err))
		return nil, nil, err
	}
	return item, dets, nil
}

// Restrictions returns the persisted restrictions of one item.
func (s *Service) Restrictions(ctx context.Context, itemID uint32) ([]models.Restriction, error) {
	return s.store.ListByItem(ctx, itemID)
}

// AddManual stores a hand-curated restriction for an existing item.
func (s *Service) AddManual(ctx context.Context, r models.Restriction) (*models.Restriction, error) {
	r.Reason = strings.TrimSpace(r.Reason)
	switch {
	case r.Reason == "":
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidRestriction)
	case r.Specializations.IsEmpty():
		return nil, fmt.Errorf("%w: at least one specialization is required", ErrInvalidRestriction)
	case r.Level == models.Allowed || r.Level > models.Unequippable:
		return nil, fmt.Errorf("%w: level %s cannot be stored", ErrInvalidRestriction, r.Level)
	}
	if _, err := s.catalog.Item(ctx, r.ItemID); err != nil {
		return nil, err
	}

	created, err := s.store.AddManual(ctx, r)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Manual restriction added", zap.Uint("id", created.ID), zap.Uint32("item_id", created.ItemID))
	return created, nil
}

// Promote hands an automated restriction over to manual curation.
func (s *Service) Promote(ctx context.Context, id uint) (*models.Restriction, error) {
	r, err := s.store.Promote(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Restriction promoted to manual", zap.Uint("id", r.ID), zap.Uint32("item_id", r.ItemID))
	return r, nil
}
