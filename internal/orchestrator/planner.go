package orchestrator

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/logger"
	"github.com/dusk-indust/famtree/internal/metrics"
	"github.com/dusk-indust/famtree/internal/partition"
)

// ErrPlanNotFound is returned for plan ids that were never issued or have
// been evicted from the cache.
var ErrPlanNotFound = errors.New("plan not found")

// Plan is one computed partitioning together with everything needed to
// emit it later. A Plan is immutable.
type Plan struct {
	ID           string                  `json:"id"`
	Key          string                  `json:"-"`
	Config       partition.Config        `json:"-"`
	Graph        *family.Graph           `json:"-"`
	Partitioning *partition.Partitioning `json:"-"`
	Summary      partition.Summary       `json:"summary"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// Planner computes partitionings once and keeps the resulting plans in an
// LRU cache, addressable by id and by input.
type Planner struct {
	mu    sync.Mutex
	byKey *lru.Cache[string, *Plan]
	byID  map[string]*Plan
	now   func() time.Time
}

// NewPlanner creates a Planner holding at most size plans. Zero means
// DefaultCacheSize.
func NewPlanner(size int) (*Planner, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	p := &Planner{
		byID: make(map[string]*Plan),
		now:  time.Now,
	}
	// The eviction callback runs synchronously inside Add, which is only
	// called with p.mu held.
	cache, err := lru.NewWithEvict(size, func(_ string, evicted *Plan) {
		delete(p.byID, evicted.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("create plan cache: %w", err)
	}
	p.byKey = cache
	return p, nil
}

// PlanKey identifies the input of a plan: the graph content and the
// canonical encoding of the config.
func PlanKey(g *family.Graph, cfg partition.Config) (string, error) {
	canon, err := partition.MarshalConfig(cfg)
	if err != nil {
		return "", err
	}
	return g.Fingerprint() + "/" + string(canon), nil
}

// Plan returns the plan for g and cfg, computing it on a cache miss.
// Configuration errors are returned as is and never cached.
func (p *Planner) Plan(g *family.Graph, cfg partition.Config) (*Plan, error) {
	if err := partition.Validate(cfg); err != nil {
		return nil, err
	}
	key, err := PlanKey(g, cfg)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if plan, ok := p.byKey.Get(key); ok {
		metrics.PlanCache.WithLabelValues("hit").Inc()
		return plan, nil
	}
	metrics.PlanCache.WithLabelValues("miss").Inc()

	strategy := string(cfg.Strategy())
	start := p.now()
	result, err := partition.Compute(g, cfg)
	metrics.StrategyDuration.WithLabelValues(strategy).Observe(p.now().Sub(start).Seconds())
	if err != nil {
		metrics.PartitioningsTotal.WithLabelValues(strategy, metrics.OutcomeFailure).Inc()
		return nil, err
	}
	metrics.PartitioningsTotal.WithLabelValues(strategy, metrics.OutcomeSuccess).Inc()

	plan := &Plan{
		ID:           uuid.NewString(),
		Key:          key,
		Config:       cfg,
		Graph:        g,
		Partitioning: result,
		Summary:      result.Summary(),
		CreatedAt:    p.now(),
	}
	p.byKey.Add(key, plan)
	p.byID[plan.ID] = plan

	logger.Debug("plan computed",
		"plan", plan.ID,
		"strategy", strategy,
		"partitions", len(result.Partitions),
		"people", result.TotalPeople,
		"warnings", len(result.Warnings),
	)
	return plan, nil
}

// Get returns the plan with the given id.
func (p *Planner) Get(id string) (*Plan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	plan, ok := p.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	// Touch the entry so a plan being generated is not the next to go.
	p.byKey.Get(plan.Key)
	return plan, nil
}

// Len returns the number of cached plans.
func (p *Planner) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byKey.Len()
}
