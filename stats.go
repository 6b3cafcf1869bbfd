package sqlkit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/syssam/sqlkit/dialect"
)

// StmtKind classifies an executed statement by its leading keyword.
type StmtKind uint8

// Statement kinds tracked by QueryStats.
const (
	StmtOther StmtKind = iota
	StmtSelect
	StmtInsert
	StmtUpdate
	StmtDelete
	StmtDDL
	numStmtKinds
)

var stmtKindNames = [numStmtKinds]string{
	StmtOther:  "other",
	StmtSelect: "select",
	StmtInsert: "insert",
	StmtUpdate: "update",
	StmtDelete: "delete",
	StmtDDL:    "ddl",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "other"
}

// classifyStmt maps rendered SQL to its statement kind. REPLACE and
// RENAME cover the MySQL-specific spellings.
func classifyStmt(query string) StmtKind {
	head, _, _ := strings.Cut(strings.TrimSpace(query), " ")
	switch strings.ToUpper(head) {
	case "SELECT":
		return StmtSelect
	case "INSERT", "REPLACE":
		return StmtInsert
	case "UPDATE":
		return StmtUpdate
	case "DELETE":
		return StmtDelete
	case "CREATE", "ALTER", "DROP", "TRUNCATE", "RENAME":
		return StmtDDL
	default:
		return StmtOther
	}
}

// QueryStats accumulates per-kind execution counters. All methods are
// safe for concurrent use.
type QueryStats struct {
	byKind   [numStmtKinds]atomic.Int64
	duration atomic.Int64 // nanoseconds
	slow     atomic.Int64
	errors   atomic.Int64
}

// Count returns the number of executed statements of the given kind.
func (s *QueryStats) Count(k StmtKind) int64 {
	if int(k) >= len(s.byKind) {
		return 0
	}
	return s.byKind[k].Load()
}

// Snapshot returns a point-in-time copy of the counters.
func (s *QueryStats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		ByKind:   make(map[StmtKind]int64, numStmtKinds),
		Duration: time.Duration(s.duration.Load()),
		Slow:     s.slow.Load(),
		Errors:   s.errors.Load(),
	}
	for k := StmtKind(0); k < numStmtKinds; k++ {
		n := s.byKind[k].Load()
		snap.Total += n
		if n > 0 {
			snap.ByKind[k] = n
		}
	}
	return snap
}

// Reset zeroes all counters.
func (s *QueryStats) Reset() {
	for k := range s.byKind {
		s.byKind[k].Store(0)
	}
	s.duration.Store(0)
	s.slow.Store(0)
	s.errors.Store(0)
}

// StatsSnapshot is a point-in-time copy of query statistics. ByKind
// only holds kinds with a nonzero count.
type StatsSnapshot struct {
	ByKind   map[StmtKind]int64
	Total    int64
	Duration time.Duration
	Slow     int64
	Errors   int64
}

// AvgDuration returns the mean statement duration.
func (s StatsSnapshot) AvgDuration() time.Duration {
	if s.Total == 0 {
		return 0
	}
	return s.Duration / time.Duration(s.Total)
}

// String returns a log-friendly summary.
func (s StatsSnapshot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "total=%d", s.Total)
	for k := StmtKind(0); k < numStmtKinds; k++ {
		if n, ok := s.ByKind[k]; ok {
			fmt.Fprintf(&sb, " %s=%d", k, n)
		}
	}
	fmt.Fprintf(&sb, " duration=%s avg=%s slow=%d errors=%d",
		s.Duration, s.AvgDuration(), s.Slow, s.Errors)
	return sb.String()
}

// SlowQueryHook is called for statements exceeding the slow threshold.
type SlowQueryHook func(ctx context.Context, dialect, query string, args []any, duration time.Duration)

// StatsDriver wraps a Driver with per-kind query statistics and slow
// statement detection.
type StatsDriver struct {
	*Driver
	stats *QueryStats

	mu            sync.RWMutex
	slowThreshold time.Duration
	slowHook      SlowQueryHook
}

// StatsOption configures a StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the slow statement threshold. The default is
// 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) { s.slowThreshold = d }
}

// WithSlowQueryHook sets a callback for slow statements.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) { s.slowHook = hook }
}

// WithSlowQueryLog logs slow statements through the default slog
// logger, tagged with the statement kind and dialect.
func WithSlowQueryLog() StatsOption {
	return WithSlowQueryHook(func(_ context.Context, d, query string, args []any, duration time.Duration) {
		slog.Warn("slow statement",
			"kind", classifyStmt(query).String(),
			"dialect", d,
			"duration", duration,
			"query", query,
			"args", args,
		)
	})
}

// NewStatsDriver wraps drv with statistics collection.
//
//	drv, _ := sqlkit.Open("postgres", dsn)
//	stats := sqlkit.NewStatsDriver(drv,
//	    sqlkit.WithSlowThreshold(200*time.Millisecond),
//	    sqlkit.WithSlowQueryLog(),
//	)
func NewStatsDriver(drv *Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{
		Driver:        drv,
		stats:         &QueryStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryStats returns the collected statistics.
func (d *StatsDriver) QueryStats() *QueryStats { return d.stats }

// SlowThreshold returns the current slow statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.slowThreshold
}

// SetSlowThreshold updates the slow statement threshold.
func (d *StatsDriver) SetSlowThreshold(threshold time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.slowThreshold = threshold
}

// Query executes a query and records statistics.
func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.record(ctx, query, args, start, err)
	return err
}

// Exec executes a statement and records statistics.
func (d *StatsDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.record(ctx, query, args, start, err)
	return err
}

// QueryStmt builds s with the driver's dialect, executes it and records
// statistics.
func (d *StatsDriver) QueryStmt(ctx context.Context, s Statement, v *Rows) error {
	query, args, err := buildArgs(s, d.Dialect())
	if err != nil {
		return err
	}
	return d.Query(ctx, query, args, v)
}

// ExecStmt builds s with the driver's dialect, executes it and records
// statistics.
func (d *StatsDriver) ExecStmt(ctx context.Context, s Statement, v any) error {
	query, args, err := buildArgs(s, d.Dialect())
	if err != nil {
		return err
	}
	return d.Exec(ctx, query, args, v)
}

func (d *StatsDriver) record(ctx context.Context, query string, args any, start time.Time, err error) {
	duration := time.Since(start)
	d.stats.byKind[classifyStmt(query)].Add(1)
	d.stats.duration.Add(int64(duration))
	if err != nil {
		d.stats.errors.Add(1)
	}

	d.mu.RLock()
	threshold := d.slowThreshold
	hook := d.slowHook
	d.mu.RUnlock()

	if duration > threshold {
		d.stats.slow.Add(1)
		if hook != nil {
			argv, _ := args.([]any)
			hook(ctx, d.Dialect(), query, argv, duration)
		}
	}
}

// Tx starts a transaction whose statements are also recorded.
func (d *StatsDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsTx{Tx: tx, driver: d}, nil
}

// StatsTx records the statements of a transaction into the parent
// driver's statistics.
type StatsTx struct {
	dialect.Tx
	driver *StatsDriver
}

// Query executes a query within the transaction and records statistics.
func (tx *StatsTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Query(ctx, query, args, v)
	tx.driver.record(ctx, query, args, start, err)
	return err
}

// Exec executes a statement within the transaction and records
// statistics.
func (tx *StatsTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Exec(ctx, query, args, v)
	tx.driver.record(ctx, query, args, start, err)
	return err
}

var (
	_ dialect.Driver = (*StatsDriver)(nil)
	_ dialect.Tx     = (*StatsTx)(nil)
)
