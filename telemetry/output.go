package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/accretion/config"
)

// csvFile appends rows of T to one CSV file, writing the header with the first row.
type csvFile[T any] struct {
	name   string
	f      *os.File
	headed bool
}

func createCSV[T any](dir, name string) (*csvFile[T], error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile[T]{name: name, f: f}, nil
}

func (c *csvFile[T]) append(row T) error {
	rows := []T{row}
	marshal := gocsv.MarshalWithoutHeaders
	if !c.headed {
		marshal = gocsv.Marshal
	}
	if err := marshal(rows, c.f); err != nil {
		return fmt.Errorf("writing %s: %w", c.name, err)
	}
	c.headed = true
	return nil
}

func (c *csvFile[T]) close() error {
	if c == nil {
		return nil
	}
	return c.f.Close()
}

// OutputManager writes a run's CSV logs and config snapshot into one directory.
// A nil manager is valid and discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvFile[WindowStats]
	perf      *csvFile[PerfStatsCSV]
	purchases *csvFile[PurchaseRecord]
}

// NewOutputManager creates dir and the CSV files in it. An empty dir disables
// output and returns a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.telemetry, err = createCSV[WindowStats](dir, "telemetry.csv"); err != nil {
		return nil, err
	}
	if om.perf, err = createCSV[PerfStatsCSV](dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.purchases, err = createCSV[PurchaseRecord](dir, "purchases.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the effective configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.append(stats)
}

// WritePerf appends the perf window ending at windowEnd to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.append(stats.ToCSV(windowEnd))
}

// WritePurchase appends an accepted or denied purchase to purchases.csv.
func (om *OutputManager) WritePurchase(ev Event) error {
	if om == nil {
		return nil
	}
	return om.purchases.append(NewPurchaseRecord(ev))
}

// Dir returns the output directory, or "" when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every open file.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.telemetry.close(), om.perf.close(), om.purchases.close())
}

// PurchaseRecord is one row of purchases.csv.
type PurchaseRecord struct {
	Tick     int32  `csv:"tick"`
	Track    string `csv:"track"`
	Accepted bool   `csv:"accepted"`
	Reason   string `csv:"reason"`
	Cost     int64  `csv:"cost"`
	Level    int    `csv:"level"`
}

// NewPurchaseRecord flattens a purchase event for CSV output.
func NewPurchaseRecord(ev Event) PurchaseRecord {
	return PurchaseRecord{
		Tick:     ev.Tick,
		Track:    ev.Track.String(),
		Accepted: ev.Type == EventPurchase,
		Reason:   ev.Reason.String(),
		Cost:     int64(ev.Amount),
		Level:    ev.Count,
	}
}
