package metrics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Metric names written by Families.
const (
	NameCompounds     = "drug_analyzer_compounds"
	NameRequests      = "drug_analyzer_requests_total"
	NameFailures      = "drug_analyzer_request_failures_total"
	NameNotFound      = "drug_analyzer_properties_not_found_total"
	NameRanked        = "drug_analyzer_ranked_compounds"
	NameDuration      = "drug_analyzer_run_duration_seconds"
	NameLastRunTime   = "drug_analyzer_last_run_timestamp_seconds"
	labelStatus       = "status"
	transportStatusID = "transport"
)

// Run holds the counters of one pipeline run.
type Run struct {
	Compounds int
	Requests  int

	// Failed counts failed requests by HTTP status; 0 means a transport error.
	Failed map[int]int

	NotFound int
	Ranked   int

	Started  time.Time
	Finished time.Time
}

// Families converts r into metric families, sorted by name.
func (r Run) Families() []*dto.MetricFamily {
	fams := []*dto.MetricFamily{
		gauge(NameCompounds, "Compounds fetched in the last run.", float64(r.Compounds)),
		counter(NameRequests, "Property lookups issued in the last run.", float64(r.Requests)),
		counter(NameNotFound, "Successful lookups whose response lacked the property.", float64(r.NotFound)),
		gauge(NameRanked, "Compounds ranked in the last run.", float64(r.Ranked)),
		gauge(NameDuration, "Wall-clock duration of the last run.", r.Finished.Sub(r.Started).Seconds()),
		gauge(NameLastRunTime, "Unix time the last run finished.", float64(r.Finished.UnixNano())/1e9),
	}

	failures := &dto.MetricFamily{
		Name: proto.String(NameFailures),
		Help: proto.String("Property lookups that failed, by HTTP status."),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	codes := make([]int, 0, len(r.Failed))
	for code := range r.Failed {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		status := strconv.Itoa(code)
		if code == 0 {
			status = transportStatusID
		}
		failures.Metric = append(failures.Metric, &dto.Metric{
			Label:   []*dto.LabelPair{{Name: proto.String(labelStatus), Value: proto.String(status)}},
			Counter: &dto.Counter{Value: proto.Float64(float64(r.Failed[code]))},
		})
	}
	if len(failures.Metric) > 0 {
		fams = append(fams, failures)
	}

	sort.Slice(fams, func(i, j int) bool { return fams[i].GetName() < fams[j].GetName() })
	return fams
}

// Write encodes r's metric families to w in text format.
func (r Run) Write(w io.Writer) error {
	for _, mf := range r.Families() {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteFile writes r to path. The file is written to a temporary name in the
// same directory and renamed, so collectors never read a partial file.
func (r Run) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".drug-analyzer-*.prom.tmp")
	if err != nil {
		return fmt.Errorf("metrics: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if err := r.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("metrics: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("metrics: rename: %w", err)
	}
	return nil
}

func gauge(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(v)}}},
	}
}

func counter(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{{Counter: &dto.Counter{Value: proto.Float64(v)}}},
	}
}
