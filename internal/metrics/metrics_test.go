package metrics

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

var baseTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleRun() Run {
	return Run{
		Compounds: 3,
		Requests:  51,
		Failed:    map[int]int{404: 2, 0: 1, 503: 4},
		NotFound:  5,
		Ranked:    3,
		Started:   baseTime,
		Finished:  baseTime.Add(90 * time.Second),
	}
}

// parse decodes text exposition output the same way a scraper would.
func parse(t *testing.T, data []byte) map[string]*dto.MetricFamily {
	t.Helper()
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse metrics: %v\n%s", err, data)
	}
	return mfs
}

func TestRun_Write(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleRun().Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	mfs := parse(t, buf.Bytes())

	if got := mfs[NameRequests].GetMetric()[0].GetCounter().GetValue(); got != 51 {
		t.Errorf("%s = %v, want 51", NameRequests, got)
	}
	if got := mfs[NameCompounds].GetMetric()[0].GetGauge().GetValue(); got != 3 {
		t.Errorf("%s = %v, want 3", NameCompounds, got)
	}
	if got := mfs[NameDuration].GetMetric()[0].GetGauge().GetValue(); got != 90 {
		t.Errorf("%s = %v, want 90", NameDuration, got)
	}
	if got := mfs[NameLastRunTime].GetMetric()[0].GetGauge().GetValue(); got != float64(baseTime.Unix()+90) {
		t.Errorf("%s = %v", NameLastRunTime, got)
	}

	byStatus := map[string]float64{}
	for _, m := range mfs[NameFailures].GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "status" {
				byStatus[lp.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	want := map[string]float64{"404": 2, "503": 4, "transport": 1}
	for k, v := range want {
		if byStatus[k] != v {
			t.Errorf("failures{status=%q} = %v, want %v", k, byStatus[k], v)
		}
	}
}

func TestRun_Write_NoFailures(t *testing.T) {
	r := sampleRun()
	r.Failed = nil
	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, ok := parse(t, buf.Bytes())[NameFailures]; ok {
		t.Errorf("%s written with no failures", NameFailures)
	}
}

func TestRun_Families_Sorted(t *testing.T) {
	fams := sampleRun().Families()
	for i := 1; i < len(fams); i++ {
		if fams[i-1].GetName() >= fams[i].GetName() {
			t.Errorf("families not sorted: %q before %q", fams[i-1].GetName(), fams[i].GetName())
		}
	}
}

func TestRun_WriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drug_analyzer.prom")
	if err := sampleRun().WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, ok := parse(t, data)[NameRanked]; !ok {
		t.Errorf("%s missing from file", NameRanked)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %v", entries)
	}
}
