package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	tu "github.com/desertthunder/fivhter/internal/testing"
)

func TestCollector(t *testing.T) {
	t.Run("Counts calls by operation and outcome", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		c := NewCollector(reg)

		c.RecordCall("GetList", OutcomeOK, 10*time.Millisecond)
		c.RecordCall("GetList", OutcomeOK, 20*time.Millisecond)
		c.RecordCall("GetList", "NotFound", time.Millisecond)

		if got := testutil.ToFloat64(c.calls.WithLabelValues("GetList", OutcomeOK)); got != 2 {
			t.Errorf("ok calls = %v, want 2", got)
		}
		if got := testutil.ToFloat64(c.calls.WithLabelValues("GetList", "NotFound")); got != 1 {
			t.Errorf("not found calls = %v, want 1", got)
		}
		if n := testutil.CollectAndCount(c.latency, "fivhter_backend_call_duration_seconds"); n != 1 {
			t.Errorf("expected 1 latency series, got %d", n)
		}
	})

	t.Run("Throttled and list gauge", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		c := NewCollector(reg)

		c.RecordThrottled("CreateList")
		c.SetLists(9)

		if got := testutil.ToFloat64(c.throttled.WithLabelValues("CreateList")); got != 1 {
			t.Errorf("throttled = %v, want 1", got)
		}
		if got := testutil.ToFloat64(c.lists); got != 9 {
			t.Errorf("lists = %v, want 9", got)
		}
	})

	t.Run("Double registration panics", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		NewCollector(reg)

		defer func() {
			if recover() == nil {
				t.Error("expected panic on duplicate registration")
			}
		}()
		NewCollector(reg)
	})
}

func TestWriteText(t *testing.T) {
	t.Run("Text exposition", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		c := NewCollector(reg)
		c.RecordCall("ListLists", OutcomeOK, time.Millisecond)

		var buf bytes.Buffer
		if err := WriteText(&buf, reg); err != nil {
			t.Fatalf("failed to write metrics: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# TYPE fivhter_backend_calls_total counter",
			`fivhter_backend_calls_total{operation="ListLists",outcome="ok"} 1`,
			"fivhter_store_lists 0",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("Write failure", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		NewCollector(reg)

		if err := WriteText(&tu.FWriter{}, reg); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}
