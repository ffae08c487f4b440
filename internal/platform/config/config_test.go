package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	kit "pontual/internal/platform/testkit"
)

func TestPrefix_Nests(t *testing.T) {
	audit := New().Prefix("CORE_").Prefix("AUDIT_")
	if got := audit.Name("FRAGMENTS"); got != "CORE_AUDIT_FRAGMENTS" {
		t.Fatalf("Name = %q", got)
	}
}

func TestMayString_TrimsAndFallsBack(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_SERVICE", "  pontual-api ")
	if got := c.MayString("SERVICE", "x"); got != "pontual-api" {
		t.Fatalf("MayString = %q", got)
	}
	t.Setenv("LOG_COMPONENT", "   ")
	if got := c.MayString("COMPONENT", "root"); got != "root" {
		t.Fatalf("blank value should fall back, got %q", got)
	}
}

func TestMayInt_BadValueUsesDefault(t *testing.T) {
	c := New().Prefix("CORE_INGEST_")
	t.Setenv("CORE_INGEST_WORKERS", "eight")
	if got := c.MayInt("WORKERS", 4); got != 4 {
		t.Fatalf("MayInt = %d, want 4", got)
	}
	t.Setenv("CORE_INGEST_WORKERS", " 8 ")
	if got := c.MayInt("WORKERS", 4); got != 8 {
		t.Fatalf("MayInt = %d, want 8", got)
	}
}

func TestMayIntRange_OutOfRangeUsesDefault(t *testing.T) {
	c := New().Prefix("CORE_AUDIT_")
	t.Setenv("CORE_AUDIT_STANDARD_DAY_MINUTES", "2000")
	if got := c.MayIntRange("STANDARD_DAY_MINUTES", 480, 1, 1440); got != 480 {
		t.Fatalf("MayIntRange = %d, want 480", got)
	}
	t.Setenv("CORE_AUDIT_STANDARD_DAY_MINUTES", "360")
	if got := c.MayIntRange("STANDARD_DAY_MINUTES", 480, 1, 1440); got != 360 {
		t.Fatalf("MayIntRange = %d, want 360", got)
	}
}

func TestMayBoolAndDuration(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_ENABLED", "false")
	t.Setenv("SERVICE_PGSQL_PING_TIMEOUT", "750ms")
	if c.MayBool("ENABLED", true) {
		t.Fatalf("MayBool should read false")
	}
	if got := c.MayDuration("PING_TIMEOUT", time.Second); got != 750*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	t.Setenv("SERVICE_PGSQL_PING_TIMEOUT", "soon")
	if got := c.MayDuration("PING_TIMEOUT", time.Second); got != time.Second {
		t.Fatalf("bad duration should fall back, got %v", got)
	}
}

func TestMayCSV_DropsBlankItems(t *testing.T) {
	c := New().Prefix("CORE_AUDIT_")
	t.Setenv("CORE_AUDIT_FRAGMENTS", " teste, ,xxx,, ")
	if got := c.MayCSV("FRAGMENTS", nil); !reflect.DeepEqual(got, []string{"teste", "xxx"}) {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("CORE_AUDIT_FRAGMENTS", " , ")
	if got := c.MayCSV("FRAGMENTS", []string{"d"}); !reflect.DeepEqual(got, []string{"d"}) {
		t.Fatalf("empty list should fall back, got %#v", got)
	}
}

func TestMayFile(t *testing.T) {
	c := New().Prefix("CORE_AUDIT_")
	if got := c.MayFile("HEURISTICS_FILE"); got != "" {
		t.Fatalf("unset MayFile = %q", got)
	}

	p := filepath.Join(t.TempDir(), "heuristics.yaml")
	if err := os.WriteFile(p, []byte("fragments: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CORE_AUDIT_HEURISTICS_FILE", p)
	if got := c.MayFile("HEURISTICS_FILE"); got != p {
		t.Fatalf("MayFile = %q", got)
	}

	t.Setenv("CORE_AUDIT_HEURISTICS_FILE", filepath.Dir(p))
	kit.MustPanic(t, func() { _ = c.MayFile("HEURISTICS_FILE") })
}
