package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseAct)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseReconcile)
		time.Sleep(50 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
	if _, ok := stats.PhaseAvg[PhaseAct]; !ok {
		t.Error("expected act phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseReconcile]; !ok {
		t.Error("expected reconcile phase to be tracked")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive throughput")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSnapshot)
		pc.EndTick()
	}

	if pc.sampleCount != 5 {
		t.Errorf("sampleCount = %d, want 5", pc.sampleCount)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(0)

	stats := pc.Stats()
	if stats.AvgTickDuration != 0 {
		t.Errorf("expected zero duration, got %v", stats.AvgTickDuration)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("phase maps should be initialized")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 2 * time.Millisecond,
		PhasePct:        map[string]float64{PhaseAct: 80, PhaseReconcile: 15},
		RSSBytes:        1 << 20,
	}

	row := stats.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgTickUS != 2000 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.ActPct != 80 || row.ReconcilePct != 15 || row.ObservePct != 0 {
		t.Errorf("unexpected phase columns %+v", row)
	}
	if row.RSSBytes != 1<<20 {
		t.Errorf("RSSBytes = %d", row.RSSBytes)
	}
}
