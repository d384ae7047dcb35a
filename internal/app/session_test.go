package app

import "testing"

func TestPositionDone(t *testing.T) {
	idle := Position{Phase: PhaseIdle}
	running := Position{Phase: PhaseRunning, Ordinal: 3}
	completed := Position{Phase: PhaseCompleted, Ordinal: StageCount}

	if idle.Done(0) {
		t.Fatal("nothing is done while idle")
	}
	if !running.Done(2) || running.Done(3) || running.Done(6) {
		t.Fatal("while running, only stages before the ordinal are done")
	}
	for ord := 0; ord < StageCount; ord++ {
		if !completed.Done(ord) {
			t.Fatalf("stage %d should be done after completion", ord)
		}
	}
}

func TestPositionCanView(t *testing.T) {
	idle := Position{Phase: PhaseIdle}
	if !idle.CanView(0) || idle.CanView(1) {
		t.Fatal("idle sessions expose only the first tab")
	}

	running := Position{Phase: PhaseRunning, Ordinal: 2}
	for ord := 0; ord <= 2; ord++ {
		if !running.CanView(ord) {
			t.Fatalf("stage %d should be viewable at ordinal 2", ord)
		}
	}
	for ord := 3; ord < StageCount; ord++ {
		if running.CanView(ord) {
			t.Fatalf("stage %d is locked at ordinal 2", ord)
		}
	}

	completed := Position{Phase: PhaseCompleted, Ordinal: StageCount}
	for ord := 0; ord < StageCount; ord++ {
		if !completed.CanView(ord) {
			t.Fatalf("stage %d should be viewable after completion", ord)
		}
	}

	if completed.CanView(-1) || completed.CanView(StageCount) {
		t.Fatal("out-of-range ordinals are never viewable")
	}
}

func TestPositionPercent(t *testing.T) {
	if p := (Position{Phase: PhaseIdle}).Percent(); p != 0 {
		t.Fatalf("idle percent = %d", p)
	}
	if p := (Position{Phase: PhaseRunning, Ordinal: 0}).Percent(); p != 0 {
		t.Fatalf("first stage percent = %d", p)
	}
	if p := (Position{Phase: PhaseRunning, Ordinal: 3}).Percent(); p != 42 {
		t.Fatalf("mid-run percent = %d", p)
	}
	if p := (Position{Phase: PhaseCompleted}).Percent(); p != 100 {
		t.Fatalf("completed percent = %d", p)
	}
}

func TestSetActiveTabRespectsLock(t *testing.T) {
	s := NewSession()
	s.Position = Position{Phase: PhaseRunning, Ordinal: 1}

	if !s.SetActiveTab(1) {
		t.Fatal("the in-progress stage is selectable")
	}
	if s.SetActiveTab(5) {
		t.Fatal("locked stages must not be selectable")
	}
	if s.ActiveTab != 1 {
		t.Fatalf("a rejected selection must not move the tab, got %d", s.ActiveTab)
	}
}

func TestSessionResultsClone(t *testing.T) {
	original := SessionResults{"script": "a"}
	clone := original.Clone()
	clone["script"] = "changed"
	clone["tts"] = "new"

	if original["script"] != "a" {
		t.Fatal("clone must not alias the original map")
	}
	if _, ok := original["tts"]; ok {
		t.Fatal("clone writes must not reach the original")
	}
	if nilClone := SessionResults(nil).Clone(); nilClone == nil {
		t.Fatal("cloning nil yields an empty usable map")
	}
}
