package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRecorderTracksCallsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordAPICall("list_players", 200, 10*time.Millisecond, nil)
	rec.RecordAPICall("list_players", 502, 15*time.Millisecond, errors.New("boom"))

	if got := rec.APICalls("list_players"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.APIErrors("list_players"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("list_players"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("list_players")
	if snap.Calls != 2 || snap.Errors != 1 || snap.LastStatus != 502 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if got := rec.Snapshot("unknown"); got != (Snapshot{}) {
		t.Fatalf("expected empty snapshot for unknown op, got %+v", got)
	}
}

func TestRecorderIsNilSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordAPICall("login", 200, time.Millisecond, nil)
	rec.RecordHTTPRequest("GET", "/players", 200, time.Millisecond)
	rec.RecordRefreshCycle("market", time.Millisecond, nil)
	if rec.APICalls("login") != 0 {
		t.Fatalf("expected zero calls from nil recorder")
	}
}

func TestRecorderConcurrentUse(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.RecordAPICall("search_outfield", 200, time.Millisecond, nil)
		}()
	}
	wg.Wait()
	if got := rec.APICalls("search_outfield"); got != 20 {
		t.Fatalf("expected 20 calls, got %d", got)
	}
}
