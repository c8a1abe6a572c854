package game

import (
	"strings"
	"testing"
)

func TestMatchLog_VerboseGate(t *testing.T) {
	quiet := NewMatchLog(false)
	quiet.AddVerbose(1, "R", "grade", "isNear", "0.500", 0.5)
	quiet.Add(1, "R", "decide", "action", "radar", 0)
	if len(quiet.Entries()) != 1 {
		t.Fatalf("quiet log should drop verbose entries, has %d", len(quiet.Entries()))
	}

	loud := NewMatchLog(true)
	loud.AddVerbose(1, "R", "grade", "isNear", "0.500", 0.5)
	if len(loud.Entries()) != 1 || !loud.Verbose() {
		t.Fatal("verbose log should keep verbose entries")
	}
}

func TestMatchLog_Queries(t *testing.T) {
	ml := NewMatchLog(false)
	ml.Add(1, "R", "decide", "action", "moveForward", 0)
	ml.Add(1, "G", "decide", "action", "radar", 0)
	ml.Add(2, "G", "radar", "contact", "(4,4) radius=3", 3)
	ml.Add(3, "R", "laser", "hit", "(1,1) NE range=4", 4)

	if n := ml.CountCategory("decide", ""); n != 2 {
		t.Fatalf("expected 2 decide entries, got %d", n)
	}
	if got := ml.FilterRobot("G"); len(got) != 2 {
		t.Fatalf("expected 2 green entries, got %d", len(got))
	}
	last, ok := ml.LastOf("decide", "action")
	if !ok || last.Robot != "G" {
		t.Fatalf("LastOf should return green's decision, got %+v", last)
	}
	if !ml.HasEntry("laser", "hit", "range=4") || ml.HasEntry("laser", "miss", "") {
		t.Fatal("HasEntry mismatched")
	}
	if tail := ml.Tail(2); len(tail) != 2 || tail[1].Category != "laser" {
		t.Fatalf("unexpected tail %+v", tail)
	}
	if tail := ml.Tail(10); len(tail) != 4 {
		t.Fatalf("tail longer than the log should return everything, got %d", len(tail))
	}
}

func TestMatchLogEntry_String(t *testing.T) {
	e := MatchLogEntry{Tick: 12, Robot: "R", Category: "laser", Key: "hit", Value: "(3,4) E range=3"}
	got := e.String()
	if !strings.HasPrefix(got, "[T=012] R  laser") || !strings.HasSuffix(got, "(3,4) E range=3") {
		t.Fatalf("unexpected format %q", got)
	}
	if lines := strings.Count((&MatchLog{entries: []MatchLogEntry{e, e}}).Format(), "\n"); lines != 2 {
		t.Fatalf("Format should emit one line per entry, got %d", lines)
	}
}
