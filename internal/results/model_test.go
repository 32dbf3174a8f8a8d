package results

import (
	"bytes"
	"testing"
	"time"
)

func sampleLog() Log {
	ts := time.Date(2026, 10, 16, 9, 30, 0, 123000000, time.UTC)
	return Log{
		{ID: "01J0000000000000000000000A", GameType: Memory, Score: 4, Details: []byte(`{"finalLevel":4,"sequenceLength":4}`), Timestamp: ts, Date: "10/16/2026"},
		{ID: "01J0000000000000000000000B", GameType: Reaction, Score: 287.6, Details: []byte(`{"attempts":[250,300,280,310,298],"best":250}`), Timestamp: ts.Add(time.Minute), Date: "10/16/2026"},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, l := range []Log{nil, {}, sampleLog()} {
		b, err := Encode(l)
		if err != nil {
			t.Fatalf("Encode() error: %v", err)
		}
		decoded, err := Decode(b)
		if err != nil {
			t.Fatalf("Decode() error: %v", err)
		}
		again, _ := Encode(decoded)
		if !bytes.Equal(b, again) {
			t.Errorf("round trip changed encoding:\n%s\n%s", b, again)
		}
		if len(decoded) != len(l) {
			t.Errorf("decoded length = %d, want %d", len(decoded), len(l))
		}
		for i := range l {
			if decoded[i].ID != l[i].ID || !decoded[i].Timestamp.Equal(l[i].Timestamp) || decoded[i].Score != l[i].Score {
				t.Errorf("result %d = %+v, want %+v", i, decoded[i], l[i])
			}
		}
	}
}

func TestEncode_EmptyLogIsArray(t *testing.T) {
	b, _ := Encode(nil)
	if string(b) != "[]" {
		t.Errorf("Encode(nil) = %s, want []", b)
	}
}

func TestEncode_FieldNames(t *testing.T) {
	b, _ := Encode(sampleLog()[:1])
	for _, field := range []string{`"id"`, `"gameType":"memory"`, `"score":4`, `"details":{"finalLevel":4`, `"timestamp":"2026-10-16T09:30:00.123Z"`, `"date":"10/16/2026"`} {
		if !bytes.Contains(b, []byte(field)) {
			t.Errorf("encoded log %s missing %s", b, field)
		}
	}
}

func TestLog_FilterAndLast(t *testing.T) {
	l := sampleLog()
	if got := l.Filter(Memory); len(got) != 1 || got[0].GameType != Memory {
		t.Errorf("Filter(memory) = %v", got)
	}
	if got := l.Filter(Focus); len(got) != 0 {
		t.Errorf("Filter(focus) = %v, want empty", got)
	}
	if got := l.Last(1); len(got) != 1 || got[0].GameType != Reaction {
		t.Errorf("Last(1) = %v", got)
	}
	if got := l.Last(10); len(got) != 2 {
		t.Errorf("Last(10) length = %d, want 2", len(got))
	}
}

func TestParseGameType(t *testing.T) {
	for _, gt := range GameTypes {
		got, err := ParseGameType(string(gt))
		if err != nil || got != gt {
			t.Errorf("ParseGameType(%q) = %q, %v", gt, got, err)
		}
		if gt.Title() == "" || gt.Unit() == "" {
			t.Errorf("%s missing catalog info", gt)
		}
	}
	if _, err := ParseGameType("chess"); err == nil {
		t.Error("ParseGameType(chess) should fail")
	}
}

func TestGameType_LowerIsBetter(t *testing.T) {
	if !Reaction.LowerIsBetter() {
		t.Error("reaction scores are latencies")
	}
	if Memory.LowerIsBetter() || Pattern.LowerIsBetter() || Focus.LowerIsBetter() {
		t.Error("only reaction is lower-is-better")
	}
}
