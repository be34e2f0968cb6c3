package export

import (
	"encoding/json"
	"testing"
)

func TestReportSpriteName(t *testing.T) {
	r := Report{Names: []string{"hero", ""}}

	tests := map[int]string{
		0:  "hero",
		1:  "#1",
		7:  "#7",
		-1: "#-1",
	}
	for id, want := range tests {
		if got := r.SpriteName(id); got != want {
			t.Errorf("SpriteName(%d) = %q, want %q", id, got, want)
		}
	}
}

func TestReportFile(t *testing.T) {
	r := Report{Files: []string{"a.png"}}
	if r.File(0) != "a.png" || r.File(1) != "" || r.File(-1) != "" {
		t.Errorf("unexpected file lookup results")
	}
}

func TestCollectSpriteInfos(t *testing.T) {
	infos := CollectSpriteInfos(buildTestReport())

	if len(infos) != 4 {
		t.Fatalf("expected 4 sprite infos, got %d", len(infos))
	}
	last := infos[3]
	if last.Name != "boss" || last.SheetIndex != 2 || last.Width != 48 {
		t.Errorf("unexpected last info %+v", last)
	}
	if infos[2].Name != "heart" || infos[2].Y != 32 {
		t.Errorf("unexpected third info %+v", infos[2])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(buildTestReport())

	if s.Algorithm != "maxrects" {
		t.Errorf("expected maxrects, got %q", s.Algorithm)
	}
	if s.Sprites != 4 {
		t.Errorf("expected 4 sprites, got %d", s.Sprites)
	}
	if len(s.Sheets) != 2 {
		t.Fatalf("expected 2 sheet summaries, got %d", len(s.Sheets))
	}
	if s.Sheets[1].File != "atlas-01.png" || s.Sheets[1].Efficiency != 100 {
		t.Errorf("unexpected second sheet summary %+v", s.Sheets[1])
	}
	// (64*64 + 32*32 + 32*16 + 48*48) / (96*64 + 48*48)
	want := float64(4096+1024+512+2304) / float64(6144+2304) * 100
	if s.Efficiency != want {
		t.Errorf("expected efficiency %v, got %v", want, s.Efficiency)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back Summary
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Sprites != s.Sprites || len(back.Sheets) != 2 {
		t.Errorf("summary did not survive json: %+v", back)
	}
}

func TestCountSprites(t *testing.T) {
	if got := countSprites(buildTestReport()); got != 4 {
		t.Errorf("countSprites() = %d, want 4", got)
	}
}
