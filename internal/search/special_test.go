package search

import (
	"testing"

	"github.com/iotsystems/hdlbot/internal/models"
)

func TestMatchVoice(t *testing.T) {
	sc := NewSpecialCases(NewNormalizer(nil), nil)

	tests := []struct {
		query string
		want  bool
	}{
		{"как подключить алису", true},
		{"интеграция с голосовым помощником", true},
		{"alice knx integration", true},
		{"алиса", false},
		{"настройка реле", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := sc.MatchVoice(tt.query); got != tt.want {
			t.Errorf("MatchVoice(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestMatchKNXCable(t *testing.T) {
	sc := NewSpecialCases(NewNormalizer(nil), nil)

	tests := []struct {
		query string
		want  bool
	}{
		{"кабель knx", true},
		{"knx кабель", true},
		{"нужен провод для knx", true},
		{"ye00820", true},
		{"кабель", false},
		{"knx шлюз", false},
	}
	for _, tt := range tests {
		if got := sc.MatchKNXCable(tt.query); got != tt.want {
			t.Errorf("MatchKNXCable(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestFindKNXCableFiles(t *testing.T) {
	sc := NewSpecialCases(NewNormalizer(nil), nil)

	idx := []models.DocumentRecord{
		{Name: "KNX датчик движения.pdf", Path: "/02. HDL/KNX датчик движения.pdf"},
		{Name: "YE00820 KNX кабель.pdf", Path: "/01. iOT Systems/02. iOT Кабель/YE00820 KNX кабель.pdf"},
		{Name: "J-Y(St)Y 2x2x0,8.pdf", Path: "/01. iOT Systems/02. iOT Кабель/J-Y(St)Y 2x2x0,8.pdf"},
		{Name: "Moorgen motor.pdf", Path: "/05. Moorgen/Moorgen motor.pdf"},
	}

	results := sc.FindKNXCableFiles(idx)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 marker matches", len(results))
	}
	if results[0].Name != "YE00820 KNX кабель.pdf" {
		t.Errorf("top result = %q, want the part number document first", results[0].Name)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Relevance > results[i-1].Relevance {
			t.Errorf("results not sorted by weight at %d", i)
		}
	}
}

func TestFindKNXCableFilesEmpty(t *testing.T) {
	sc := NewSpecialCases(NewNormalizer(nil), nil)

	if results := sc.FindKNXCableFiles(nil); results != nil {
		t.Errorf("empty index produced %v", results)
	}
}

func TestVoiceResult(t *testing.T) {
	sc := NewSpecialCases(NewNormalizer(nil), nil)

	r := sc.VoiceResult()
	if !r.IsFolderLink || r.FolderLink == "" {
		t.Errorf("VoiceResult = %+v, want folder link", r)
	}
}
