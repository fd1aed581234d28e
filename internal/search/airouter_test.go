package search

import "testing"

func TestShouldUseAIDirectly(t *testing.T) {
	r := NewAIRouter(NewNormalizer(nil), nil)

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"brand token", "hdl", false},
		{"brand in sentence", "что скажешь про hdl buspro", false},
		{"document word", "паспорт на реле", false},
		{"cable with protocol", "кабель knx", false},
		{"voice integration carve-out", "как подключить алису к knx", false},
		{"voice chit-chat", "алиса умеет шутить?", true},
		{"comparison", "что лучше zigbee или wifi", true},
		{"troubleshooting", "почему не работает сценарий", true},
		{"short lookup", "granite", false},
		{"two words", "умный дом", false},
		{"long conversational", "расскажи мне про автоматизацию загородного дома", true},
		{"long with request verb", "найди мне пожалуйста схему щита автоматики", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ShouldUseAIDirectly(tt.query); got != tt.want {
				t.Errorf("ShouldUseAIDirectly(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
