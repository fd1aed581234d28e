// Package integration exercises the whole stack: webhook server, bot
// dispatcher, search engine, and the docs link builder, against a fake
// Telegram API.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/iotsystems/hdlbot/internal/bot"
	"github.com/iotsystems/hdlbot/internal/config"
	"github.com/iotsystems/hdlbot/internal/disk"
	"github.com/iotsystems/hdlbot/internal/models"
	"github.com/iotsystems/hdlbot/internal/search"
	"github.com/iotsystems/hdlbot/internal/server"
)

type capture struct {
	mu   sync.Mutex
	sent []map[string]any
}

func (c *capture) add(m map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, m)
}

func (c *capture) all() []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]any, len(c.sent))
	copy(out, c.sent)
	return out
}

func setup(t *testing.T) (*httptest.Server, *capture) {
	t.Helper()

	outbox := &capture{}
	tg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			var m map[string]any
			if err := json.NewDecoder(r.Body).Decode(&m); err == nil {
				outbox.add(m)
			}
			w.Write([]byte(`{"ok":true,"result":{"message_id":1,"chat":{"id":1}}}`))
			return
		}
		w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	t.Cleanup(tg.Close)

	indexPath := filepath.Join(t.TempDir(), "file_index.json")
	records := []models.DocumentRecord{
		{
			Name:     "YE00820 KNX кабель J-Y(St)Y 2x2x0,8.pdf",
			Path:     "disk:/docs/01. iOT Systems/02. iOT Кабель/YE00820 KNX кабель J-Y(St)Y 2x2x0,8.pdf",
			NormName: "ye00820 knx cable",
		},
		{
			Name:     "HDL Granite панель.pdf",
			Path:     "disk:/docs/02. HDL/HDL Granite панель.pdf",
			NormName: "hdl granite panel",
		},
	}
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(indexPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	engine := search.NewEngine(search.Options{IndexPath: indexPath, Limit: 3}, zap.NewNop())
	api := bot.NewAPI(tg.URL, "test-token", tg.Client())
	drive := disk.NewClient(config.DiskConfig{
		BaseFolder:    "/docs",
		DocsPublicKey: "pub-key",
	}, nil)
	b := bot.New(api, engine, nil, drive, config.TelegramConfig{SupportChatID: -100}, 3, zap.NewNop())

	srv := server.New("127.0.0.1", 0, b, zap.NewNop())
	ws := httptest.NewServer(srv.Handler())
	t.Cleanup(ws.Close)
	return ws, outbox
}

func postUpdate(t *testing.T, ws *httptest.Server, body string) {
	t.Helper()
	resp, err := http.Post(ws.URL+"/webhook", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("webhook status %d", resp.StatusCode)
	}
}

func TestCableQueryEndToEnd(t *testing.T) {
	ws, outbox := setup(t)

	postUpdate(t, ws, `{"update_id":1,"message":{"message_id":1,"chat":{"id":5,"type":"private"},"from":{"id":5,"first_name":"U"},"text":"кабель knx"}}`)

	sent := outbox.all()
	if len(sent) == 0 {
		t.Fatal("bot sent nothing")
	}
	raw, _ := json.Marshal(sent[len(sent)-1])
	if !strings.Contains(string(raw), "YE00820") {
		t.Errorf("cable document not offered: %s", raw)
	}
	if strings.Contains(string(raw), "датчик") {
		t.Errorf("sensor document leaked: %s", raw)
	}
}

func TestVoiceQueryEndToEnd(t *testing.T) {
	ws, outbox := setup(t)

	postUpdate(t, ws, `{"update_id":2,"message":{"message_id":2,"chat":{"id":5,"type":"private"},"from":{"id":5,"first_name":"U"},"text":"как подключить алису к knx"}}`)

	sent := outbox.all()
	if len(sent) == 0 {
		t.Fatal("bot sent nothing")
	}
	raw, _ := json.Marshal(sent[len(sent)-1])
	if !strings.Contains(string(raw), "disk.360.yandex.ru") {
		t.Errorf("curated folder link missing: %s", raw)
	}
}

func TestStartEndToEnd(t *testing.T) {
	ws, outbox := setup(t)

	postUpdate(t, ws, `{"update_id":3,"message":{"message_id":3,"chat":{"id":5,"type":"private"},"from":{"id":5,"first_name":"U"},"text":"/start"}}`)

	sent := outbox.all()
	if len(sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sent))
	}
	if !strings.Contains(sent[0]["text"].(string), "iOT Systems") {
		t.Errorf("intro text = %v", sent[0]["text"])
	}
}
