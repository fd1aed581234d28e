package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/iotsystems/hdlbot/internal/bot"
	"github.com/iotsystems/hdlbot/internal/config"
	"github.com/iotsystems/hdlbot/internal/disk"
	"github.com/iotsystems/hdlbot/internal/search"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	// The Telegram side is a stub that accepts everything.
	tg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":{"message_id":1,"chat":{"id":1}}}`))
	}))
	t.Cleanup(tg.Close)

	api := bot.NewAPI(tg.URL, "t", tg.Client())
	engine := search.NewEngine(search.Options{IndexPath: t.TempDir() + "/missing.json"}, zap.NewNop())
	drive := disk.NewClient(config.DiskConfig{}, nil)
	b := bot.New(api, engine, nil, drive, config.TelegramConfig{}, 3, zap.NewNop())

	srv := New("127.0.0.1", 0, b, zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestWebhookAcceptsUpdate(t *testing.T) {
	_, ts := newTestServer(t)

	body := `{"update_id":1,"message":{"message_id":1,"chat":{"id":5,"type":"private"},"text":"/start"}}`
	resp, err := http.Post(ts.URL+"/webhook", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestWebhookMalformedBody(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/webhook", "application/json", strings.NewReader("{broken"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("malformed body answered %d, want 200", resp.StatusCode)
	}
}
