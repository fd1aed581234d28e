package disk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iotsystems/hdlbot/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.DiskConfig{
		Token:         "test-token",
		BaseURL:       srv.URL,
		BaseFolder:    "/docs",
		DocsPublicKey: "pub-key",
	}, srv.Client())
}

func TestListFolder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "OAuth test-token" {
			t.Errorf("authorization header = %q", got)
		}
		if got := r.URL.Query().Get("path"); got != "/docs/02. HDL" {
			t.Errorf("path param = %q", got)
		}
		w.Write([]byte(`{"_embedded":{"items":[
			{"name":"panels","path":"disk:/docs/02. HDL/panels","type":"dir"},
			{"name":"manual.pdf","path":"disk:/docs/02. HDL/manual.pdf","type":"file"}
		]}}`))
	})

	items, err := c.ListFolder(context.Background(), "/docs/02. HDL")
	if err != nil {
		t.Fatalf("ListFolder: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if !items[0].IsDir() || items[1].IsDir() {
		t.Errorf("types parsed wrong: %+v", items)
	}
}

func TestListFolderAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
	})

	if _, err := c.ListFolder(context.Background(), "/docs"); err == nil {
		t.Error("expected error for 401 response")
	} else if !strings.Contains(err.Error(), "401") {
		t.Errorf("error does not carry status: %v", err)
	}
}

func TestDownloadURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/resources/download") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"href":"https://downloader.example/file.pdf"}`))
	})

	href, err := c.DownloadURL(context.Background(), "/docs/manual.pdf")
	if err != nil {
		t.Fatalf("DownloadURL: %v", err)
	}
	if href != "https://downloader.example/file.pdf" {
		t.Errorf("href = %q", href)
	}
}

func TestBuildDocsURL(t *testing.T) {
	c := NewClient(config.DiskConfig{
		BaseFolder:    "/docs",
		DocsPublicKey: "pub-key",
	}, nil)

	got := c.BuildDocsURL("disk:/docs/02. HDL/Granite manual.pdf")
	if !strings.HasPrefix(got, "https://docs.360.yandex.ru/docs/view?url=") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, "ya-disk-public%3A%2F%2Fpub-key%3A%2F") {
		t.Errorf("public key segment not encoded: %q", got)
	}
	if !strings.Contains(got, "name=Granite+manual.pdf") {
		t.Errorf("name param missing: %q", got)
	}
	if !strings.HasSuffix(got, "&nosw=1") {
		t.Errorf("nosw flag missing: %q", got)
	}
	if strings.Contains(got, "%2Fdocs%2F") {
		t.Errorf("base folder leaked into viewer path: %q", got)
	}
}
