package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sharelink/internal/client/config"
	"github.com/dmitrijs2005/sharelink/internal/client/router"
	"github.com/dmitrijs2005/sharelink/internal/client/workflow"
)

// fakeBackend stores uploads in memory and serves them back the way the
// sharing service does.
type fakeBackend struct {
	mu      sync.Mutex
	srv     *httptest.Server
	texts   map[string]string
	files   map[string][]byte
	names   map[string]string
	expired map[string]bool
	uploads int
	failMsg string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		texts:   map[string]string{},
		files:   map[string][]byte{},
		names:   map[string]string{},
		expired: map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/upload", b.upload)
	mux.HandleFunc("GET /api/v1/meta/{id}", b.meta)
	mux.HandleFunc("GET /api/v1/download/{id}", b.download)

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) upload(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failMsg != "" {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": b.failMsg})
		return
	}

	b.uploads++
	id := fmt.Sprintf("id%d", b.uploads)

	if text := r.FormValue("text"); text != "" {
		b.texts[id] = text
	} else {
		f, h, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		b.files[id] = data
		b.names[id] = h.Filename
	}

	_ = json.NewEncoder(w).Encode(map[string]string{
		"viewUrl":   "http://web.local/view/" + id,
		"expiresAt": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
}

func (b *fakeBackend) meta(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := r.PathValue("id")
	expires := time.Now().Add(time.Hour)
	if b.expired[id] {
		expires = time.Now().Add(-time.Hour)
	}

	resp := map[string]any{"shortId": id, "expiresAt": expires.UTC().Format(time.RFC3339)}
	switch {
	case b.texts[id] != "":
		resp["uploadType"] = "TEXT"
		resp["textContent"] = b.texts[id]
	case b.files[id] != nil:
		resp["uploadType"] = "FILE"
		resp["originalFilename"] = b.names[id]
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (b *fakeBackend) download(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := r.PathValue("id")
	data, ok := b.files[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, b.names[id]))
	_, _ = w.Write(data)
}

func newTestApp(t *testing.T, b *fakeBackend, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var cfg config.Config
	cfg.LoadDefaults()
	cfg.ServerOrigin = b.srv.URL
	cfg.DownloadDir = t.TempDir()

	var out bytes.Buffer
	app, err := NewApp(&cfg, nil, strings.NewReader(input), &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, &out
}

func TestNewApp_RejectsBadOrigin(t *testing.T) {
	var cfg config.Config
	cfg.LoadDefaults()
	cfg.ServerOrigin = "localhost:8080"

	_, err := NewApp(&cfg, nil, strings.NewReader(""), io.Discard)
	assert.Error(t, err)
}

func TestApp_PasteThenView(t *testing.T) {
	b := newFakeBackend(t)
	app, out := newTestApp(t, b, "line one\nline two\n")
	ctx := context.Background()

	require.NoError(t, app.RunCommand(ctx, []string{"paste"}))
	assert.Contains(t, out.String(), "Upload successful!")
	assert.Contains(t, out.String(), "http://web.local/view/id1")
	assert.Equal(t, "line one\nline two\n", b.texts["id1"])

	out.Reset()
	require.NoError(t, app.RunCommand(ctx, []string{"view", "http://web.local/view/id1"}))
	assert.Contains(t, out.String(), "line one")
	assert.Equal(t, router.Route{Screen: router.ScreenView, ShortID: "id1"}, app.route)

	require.NoError(t, app.CopyText(ctx))
	assert.True(t, app.link.Snapshot().TextCopied)
	assert.Contains(t, out.String(), "Copied!")
}

func TestApp_UploadFileThenDownload(t *testing.T) {
	b := newFakeBackend(t)
	app, out := newTestApp(t, b, "")
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("file body"), 0o600))

	require.NoError(t, app.RunCommand(ctx, []string{"upload", src}))
	assert.Equal(t, "notes.txt", b.names["id1"])
	assert.Equal(t, workflow.UploadSucceeded, app.upload.Snapshot().State)

	out.Reset()
	require.NoError(t, app.RunCommand(ctx, []string{"download", "id1"}))
	assert.Contains(t, out.String(), "Saved to ")

	got, err := os.ReadFile(filepath.Join(app.downloadDir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "file body", string(got))
}

func TestApp_DownloadDirCreatedOnFirstDownload(t *testing.T) {
	b := newFakeBackend(t)
	b.files["f1"] = []byte("payload")
	b.names["f1"] = "data.bin"

	var cfg config.Config
	cfg.LoadDefaults()
	cfg.ServerOrigin = b.srv.URL
	cfg.DownloadDir = filepath.Join(t.TempDir(), "later", "downloads")

	app, err := NewApp(&cfg, nil, strings.NewReader(""), io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	assert.NoDirExists(t, cfg.DownloadDir)

	require.NoError(t, app.RunCommand(context.Background(), []string{"view", "f1"}))
	assert.NoDirExists(t, cfg.DownloadDir)

	require.NoError(t, app.RunCommand(context.Background(), []string{"download", "f1"}))
	assert.FileExists(t, filepath.Join(cfg.DownloadDir, "data.bin"))
}

func TestApp_UploadFailureShowsServerMessage(t *testing.T) {
	b := newFakeBackend(t)
	b.failMsg = "File is too large."
	app, out := newTestApp(t, b, "")

	src := filepath.Join(t.TempDir(), "big.bin")
	require.NoError(t, os.WriteFile(src, []byte("xx"), 0o600))

	err := app.RunCommand(context.Background(), []string{"upload", src})
	require.Error(t, err)
	assert.ErrorIs(t, err, errUploadFailed)
	assert.Contains(t, out.String(), "File is too large.")
	assert.Equal(t, workflow.UploadFailed, app.upload.Snapshot().State)
}

func TestApp_EmptyPasteIsRejectedLocally(t *testing.T) {
	b := newFakeBackend(t)
	app, out := newTestApp(t, b, "   \n")

	err := app.RunCommand(context.Background(), []string{"paste"})
	require.Error(t, err)
	assert.Contains(t, out.String(), workflow.MsgNothingStaged)
	assert.Zero(t, b.uploads)
}

func TestApp_ViewMissingAndExpired(t *testing.T) {
	b := newFakeBackend(t)
	b.texts["old"] = "stale"
	b.expired["old"] = true
	app, out := newTestApp(t, b, "")
	ctx := context.Background()

	err := app.RunCommand(ctx, []string{"view", "nope"})
	assert.ErrorIs(t, err, errLinkUnavailable)
	assert.Contains(t, out.String(), workflow.MsgNotFound)

	out.Reset()
	err = app.RunCommand(ctx, []string{"view", "/view/old"})
	assert.ErrorIs(t, err, errLinkUnavailable)
	assert.Contains(t, out.String(), workflow.MsgExpired)
	assert.NotContains(t, out.String(), "stale")
}

func TestApp_REPLStagesTextWithBlankLines(t *testing.T) {
	captureOutput(t)
	b := newFakeBackend(t)

	input := strings.Join([]string{
		"mode text",
		"text",
		"func main() {",
		"",
		"\tprintln(1)",
		"}",
		"",
		".",
		"submit",
		"exit",
	}, "\n") + "\n"

	app, _ := newTestApp(t, b, input)
	app.Run(context.Background())

	assert.Equal(t, "func main() {\n\n\tprintln(1)\n}\n", b.texts["id1"])
	assert.Equal(t, 1, b.uploads)
	assert.Equal(t, workflow.UploadSucceeded, app.upload.Snapshot().State)
}

func TestApp_CommandErrors(t *testing.T) {
	b := newFakeBackend(t)
	app, _ := newTestApp(t, b, "")
	ctx := context.Background()

	assert.ErrorIs(t, app.RunCommand(ctx, nil), ErrUsage)
	assert.ErrorIs(t, app.RunCommand(ctx, []string{"upload"}), ErrUsage)
	assert.ErrorIs(t, app.RunCommand(ctx, []string{"teleport"}), ErrUsage)
	assert.ErrorIs(t, app.SelectMode(ctx, "video"), errUsageMode)
	assert.ErrorIs(t, app.Open(ctx, "/download/x"), router.ErrUnknownRoute)
	assert.Error(t, app.CopyLink(ctx))
	assert.Error(t, app.Download(ctx))
	assert.Error(t, app.StageText(ctx, "text while in file mode"))
}

func TestApp_REPLSession(t *testing.T) {
	captureOutput(t)
	b := newFakeBackend(t)

	input := strings.Join([]string{
		"mode text",
		"text",
		"first line",
		"second line",
		".",
		"submit",
		"open /view/id1",
		"open /",
		"reset",
		"exit",
	}, "\n") + "\n"

	app, out := newTestApp(t, b, input)
	app.Run(context.Background())

	assert.Equal(t, "first line\nsecond line", b.texts["id1"])
	assert.Contains(t, out.String(), "Upload successful!")
	assert.Equal(t, router.ScreenSubmit, app.route.Screen)
	assert.Equal(t, workflow.UploadIdle, app.upload.Snapshot().State)
}
