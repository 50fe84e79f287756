package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayScript_PrintsTreeAndStatus(t *testing.T) {
	app := testApp(t)
	var out bytes.Buffer

	err := replayScript(context.Background(), app, strings.NewReader(demoScript), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Push notification reminders")
	assert.Contains(t, out.String(), "Selected: 1/3")
	assert.NotContains(t, out.String(), "Added")
	assert.True(t, app.Builder().Snapshot().Empty(), "replays never touch the session tree")
}

func TestReplayScript_ReportsErrorsAndKeepsGoing(t *testing.T) {
	app := testApp(t)
	var out bytes.Buffer

	err := replayScript(context.Background(), app, strings.NewReader("outcome A\nsolution orphan\nopportunity B\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "line 2")
	assert.Contains(t, out.String(), "B")
}

// syncBuffer is a bytes.Buffer safe for the watcher goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// replayRecorder captures each script a watcher replays.
type replayRecorder struct {
	mu      sync.Mutex
	scripts []string
}

func (r *replayRecorder) replay(_ context.Context, in io.Reader, _ io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, string(data))
	return nil
}

func (r *replayRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.scripts...)
}

func (r *replayRecorder) last() string {
	got := r.all()
	if len(got) == 0 {
		return ""
	}
	return got[len(got)-1]
}

// startWatcher runs w until the test ends and fails if it does not stop
// once cancelled.
func startWatcher(t *testing.T, w *scriptWatcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop after cancel")
		}
	})
}

func TestScriptWatcher_ReplaysOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.ost")
	require.NoError(t, os.WriteFile(path, []byte("outcome First\n"), 0o644))

	rec := &replayRecorder{}
	out := &syncBuffer{}
	startWatcher(t, &scriptWatcher{path: path, debounce: 20 * time.Millisecond, out: out, replay: rec.replay})

	require.Eventually(t, func() bool { return len(rec.all()) >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "outcome First\n", rec.all()[0])

	require.NoError(t, os.WriteFile(path, []byte("outcome Second\n"), 0o644))
	require.Eventually(t, func() bool {
		return len(rec.all()) > 1 && rec.last() == "outcome Second\n"
	}, 2*time.Second, 10*time.Millisecond)

	// Other files in the directory are ignored.
	before := len(rec.all())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, rec.all(), before)
	assert.Contains(t, out.String(), "TREE.OST @")
}

func TestScriptWatcher_ReplaysLastWriteInsideDebounceWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.ost")
	require.NoError(t, os.WriteFile(path, []byte("outcome First\n"), 0o644))

	rec := &replayRecorder{}
	startWatcher(t, &scriptWatcher{path: path, debounce: 200 * time.Millisecond, out: io.Discard, replay: rec.replay})
	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("outcome Second\n"), 0o644))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("outcome Third\n"), 0o644))

	require.Eventually(t, func() bool { return rec.last() == "outcome Third\n" }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, []string{"outcome First\n", "outcome Third\n"}, rec.all(),
		"writes inside one window collapse into a single replay of the final content")
}

func TestScriptWatcher_MissingDirectory(t *testing.T) {
	w := &scriptWatcher{
		path:   filepath.Join(t.TempDir(), "missing", "tree.ost"),
		out:    io.Discard,
		replay: func(context.Context, io.Reader, io.Writer) error { return nil },
	}

	err := w.Run(context.Background())
	require.Error(t, err)
}
