package transcript

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"widviz/common"
	"widviz/config"
)

func newTestDownloader(t *testing.T, script string) (*Downloader, string) {
	t.Helper()
	bin := t.TempDir()
	audioDir := t.TempDir()
	cfg := config.Config{
		YTDLPPath: writeStub(t, bin, "yt-dlp", script),
		AudioDir:  audioDir,
	}
	return NewDownloader(cfg), audioDir
}

func TestAcquireSuccess(t *testing.T) {
	d, dir := newTestDownloader(t, ytdlpWritesOutput)

	asset, err := d.Acquire(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	want := filepath.Join(dir, "temp_dQw4w9WgXcQ.wav")
	if asset.Path != want {
		t.Fatalf("path = %q, want %q", asset.Path, want)
	}
	if asset.Size == 0 {
		t.Fatal("expected non-zero size")
	}

	asset.Release()
	assertNoFile(t, want)
	asset.Release()
}

func TestAcquireToolMissing(t *testing.T) {
	d := NewDownloader(config.Config{YTDLPPath: "clearly-not-present-yt-dlp", AudioDir: t.TempDir()})
	_, err := d.Acquire(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, common.ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing, got %v", err)
	}
}

func TestAcquireFailureCarriesTruncatedStderr(t *testing.T) {
	long := strings.Repeat("x", 800)
	script := `if [ "$1" = "--version" ]; then exit 0; fi
printf 'ERROR: Video unavailable ` + long + `' >&2
exit 1
`
	d, dir := newTestDownloader(t, script)

	_, err := d.Acquire(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, common.ErrDownloadFailed) {
		t.Fatalf("expected ErrDownloadFailed, got %v", err)
	}
	detail := common.DetailOf(err)
	if !strings.HasPrefix(detail, "ERROR: Video unavailable") {
		t.Fatalf("detail = %q", detail)
	}
	if n := len([]rune(detail)); n > config.DiagnosticLimit {
		t.Fatalf("detail has %d runes, limit %d", n, config.DiagnosticLimit)
	}
	assertNoFile(t, filepath.Join(dir, "temp_dQw4w9WgXcQ.wav"))
}

func TestAcquireOutputMissing(t *testing.T) {
	d, _ := newTestDownloader(t, "exit 0\n")
	_, err := d.Acquire(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, common.ErrOutputMissing) {
		t.Fatalf("expected ErrOutputMissing, got %v", err)
	}
}

func TestAcquireTimeout(t *testing.T) {
	script := `if [ "$1" = "--version" ]; then exit 0; fi
exec sleep 5
`
	d, _ := newTestDownloader(t, script)
	d = d.WithTimeout(200 * time.Millisecond)

	start := time.Now()
	_, err := d.Acquire(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, common.ErrDownloadTimeout) {
		t.Fatalf("expected ErrDownloadTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 4*time.Second {
		t.Fatalf("timeout not enforced, took %s", elapsed)
	}
}

func TestAcquireRemovesPartialDownload(t *testing.T) {
	script := `if [ "$1" = "--version" ]; then exit 0; fi
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then out="$2"; fi
  shift
done
printf 'partial' > "$out.part"
exit 1
`
	d, dir := newTestDownloader(t, script)
	if _, err := d.Acquire(context.Background(), "dQw4w9WgXcQ"); err == nil {
		t.Fatal("expected failure")
	}
	assertNoFile(t, filepath.Join(dir, "temp_dQw4w9WgXcQ.wav.part"))
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatalf("audio dir not empty: %v", entries)
	}
}
