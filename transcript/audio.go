package transcript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"widviz/common"
	"widviz/config"
	"widviz/videoid"
)

// AudioAsset is a temporary audio file owned by one transcription attempt.
type AudioAsset struct {
	Path string
	Size int64
}

// Release deletes the file and any partial download left beside it. It is
// safe to call more than once and on a nil asset.
func (a *AudioAsset) Release() {
	if a == nil || a.Path == "" {
		return
	}
	removeAudio(a.Path)
}

func removeAudio(path string) {
	for _, p := range []string{path, path + ".part"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove audio file", "path", p, "error", err)
		}
	}
}

// Downloader extracts audio tracks with yt-dlp.
type Downloader struct {
	binary  string
	dir     string
	timeout time.Duration
	maxSize string
}

// NewDownloader configures a Downloader from cfg.
func NewDownloader(cfg config.Config) *Downloader {
	return &Downloader{
		binary:  cfg.YTDLPPath,
		dir:     cfg.AudioDir,
		timeout: config.DownloadTimeout,
		maxSize: config.MaxDownloadSize,
	}
}

// WithTimeout overrides the wall-clock budget of a single download.
func (d *Downloader) WithTimeout(timeout time.Duration) *Downloader {
	cp := *d
	cp.timeout = timeout
	return &cp
}

// Path is where the audio for videoID is written.
func (d *Downloader) Path(videoID string) string {
	return filepath.Join(d.dir, config.AudioFilePrefix+videoID+"."+config.AudioFormat)
}

// Acquire downloads the audio for videoID. On success the caller owns the
// returned asset and must Release it.
func (d *Downloader) Acquire(ctx context.Context, videoID string) (*AudioAsset, error) {
	const op = "acquire audio"

	if err := d.checkTool(ctx); err != nil {
		return nil, common.NewError(common.ErrToolMissing, op, "yt-dlp is not installed", err)
	}

	out := d.Path(videoID)
	args := []string{
		"--no-warnings",
		"-x",
		"--audio-format", config.AudioFormat,
		"--audio-quality", "0",
		"-o", out,
		"--max-filesize", d.maxSize,
		videoid.WatchURL(videoID),
	}

	runCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, d.binary, args...)
	cmd.Stderr = &stderr
	cmd.WaitDelay = 2 * time.Second

	start := time.Now()
	slog.Info("downloading audio", "video_id", videoID, "output", out)
	err := cmd.Run()
	if err != nil {
		removeAudio(out)
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, common.NewError(common.ErrDownloadTimeout, op,
				fmt.Sprintf("download exceeded %s", d.timeout), runCtx.Err())
		}
		diag := common.Truncate(stderr.String(), config.DiagnosticLimit)
		return nil, common.NewError(common.ErrDownloadFailed, op, diag, err)
	}

	info, err := os.Stat(out)
	if err != nil {
		removeAudio(out)
		return nil, common.NewError(common.ErrOutputMissing, op, "downloader finished without producing audio", err)
	}

	slog.Info("audio downloaded",
		"video_id", videoID,
		"size", humanize.Bytes(uint64(info.Size())),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return &AudioAsset{Path: out, Size: info.Size()}, nil
}

func (d *Downloader) checkTool(ctx context.Context) error {
	if d.binary == "" {
		return errors.New("no yt-dlp binary configured")
	}
	if _, err := exec.LookPath(d.binary); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, config.ProbeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, d.binary, "--version").Run()
}
