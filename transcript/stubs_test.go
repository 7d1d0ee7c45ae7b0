package transcript

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeStub(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write %s stub: %v", name, err)
	}
	return path
}

const ytdlpWritesOutput = `if [ "$1" = "--version" ]; then echo 2024.08.06; exit 0; fi
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then out="$2"; fi
  shift
done
printf 'RIFFdata' > "$out"
`

const ffmpegWritesOutput = `for a in "$@"; do
  case "$a" in
    *_16k.wav) printf 'pcm' > "$a" ;;
  esac
done
`

const whisperWritesTranscript = `in="$1"
dir=""
while [ $# -gt 0 ]; do
  if [ "$1" = "--output_dir" ]; then dir="$2"; fi
  shift
done
base=$(basename "$in")
base="${base%.*}"
printf '  hello from whisper \n' > "$dir/$base.txt"
`

func assertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be removed, stat err = %v", path, err)
	}
}

const defaultTestTimeout = 10 * time.Second
