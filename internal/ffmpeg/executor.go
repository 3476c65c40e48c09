package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
)

// tailLines is how much combined output ExitError keeps.
const tailLines = 12

// ExecOptions are the callbacks invoked while ffmpeg runs. Both are
// optional and are called from the goroutine that called Execute.
type ExecOptions struct {
	// OnProgress receives every parsed output position in seconds.
	OnProgress func(seconds int)
	// OnLine receives every non-empty output line.
	OnLine func(line string)
}

// Execute runs binary with args, stdout and stderr merged into one pipe.
// Output is split on \r and \n so in-place status updates arrive as
// separate lines. Execute returns ErrBinaryNotFound when binary cannot be
// started and *ExitError when it exits non-zero. There is no retry.
func Execute(ctx context.Context, binary string, args []string, opts ExecOptions) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrBinaryNotFound, binary)
		}
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	var tail []string
	sc := bufio.NewScanner(out)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(scanLinesCR)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if opts.OnLine != nil {
			opts.OnLine(line)
		}
		if secs, ok := ParseProgressLine(line); ok && opts.OnProgress != nil {
			opts.OnProgress(secs)
		}
		tail = append(tail, line)
		if len(tail) > tailLines {
			tail = tail[1:]
		}
	}
	scanErr := sc.Err()
	if scanErr != nil {
		// Keep the pipe drained so ffmpeg can exit.
		_, _ = io.Copy(io.Discard, out)
	}

	if err := cmd.Wait(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return &ExitError{Code: ee.ExitCode(), Tail: tail}
		}
		return fmt.Errorf("wait for ffmpeg: %w", err)
	}
	if scanErr != nil {
		return fmt.Errorf("read ffmpeg output: %w", scanErr)
	}
	return nil
}

// scanLinesCR is bufio.ScanLines with \r accepted as a terminator.
func scanLinesCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
