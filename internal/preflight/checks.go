package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"recite/internal/services/quran"
)

const (
	apiCheckTimeout   = 10 * time.Second
	audioCheckTimeout = 5 * time.Second
)

// ChapterLister is the part of the verse API client the API check needs.
type ChapterLister interface {
	Chapters(ctx context.Context) ([]quran.Chapter, error)
}

// CheckVerseAPI verifies that the verse API answers the chapter catalog.
// It makes a single attempt.
func CheckVerseAPI(ctx context.Context, catalog ChapterLister) Result {
	const name = "Verse API"

	checkCtx, cancel := context.WithTimeout(ctx, apiCheckTimeout)
	defer cancel()

	chapters, err := catalog.Chapters(checkCtx)
	if err != nil {
		if code, ok := quran.StatusCode(err); ok {
			return Result{Name: name, Detail: fmt.Sprintf("catalog request failed (%d)", code)}
		}
		return Result{Name: name, Detail: summarizeError(err)}
	}
	if len(chapters) == 0 {
		return Result{Name: name, Detail: "catalog is empty"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable (%d chapters)", len(chapters))}
}

// CheckAudioHost verifies that the recitation host accepts connections. Any
// HTTP response counts; the host root need not serve content.
func CheckAudioHost(ctx context.Context, baseURL string, client *http.Client) Result {
	const name = "Audio host"

	base := strings.TrimSpace(baseURL)
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if client == nil {
		client = &http.Client{Timeout: audioCheckTimeout}
	}

	checkCtx, cancel := context.WithTimeout(ctx, audioCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodHead, base, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("invalid url (%v)", err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return Result{Name: name, Detail: fmt.Sprintf("server error (%d)", resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: "reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Sprintf("unreachable (%v)", opErr.Err)
	}
	return err.Error()
}
