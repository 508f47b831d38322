// Package download copies original media files to disk with optional rate
// limiting and periodic progress callbacks.
package download

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	chunkSize        = 256 * 1024
	progressInterval = 750 * time.Millisecond
)

var filenameCleaner = regexp.MustCompile(`[^a-zA-Z0-9._\- ]+`)

// SanitizeFileName strips characters that are unsafe in filenames.
func SanitizeFileName(name string) string {
	clean := strings.TrimSpace(name)
	clean = filenameCleaner.ReplaceAllString(clean, "_")
	clean = strings.Trim(clean, "._ ")
	if clean == "" {
		return "media"
	}
	return clean
}

// CopyWithProgress streams src into dst, pacing reads through limiter when
// one is given and invoking onProgress at most every progressInterval plus
// once at the end.
func CopyWithProgress(ctx context.Context, dst io.Writer, src io.Reader, total int64, limiter *rate.Limiter, onProgress func(written, total int64)) (int64, error) {
	buf := make([]byte, chunkSize)
	var written int64
	lastUpdate := time.Now()

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if limiter != nil {
				if err := limiter.WaitN(ctx, n); err != nil {
					return written, err
				}
			}
			wn, writeErr := dst.Write(buf[:n])
			written += int64(wn)
			if writeErr != nil {
				return written, writeErr
			}
		}

		if onProgress != nil && time.Since(lastUpdate) > progressInterval {
			lastUpdate = time.Now()
			onProgress(written, total)
		}

		if readErr != nil {
			if readErr == io.EOF {
				if onProgress != nil {
					onProgress(written, total)
				}
				return written, nil
			}
			return written, readErr
		}
	}
}

var rateUnits = map[string]float64{
	"":    1,
	"B":   1,
	"K":   1024,
	"KB":  1024,
	"KIB": 1024,
	"M":   1024 * 1024,
	"MB":  1024 * 1024,
	"MIB": 1024 * 1024,
	"G":   1024 * 1024 * 1024,
	"GB":  1024 * 1024 * 1024,
	"GIB": 1024 * 1024 * 1024,
}

// ParseRateLimit turns strings like "5M" or "500K" into a byte-rate limiter.
// An empty string means unlimited (nil limiter).
func ParseRateLimit(spec string) (*rate.Limiter, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	idx := 0
	for idx < len(spec) && (spec[idx] == '.' || (spec[idx] >= '0' && spec[idx] <= '9')) {
		idx++
	}
	numPart := spec[:idx]
	unitPart := strings.ToUpper(strings.TrimSpace(spec[idx:]))

	if numPart == "" {
		return nil, fmt.Errorf("missing rate value in %q", spec)
	}
	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid rate value: %w", err)
	}

	multiplier, ok := rateUnits[unitPart]
	if !ok {
		return nil, fmt.Errorf("unknown rate unit: %s", unitPart)
	}

	bytesPerSec := value * multiplier
	if bytesPerSec <= 0 {
		return nil, fmt.Errorf("rate must be > 0")
	}
	return rate.NewLimiter(rate.Limit(bytesPerSec), int(bytesPerSec)), nil
}

// DefaultPath joins a sanitized filename with its extension under baseDir.
func DefaultPath(baseDir, name, ext string) string {
	fileName := SanitizeFileName(name)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(baseDir, fileName+ext)
}
