// Package upload implements the cover image upload flow: constraint checks
// before any network call, progress reporting while the transfer is in
// flight, and exactly one terminal outcome per attempt.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MaxFileSize is the largest cover image accepted, in bytes.
const MaxFileSize = 5 << 20

var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

var (
	// ErrFileTooLarge indicates the selected file exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("image exceeds the 5 MiB limit")
	// ErrUnsupportedType indicates the file is not a supported image format.
	ErrUnsupportedType = errors.New("unsupported image type")
)

// File describes the binary selected for upload.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Data        io.Reader
}

// Gateway uploads a file to an external host and returns a stable URL. It
// does not re-validate constraints; callers run CheckConstraints first.
// onProgress, when non-nil, receives monotonically non-decreasing percentages
// while the transfer is in flight.
type Gateway interface {
	Upload(ctx context.Context, file File, onProgress func(percent int)) (string, error)
}

// CheckConstraints rejects files the gateway contract excludes: anything over
// MaxFileSize or outside the supported image formats.
func CheckConstraints(file File) error {
	if file.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	if _, ok := allowedTypes[file.ContentType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, file.ContentType)
	}
	return nil
}

// Open prepares a local file for upload, sniffing its content type from the
// leading bytes. The returned close function releases the file handle.
func Open(path string) (File, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, nil, fmt.Errorf("open image: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return File{}, nil, fmt.Errorf("stat image: %w", err)
	}

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		f.Close()
		return File{}, nil, fmt.Errorf("read image: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return File{}, nil, fmt.Errorf("rewind image: %w", err)
	}

	contentType := http.DetectContentType(head[:n])
	// DetectContentType includes charset parameters for some types.
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	file := File{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: contentType,
		Data:        f,
	}
	return file, f.Close, nil
}

// Status tracks where an upload attempt is in its lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusUploading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusUploading:
		return "uploading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Session tracks one in-progress upload. It is ephemeral: created when a file
// is selected and discarded once the attempt reaches a terminal state.
type Session struct {
	ID   string
	file File

	mu        sync.Mutex
	status    Status
	percent   int
	resultURL string
	err       error
}

// NewSession wraps a selected file in a fresh tracking session.
func NewSession(file File) *Session {
	return &Session{ID: uuid.NewString(), file: file}
}

// Run validates the file and executes the upload through the gateway,
// forwarding progress to the optional observer. Constraint violations are
// rejected before the gateway is invoked and fire no progress callbacks.
func (s *Session) Run(ctx context.Context, gw Gateway, onProgress func(percent int)) (string, error) {
	if err := CheckConstraints(s.file); err != nil {
		s.finish("", err)
		return "", err
	}

	s.mu.Lock()
	s.status = StatusUploading
	s.mu.Unlock()

	url, err := gw.Upload(ctx, s.file, func(percent int) {
		s.observe(percent)
		if onProgress != nil {
			onProgress(s.Progress())
		}
	})
	s.finish(url, err)
	return url, err
}

// observe clamps reported progress into 0-100 and keeps it non-decreasing.
func (s *Session) observe(percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if percent > 100 {
		percent = 100
	}
	if percent > s.percent {
		s.percent = percent
	}
}

func (s *Session) finish(url string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return
	}
	s.status = StatusSucceeded
	s.resultURL = url
	s.percent = 100
}

// Progress returns the highest percentage observed so far.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.percent
}

// Status returns the session's lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// ResultURL returns the uploaded file's URL after a successful run.
func (s *Session) ResultURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultURL
}

// Err returns the terminal failure, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
