//go:build !unix

package terminal

import (
	"context"
	"os"
	"time"
)

// TTY is unavailable on this platform; every operation fails with
// ErrUnsupportedPlatform.
type TTY struct{}

func NewTTY(in, out *os.File) *TTY { return &TTY{} }

func (*TTY) EnableRawMode() error               { return ErrUnsupportedPlatform }
func (*TTY) DisableRawMode() error              { return nil }
func (*TTY) Size() (int, int, error)            { return 0, 0, ErrUnsupportedPlatform }
func (*TTY) Write(p []byte) (int, error)        { return 0, ErrUnsupportedPlatform }
func (*TTY) Poll(time.Duration) ([]byte, error) { return nil, ErrUnsupportedPlatform }

func (*TTY) WatchResize(ctx context.Context, notify func(width, height int)) error {
	<-ctx.Done()
	return nil
}
