package binding

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Submit acts as the send trigger for line-oriented input. Each non-blank
// line read from r is placed into field and send is called, which is
// expected to read and clear the field. It returns nil on EOF.
func Submit(ctx context.Context, r io.Reader, field *Field, send func(context.Context) error) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			field.Set(line)
			if err := send(ctx); err != nil {
				return err
			}
		}
	}
}
