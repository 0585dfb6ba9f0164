package picker

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

// Clipboard receives the chosen message when the user copies instead of committing.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard writes to the OS clipboard, initialising it on first use.
type SystemClipboard struct {
	once sync.Once
	err  error
}

func (c *SystemClipboard) Copy(text string) error {
	c.once.Do(func() {
		c.err = clipboard.Init()
	})
	if c.err != nil {
		return fmt.Errorf("clipboard unavailable: %w", c.err)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
