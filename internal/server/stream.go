package server

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/eshginfarzali/eshgin/internal/observe"
)

// stream sends the current snapshot and then every published one as
// server-sent events. Slow clients only see the latest snapshot.
// The subscription is taken before the current snapshot is read so no
// change falls between the two.
func stream[T any](c *gin.Context, quit <-chan struct{}, snapshot func() T, subscribe func(func(T)) func()) {
	box := observe.NewMailbox[T]()
	cancel := subscribe(box.Put)
	defer cancel()
	current := snapshot()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", current)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case s := <-box.C():
			c.SSEvent("snapshot", s)
			return true
		case <-quit:
			return false
		case <-ctx.Done():
			return false
		}
	})
}
