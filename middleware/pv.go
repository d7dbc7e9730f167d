package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/subforum/store"
	"github.com/cppla/subforum/utils"
)

// PageViewRecorder records successful GET views per day and path.
func PageViewRecorder(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		// Ignore non-content endpoints to avoid skewing PV
		path := c.Request.URL.Path
		if path == "/health" || strings.HasSuffix(path, "/stats") {
			return
		}

		if err := s.RecordPageView(c.Request.Context(), path, time.Now()); err != nil {
			utils.Sugar.Warnf("page view not recorded path=%s err=%v", path, err)
		}
	}
}
