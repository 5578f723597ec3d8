package middleware

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/studio-api/pkg/errors"
	"github.com/noah-isme/studio-api/pkg/response"
)

// StaticAssets serves the built UI from dir. Unknown paths fall back to index.html so
// client-side routes resolve. Paths under apiPrefix get a JSON 404 instead.
func StaticAssets(dir, apiPrefix string) (gin.HandlerFunc, error) {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	root := http.Dir(dir)
	files := http.FileServer(root)

	return func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path, apiPrefix) {
			response.Error(c, appErrors.ErrNotFound)
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.Error(c, appErrors.ErrNotFound)
			return
		}
		if f, err := root.Open(path.Clean("/" + c.Request.URL.Path)); err == nil {
			info, statErr := f.Stat()
			_ = f.Close()
			if statErr == nil && !info.IsDir() {
				files.ServeHTTP(c.Writer, c.Request)
				return
			}
		}
		c.File(index)
	}, nil
}

// DevProxy forwards non-API requests to the UI development server so assets are rebuilt live.
func DevProxy(target, apiPrefix string, logger *zap.Logger) (gin.HandlerFunc, error) {
	upstream, err := url.Parse(target)
	if err != nil || upstream.Scheme == "" || upstream.Host == "" {
		return nil, fmt.Errorf("dev proxy: invalid target %q", target)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	proxy := httputil.NewSingleHostReverseProxy(upstream)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("dev server unreachable", zap.String("target", target), zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
	}

	return func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path, apiPrefix) {
			response.Error(c, appErrors.ErrNotFound)
			return
		}
		proxy.ServeHTTP(c.Writer, c.Request)
	}, nil
}

func isAPIPath(p, apiPrefix string) bool {
	if apiPrefix == "" {
		return false
	}
	return p == apiPrefix || strings.HasPrefix(p, strings.TrimSuffix(apiPrefix, "/")+"/")
}
