package middleware

import (
	"bufio"
	"bytes"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/base/metrics"
	"github.com/x-xyz/spotmarket/service/cache"
)

// Response is a cached body together with its headers.
type Response struct {
	Value  []byte
	Header http.Header
}

type bodyDumpResponseWriter struct {
	statusCode int
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *bodyDumpResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

func sortURLParams(URL *url.URL) {
	params := URL.Query()
	for _, param := range params {
		sort.Strings(param)
	}
	URL.RawQuery = params.Encode()
}

func generateKey(URL string) string {
	hash := fnv.New64a()
	hash.Write([]byte(URL))

	return strconv.FormatUint(hash.Sum64(), 36)
}

const (
	headerCache = "X-Cache"
	cacheHit    = "HIT"
	cacheMiss   = "MISS"
)

func bypassCache(req *http.Request) bool {
	return strings.Contains(req.Header.Get(echo.HeaderCacheControl), "no-cache")
}

// CacheHttp serves GET responses below 400 from svc until its ttl passes or
// a committed transaction purges it. Requests with Cache-Control: no-cache
// skip the lookup but still refresh the entry.
func CacheHttp(svc cache.Service) echo.MiddlewareFunc {
	met := metrics.New("http_cache")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Get("ctx").(ctx.Ctx)

			sortURLParams(req.URL)
			key := generateKey(req.URL.String())

			if !bypassCache(req) {
				cached := Response{}
				err := svc.Get(ctx, key, &cached)
				if err == nil {
					met.BumpSum("lookup", 1, "result", "hit")
					for k, v := range cached.Header {
						c.Response().Header().Set(k, strings.Join(v, ","))
					}
					c.Response().Header().Set(headerCache, cacheHit)
					c.Response().WriteHeader(http.StatusOK)
					_, _ = c.Response().Write(cached.Value)
					return nil
				} else if err != cache.ErrNotFound {
					ctx.WithField("err", err).Error("cache.Get failed")
				}
			}
			met.BumpSum("lookup", 1, "result", "miss")

			body := new(bytes.Buffer)
			writer := &bodyDumpResponseWriter{
				statusCode:     http.StatusOK,
				Writer:         io.MultiWriter(c.Response().Writer, body),
				ResponseWriter: c.Response().Writer,
			}
			c.Response().Writer = writer
			c.Response().Header().Set(headerCache, cacheMiss)
			if err := next(c); err != nil {
				c.Error(err)
			}

			if writer.statusCode < 400 {
				header := writer.Header().Clone()
				header.Del(headerCache)
				if err := svc.Set(ctx, key, Response{Value: body.Bytes(), Header: header}); err != nil {
					ctx.WithFields(log.Fields{
						"err": err,
						"uri": req.URL.Path,
					}).Error("cache.Set failed")
				}
			}
			return nil
		}
	}
}
