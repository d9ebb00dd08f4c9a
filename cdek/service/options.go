package service

import (
	"context"
	"net"
	http0 "net/http"
	"runtime"
	"time"

	"github.com/go-kit/kit/endpoint"
	log "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/transport/http"
)

// DefaultHTTPOptions sets cli for every method, logs request uri if logger is set.
func DefaultHTTPOptions(cli *http0.Client, logger log.Logger) map[string][]http.ClientOption {
	options := map[string][]http.ClientOption{}
	for _, v := range Methods {
		options[v] = append(options[v], http.SetClient(cli))
		if logger != nil {
			options[v] = append(options[v], beforeURILogger(log.With(logger, "method", v)))
		}
	}
	return options
}

// DefaultMiddleware wraps every method by retry, then by logging.
// Zero retries disables retry middleware.
func DefaultMiddleware(logger log.Logger, retries uint64) (mw map[string][]endpoint.Middleware) {
	mw = map[string][]endpoint.Middleware{}
	for _, v := range Methods {
		l := log.With(logger, "method", v)
		if retries > 0 {
			mw[v] = append(mw[v], RetryMiddleware(NewBackOff(retries), l))
		}
		mw[v] = append(mw[v], LoggingMiddleware(l))
	}
	return
}

func beforeURILogger(l log.Logger) http.ClientOption {
	return http.ClientBefore(
		func(ctx context.Context, r *http0.Request) context.Context {
			l.Log("uri", r.URL.RequestURI())
			return ctx
		},
	)
}

// DefaultHTTPClient returns client with pooled transport, timeout bounds whole request.
func DefaultHTTPClient(timeout time.Duration) *http0.Client {
	return &http0.Client{
		Transport: DefaultPooledTransport(),
		Timeout:   timeout,
	}
}

// DefaultPooledTransport returns a new http.Transport with similar default
// values to http.DefaultTransport. Do not use this for transient transports as
// it can leak file descriptors over time. Only use this for transports that
// will be re-used for the same host(s).
func DefaultPooledTransport() *http0.Transport {
	transport := &http0.Transport{
		Proxy: http0.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
	}
	return transport
}
