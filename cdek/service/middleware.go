package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/egorka-gh/cdek/cdek"
	"github.com/go-kit/kit/endpoint"
	log "github.com/go-kit/kit/log"
)

// String is used by LoggingMiddleware.
func (r XMLRequest) String() string {
	if r.Element == nil {
		return r.Method
	}
	s := r.Method + " " + r.Element.Tag
	if n, ok := r.Element.Attr("Number"); ok {
		s += " number=" + n
	}
	if d, ok := r.Element.Attr("Date"); ok {
		s += " date=" + d
	}
	return fmt.Sprintf("%s children=%d", s, len(r.Element.Children))
}

// String is used by LoggingMiddleware.
func (r XMLResponse) String() string {
	if r.RawResponse != "" {
		return r.RawResponse
	}
	if r.Document == nil {
		return ""
	}
	return fmt.Sprintf("%s children=%d", r.Document.Tag, len(r.Document.Children))
}

// NewBackOff creates exponential backoff limited by retries count.
func NewBackOff(retries uint64) func() backoff.BackOff {
	return func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = time.Second
		b.MaxElapsedTime = 2 * time.Minute
		return backoff.WithMaxRetries(b, retries)
	}
}

// RetryMiddleware repeats failed calls while newBackOff allows.
// Only transport failures (network errors, 5xx) are repeated,
// parse and 4xx errors are returned at once.
func RetryMiddleware(newBackOff func() backoff.BackOff, l log.Logger) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			var response interface{}
			op := func() error {
				var err error
				response, err = next(ctx, request)
				if err != nil && !retryable(err) {
					return backoff.Permanent(err)
				}
				return err
			}
			notify := func(err error, d time.Duration) {
				if l != nil {
					l.Log("retry", d, "err", err)
				}
			}
			err := backoff.RetryNotify(op, backoff.WithContext(newBackOff(), ctx), notify)
			if err != nil {
				return nil, err
			}
			return response, nil
		}
	}
}

func retryable(err error) bool {
	var te *cdek.TransportError
	if errors.As(err, &te) {
		return te.Retryable()
	}
	return false
}

// LoggingMiddleware logs every call with elapsed time.
func LoggingMiddleware(l log.Logger) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (result interface{}, err error) {
			var req, resp string

			defer func(b time.Time) {
				l.Log(
					"request", req,
					"result", resp,
					"err", err,
					"elapsed", time.Since(b),
				)
			}(time.Now())
			if r, ok := request.(fmt.Stringer); ok {
				req = r.String()
			} else {
				req = fmt.Sprintf("%+v", request)
			}
			result, err = next(ctx, request)
			if r, ok := result.(fmt.Stringer); ok {
				resp = r.String()
			} else if result != nil {
				resp = fmt.Sprintf("%+v", result)
			}
			return
		}
	}
}
