package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/ioutil"
	http1 "net/http"
	"net/url"
	"strings"

	"github.com/egorka-gh/cdek/cdek"
	"github.com/egorka-gh/cdek/xmlable"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/transport/http"
)

// HTTPDebug is the context key, set it to true to keep raw response body.
var HTTPDebug ContextKey

// ContextKey is just an empty struct. It exists so HTTPDebug can be
// an immutable public variable with a unique type.
type ContextKey struct{}

// New returns a Service backed by carrier gateway living at the remote instance.
// Empty instance means DefaultHost.
func New(instance string, options map[string][]http.ClientOption, mdw map[string][]endpoint.Middleware) (Service, error) {
	if instance == "" {
		instance = DefaultHost
	}
	if !strings.HasPrefix(instance, "http") {
		instance = "http://" + instance
	}
	u, err := url.Parse(instance)
	if err != nil {
		return nil, err
	}
	var deliveryRequestEndpoint endpoint.Endpoint
	{
		deliveryRequestEndpoint = http.NewClient("POST", copyURL(u, NewOrdersPath), encodeXMLRequest, decodeXMLResponse, options[MethodDeliveryRequest]...).Endpoint()
		deliveryRequestEndpoint = transportErrors("new_orders")(deliveryRequestEndpoint)
		for _, m := range mdw[MethodDeliveryRequest] {
			deliveryRequestEndpoint = m(deliveryRequestEndpoint)
		}
	}
	var statusReportEndpoint endpoint.Endpoint
	{
		statusReportEndpoint = http.NewClient("POST", copyURL(u, StatusReportPath), encodeXMLRequest, decodeXMLResponse, options[MethodStatusReport]...).Endpoint()
		statusReportEndpoint = transportErrors("status_report")(statusReportEndpoint)
		for _, m := range mdw[MethodStatusReport] {
			statusReportEndpoint = m(statusReportEndpoint)
		}
	}
	var callCourierEndpoint endpoint.Endpoint
	{
		callCourierEndpoint = http.NewClient("POST", copyURL(u, CallCourierPath), encodeXMLRequest, decodeXMLResponse, options[MethodCallCourier]...).Endpoint()
		callCourierEndpoint = transportErrors("call_courier")(callCourierEndpoint)
		for _, m := range mdw[MethodCallCourier] {
			callCourierEndpoint = m(callCourierEndpoint)
		}
	}

	return Endpoints{
		DeliveryRequestEndpoint: deliveryRequestEndpoint,
		StatusReportEndpoint:    statusReportEndpoint,
		CallCourierEndpoint:     callCourierEndpoint,
	}, nil
}

// encodeXMLRequest posts document as xml_request form field.
func encodeXMLRequest(_ context.Context, r *http1.Request, request interface{}) error {
	req := request.(XMLRequest)
	payload, err := cdek.Payload(req.Element)
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("xml_request", string(payload))
	body := form.Encode()
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ContentLength = int64(len(body))
	r.Body = ioutil.NopCloser(strings.NewReader(body))
	return nil
}

func decodeXMLResponse(ctx context.Context, r *http1.Response) (interface{}, error) {
	if r.StatusCode != http1.StatusOK {
		return nil, statusError(r.StatusCode)
	}
	var resp XMLResponse
	var body io.Reader = r.Body
	var raw bytes.Buffer
	if isDebugSet(ctx) {
		body = io.TeeReader(r.Body, &raw)
	}
	doc, err := xmlable.Decode(body)
	resp.RawResponse = raw.String()
	if err != nil {
		return nil, &cdek.ParseError{Op: "decode response", Err: err}
	}
	resp.Document = doc
	return resp, nil
}

// transportErrors classifies bare client errors (network, encoding) as transport failures.
func transportErrors(op string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			response, err := next(ctx, request)
			if err == nil || errors.Is(err, cdek.ErrParse) {
				return response, err
			}
			var te *cdek.TransportError
			if errors.As(err, &te) {
				if te.Op == "" {
					te.Op = op
				}
				return response, te
			}
			return response, &cdek.TransportError{Op: op, Err: err}
		}
	}
}

func statusError(code int) error {
	return &cdek.TransportError{StatusCode: code, Err: errors.New(http1.StatusText(code))}
}

func copyURL(base *url.URL, path string) (next *url.URL) {
	n := *base
	n.Path = strings.TrimRight(base.Path, "/") + path
	next = &n
	return
}

func isDebugSet(ctx context.Context) bool {
	if ctx != nil {
		if debug, ok := ctx.Value(HTTPDebug).(bool); ok {
			return debug
		}
	}
	return false
}
