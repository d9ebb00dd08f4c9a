package service

import (
	"context"
	"errors"
	"io/ioutil"
	http0 "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/egorka-gh/cdek/cdek"
	"github.com/go-kit/kit/endpoint"
	log "github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2016, 3, 14, 9, 5, 7, 0, time.UTC)

func statusReport(t *testing.T) cdek.StatusReport {
	f := &cdek.StatusReportFactory{Account: "acc", Password: "secret"}
	o, err := f.NewOrder("1000028000", "", time.Time{})
	require.NoError(t, err)
	req, err := f.NewStatusReport(cdek.StatusReportParams{Date: testDate, ShowHistory: true, Orders: []cdek.StatusOrder{o}})
	require.NoError(t, err)
	return req
}

func deliveryRequest(t *testing.T) cdek.DeliveryRequest {
	f := &cdek.DeliveryFactory{Account: "acc", Password: "secret"}
	item, err := f.NewItem(cdek.ItemParams{WareKey: "w1", Cost: 10, Weight: 100, WeightBrutto: 120, Amount: 1, Link: "http://shop/w1"})
	require.NoError(t, err)
	pkg, err := f.NewPackage(cdek.PackageParams{Number: "p1", Weight: 120, Items: []cdek.Item{item}})
	require.NoError(t, err)
	addr, err := f.NewAddress("Lenina", "1", "2", "")
	require.NoError(t, err)
	order, err := f.NewOrder(cdek.OrderParams{
		Number:          "A1",
		DateInvoice:     testDate,
		RecipientName:   "Ivan 'Vanya'",
		RecipientEmail:  "ivan@example.com",
		Phone:           "+7999",
		TariffTypeCode:  137,
		SellerName:      "Shop",
		Address:         addr,
		Packages:        []cdek.Package{pkg},
		SendCityCode:    270,
		RecCityPostCode: "654321",
	})
	require.NoError(t, err)
	req, err := f.NewDeliveryRequest([]cdek.Order{order}, "act1", testDate)
	require.NoError(t, err)
	return req
}

func TestDeliveryRequest(t *testing.T) {
	var got url.Values
	var path, contentType string
	srv := httptest.NewServer(http0.HandlerFunc(func(w http0.ResponseWriter, r *http0.Request) {
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		body, _ := ioutil.ReadAll(r.Body)
		got, _ = url.ParseQuery(string(body))
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><response><Order Number="A1" DispatchNumber="1000028000"/><Order Msg="Добавлено заказов 1"/></response>`))
	}))
	defer srv.Close()

	svc, err := New(srv.URL, nil, nil)
	require.NoError(t, err)
	resp, err := svc.DeliveryRequest(context.Background(), deliveryRequest(t))
	require.NoError(t, err)

	assert.Equal(t, NewOrdersPath, path)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	doc := got.Get("xml_request")
	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`), doc)
	assert.NotContains(t, doc, "'")
	assert.Contains(t, doc, `RecipientName="Ivan &#39;Vanya&#39;"`)
	assert.Contains(t, doc, `<DeliveryRequest Number="act1"`)

	assert.True(t, resp.OK())
	require.NotNil(t, resp.RequestElement)
	assert.Equal(t, "DeliveryRequest", resp.RequestElement.Tag)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "1000028000", resp.Data[0].DispatchNumber)
}

func TestStatusReport(t *testing.T) {
	srv := httptest.NewServer(http0.HandlerFunc(func(w http0.ResponseWriter, r *http0.Request) {
		assert.Equal(t, StatusReportPath, r.URL.Path)
		w.Write([]byte(`<StatusReport><Order Number="A1" DispatchNumber="1000028000"><Status Code="4" CityName="Москва"/></Order></StatusReport>`))
	}))
	defer srv.Close()

	svc, err := New(srv.URL, nil, nil)
	require.NoError(t, err)
	resp, err := svc.StatusReport(context.Background(), statusReport(t))
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	require.NotNil(t, resp.Data[0].Status)
	assert.Equal(t, cdek.StatusDelivered, resp.Data[0].Status.Code)
}

func TestCallCourier(t *testing.T) {
	srv := httptest.NewServer(http0.HandlerFunc(func(w http0.ResponseWriter, r *http0.Request) {
		assert.Equal(t, CallCourierPath, r.URL.Path)
		w.Write([]byte(`<response><Call Number="1" ErrorCode="ERR_CALL_DUBL" Msg="duplicate"/></response>`))
	}))
	defer srv.Close()

	f := &cdek.DeliveryFactory{Account: "acc", Password: "secret"}
	call, err := f.NewCall(cdek.CallParams{
		Date:         testDate,
		TimeBeg:      time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
		TimeEnd:      time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC),
		SendCityCode: 270,
	})
	require.NoError(t, err)
	req, err := f.NewCallCourierRequest(testDate, call)
	require.NoError(t, err)

	svc, err := New(srv.URL, nil, nil)
	require.NoError(t, err)
	resp, err := svc.CallCourier(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "ERR_CALL_DUBL", resp.Data[0].Errors[0].Code)
}

func TestErrors(t *testing.T) {
	var status int32 = http0.StatusOK
	var body atomic.Value
	body.Store("")
	srv := httptest.NewServer(http0.HandlerFunc(func(w http0.ResponseWriter, r *http0.Request) {
		w.WriteHeader(int(atomic.LoadInt32(&status)))
		w.Write([]byte(body.Load().(string)))
	}))
	defer srv.Close()

	svc, err := New(srv.URL, nil, nil)
	require.NoError(t, err)

	atomic.StoreInt32(&status, http0.StatusForbidden)
	_, err = svc.StatusReport(context.Background(), statusReport(t))
	require.Error(t, err)
	assert.Equal(t, cdek.KindTransport, cdek.KindOf(err))
	var te *cdek.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http0.StatusForbidden, te.StatusCode)
	assert.Equal(t, "status_report", te.Op)

	atomic.StoreInt32(&status, http0.StatusOK)
	body.Store("<StatusReport><Order")
	_, err = svc.StatusReport(context.Background(), statusReport(t))
	require.Error(t, err)
	assert.Equal(t, cdek.KindParse, cdek.KindOf(err))

	body.Store(`<StatusReport><Order Number="A1"><Status Code="x"/></Order></StatusReport>`)
	_, err = svc.StatusReport(context.Background(), statusReport(t))
	assert.Equal(t, cdek.KindParse, cdek.KindOf(err))

	srv.Close()
	_, err = svc.StatusReport(context.Background(), statusReport(t))
	assert.Equal(t, cdek.KindTransport, cdek.KindOf(err))
}

func retryMiddleware(retries uint64) map[string][]endpoint.Middleware {
	mw := map[string][]endpoint.Middleware{}
	for _, m := range Methods {
		mw[m] = []endpoint.Middleware{
			RetryMiddleware(func() backoff.BackOff {
				return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, retries)
			}, log.NewNopLogger()),
		}
	}
	return mw
}

func TestRetryTransient(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http0.HandlerFunc(func(w http0.ResponseWriter, r *http0.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http0.StatusBadGateway)
			return
		}
		w.Write([]byte(`<response><Order Number="A1" DispatchNumber="1"/></response>`))
	}))
	defer srv.Close()

	svc, err := New(srv.URL, nil, retryMiddleware(3))
	require.NoError(t, err)
	resp, err := svc.DeliveryRequest(context.Background(), deliveryRequest(t))
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, "1", resp.Data[0].DispatchNumber)
}

func TestRetryExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http0.HandlerFunc(func(w http0.ResponseWriter, r *http0.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http0.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc, err := New(srv.URL, nil, retryMiddleware(2))
	require.NoError(t, err)
	_, err = svc.DeliveryRequest(context.Background(), deliveryRequest(t))
	require.Error(t, err)
	assert.Equal(t, cdek.KindTransport, cdek.KindOf(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetryPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http0.HandlerFunc(func(w http0.ResponseWriter, r *http0.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path == NewOrdersPath {
			w.WriteHeader(http0.StatusBadRequest)
			return
		}
		w.Write([]byte("not xml"))
	}))
	defer srv.Close()

	svc, err := New(srv.URL, nil, retryMiddleware(5))
	require.NoError(t, err)
	_, err = svc.DeliveryRequest(context.Background(), deliveryRequest(t))
	assert.Equal(t, cdek.KindTransport, cdek.KindOf(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, err = svc.StatusReport(context.Background(), statusReport(t))
	assert.Equal(t, cdek.KindParse, cdek.KindOf(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDebugRawResponse(t *testing.T) {
	const answer = `<response><Order Number="A1" DispatchNumber="1"/></response>`
	srv := httptest.NewServer(http0.HandlerFunc(func(w http0.ResponseWriter, r *http0.Request) {
		w.Write([]byte(answer))
	}))
	defer srv.Close()

	var logged []interface{}
	logger := log.LoggerFunc(func(kv ...interface{}) error {
		logged = append(logged, kv...)
		return nil
	})
	mw := map[string][]endpoint.Middleware{MethodDeliveryRequest: {LoggingMiddleware(logger)}}
	svc, err := New(srv.URL, nil, mw)
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), HTTPDebug, true)
	_, err = svc.DeliveryRequest(ctx, deliveryRequest(t))
	require.NoError(t, err)
	assert.Contains(t, logged, answer)
	assert.Contains(t, logged, "DeliveryRequest DeliveryRequest number=act1 date=2016-03-14T09:05:07 children=1")
}

func TestCopyURL(t *testing.T) {
	u, _ := url.Parse("http://host:11443/api/")
	assert.Equal(t, "http://host:11443/api/new_orders.php", copyURL(u, NewOrdersPath).String())
}
