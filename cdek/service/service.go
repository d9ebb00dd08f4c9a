/*
Package service is client for CDEK integration api http://gw.edostavka.ru:11443
*/
package service

import (
	"context"

	"github.com/egorka-gh/cdek/cdek"
)

// DefaultHost is carrier integration gateway.
const DefaultHost = "http://gw.edostavka.ru:11443"

// Carrier scripts.
const (
	NewOrdersPath    = "/new_orders.php"
	StatusReportPath = "/status_report_h.php"
	CallCourierPath  = "/call_courier.php"
)

// Method names, keys of client options and middleware maps.
const (
	MethodDeliveryRequest = "DeliveryRequest"
	MethodStatusReport    = "StatusReport"
	MethodCallCourier     = "CallCourier"
)

// Methods lists all service methods.
var Methods = []string{MethodDeliveryRequest, MethodStatusReport, MethodCallCourier}

// Service describes the cdek service.
// Carrier rejections are reported in Response, error means the request failed as a whole.
type Service interface {
	DeliveryRequest(ctx context.Context, req cdek.DeliveryRequest) (*cdek.Response, error)
	StatusReport(ctx context.Context, req cdek.StatusReport) (*cdek.Response, error)
	CallCourier(ctx context.Context, req cdek.CallCourierRequest) (*cdek.Response, error)
}
