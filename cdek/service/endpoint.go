package service

import (
	"context"

	"github.com/egorka-gh/cdek/cdek"
	"github.com/egorka-gh/cdek/xmlable"
	"github.com/go-kit/kit/endpoint"
)

// Endpoints collects all of the endpoints that compose cdek service.
type Endpoints struct {
	DeliveryRequestEndpoint endpoint.Endpoint
	StatusReportEndpoint    endpoint.Endpoint
	CallCourierEndpoint     endpoint.Endpoint
}

// XMLRequest is request document of any method.
type XMLRequest struct {
	Method  string
	Element *xmlable.Element
}

// XMLResponse is parsed answer document.
type XMLResponse struct {
	Document *xmlable.Element
	//raw body, filled only in HTTPDebug mode
	RawResponse string
}

// DeliveryRequest implements Service. Primarily useful in a client.
func (e Endpoints) DeliveryRequest(ctx context.Context, req cdek.DeliveryRequest) (*cdek.Response, error) {
	el := req.Element()
	response, err := e.DeliveryRequestEndpoint(ctx, XMLRequest{Method: MethodDeliveryRequest, Element: el})
	if err != nil {
		return nil, err
	}
	return cdek.MapDeliveryResponse(el, response.(XMLResponse).Document), nil
}

// StatusReport implements Service. Primarily useful in a client.
func (e Endpoints) StatusReport(ctx context.Context, req cdek.StatusReport) (*cdek.Response, error) {
	el := req.Element()
	response, err := e.StatusReportEndpoint(ctx, XMLRequest{Method: MethodStatusReport, Element: el})
	if err != nil {
		return nil, err
	}
	return cdek.MapStatusReportResponse(el, response.(XMLResponse).Document)
}

// CallCourier implements Service. Primarily useful in a client.
func (e Endpoints) CallCourier(ctx context.Context, req cdek.CallCourierRequest) (*cdek.Response, error) {
	el := req.Element()
	response, err := e.CallCourierEndpoint(ctx, XMLRequest{Method: MethodCallCourier, Element: el})
	if err != nil {
		return nil, err
	}
	return cdek.MapCallCourierResponse(el, response.(XMLResponse).Document), nil
}
