package cdek

import (
	"fmt"
	"strconv"

	"github.com/egorka-gh/cdek/xmlable"
)

// Response is parsed carrier answer.
type Response struct {
	Status ResponseStatusKind
	//request as sent, for logs and diagnostics
	RequestElement *xmlable.Element
	//one record per distinct number, in order of first appearance
	Data []*ResponseOrder
	//errors reported on document root, not bound to any order
	Errors []ResponseError
}

// OK reports whether carrier accepted everything.
func (r *Response) OK() bool {
	return r.Status == StatusOK
}

// Order returns record by order number.
func (r *Response) Order(number string) (*ResponseOrder, bool) {
	for _, o := range r.Data {
		if o.Number == number {
			return o, true
		}
	}
	return nil, false
}

type mapper struct {
	resp  *Response
	index map[string]*ResponseOrder
}

func newMapper(request *xmlable.Element) *mapper {
	return &mapper{
		resp: &Response{
			Status:         StatusOK,
			RequestElement: request,
		},
		index: make(map[string]*ResponseOrder),
	}
}

// order fetches or creates record for number.
func (m *mapper) order(number string) *ResponseOrder {
	if o, ok := m.index[number]; ok {
		return o
	}
	o := &ResponseOrder{Number: number}
	m.index[number] = o
	m.resp.Data = append(m.resp.Data, o)
	return o
}

// rootErrors maps ErrorCode on document root.
func (m *mapper) rootErrors(doc *xmlable.Element) {
	if code, ok := doc.Attr("ErrorCode"); ok {
		msg, _ := doc.Attr("Msg")
		m.resp.Errors = append(m.resp.Errors, ResponseError{Code: code, Message: msg})
		m.resp.Status = StatusFail
	}
}

// record maps a single Order or Call element.
// Returns true if element was consumed.
func (m *mapper) record(el *xmlable.Element) bool {
	number, _ := el.Attr("Number")
	if code, ok := el.Attr("ErrorCode"); ok {
		msg, _ := el.Attr("Msg")
		m.order(number).AddError(code, msg)
		m.resp.Status = StatusFail
		return true
	}
	if dn, ok := el.Attr("DispatchNumber"); ok {
		m.order(number).DispatchNumber = dn
		return true
	}
	return false
}

// MapDeliveryResponse maps new_orders answer.
func MapDeliveryResponse(request, doc *xmlable.Element) *Response {
	m := newMapper(request)
	m.rootErrors(doc)
	for _, el := range doc.FindAll("Order") {
		m.record(el)
	}
	return m.resp
}

// MapCallCourierResponse maps call_courier answer.
func MapCallCourierResponse(request, doc *xmlable.Element) *Response {
	m := newMapper(request)
	m.rootErrors(doc)
	for _, el := range doc.FindAll("Call") {
		m.record(el)
	}
	return m.resp
}

// MapStatusReportResponse maps status_report answer.
// Status is looked up before dispatch number, carrier sends both.
// Status code that is not an integer fails the whole response.
func MapStatusReportResponse(request, doc *xmlable.Element) (*Response, error) {
	m := newMapper(request)
	m.rootErrors(doc)
	for _, el := range doc.FindAll("Order") {
		st := el.Find("Status")
		if _, isErr := el.Attr("ErrorCode"); isErr || st == nil {
			m.record(el)
			continue
		}
		status, err := parseStatus(st)
		if err != nil {
			return nil, err
		}
		number, _ := el.Attr("Number")
		o := m.order(number)
		if dn, ok := el.Attr("DispatchNumber"); ok {
			o.DispatchNumber = dn
		}
		o.Status = status
	}
	return m.resp, nil
}

func parseStatus(el *xmlable.Element) (*ResponseStatus, error) {
	code, err := parseCode(el)
	if err != nil {
		return nil, err
	}
	s := &ResponseStatus{Code: code}
	s.CityCode, _ = el.Attr("CityCode")
	s.CityName, _ = el.Attr("CityName")
	s.Date, _ = el.Attr("Date")
	s.Description, _ = el.Attr("Description")
	for _, st := range el.FindAll("State") {
		code, err := parseCode(st)
		if err != nil {
			return nil, err
		}
		h := ResponseState{Code: code}
		h.CityCode, _ = st.Attr("CityCode")
		h.CityName, _ = st.Attr("CityName")
		h.Date, _ = st.Attr("Date")
		h.Description, _ = st.Attr("Description")
		s.History = append(s.History, h)
	}
	return s, nil
}

func parseCode(el *xmlable.Element) (StatusCode, error) {
	raw, ok := el.Attr("Code")
	if !ok {
		return 0, &ParseError{Op: "status report", Err: fmt.Errorf("%s without Code", el.Tag)}
	}
	code, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParseError{Op: "status report", Err: fmt.Errorf("%s Code %q: %w", el.Tag, raw, err)}
	}
	return StatusCode(code), nil
}
