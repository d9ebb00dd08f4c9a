package cdek

// ResponseStatusKind is overall carrier response outcome.
type ResponseStatusKind string

const (
	//StatusOK every order accepted
	StatusOK ResponseStatusKind = "ok"
	//StatusFail at least one error reported, sticky
	StatusFail ResponseStatusKind = "fail"
)

// ResponseError is carrier error for an order or the whole request.
type ResponseError struct {
	Code    string
	Message string
}

func (e ResponseError) String() string {
	return e.Code + ": " + e.Message
}

// ResponseState is a history entry of order status.
type ResponseState struct {
	Code        StatusCode
	Date        string
	CityCode    string
	CityName    string
	Description string
}

// ResponseStatus is current order lifecycle status.
type ResponseStatus struct {
	CityCode    string
	CityName    string
	Code        StatusCode
	Date        string
	Description string
	//filled when history was requested
	History []ResponseState
}

// ResponseOrder is carrier answer for one order number.
type ResponseOrder struct {
	Number         string
	DispatchNumber string
	Errors         []ResponseError
	Status         *ResponseStatus
}

// AddError appends carrier error.
func (o *ResponseOrder) AddError(code, message string) {
	o.Errors = append(o.Errors, ResponseError{Code: code, Message: message})
}

// HasErrors reports whether carrier rejected the order.
func (o *ResponseOrder) HasErrors() bool {
	return len(o.Errors) > 0
}
