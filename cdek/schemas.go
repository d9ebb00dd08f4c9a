package cdek

import "github.com/egorka-gh/cdek/xmlable"

// Request schemas. Field order is serialization order.
var (
	passportSchema = xmlable.NewSchema("Passport",
		xmlable.Required("series"),
		xmlable.Required("number"),
	)

	addressSchema = xmlable.NewSchema("Address",
		xmlable.Required("street"),
		xmlable.Required("house"),
		xmlable.Required("flat"),
		xmlable.Optional("pvz_code"),
	)

	itemSchema = xmlable.NewSchema("Item",
		xmlable.Required("ware_key"),
		xmlable.Required("cost"),
		xmlable.Required("payment"),
		xmlable.Required("weight"),
		xmlable.Required("weight_brutto"),
		xmlable.Required("amount"),
		xmlable.Required("link"),
		xmlable.Optional("comment"),
	)

	packageSchema = xmlable.NewSchema("Package",
		xmlable.Required("number"),
		xmlable.Required("bar_code"),
		xmlable.Required("weight"),
		xmlable.Required("item"),
		xmlable.Optional("size_a"),
		xmlable.Optional("size_b"),
		xmlable.Optional("size_c"),
	)

	orderSchema = xmlable.NewSchema("Order",
		xmlable.Required("number"),
		xmlable.Required("date_invoice"),
		xmlable.Required("recipient_name"),
		xmlable.Required("recipient_email"),
		xmlable.Required("phone"),
		xmlable.Required("tariff_type_code"),
		xmlable.Required("seller_name"),
		xmlable.Required("address"),
		xmlable.Required("package"),
		xmlable.Optional("send_city_code"),
		xmlable.Optional("rec_city_code"),
		xmlable.Required("passport"),
		xmlable.Optional("send_city_post_code"),
		xmlable.Optional("rec_city_post_code"),
		xmlable.Optional("call_courier"),
		xmlable.Optional("comment"),
		xmlable.Optional("add_service"),
		xmlable.Optional("delivery_recipient_cost"),
	)

	deliveryRequestSchema = xmlable.NewSchema("DeliveryRequest",
		xmlable.Required("order"),
		xmlable.Required("number"),
		xmlable.Required("date"),
		xmlable.Required("account"),
		xmlable.Required("secure"),
		xmlable.Required("order_count"),
	)

	callSchema = xmlable.NewSchema("Call",
		xmlable.Required("date"),
		xmlable.Required("time_beg"),
		xmlable.Required("time_end"),
		xmlable.Required("send_city_code"),
		xmlable.Optional("lunch_beg"),
		xmlable.Optional("lunch_end"),
		xmlable.Optional("send_city_post_code"),
		xmlable.Optional("send_phone"),
		xmlable.Optional("sender_name"),
		xmlable.Optional("weight"),
		xmlable.Optional("comment"),
		xmlable.Optional("send_address"),
	)

	sendAddressSchema = xmlable.NewSchema("SendAddress",
		xmlable.Required("street"),
		xmlable.Required("house"),
		xmlable.Required("flat"),
		xmlable.Required("send_phone"),
		xmlable.Required("sender_name"),
		xmlable.Optional("comment"),
	)

	callCourierSchema = xmlable.NewSchema("CallCourier",
		xmlable.Required("call"),
		xmlable.Required("send_address"),
	)

	callCourierRequestSchema = xmlable.NewSchema("CallCourierRequest",
		xmlable.Required("date"),
		xmlable.Required("account"),
		xmlable.Required("secure"),
		xmlable.Required("call_count"),
		xmlable.Required("call"),
	)

	addServiceSchema = xmlable.NewSchema("AddService",
		xmlable.Required("service_code"),
	)

	statusReportSchema = xmlable.NewSchema("StatusReport",
		xmlable.Required("date"),
		xmlable.Required("account"),
		xmlable.Required("secure"),
		xmlable.Optional("show_history"),
		xmlable.Optional("show_return_order"),
		xmlable.Optional("show_return_order_history"),
		xmlable.Optional("order"),
		xmlable.Optional("change_period"),
	)

	statusOrderSchema = xmlable.NewSchema("StatusOrder",
		xmlable.Optional("dispatch_number"),
		xmlable.Optional("number"),
		xmlable.Optional("date"),
	)

	changePeriodSchema = xmlable.NewSchema("ChangePeriod",
		xmlable.Required("date_first"),
		xmlable.Required("date_last"),
	)
)

// Root element tags.
const (
	DeliveryRequestTag    = "DeliveryRequest"
	StatusReportTag       = "StatusReport"
	CallCourierRequestTag = "CallCourier"
)

// Passport of recipient, required by customs for some tariffs.
type Passport struct{ *xmlable.Entity }

// Address is recipient door address or pickup point.
type Address struct{ *xmlable.Entity }

// Item is a single goods position inside a package.
type Item struct{ *xmlable.Entity }

// Package is a physical box, owns items.
type Package struct{ *xmlable.Entity }

// Order is a shipment registered by DeliveryRequest.
type Order struct{ *xmlable.Entity }

// DeliveryRequest is an act of orders registration, root of new_orders request.
type DeliveryRequest struct{ *xmlable.Entity }

// Call is courier call for cargo pickup.
type Call struct{ *xmlable.Entity }

// SendAddress is pickup address of a courier call.
type SendAddress struct{ *xmlable.Entity }

// CallCourier is order level courier call.
type CallCourier struct{ *xmlable.Entity }

// CallCourierRequest is root of call_courier request.
type CallCourierRequest struct{ *xmlable.Entity }

// AddService is order additional services set.
type AddService struct{ *xmlable.Entity }

// StatusReport is root of status_report request.
type StatusReport struct{ *xmlable.Entity }

// StatusOrder selects an order in StatusReport.
type StatusOrder struct{ *xmlable.Entity }

// ChangePeriod limits StatusReport to orders changed within the period.
type ChangePeriod struct{ *xmlable.Entity }

// Element renders request as root element.
func (r DeliveryRequest) Element() *xmlable.Element {
	return xmlable.Build(r.Entity, DeliveryRequestTag, nil)
}

// Element renders request as root element.
func (r StatusReport) Element() *xmlable.Element {
	return xmlable.Build(r.Entity, StatusReportTag, nil)
}

// Element renders request as root element.
func (r CallCourierRequest) Element() *xmlable.Element {
	return xmlable.Build(r.Entity, CallCourierRequestTag, nil)
}
