package cdek

import (
	"strings"
	"time"

	"github.com/egorka-gh/cdek/xmlable"
	"github.com/google/uuid"
)

// DeliveryFactory builds new_orders request entities.
// Account and Password are carrier integration credentials, Password only signs requests.
type DeliveryFactory struct {
	Account  string
	Password string
}

// NewAddress creates recipient address.
// pvzCode is needed only by "to storage" tariffs.
func (f *DeliveryFactory) NewAddress(street, house, flat, pvzCode string) (Address, error) {
	e, err := xmlable.New(addressSchema, xmlable.Fields{
		"street":   xmlable.String(street),
		"house":    xmlable.String(house),
		"flat":     xmlable.String(flat),
		"pvz_code": xmlable.OptString(pvzCode),
	})
	return Address{e}, err
}

// ItemParams describes goods position.
type ItemParams struct {
	WareKey      string  //артикул, уникален в пределах упаковки
	Cost         float64 //объявленная стоимость за единицу, руб
	Payment      float64 //наложенный платеж за единицу, 0 при предоплате
	Weight       int     //нетто за единицу, г
	WeightBrutto int     //брутто за единицу, г
	Amount       int
	Link         string
	Comment      string //наименование товара
}

// NewItem creates package item.
func (f *DeliveryFactory) NewItem(p ItemParams) (Item, error) {
	e, err := xmlable.New(itemSchema, xmlable.Fields{
		"ware_key":      xmlable.String(p.WareKey),
		"cost":          xmlable.Float(p.Cost),
		"payment":       xmlable.Float(p.Payment),
		"weight":        xmlable.Int(p.Weight),
		"weight_brutto": xmlable.Int(p.WeightBrutto),
		"amount":        xmlable.Int(p.Amount),
		"link":          xmlable.String(p.Link),
		"comment":       xmlable.OptString(p.Comment),
	})
	return Item{e}, err
}

// PackageParams describes a box. Sizes are in cm, zero means unknown.
type PackageParams struct {
	Number  string
	BarCode string //defaults to Number
	Weight  int    //общий вес, г
	Items   []Item
	SizeA   int
	SizeB   int
	SizeC   int
}

// NewPackage creates package.
func (f *DeliveryFactory) NewPackage(p PackageParams) (Package, error) {
	barCode := p.BarCode
	if barCode == "" {
		barCode = p.Number
	}
	items := make([]*xmlable.Entity, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, it.Entity)
	}
	e, err := xmlable.New(packageSchema, xmlable.Fields{
		"number":   xmlable.String(p.Number),
		"bar_code": xmlable.String(barCode),
		"weight":   xmlable.Int(p.Weight),
		"item":     xmlable.Entities(items...),
		"size_a":   xmlable.OptInt(p.SizeA),
		"size_b":   xmlable.OptInt(p.SizeB),
		"size_c":   xmlable.OptInt(p.SizeC),
	})
	return Package{e}, err
}

// NewPassport creates recipient passport, empty parts are sent as absent attributes.
func (f *DeliveryFactory) NewPassport(series, number string) (Passport, error) {
	e, err := xmlable.New(passportSchema, xmlable.Fields{
		"series": xmlable.OptString(series),
		"number": xmlable.OptString(number),
	})
	return Passport{e}, err
}

// OrderParams describes shipment.
// Either RecCityCode or RecCityPostCode must be set, the same for sender city.
type OrderParams struct {
	Number         string //номер отправления клиента, уникален в пределах акта
	DateInvoice    time.Time
	RecipientName  string
	RecipientEmail string
	Phone          string
	TariffTypeCode int
	SellerName     string //истинный продавец, печатается в инвойсе
	Address        Address
	Packages       []Package

	SendCityCode     int
	RecCityCode      int
	SendCityPostCode string
	RecCityPostCode  string

	PassportSeries string
	PassportNumber string
	Comment        string

	CallCourier *CallCourier
	AddService  *AddService
	//доп. сбор за доставку с получателя, nil - не взимается
	DeliveryRecipientCost *float64
}

// NewOrder creates order.
// City configuration is checked before any entity is built.
func (f *DeliveryFactory) NewOrder(p OrderParams) (Order, error) {
	if p.RecCityCode == 0 && p.RecCityPostCode == "" {
		return Order{}, &ConfigurationError{Msg: "rec_city_code or rec_city_post_code must be set"}
	}
	if p.SendCityCode == 0 && p.SendCityPostCode == "" {
		return Order{}, &ConfigurationError{Msg: "send_city_code or send_city_post_code must be set"}
	}
	if p.Address.Entity == nil {
		return Order{}, &ConfigurationError{Msg: "order address must be set"}
	}
	if len(p.Packages) == 0 {
		return Order{}, &ConfigurationError{Msg: "order must have at least one package"}
	}

	passport, err := f.NewPassport(p.PassportSeries, p.PassportNumber)
	if err != nil {
		return Order{}, err
	}
	packages := make([]*xmlable.Entity, 0, len(p.Packages))
	for _, pk := range p.Packages {
		packages = append(packages, pk.Entity)
	}
	fields := xmlable.Fields{
		"number":              xmlable.String(p.Number),
		"date_invoice":        xmlable.Time(p.DateInvoice),
		"recipient_name":      xmlable.String(p.RecipientName),
		"recipient_email":     xmlable.String(p.RecipientEmail),
		"phone":               xmlable.String(p.Phone),
		"tariff_type_code":    xmlable.Int(p.TariffTypeCode),
		"seller_name":         xmlable.String(p.SellerName),
		"address":             xmlable.Of(p.Address.Entity),
		"package":             xmlable.Entities(packages...),
		"send_city_code":      xmlable.OptInt(p.SendCityCode),
		"rec_city_code":       xmlable.OptInt(p.RecCityCode),
		"passport":            xmlable.Of(passport.Entity),
		"send_city_post_code": xmlable.OptString(p.SendCityPostCode),
		"rec_city_post_code":  xmlable.OptString(p.RecCityPostCode),
		"comment":             xmlable.OptString(p.Comment),
	}
	if p.CallCourier != nil {
		fields["call_courier"] = xmlable.Of(p.CallCourier.Entity)
	}
	if p.AddService != nil {
		fields["add_service"] = xmlable.Of(p.AddService.Entity)
	}
	if p.DeliveryRecipientCost != nil {
		fields["delivery_recipient_cost"] = xmlable.Float(*p.DeliveryRecipientCost)
	}
	e, err := xmlable.New(orderSchema, fields)
	return Order{e}, err
}

// NewActNumber returns random act number, 10 hex chars.
func NewActNumber() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}

// NewDeliveryRequest creates signed act for orders.
// Empty number is replaced by NewActNumber.
func (f *DeliveryFactory) NewDeliveryRequest(orders []Order, number string, date time.Time) (DeliveryRequest, error) {
	if len(orders) == 0 {
		return DeliveryRequest{}, &ConfigurationError{Msg: "delivery request must have at least one order"}
	}
	if number == "" {
		number = NewActNumber()
	}
	list := make([]*xmlable.Entity, 0, len(orders))
	for _, o := range orders {
		list = append(list, o.Entity)
	}
	d := date.Format(xmlable.TimeLayout)
	e, err := xmlable.New(deliveryRequestSchema, xmlable.Fields{
		"order":       xmlable.Entities(list...),
		"number":      xmlable.String(number),
		"date":        xmlable.String(d),
		"account":     xmlable.String(f.Account),
		"secure":      xmlable.String(SecureToken(d, f.Password)),
		"order_count": xmlable.Int(len(orders)),
	})
	return DeliveryRequest{e}, err
}

// CallParams describes courier call.
// Only calendar part of Date and clock part of times are sent.
type CallParams struct {
	Date         time.Time
	TimeBeg      time.Time
	TimeEnd      time.Time
	SendCityCode int
	//обед, если входит в интервал ожидания
	LunchBeg time.Time
	LunchEnd time.Time

	SendCityPostCode string
	SendPhone        string
	SenderName       string
	Weight           int //общий вес, г
	Comment          string
	SendAddress      *SendAddress
}

// NewCall creates courier call.
func (f *DeliveryFactory) NewCall(p CallParams) (Call, error) {
	if p.TimeEnd.Format(xmlable.ClockLayout) <= p.TimeBeg.Format(xmlable.ClockLayout) {
		return Call{}, &ConfigurationError{Msg: "call time_end must be after time_beg"}
	}
	fields := xmlable.Fields{
		"date":                xmlable.Date(p.Date),
		"time_beg":            xmlable.Clock(p.TimeBeg),
		"time_end":            xmlable.Clock(p.TimeEnd),
		"send_city_code":      xmlable.Int(p.SendCityCode),
		"lunch_beg":           xmlable.OptTime(p.LunchBeg, xmlable.ClockLayout),
		"lunch_end":           xmlable.OptTime(p.LunchEnd, xmlable.ClockLayout),
		"send_city_post_code": xmlable.OptString(p.SendCityPostCode),
		"send_phone":          xmlable.OptString(p.SendPhone),
		"sender_name":         xmlable.OptString(p.SenderName),
		"weight":              xmlable.OptInt(p.Weight),
		"comment":             xmlable.OptString(p.Comment),
	}
	if p.SendAddress != nil {
		fields["send_address"] = xmlable.Of(p.SendAddress.Entity)
	}
	e, err := xmlable.New(callSchema, fields)
	return Call{e}, err
}

// NewSendAddress creates pickup address.
func (f *DeliveryFactory) NewSendAddress(street, house, flat, sendPhone, senderName, comment string) (SendAddress, error) {
	e, err := xmlable.New(sendAddressSchema, xmlable.Fields{
		"street":      xmlable.String(street),
		"house":       xmlable.String(house),
		"flat":        xmlable.String(flat),
		"send_phone":  xmlable.String(sendPhone),
		"sender_name": xmlable.String(senderName),
		"comment":     xmlable.OptString(comment),
	})
	return SendAddress{e}, err
}

// NewCallCourier creates order level courier call.
func (f *DeliveryFactory) NewCallCourier(call Call, address SendAddress) (CallCourier, error) {
	if call.Entity == nil || address.Entity == nil {
		return CallCourier{}, &ConfigurationError{Msg: "call courier needs call and send address"}
	}
	e, err := xmlable.New(callCourierSchema, xmlable.Fields{
		"call":         xmlable.Of(call.Entity),
		"send_address": xmlable.Of(address.Entity),
	})
	return CallCourier{e}, err
}

// NewAddService creates additional services set.
// Codes share a single attribute, so only the last code reaches the wire.
func (f *DeliveryFactory) NewAddService(codes ...ServiceCode) (AddService, error) {
	if len(codes) == 0 {
		return AddService{}, &ConfigurationError{Msg: "add service needs at least one service code"}
	}
	items := make([]xmlable.Value, 0, len(codes))
	for _, c := range codes {
		items = append(items, xmlable.Int(int(c)))
	}
	e, err := xmlable.New(addServiceSchema, xmlable.Fields{
		"service_code": xmlable.List(items...),
	})
	return AddService{e}, err
}

// NewCallCourierRequest creates signed standalone courier call request.
func (f *DeliveryFactory) NewCallCourierRequest(date time.Time, calls ...Call) (CallCourierRequest, error) {
	if len(calls) == 0 {
		return CallCourierRequest{}, &ConfigurationError{Msg: "call courier request must have at least one call"}
	}
	list := make([]*xmlable.Entity, 0, len(calls))
	for _, c := range calls {
		list = append(list, c.Entity)
	}
	d := date.Format(xmlable.TimeLayout)
	e, err := xmlable.New(callCourierRequestSchema, xmlable.Fields{
		"date":       xmlable.String(d),
		"account":    xmlable.String(f.Account),
		"secure":     xmlable.String(SecureToken(d, f.Password)),
		"call_count": xmlable.Int(len(calls)),
		"call":       xmlable.Entities(list...),
	})
	return CallCourierRequest{e}, err
}
