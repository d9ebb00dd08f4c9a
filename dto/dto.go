/*
Package dto holds order documents accepted by proxy and command line.
Documents are plain JSON/YAML, Build methods convert them through cdek factories.
*/
package dto

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is document date format.
const DateLayout = "2006-01-02"

// Item is goods position.
type Item struct {
	WareKey      string  `json:"ware_key" yaml:"ware_key"`
	Cost         float64 `json:"cost" yaml:"cost"`
	Payment      float64 `json:"payment" yaml:"payment"`
	Weight       int     `json:"weight" yaml:"weight"`
	WeightBrutto int     `json:"weight_brutto" yaml:"weight_brutto"`
	Amount       int     `json:"amount" yaml:"amount"`
	Link         string  `json:"link" yaml:"link"`
	Comment      string  `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Package is a box.
type Package struct {
	Number  string `json:"number" yaml:"number"`
	BarCode string `json:"bar_code,omitempty" yaml:"bar_code,omitempty"`
	Weight  int    `json:"weight" yaml:"weight"`
	Items   []Item `json:"items" yaml:"items"`
	SizeA   int    `json:"size_a,omitempty" yaml:"size_a,omitempty"`
	SizeB   int    `json:"size_b,omitempty" yaml:"size_b,omitempty"`
	SizeC   int    `json:"size_c,omitempty" yaml:"size_c,omitempty"`
}

// Address is recipient address.
type Address struct {
	Street  string `json:"street" yaml:"street"`
	House   string `json:"house" yaml:"house"`
	Flat    string `json:"flat" yaml:"flat"`
	PvzCode string `json:"pvz_code,omitempty" yaml:"pvz_code,omitempty"`
}

// Passport of recipient.
type Passport struct {
	Series string `json:"series" yaml:"series"`
	Number string `json:"number" yaml:"number"`
}

// SendAddress is courier pickup address.
type SendAddress struct {
	Street  string `json:"street" yaml:"street"`
	House   string `json:"house" yaml:"house"`
	Flat    string `json:"flat" yaml:"flat"`
	Phone   string `json:"phone" yaml:"phone"`
	Name    string `json:"name" yaml:"name"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// CourierCall is courier call. Date is YYYY-MM-DD, times are HH:MM or HH:MM:SS.
type CourierCall struct {
	Date             string       `json:"date" yaml:"date"`
	TimeBeg          string       `json:"time_beg" yaml:"time_beg"`
	TimeEnd          string       `json:"time_end" yaml:"time_end"`
	LunchBeg         string       `json:"lunch_beg,omitempty" yaml:"lunch_beg,omitempty"`
	LunchEnd         string       `json:"lunch_end,omitempty" yaml:"lunch_end,omitempty"`
	SendCityCode     int          `json:"send_city_code" yaml:"send_city_code"`
	SendCityPostCode string       `json:"send_city_post_code,omitempty" yaml:"send_city_post_code,omitempty"`
	SendPhone        string       `json:"send_phone,omitempty" yaml:"send_phone,omitempty"`
	SenderName       string       `json:"sender_name,omitempty" yaml:"sender_name,omitempty"`
	Weight           int          `json:"weight,omitempty" yaml:"weight,omitempty"`
	Comment          string       `json:"comment,omitempty" yaml:"comment,omitempty"`
	Address          *SendAddress `json:"address,omitempty" yaml:"address,omitempty"`
}

// Courier is order level courier call.
type Courier struct {
	Call    CourierCall `json:"call" yaml:"call"`
	Address SendAddress `json:"address" yaml:"address"`
}

// Order is shipment document.
type Order struct {
	Number           string    `json:"number" yaml:"number"`
	DateInvoice      time.Time `json:"date_invoice" yaml:"date_invoice"`
	RecipientName    string    `json:"recipient_name" yaml:"recipient_name"`
	RecipientEmail   string    `json:"recipient_email" yaml:"recipient_email"`
	Phone            string    `json:"phone" yaml:"phone"`
	TariffTypeCode   int       `json:"tariff_type_code" yaml:"tariff_type_code"`
	SellerName       string    `json:"seller_name" yaml:"seller_name"`
	Address          Address   `json:"address" yaml:"address"`
	Packages         []Package `json:"packages" yaml:"packages"`
	SendCityCode     int       `json:"send_city_code,omitempty" yaml:"send_city_code,omitempty"`
	RecCityCode      int       `json:"rec_city_code,omitempty" yaml:"rec_city_code,omitempty"`
	SendCityPostCode string    `json:"send_city_post_code,omitempty" yaml:"send_city_post_code,omitempty"`
	RecCityPostCode  string    `json:"rec_city_post_code,omitempty" yaml:"rec_city_post_code,omitempty"`
	Passport         *Passport `json:"passport,omitempty" yaml:"passport,omitempty"`
	Comment          string    `json:"comment,omitempty" yaml:"comment,omitempty"`
	Courier          *Courier  `json:"courier,omitempty" yaml:"courier,omitempty"`
	//additional services codes
	Services              []int    `json:"services,omitempty" yaml:"services,omitempty"`
	DeliveryRecipientCost *float64 `json:"delivery_recipient_cost,omitempty" yaml:"delivery_recipient_cost,omitempty"`
}

// DeliveryRequest is orders act. Empty number is generated, zero date means now.
type DeliveryRequest struct {
	Number string    `json:"number,omitempty" yaml:"number,omitempty"`
	Date   time.Time `json:"date,omitempty" yaml:"date,omitempty"`
	Orders []Order   `json:"orders" yaml:"orders"`
}

// OrderRef selects order by client number and act date.
type OrderRef struct {
	Number string `json:"number" yaml:"number"`
	Date   string `json:"date" yaml:"date"`
}

// StatusQuery selects orders for status report.
// From and To (YYYY-MM-DD) select orders changed within the period.
type StatusQuery struct {
	DispatchNumbers []string   `json:"dispatch_numbers,omitempty" yaml:"dispatch_numbers,omitempty"`
	Orders          []OrderRef `json:"orders,omitempty" yaml:"orders,omitempty"`
	ShowHistory     bool       `json:"show_history,omitempty" yaml:"show_history,omitempty"`
	ShowReturnOrder bool       `json:"show_return_order,omitempty" yaml:"show_return_order,omitempty"`
	From            string     `json:"from,omitempty" yaml:"from,omitempty"`
	To              string     `json:"to,omitempty" yaml:"to,omitempty"`
}

// CourierRequest is standalone courier call request.
type CourierRequest struct {
	Date  time.Time     `json:"date,omitempty" yaml:"date,omitempty"`
	Calls []CourierCall `json:"calls" yaml:"calls"`
}

// ReadFile loads document from yaml (.yaml, .yml) or json file.
func ReadFile(path string, v interface{}) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, v)
	default:
		err = json.Unmarshal(raw, v)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
