package cdek

import (
	"time"

	"github.com/egorka-gh/cdek/xmlable"
)

// StatusReportFactory builds status_report request entities.
type StatusReportFactory struct {
	Account  string
	Password string
}

// NewOrder selects order by carrier dispatch number,
// or by client number and act date when dispatch number is unknown.
func (f *StatusReportFactory) NewOrder(dispatchNumber, number string, date time.Time) (StatusOrder, error) {
	if dispatchNumber == "" && (number == "" || date.IsZero()) {
		return StatusOrder{}, &ConfigurationError{Msg: "status order needs dispatch_number or number and date"}
	}
	e, err := xmlable.New(statusOrderSchema, xmlable.Fields{
		"dispatch_number": xmlable.OptString(dispatchNumber),
		"number":          xmlable.OptString(number),
		"date":            xmlable.OptTime(date, xmlable.DateLayout),
	})
	return StatusOrder{e}, err
}

// NewChangePeriod creates changes period, first must not be after last.
func (f *StatusReportFactory) NewChangePeriod(first, last time.Time) (ChangePeriod, error) {
	if first.After(last) {
		return ChangePeriod{}, &ConfigurationError{Msg: "change period date_first is after date_last"}
	}
	e, err := xmlable.New(changePeriodSchema, xmlable.Fields{
		"date_first": xmlable.Date(first),
		"date_last":  xmlable.Date(last),
	})
	return ChangePeriod{e}, err
}

// StatusReportParams selects orders to report.
type StatusReportParams struct {
	Date                   time.Time
	ShowHistory            bool
	ShowReturnOrder        bool
	ShowReturnOrderHistory bool
	ChangePeriod           *ChangePeriod
	Orders                 []StatusOrder
}

// NewStatusReport creates signed status report request.
// Either ChangePeriod or Orders must be set.
func (f *StatusReportFactory) NewStatusReport(p StatusReportParams) (StatusReport, error) {
	if p.ChangePeriod == nil && len(p.Orders) == 0 {
		return StatusReport{}, &ConfigurationError{Msg: "status report needs change period or orders"}
	}
	d := p.Date.Format(xmlable.TimeLayout)
	fields := xmlable.Fields{
		"date":                      xmlable.String(d),
		"account":                   xmlable.String(f.Account),
		"secure":                    xmlable.String(SecureToken(d, f.Password)),
		"show_history":              flag(p.ShowHistory),
		"show_return_order":         flag(p.ShowReturnOrder),
		"show_return_order_history": flag(p.ShowReturnOrderHistory),
	}
	if p.ChangePeriod != nil {
		fields["change_period"] = xmlable.Of(p.ChangePeriod.Entity)
	}
	if len(p.Orders) > 0 {
		list := make([]*xmlable.Entity, 0, len(p.Orders))
		for _, o := range p.Orders {
			list = append(list, o.Entity)
		}
		fields["order"] = xmlable.Entities(list...)
	}
	e, err := xmlable.New(statusReportSchema, fields)
	return StatusReport{e}, err
}

// flag renders carrier boolean, only "1" is meaningful.
func flag(b bool) xmlable.Value {
	if b {
		return xmlable.Int(1)
	}
	return xmlable.Null()
}
