package dto

import (
	"fmt"
	"time"

	"github.com/egorka-gh/cdek/cdek"
)

// Build creates package item.
func (i Item) Build(f *cdek.DeliveryFactory) (cdek.Item, error) {
	return f.NewItem(cdek.ItemParams{
		WareKey:      i.WareKey,
		Cost:         i.Cost,
		Payment:      i.Payment,
		Weight:       i.Weight,
		WeightBrutto: i.WeightBrutto,
		Amount:       i.Amount,
		Link:         i.Link,
		Comment:      i.Comment,
	})
}

// Build creates package.
func (p Package) Build(f *cdek.DeliveryFactory) (cdek.Package, error) {
	items := make([]cdek.Item, 0, len(p.Items))
	for _, it := range p.Items {
		item, err := it.Build(f)
		if err != nil {
			return cdek.Package{}, fmt.Errorf("item %s: %w", it.WareKey, err)
		}
		items = append(items, item)
	}
	return f.NewPackage(cdek.PackageParams{
		Number:  p.Number,
		BarCode: p.BarCode,
		Weight:  p.Weight,
		Items:   items,
		SizeA:   p.SizeA,
		SizeB:   p.SizeB,
		SizeC:   p.SizeC,
	})
}

// Build creates order.
func (o Order) Build(f *cdek.DeliveryFactory) (cdek.Order, error) {
	address, err := f.NewAddress(o.Address.Street, o.Address.House, o.Address.Flat, o.Address.PvzCode)
	if err != nil {
		return cdek.Order{}, err
	}
	packages := make([]cdek.Package, 0, len(o.Packages))
	for _, p := range o.Packages {
		pkg, err := p.Build(f)
		if err != nil {
			return cdek.Order{}, fmt.Errorf("package %s: %w", p.Number, err)
		}
		packages = append(packages, pkg)
	}
	params := cdek.OrderParams{
		Number:                o.Number,
		DateInvoice:           o.DateInvoice,
		RecipientName:         o.RecipientName,
		RecipientEmail:        o.RecipientEmail,
		Phone:                 o.Phone,
		TariffTypeCode:        o.TariffTypeCode,
		SellerName:            o.SellerName,
		Address:               address,
		Packages:              packages,
		SendCityCode:          o.SendCityCode,
		RecCityCode:           o.RecCityCode,
		SendCityPostCode:      o.SendCityPostCode,
		RecCityPostCode:       o.RecCityPostCode,
		Comment:               o.Comment,
		DeliveryRecipientCost: o.DeliveryRecipientCost,
	}
	if o.Passport != nil {
		params.PassportSeries = o.Passport.Series
		params.PassportNumber = o.Passport.Number
	}
	if o.Courier != nil {
		cc, err := o.Courier.Build(f)
		if err != nil {
			return cdek.Order{}, err
		}
		params.CallCourier = &cc
	}
	if len(o.Services) > 0 {
		codes := make([]cdek.ServiceCode, 0, len(o.Services))
		for _, c := range o.Services {
			codes = append(codes, cdek.ServiceCode(c))
		}
		svc, err := f.NewAddService(codes...)
		if err != nil {
			return cdek.Order{}, err
		}
		params.AddService = &svc
	}
	return f.NewOrder(params)
}

// Build creates signed act, now is used when document has no date.
func (r DeliveryRequest) Build(f *cdek.DeliveryFactory, now time.Time) (cdek.DeliveryRequest, error) {
	orders := make([]cdek.Order, 0, len(r.Orders))
	for _, o := range r.Orders {
		order, err := o.Build(f)
		if err != nil {
			return cdek.DeliveryRequest{}, fmt.Errorf("order %s: %w", o.Number, err)
		}
		orders = append(orders, order)
	}
	date := r.Date
	if date.IsZero() {
		date = now
	}
	return f.NewDeliveryRequest(orders, r.Number, date)
}

// Build creates courier call.
func (c CourierCall) Build(f *cdek.DeliveryFactory) (cdek.Call, error) {
	p := cdek.CallParams{
		SendCityCode:     c.SendCityCode,
		SendCityPostCode: c.SendCityPostCode,
		SendPhone:        c.SendPhone,
		SenderName:       c.SenderName,
		Weight:           c.Weight,
		Comment:          c.Comment,
	}
	var err error
	if p.Date, err = parseDate("date", c.Date); err != nil {
		return cdek.Call{}, err
	}
	if p.TimeBeg, err = parseClock("time_beg", c.TimeBeg); err != nil {
		return cdek.Call{}, err
	}
	if p.TimeEnd, err = parseClock("time_end", c.TimeEnd); err != nil {
		return cdek.Call{}, err
	}
	if c.LunchBeg != "" {
		if p.LunchBeg, err = parseClock("lunch_beg", c.LunchBeg); err != nil {
			return cdek.Call{}, err
		}
	}
	if c.LunchEnd != "" {
		if p.LunchEnd, err = parseClock("lunch_end", c.LunchEnd); err != nil {
			return cdek.Call{}, err
		}
	}
	if c.Address != nil {
		sa, err := c.Address.Build(f)
		if err != nil {
			return cdek.Call{}, err
		}
		p.SendAddress = &sa
	}
	return f.NewCall(p)
}

// Build creates pickup address.
func (a SendAddress) Build(f *cdek.DeliveryFactory) (cdek.SendAddress, error) {
	return f.NewSendAddress(a.Street, a.House, a.Flat, a.Phone, a.Name, a.Comment)
}

// Build creates order level courier call.
func (c Courier) Build(f *cdek.DeliveryFactory) (cdek.CallCourier, error) {
	call, err := c.Call.Build(f)
	if err != nil {
		return cdek.CallCourier{}, err
	}
	address, err := c.Address.Build(f)
	if err != nil {
		return cdek.CallCourier{}, err
	}
	return f.NewCallCourier(call, address)
}

// Build creates signed courier call request.
func (r CourierRequest) Build(f *cdek.DeliveryFactory, now time.Time) (cdek.CallCourierRequest, error) {
	calls := make([]cdek.Call, 0, len(r.Calls))
	for i, c := range r.Calls {
		call, err := c.Build(f)
		if err != nil {
			return cdek.CallCourierRequest{}, fmt.Errorf("call %d: %w", i+1, err)
		}
		calls = append(calls, call)
	}
	date := r.Date
	if date.IsZero() {
		date = now
	}
	return f.NewCallCourierRequest(date, calls...)
}

// Build creates signed status report.
func (q StatusQuery) Build(f *cdek.StatusReportFactory, now time.Time) (cdek.StatusReport, error) {
	p := cdek.StatusReportParams{
		Date:            now,
		ShowHistory:     q.ShowHistory,
		ShowReturnOrder: q.ShowReturnOrder,
	}
	for _, dn := range q.DispatchNumbers {
		o, err := f.NewOrder(dn, "", time.Time{})
		if err != nil {
			return cdek.StatusReport{}, err
		}
		p.Orders = append(p.Orders, o)
	}
	for _, ref := range q.Orders {
		d, err := parseDate("date", ref.Date)
		if err != nil {
			return cdek.StatusReport{}, err
		}
		o, err := f.NewOrder("", ref.Number, d)
		if err != nil {
			return cdek.StatusReport{}, err
		}
		p.Orders = append(p.Orders, o)
	}
	if q.From != "" || q.To != "" {
		first, err := parseDate("from", q.From)
		if err != nil {
			return cdek.StatusReport{}, err
		}
		last := now
		if q.To != "" {
			if last, err = parseDate("to", q.To); err != nil {
				return cdek.StatusReport{}, err
			}
		}
		cp, err := f.NewChangePeriod(first, last)
		if err != nil {
			return cdek.StatusReport{}, err
		}
		p.ChangePeriod = &cp
	}
	return f.NewStatusReport(p)
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &cdek.ConfigurationError{Msg: fmt.Sprintf("%s: wrong date %q", field, s)}
	}
	return t, nil
}

func parseClock(field, s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &cdek.ConfigurationError{Msg: fmt.Sprintf("%s: wrong time %q", field, s)}
}
