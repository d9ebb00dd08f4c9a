package dto

import "github.com/egorka-gh/cdek/cdek"

// Error is carrier error.
type Error struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// State is status history entry.
type State struct {
	Code        int    `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Date        string `json:"date,omitempty" yaml:"date,omitempty"`
	CityCode    string `json:"city_code,omitempty" yaml:"city_code,omitempty"`
	CityName    string `json:"city_name,omitempty" yaml:"city_name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Status is order status.
type Status struct {
	State   `yaml:",inline"`
	Final   bool    `json:"final" yaml:"final"`
	History []State `json:"history,omitempty" yaml:"history,omitempty"`
}

// ResponseOrder is carrier answer for one order.
type ResponseOrder struct {
	Number         string  `json:"number" yaml:"number"`
	DispatchNumber string  `json:"dispatch_number,omitempty" yaml:"dispatch_number,omitempty"`
	Errors         []Error `json:"errors,omitempty" yaml:"errors,omitempty"`
	Status         *Status `json:"status,omitempty" yaml:"status,omitempty"`
}

// ResponseDTO is serializable carrier answer summary.
type ResponseDTO struct {
	Status string          `json:"status" yaml:"status"`
	Errors []Error         `json:"errors,omitempty" yaml:"errors,omitempty"`
	Orders []ResponseOrder `json:"orders" yaml:"orders"`
}

// NewResponse converts carrier answer.
func NewResponse(r *cdek.Response) ResponseDTO {
	res := ResponseDTO{
		Status: string(r.Status),
		Errors: errorsOf(r.Errors),
		Orders: make([]ResponseOrder, 0, len(r.Data)),
	}
	for _, o := range r.Data {
		ro := ResponseOrder{
			Number:         o.Number,
			DispatchNumber: o.DispatchNumber,
			Errors:         errorsOf(o.Errors),
		}
		if s := o.Status; s != nil {
			ro.Status = &Status{
				State: State{
					Code:        int(s.Code),
					Name:        s.Code.String(),
					Date:        s.Date,
					CityCode:    s.CityCode,
					CityName:    s.CityName,
					Description: s.Description,
				},
				Final: s.Code.Final(),
			}
			for _, h := range s.History {
				ro.Status.History = append(ro.Status.History, State{
					Code:        int(h.Code),
					Name:        h.Code.String(),
					Date:        h.Date,
					CityCode:    h.CityCode,
					CityName:    h.CityName,
					Description: h.Description,
				})
			}
		}
		res.Orders = append(res.Orders, ro)
	}
	return res
}

func errorsOf(errs []cdek.ResponseError) []Error {
	if len(errs) == 0 {
		return nil
	}
	res := make([]Error, 0, len(errs))
	for _, e := range errs {
		res = append(res, Error{Code: e.Code, Message: e.Message})
	}
	return res
}
