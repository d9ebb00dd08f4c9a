package main

import (
	"context"
	"errors"

	"github.com/egorka-gh/cdek/cdek"
	"github.com/egorka-gh/cdek/cdek/service"
	"github.com/egorka-gh/cdek/dto"
	"github.com/egorka-gh/cdek/xmlable"
	"github.com/spf13/cobra"
)

// errRejected is returned when carrier reported errors, response is printed anyway.
var errRejected = errors.New("carrier rejected the request")

func (a *app) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.v.GetBool("debug") {
		ctx = context.WithValue(ctx, service.HTTPDebug, true)
	}
	return ctx
}

func (a *app) report(resp *cdek.Response) error {
	if err := a.print(dto.NewResponse(resp)); err != nil {
		return err
	}
	if !resp.OK() {
		return errRejected
	}
	return nil
}

func registerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register FILE",
		Short: "Register orders act from yaml or json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc dto.DeliveryRequest
			if err := dto.ReadFile(args[0], &doc); err != nil {
				return err
			}
			f, err := a.deliveryFactory()
			if err != nil {
				return err
			}
			req, err := doc.Build(f, a.now())
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			resp, err := svc.DeliveryRequest(a.context(cmd), req)
			if err != nil {
				return err
			}
			return a.report(resp)
		},
	}
}

func statusCmd(a *app) *cobra.Command {
	var q dto.StatusQuery
	c := &cobra.Command{
		Use:   "status [DISPATCH_NUMBER...]",
		Short: "Report statuses of dispatches or of orders changed within period",
		RunE: func(cmd *cobra.Command, args []string) error {
			q.DispatchNumbers = args
			f, err := a.statusFactory()
			if err != nil {
				return err
			}
			req, err := q.Build(f, a.now())
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			resp, err := svc.StatusReport(a.context(cmd), req)
			if err != nil {
				return err
			}
			return a.report(resp)
		},
	}
	c.Flags().BoolVar(&q.ShowHistory, "history", false, "include status history")
	c.Flags().BoolVar(&q.ShowReturnOrder, "returns", false, "include return orders")
	c.Flags().StringVar(&q.From, "from", "", "changes period start, YYYY-MM-DD")
	c.Flags().StringVar(&q.To, "to", "", "changes period end, YYYY-MM-DD (default today)")
	return c
}

func courierCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "courier FILE",
		Short: "Call courier, calls are read from yaml or json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc dto.CourierRequest
			if err := dto.ReadFile(args[0], &doc); err != nil {
				return err
			}
			f, err := a.deliveryFactory()
			if err != nil {
				return err
			}
			req, err := doc.Build(f, a.now())
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			resp, err := svc.CallCourier(a.context(cmd), req)
			if err != nil {
				return err
			}
			return a.report(resp)
		},
	}
}

func renderCmd(a *app) *cobra.Command {
	var courier bool
	c := &cobra.Command{
		Use:   "render FILE",
		Short: "Print request document without sending it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.deliveryFactory()
			if err != nil {
				return err
			}
			var el *xmlable.Element
			if courier {
				var doc dto.CourierRequest
				if err := dto.ReadFile(args[0], &doc); err != nil {
					return err
				}
				req, err := doc.Build(f, a.now())
				if err != nil {
					return err
				}
				el = req.Element()
			} else {
				var doc dto.DeliveryRequest
				if err := dto.ReadFile(args[0], &doc); err != nil {
					return err
				}
				req, err := doc.Build(f, a.now())
				if err != nil {
					return err
				}
				el = req.Element()
			}
			raw, err := cdek.Payload(el)
			if err != nil {
				return err
			}
			_, err = a.out.Write(append(raw, '\n'))
			return err
		},
	}
	c.Flags().BoolVar(&courier, "courier", false, "file is courier call request")
	return c
}
