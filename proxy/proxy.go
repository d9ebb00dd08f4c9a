package proxy

import (
	"context"
	"net/http"
	"time"

	"github.com/egorka-gh/cdek/cdek"
	"github.com/egorka-gh/cdek/cdek/service"
	"github.com/egorka-gh/cdek/dto"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-kit/kit/log"
)

// Tracker receives dispatches registered through proxy.
type Tracker interface {
	Track(ctx context.Context, orderNumber, dispatchNumber string) error
}

//HandlerConfig to create mux
type HandlerConfig struct {
	Service  service.Service
	Delivery *cdek.DeliveryFactory
	Status   *cdek.StatusReportFactory
	//optional
	Tracker Tracker
	Logger  log.Logger
	//clock, time.Now if nil
	Now func() time.Time
}

type proxy struct {
	mux    *chi.Mux
	config *HandlerConfig
}

func (p *proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mux.ServeHTTP(w, r)
}

//NewHandler creats http.Handler
func NewHandler(config *HandlerConfig) http.Handler {
	if config.Logger == nil {
		config.Logger = log.NewNopLogger()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &proxy{
		config: config,
		mux:    createRouter(config),
	}
}

func createRouter(config *HandlerConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hi"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/orders", config.CreateOrders)
		r.Get("/status/{dispatchNumber}", config.GetStatus)
		r.Post("/courier", config.CallCourier)
	})
	return r
}

// CreateOrders registers orders act.
func (c *HandlerConfig) CreateOrders(w http.ResponseWriter, r *http.Request) {
	var doc dto.DeliveryRequest
	if err := render.DecodeJSON(r.Body, &doc); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	req, err := doc.Build(c.Delivery, c.Now())
	if err != nil {
		c.renderError(w, r, err)
		return
	}
	resp, err := c.Service.DeliveryRequest(r.Context(), req)
	if err != nil {
		c.renderError(w, r, err)
		return
	}
	if c.Tracker != nil {
		for _, o := range resp.Data {
			if o.DispatchNumber == "" || o.HasErrors() {
				continue
			}
			if err := c.Tracker.Track(r.Context(), o.Number, o.DispatchNumber); err != nil {
				c.Logger.Log("order", o.Number, "dispatch", o.DispatchNumber, "err", err)
			}
		}
	}
	render.JSON(w, r, dto.NewResponse(resp))
}

// GetStatus returns status with history of a dispatch.
func (c *HandlerConfig) GetStatus(w http.ResponseWriter, r *http.Request) {
	dispatchNumber := chi.URLParam(r, "dispatchNumber")
	if dispatchNumber == "" {
		render.Render(w, r, ErrNotFound)
		return
	}
	q := dto.StatusQuery{DispatchNumbers: []string{dispatchNumber}, ShowHistory: true}
	req, err := q.Build(c.Status, c.Now())
	if err != nil {
		c.renderError(w, r, err)
		return
	}
	resp, err := c.Service.StatusReport(r.Context(), req)
	if err != nil {
		c.renderError(w, r, err)
		return
	}
	render.JSON(w, r, dto.NewResponse(resp))
}

// CallCourier sends courier call request.
func (c *HandlerConfig) CallCourier(w http.ResponseWriter, r *http.Request) {
	var doc dto.CourierRequest
	if err := render.DecodeJSON(r.Body, &doc); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	req, err := doc.Build(c.Delivery, c.Now())
	if err != nil {
		c.renderError(w, r, err)
		return
	}
	resp, err := c.Service.CallCourier(r.Context(), req)
	if err != nil {
		c.renderError(w, r, err)
		return
	}
	render.JSON(w, r, dto.NewResponse(resp))
}

func (c *HandlerConfig) renderError(w http.ResponseWriter, r *http.Request, err error) {
	kind := cdek.KindOf(err)
	c.Logger.Log("uri", r.URL.RequestURI(), "kind", kind, "err", err)
	switch kind {
	case cdek.KindSchema, cdek.KindConfiguration:
		render.Render(w, r, ErrInvalidRequest(err))
	case cdek.KindTransport, cdek.KindParse:
		render.Render(w, r, ErrCarrier(err))
	default:
		render.Render(w, r, ErrInternal(err))
	}
}
