package cdek

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/egorka-gh/cdek/xmlable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, doc string) *xmlable.Element {
	el, err := xmlable.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return el
}

func TestMapDeliveryResponse(t *testing.T) {
	req := xmlable.NewElement("DeliveryRequest", nil)
	doc := decode(t, `<?xml version="1.0" encoding="UTF-8"?>
<response>
	<Order Number="A1" DispatchNumber="1000028000"/>
	<Order Number="A2" DispatchNumber="1000028001"/>
	<Order Msg="Добавлено заказов 2"/>
</response>`)

	resp := MapDeliveryResponse(req, doc)
	assert.True(t, resp.OK())
	assert.Same(t, req, resp.RequestElement)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "A1", resp.Data[0].Number)
	assert.Equal(t, "1000028000", resp.Data[0].DispatchNumber)
	assert.Equal(t, "A2", resp.Data[1].Number)
	assert.False(t, resp.Data[1].HasErrors())

	o, ok := resp.Order("A2")
	require.True(t, ok)
	assert.Equal(t, "1000028001", o.DispatchNumber)
	_, ok = resp.Order("A3")
	assert.False(t, ok)
}

func TestMapDeliveryResponseErrorThenDispatch(t *testing.T) {
	doc := decode(t, `<response>
<Order Number="A1" ErrorCode="ERR_PVZ" Msg="bad pvz"/>
<Order Number="A1" DispatchNumber="100"/>
</response>`)
	resp := MapDeliveryResponse(nil, doc)
	assert.Equal(t, StatusFail, resp.Status)
	require.Len(t, resp.Data, 1)
	o := resp.Data[0]
	assert.Equal(t, "100", o.DispatchNumber)
	assert.Equal(t, []ResponseError{{Code: "ERR_PVZ", Message: "bad pvz"}}, o.Errors)
}

func TestMapDeliveryResponseDispatchThenError(t *testing.T) {
	doc := decode(t, `<response>
<Order Number="A1" DispatchNumber="100"/>
<Order Number="A1" ErrorCode="ERR_PVZ" Msg="bad pvz"/>
<Order Number="A1" ErrorCode="ERR_WEIGHT" Msg="bad weight"/>
<Order Number="A1" DispatchNumber="101"/>
</response>`)
	resp := MapDeliveryResponse(nil, doc)
	assert.Equal(t, StatusFail, resp.Status)
	require.Len(t, resp.Data, 1)
	o := resp.Data[0]
	assert.Equal(t, "101", o.DispatchNumber)
	require.Len(t, o.Errors, 2)
	assert.Equal(t, "ERR_PVZ", o.Errors[0].Code)
	assert.Equal(t, "ERR_WEIGHT", o.Errors[1].Code)
}

func TestMapDeliveryResponseStickyFail(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<response>")
	for i := 1; i <= 10; i++ {
		if i == 4 {
			fmt.Fprintf(&sb, `<Order Number="N%d" ErrorCode="ERR" Msg="failed"/>`, i)
			continue
		}
		fmt.Fprintf(&sb, `<Order Number="N%d" DispatchNumber="D%d"/>`, i, i)
	}
	sb.WriteString("</response>")

	resp := MapDeliveryResponse(nil, decode(t, sb.String()))
	assert.Equal(t, StatusFail, resp.Status)
	require.Len(t, resp.Data, 10)
	for i, o := range resp.Data {
		assert.Equal(t, fmt.Sprintf("N%d", i+1), o.Number)
	}
	assert.True(t, resp.Data[3].HasErrors())
	assert.Equal(t, "D10", resp.Data[9].DispatchNumber)
}

func TestMapStatusReportResponse(t *testing.T) {
	doc := decode(t, `<?xml version="1.0" encoding="UTF-8"?>
<StatusReport DateFirst="2016-03-01T00:00:00+03:00" DateLast="2016-03-14T09:05:07+03:00">
	<Order ActNumber="act1" Number="A1" DispatchNumber="1000028000">
		<Status Date="2016-03-12T16:05:19+03:00" Code="4" Description="Вручен" CityCode="44" CityName="Москва">
			<State Date="2016-03-10T10:00:00+03:00" Code="1" Description="Создан" CityCode="270" CityName="Новосибирск"/>
			<State Date="2016-03-12T16:05:19+03:00" Code="4" Description="Вручен" CityCode="44" CityName="Москва"/>
		</Status>
	</Order>
	<Order Number="A2" DispatchNumber="1000028001"/>
	<Order DispatchNumber="1" ErrorCode="ERR_INVALID_DISPATCHNUMBER" Msg="not found"/>
</StatusReport>`)

	resp, err := MapStatusReportResponse(nil, doc)
	require.NoError(t, err)
	assert.Equal(t, StatusFail, resp.Status)
	require.Len(t, resp.Data, 3)

	o := resp.Data[0]
	assert.Equal(t, "1000028000", o.DispatchNumber)
	require.NotNil(t, o.Status)
	assert.Equal(t, StatusDelivered, o.Status.Code)
	assert.Equal(t, "Москва", o.Status.CityName)
	assert.Equal(t, "44", o.Status.CityCode)
	assert.Equal(t, "Вручен", o.Status.Description)
	assert.Equal(t, "2016-03-12T16:05:19+03:00", o.Status.Date)
	require.Len(t, o.Status.History, 2)
	assert.Equal(t, StatusRegistered, o.Status.History[0].Code)
	assert.Equal(t, "Новосибирск", o.Status.History[0].CityName)

	assert.Nil(t, resp.Data[1].Status)
	assert.Equal(t, "1000028001", resp.Data[1].DispatchNumber)

	assert.Equal(t, "", resp.Data[2].Number)
	assert.True(t, resp.Data[2].HasErrors())
}

func TestMapStatusReportResponseBadCode(t *testing.T) {
	for _, doc := range []string{
		`<StatusReport><Order Number="A1"><Status Code="four"/></Order></StatusReport>`,
		`<StatusReport><Order Number="A1"><Status CityName="x"/></Order></StatusReport>`,
		`<StatusReport><Order Number="A1"><Status Code="4"><State Code="x"/></Status></Order></StatusReport>`,
	} {
		_, err := MapStatusReportResponse(nil, decode(t, doc))
		require.Error(t, err, doc)
		assert.True(t, errors.Is(err, ErrParse), doc)
		assert.Equal(t, KindParse, KindOf(err))
	}
}

func TestMapRootError(t *testing.T) {
	doc := decode(t, `<StatusReport ErrorCode="ERR_AUTH" Msg="wrong secure"/>`)
	resp, err := MapStatusReportResponse(nil, doc)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Empty(t, resp.Data)
	assert.Equal(t, []ResponseError{{Code: "ERR_AUTH", Message: "wrong secure"}}, resp.Errors)
}

func TestMapCallCourierResponse(t *testing.T) {
	doc := decode(t, `<response><Call Number="1" DispatchNumber="5000"/></response>`)
	resp := MapCallCourierResponse(nil, doc)
	assert.True(t, resp.OK())
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "5000", resp.Data[0].DispatchNumber)

	doc = decode(t, `<response ErrorCode="ERR_CALL_DUBL" Msg="duplicate"><Call Number="1" ErrorCode="ERR_CALL_DUBL" Msg="duplicate"/></response>`)
	resp = MapCallCourierResponse(nil, doc)
	assert.Equal(t, StatusFail, resp.Status)
	require.Len(t, resp.Errors, 1)
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].HasErrors())
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("x")))

	te := &TransportError{Op: "new_orders", StatusCode: 503, Err: errors.New("unavailable")}
	assert.Equal(t, KindTransport, KindOf(fmt.Errorf("call: %w", te)))
	assert.True(t, te.Retryable())
	assert.False(t, (&TransportError{StatusCode: 403}).Retryable())
	assert.True(t, (&TransportError{Err: errors.New("refused")}).Retryable())
	assert.Contains(t, te.Error(), "503")
}
