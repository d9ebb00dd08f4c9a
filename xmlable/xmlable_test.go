package xmlable

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testItem = NewSchema("Item",
		Required("ware_key"),
		Required("cost"),
		Required("weight_brutto"),
		Optional("comment"),
	)
	testPackage = NewSchema("Package",
		Required("number"),
		Required("item"),
		Optional("size_a"),
	)
	testOrder = NewSchema("Order",
		Required("number"),
		Required("address"),
		Optional("add_service"),
	)
	testAddress = NewSchema("Address",
		Required("street"),
		Optional("pvz_code"),
	)
)

func mustNew(schema *Schema, fields Fields) *Entity {
	e, err := New(schema, fields)
	if err != nil {
		panic(err)
	}
	return e
}

func TestPascalCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ware_key", "WareKey"},
		{"weight_brutto", "WeightBrutto"},
		{"send_city_post_code", "SendCityPostCode"},
		{"number", "Number"},
		{"size_a", "SizeA"},
		{"WEIGHT_brutto", "WeightBrutto"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PascalCase(tc.in), "PascalCase(%q)", tc.in)
	}
}

func TestNewSchemaDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema("Broken", Required("a"), Optional("a"))
	})
}

func TestSchemaFieldNames(t *testing.T) {
	assert.Equal(t, []string{"ware_key", "cost", "weight_brutto", "comment"}, testItem.FieldNames())
	assert.True(t, testItem.Has("cost"))
	assert.False(t, testItem.Has("link"))
	assert.Equal(t, Field{Name: "comment"}, testItem.Fields()[3])
}

func TestNewMissingRequired(t *testing.T) {
	_, err := New(testItem, Fields{"ware_key": String("k"), "cost": Int(1)})
	require.Error(t, err)

	var missing *MissingRequiredFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Item", missing.Entity)
	assert.Equal(t, "weight_brutto", missing.Field)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestNewUnknownField(t *testing.T) {
	_, err := New(testItem, Fields{
		"ware_key":      String("k"),
		"cost":          Int(1),
		"weight_brutto": Int(2),
		"zeta":          String("z"),
		"link":          String("l"),
	})
	require.Error(t, err)

	var unknown *UnknownFieldError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "link", unknown.Field)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestNewExplicitNullIsPresent(t *testing.T) {
	e, err := New(testAddress, Fields{"street": Null()})
	require.NoError(t, err)

	v, ok := e.Get("street")
	assert.True(t, ok)
	assert.True(t, v.IsNull())

	_, ok = e.Get("pvz_code")
	assert.False(t, ok, "not supplied field must be not set")
}

func TestBuildNestedList(t *testing.T) {
	item1 := mustNew(testItem, Fields{
		"comment":       String("first"),
		"weight_brutto": Int(600),
		"cost":          Float(7500),
		"ware_key":      String("a1"),
	})
	item2 := mustNew(testItem, Fields{
		"ware_key":      String("a2"),
		"cost":          Float(250.5),
		"weight_brutto": Int(100),
	})
	pkg := mustNew(testPackage, Fields{
		"number": String("p1"),
		"item":   Entities(item1, item2),
		"size_a": Null(),
	})

	el := Build(pkg, "Package", nil)
	assert.Equal(t, "Package", el.Tag)
	assert.Equal(t, []Attr{{"Number", "p1"}}, el.Attrs)
	require.Len(t, el.Children, 2)

	assert.Equal(t, "Item", el.Children[0].Tag)
	assert.Equal(t, []Attr{
		{"WareKey", "a1"},
		{"Cost", "7500"},
		{"WeightBrutto", "600"},
		{"Comment", "first"},
	}, el.Children[0].Attrs)
	assert.Equal(t, []Attr{
		{"WareKey", "a2"},
		{"Cost", "250.5"},
		{"WeightBrutto", "100"},
	}, el.Children[1].Attrs)
}

func TestBuildNestedEntityAndScalarList(t *testing.T) {
	addr := mustNew(testAddress, Fields{"street": String("Lenina"), "pvz_code": Null()})
	order := mustNew(testOrder, Fields{
		"number":      String("A1"),
		"address":     Of(addr),
		"add_service": List(Int(30), Int(36)),
	})

	parent := NewElement("DeliveryRequest", nil)
	el := Build(order, "Order", parent)

	require.Len(t, parent.Children, 1)
	assert.Same(t, el, parent.Children[0])
	v, ok := el.Attr("AddService")
	assert.True(t, ok)
	assert.Equal(t, "36", v, "last scalar of a list wins")

	a := el.Find("Address")
	require.NotNil(t, a)
	assert.Equal(t, []Attr{{"Street", "Lenina"}}, a.Attrs)
	_, ok = a.Attr("PvzCode")
	assert.False(t, ok)
}

func TestEncode(t *testing.T) {
	item := mustNew(testItem, Fields{
		"ware_key":      String("k1"),
		"cost":          Int(10),
		"weight_brutto": Int(5),
		"comment":       String(`ООО "Магазин" 'Лучший'`),
	})
	out, err := Marshal(Build(item, "Item", nil))
	require.NoError(t, err)

	want := "<?xml version='1.0' encoding='UTF-8'?>\n" +
		`<Item WareKey="k1" Cost="10" WeightBrutto="5" Comment="ООО &#34;Магазин&#34; &#39;Лучший&#39;"></Item>`
	assert.Equal(t, want, string(out))

	body := strings.SplitN(string(out), "\n", 2)[1]
	assert.NotContains(t, body, "'")
}

func TestDecodeRoundTrip(t *testing.T) {
	root := NewElement("response", nil)
	o := NewElement("Order", root)
	o.SetAttr("Number", "A1")
	o.SetAttr("DispatchNumber", "100500")
	st := NewElement("Status", o)
	st.SetAttr("Code", "4")
	st.Text = "delivered"

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, root))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestDecodeCharset(t *testing.T) {
	// "Москва" in windows-1251
	doc := []byte("<?xml version=\"1.0\" encoding=\"windows-1251\"?><response><Order CityName=\"\xcc\xee\xf1\xea\xe2\xe0\"/></response>")
	el, err := Decode(bytes.NewReader(doc))
	require.NoError(t, err)

	orders := el.FindAll("Order")
	require.Len(t, orders, 1)
	city, ok := orders[0].Attr("CityName")
	assert.True(t, ok)
	assert.Equal(t, "Москва", city)
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		`<response><Order Number="1"></response>`,
		`<response><Order Number="1">`,
		`not xml at all`,
		``,
	}
	for _, doc := range cases {
		_, err := Decode(strings.NewReader(doc))
		assert.Error(t, err, "document %q", doc)
	}
}

func TestValueConstructors(t *testing.T) {
	ts := time.Date(2016, 3, 14, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "2016-03-14T09:05:07", Time(ts).Text())
	assert.Equal(t, "2016-03-14", Date(ts).Text())
	assert.Equal(t, "09:05:07", Clock(ts).Text())
	assert.Equal(t, "true", Bool(true).Text())
	assert.Equal(t, KindNull, OptString("").Kind())
	assert.Equal(t, KindNull, OptInt(0).Kind())
	assert.Equal(t, KindNull, OptTime(time.Time{}, DateLayout).Kind())
	assert.Equal(t, KindNull, Of(nil).Kind())
	assert.Equal(t, "12", Int64(12).Text())
}
