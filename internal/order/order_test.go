package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, body string) (*OrderRequest, ValidationErrors) {
	t.Helper()
	return ParseRequest(strings.NewReader(body))
}

const validBody = `{
	"customer_name": "Juan Pérez",
	"customer_email": "juan@example.com",
	"customer_address": "Calle 123",
	"items": [{"name": "X", "price": 10.00, "quantity": 2}]
}`

func TestParseRequestValid(t *testing.T) {
	req, errs := parse(t, validBody)
	require.Nil(t, errs)
	require.NotNil(t, req)

	assert.Equal(t, "Juan Pérez", req.CustomerName)
	assert.Equal(t, "juan@example.com", req.CustomerEmail)
	assert.Equal(t, "Calle 123", req.CustomerAddress)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "X", req.Items[0].Name)
	assert.Equal(t, "10", req.Items[0].Price.String())
	assert.Equal(t, 2, req.Items[0].Quantity)
}

func TestParseRequestOptionalURLs(t *testing.T) {
	req, errs := parse(t, `{
		"customer_name": "Juan",
		"customer_email": "juan@example.com",
		"customer_address": "Calle 123",
		"items": [{"name": "X", "price": 1, "quantity": 1}],
		"success_url": "https://shop.example.com/ok",
		"return_url": "https://shop.example.com/back"
	}`)
	require.Nil(t, errs)
	assert.Equal(t, "https://shop.example.com/ok", req.SuccessURL)
	assert.Equal(t, "https://shop.example.com/back", req.ReturnURL)
}

func TestParseRequestEmptyBody(t *testing.T) {
	for _, body := range []string{"", "null", "not json", "[1,2]"} {
		req, errs := parse(t, body)
		assert.Nil(t, req, "body %q", body)
		require.Len(t, errs, 1, "body %q", body)
		assert.Equal(t, "body", errs[0].Field)
	}
}

func TestParseRequestMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"name", `{"customer_email":"a@b.co","customer_address":"x","items":[{"name":"X","price":1,"quantity":1}]}`, "customer_name"},
		{"email", `{"customer_name":"A","customer_address":"x","items":[{"name":"X","price":1,"quantity":1}]}`, "customer_email"},
		{"address", `{"customer_name":"A","customer_email":"a@b.co","items":[{"name":"X","price":1,"quantity":1}]}`, "customer_address"},
		{"items", `{"customer_name":"A","customer_email":"a@b.co","customer_address":"x"}`, "items"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, errs := parse(t, tc.body)
			assert.Nil(t, req)
			require.Len(t, errs, 1)
			assert.Equal(t, tc.want, errs[0].Field)
		})
	}
}

func TestParseRequestCollectsAllErrors(t *testing.T) {
	_, errs := parse(t, `{"customer_email":"bad-email","items":[]}`)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	// missing name and address, malformed email, and empty items all
	// reported in one response
	assert.Contains(t, fields, "customer_name")
	assert.Contains(t, fields, "customer_address")
	assert.Contains(t, fields, "customer_email")
	assert.Contains(t, fields, "items")
	assert.Len(t, errs, 4)
}

func TestParseRequestEmptyItems(t *testing.T) {
	_, errs := parse(t, `{"customer_name":"A","customer_email":"a@b.co","customer_address":"x","items":[]}`)
	require.Len(t, errs, 1)
	assert.Equal(t, "items must be a non-empty list", errs[0].Message)
}

func TestParseRequestBadItems(t *testing.T) {
	cases := []struct {
		name string
		item string
		want string
	}{
		{"zero price", `{"name":"X","price":0,"quantity":1}`, "item 2 must have a price greater than zero"},
		{"negative price", `{"name":"X","price":-1,"quantity":1}`, "item 2 must have a price greater than zero"},
		{"zero quantity", `{"name":"X","price":1,"quantity":0}`, "item 2 must have a quantity greater than zero"},
		{"negative quantity", `{"name":"X","price":1,"quantity":-2}`, "item 2 must have a quantity greater than zero"},
		{"fractional quantity", `{"name":"X","price":1,"quantity":1.5}`, "item 2 must have a quantity greater than zero"},
		{"non-numeric price", `{"name":"X","price":"abc","quantity":1}`, "item 2 must have a price greater than zero"},
		{"missing fields", `{"name":"X"}`, "item 2 is missing fields: price, quantity"},
		{"not an object", `7`, "item 2 must be an object"},
		{"blank name", `{"name":" ","price":1,"quantity":1}`, "item 2 must have a name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := `{"customer_name":"A","customer_email":"a@b.co","customer_address":"x",
				"items":[{"name":"OK","price":1,"quantity":1},` + tc.item + `]}`
			_, errs := parse(t, body)
			require.NotEmpty(t, errs)
			msgs := errs.Messages()
			assert.Contains(t, msgs, tc.want)
		})
	}
}

func TestParseRequestStringNumbers(t *testing.T) {
	req, errs := parse(t, `{"customer_name":"A","customer_email":"a@b.co","customer_address":"x",
		"items":[{"name":"X","price":"10.50","quantity":"3"}]}`)
	require.Nil(t, errs)
	assert.Equal(t, "10.5", req.Items[0].Price.String())
	assert.Equal(t, 3, req.Items[0].Quantity)
}

func TestParseRequestEmail(t *testing.T) {
	good := []string{"a@b.co", "juan.perez+tag@sub.example.com", "A_b%9@ex-ample.org"}
	bad := []string{"not-an-email", "a@b", "a@b.c", "@example.com", "a b@example.com"}

	template := func(email string) string {
		return `{"customer_name":"A","customer_email":"` + email + `","customer_address":"x",
			"items":[{"name":"X","price":1,"quantity":1}]}`
	}
	for _, e := range good {
		_, errs := parse(t, template(e))
		assert.Nil(t, errs, "email %q", e)
	}
	for _, e := range bad {
		_, errs := parse(t, template(e))
		require.NotEmpty(t, errs, "email %q", e)
		assert.Equal(t, "customer_email", errs[0].Field, "email %q", e)
	}
}
