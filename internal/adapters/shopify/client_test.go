package shopify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vintry/tastingd/internal/adapters/shopify"

	"github.com/smartystreets/goconvey/convey"
)

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// fakeAdmin is an httptest-backed Admin API that answers with canned JSON
// and records what it was asked.
type fakeAdmin struct {
	srv      *httptest.Server
	lastReq  graphqlRequest
	lastAuth string
	status   int
	response string
}

func newFakeAdmin() *fakeAdmin {
	f := &fakeAdmin{status: http.StatusOK, response: `{"data":{}}`}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("X-Shopify-Access-Token")
		_ = json.NewDecoder(r.Body).Decode(&f.lastReq)
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.response))
	}))
	return f
}

func (f *fakeAdmin) client() *shopify.Client {
	return shopify.New("test-shop.myshopify.com", "2024-04", "tok_secret", shopify.WithEndpoint(f.srv.URL))
}

func TestTastingField(t *testing.T) {
	convey.Convey("Given a client against a fake Admin API", t, func() {
		ctx := context.Background()
		fake := newFakeAdmin()
		defer fake.srv.Close()
		c := fake.client()

		convey.Convey("When the metafield exists", func() {
			fake.response = `{"data":{"customer":{"metafield":{"value":"{\"events\":[]}"}}}}`
			value, ok, err := c.TastingField(ctx, "6543210")

			convey.Convey("Then its raw value is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(value, convey.ShouldEqual, `{"events":[]}`)
			})

			convey.Convey("And the request carries the access token and customer gid", func() {
				convey.So(fake.lastAuth, convey.ShouldEqual, "tok_secret")
				convey.So(fake.lastReq.Variables["id"], convey.ShouldEqual, "gid://shopify/Customer/6543210")
				convey.So(fake.lastReq.Variables["namespace"], convey.ShouldEqual, "tastings")
				convey.So(fake.lastReq.Variables["key"], convey.ShouldEqual, "journal")
			})
		})

		convey.Convey("When the metafield is absent, the sentinel is returned without error", func() {
			fake.response = `{"data":{"customer":{"metafield":null}}}`
			_, ok, err := c.TastingField(ctx, "6543210")
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When the customer is unknown, the sentinel is returned without error", func() {
			fake.response = `{"data":{"customer":null}}`
			_, ok, err := c.TastingField(ctx, "6543210")
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When the response reports errors, the call fails with ErrRemote", func() {
			fake.response = `{"errors":[{"message":"access denied"},{"message":"throttled"}]}`
			_, _, err := c.TastingField(ctx, "6543210")
			convey.So(errors.Is(err, shopify.ErrRemote), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "access denied; throttled")
		})

		convey.Convey("When the response is a non-2xx status, the call fails with ErrRemote", func() {
			fake.status = http.StatusBadGateway
			_, _, err := c.TastingField(ctx, "6543210")
			convey.So(errors.Is(err, shopify.ErrRemote), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "status 502")
		})
	})
}

func TestCustomerEmail(t *testing.T) {
	convey.Convey("Given a client against a fake Admin API", t, func() {
		ctx := context.Background()
		fake := newFakeAdmin()
		defer fake.srv.Close()
		c := fake.client()

		convey.Convey("The on-file email is returned", func() {
			fake.response = `{"data":{"customer":{"email":"taster@example.com"}}}`
			email, err := c.CustomerEmail(ctx, "42")
			convey.So(err, convey.ShouldBeNil)
			convey.So(email, convey.ShouldEqual, "taster@example.com")
		})

		convey.Convey("An unknown customer resolves to the empty email", func() {
			fake.response = `{"data":{"customer":null}}`
			email, err := c.CustomerEmail(ctx, "42")
			convey.So(err, convey.ShouldBeNil)
			convey.So(email, convey.ShouldBeEmpty)
		})
	})
}

func TestSetTastingField(t *testing.T) {
	convey.Convey("Given a client against a fake Admin API", t, func() {
		ctx := context.Background()
		fake := newFakeAdmin()
		defer fake.srv.Close()
		c := fake.client()

		convey.Convey("When the upsert succeeds", func() {
			fake.response = `{"data":{"metafieldsSet":{"metafields":[{"id":"gid://shopify/Metafield/1"}],"userErrors":[]}}}`
			err := c.SetTastingField(ctx, "6543210", []byte(`{"events":[]}`))

			convey.Convey("Then no error is returned", func() {
				convey.So(err, convey.ShouldBeNil)
			})

			convey.Convey("And the mutation input declares the json metafield", func() {
				raw, _ := json.Marshal(fake.lastReq.Variables["metafields"])
				convey.So(string(raw), convey.ShouldContainSubstring, `"namespace":"tastings"`)
				convey.So(string(raw), convey.ShouldContainSubstring, `"key":"journal"`)
				convey.So(string(raw), convey.ShouldContainSubstring, `"type":"json"`)
				convey.So(string(raw), convey.ShouldContainSubstring, `"ownerId":"gid://shopify/Customer/6543210"`)
				convey.So(strings.Contains(string(raw), `{\"events\":[]}`), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the upsert reports user errors, their messages are concatenated", func() {
			fake.response = `{"data":{"metafieldsSet":{"metafields":[],"userErrors":[{"field":["value"],"message":"Value is invalid JSON"},{"field":["key"],"message":"Key is reserved"}]}}}`
			err := c.SetTastingField(ctx, "6543210", []byte(`{`))
			convey.So(errors.Is(err, shopify.ErrRemote), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "Value is invalid JSON; Key is reserved")
		})
	})
}
