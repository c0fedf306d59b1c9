package trust_test

import (
	"errors"
	"testing"

	"github.com/vintry/tastingd/internal/domain/trust"

	"github.com/smartystreets/goconvey/convey"
)

func TestProxyVerifier(t *testing.T) {
	convey.Convey("Given a proxy verifier with a shared secret", t, func() {
		v := trust.NewProxyVerifier("shhh")
		body := []byte(`{"event_handle":"spring-2024","product":{"product_id":101}}`)
		sig := trust.Signature("shhh", body)

		convey.Convey("A correctly signed body with a customer id passes", func() {
			convey.So(v.Verify(body, sig, "6543210"), convey.ShouldBeNil)
		})

		convey.Convey("The same signature over a one-byte-modified body fails", func() {
			tampered := append([]byte{}, body...)
			tampered[0] = '['
			err := v.Verify(tampered, sig, "6543210")
			convey.So(errors.Is(err, trust.ErrUnauthorized), convey.ShouldBeTrue)
		})

		convey.Convey("A signature made with the wrong secret fails", func() {
			err := v.Verify(body, trust.Signature("wrong", body), "6543210")
			convey.So(errors.Is(err, trust.ErrUnauthorized), convey.ShouldBeTrue)
		})

		convey.Convey("An empty signature fails", func() {
			err := v.Verify(body, "", "6543210")
			convey.So(errors.Is(err, trust.ErrUnauthorized), convey.ShouldBeTrue)
		})

		convey.Convey("A valid signature without a logged-in customer is a distinct failure", func() {
			err := v.Verify(body, sig, "")
			convey.So(errors.Is(err, trust.ErrNotLoggedIn), convey.ShouldBeTrue)
			convey.So(errors.Is(err, trust.ErrUnauthorized), convey.ShouldBeFalse)

			convey.Convey("Whitespace-only customer ids count as missing", func() {
				convey.So(errors.Is(v.Verify(body, sig, "   "), trust.ErrNotLoggedIn), convey.ShouldBeTrue)
			})
		})
	})
}
