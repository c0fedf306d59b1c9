package smoke_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vintry/tastingd/internal/domain/trust"
	"github.com/vintry/tastingd/internal/smoke"
	"github.com/vintry/tastingd/pkg/logger"

	"github.com/smartystreets/goconvey/convey"
)

const runSecret = "s3cret"

func TestRun(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	convey.Convey("Given a server that records submissions", t, func() {
		var handles []string
		var signedOK []bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			var req struct {
				EventHandle string `json:"event_handle"`
			}
			_ = json.Unmarshal(body, &req)
			handles = append(handles, req.EventHandle)
			signedOK = append(signedOK, r.Header.Get(trust.SignatureHeader) == trust.Signature(runSecret, body))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		convey.Convey("When running without an explicit event handle", func() {
			err := smoke.Run(context.Background(), &smoke.Config{
				BaseURL:    srv.URL,
				Secret:     runSecret,
				CustomerID: "42",
				Count:      4,
				Timeout:    5 * time.Second,
			})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then every submission of the run shares one handle", func() {
				convey.So(handles, convey.ShouldHaveLength, 4)
				convey.So(handles[0], convey.ShouldNotBeEmpty)
				for _, h := range handles[1:] {
					convey.So(h, convey.ShouldEqual, handles[0])
				}
			})

			convey.Convey("And every body is signed with the run secret", func() {
				for _, ok := range signedOK {
					convey.So(ok, convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When an explicit handle is configured it is used as-is", func() {
			err := smoke.Run(context.Background(), &smoke.Config{
				BaseURL:     srv.URL,
				Secret:      runSecret,
				CustomerID:  "42",
				EventHandle: "cellar-night",
				Count:       2,
				Timeout:     5 * time.Second,
			})
			convey.So(err, convey.ShouldBeNil)
			for _, h := range handles {
				convey.So(h, convey.ShouldEqual, "cellar-night")
			}
		})
	})

	convey.Convey("Given a server that rejects submissions", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"ok":false,"error":"unauthorized"}`))
		}))
		defer srv.Close()

		convey.Convey("The run reports the failures as an error", func() {
			err := smoke.Run(context.Background(), &smoke.Config{
				BaseURL:    srv.URL,
				Secret:     runSecret,
				CustomerID: "42",
				Count:      3,
				Timeout:    5 * time.Second,
			})
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "3 of 3")
		})
	})
}
