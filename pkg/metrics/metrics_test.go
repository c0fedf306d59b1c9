package metrics_test

import (
	"testing"

	"github.com/vintry/tastingd/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	convey.Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("notes"),
			metrics.WithHistogramBuckets([]float64{1, 10, 100, 1000}),
			metrics.WithPrometheusRegistry(registry),
		)
		convey.So(m, convey.ShouldNotBeNil)

		convey.Convey("All collectors register without collision", func() {
			families, err := registry.Gather()
			convey.So(err, convey.ShouldBeNil)
			// Counters with no observations yet gather as empty families.
			convey.So(families, convey.ShouldNotBeNil)
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	convey.Convey("Given the global manager", t, func() {
		convey.Convey("Recording never panics and shows up in the registry", func() {
			convey.So(func() {
				metrics.RecordSubmissionAccepted()
				metrics.RecordStoreRecovered()
				metrics.RecordEventCreated()
				metrics.RecordEntryAppended()
				metrics.RecordEntryReplaced()
				metrics.RecordRemoteLatency("tasting_field", 12)
				metrics.RecordRemoteError("metafields_set")
				metrics.RecordHTTPRequest("proxy_notes", "POST", "200")
				metrics.RecordHTTPRequestDuration("proxy_notes", "POST", "200", 3)
				metrics.RecordErrorByEndpoint("direct_notes", "POST", "auth_error")
			}, convey.ShouldNotPanic)

			families, err := metrics.GetRegistry().Gather()
			convey.So(err, convey.ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			convey.So(names["tastingd_submissions_accepted_total"], convey.ShouldBeTrue)
			convey.So(names["tastingd_remote_request_duration_ms"], convey.ShouldBeTrue)
			convey.So(names["tastingd_http_requests_total"], convey.ShouldBeTrue)
		})
	})
}
