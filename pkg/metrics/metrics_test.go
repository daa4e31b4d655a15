package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording through the package helpers", func() {
			recorders := []func(){
				RecordDrawGenerated,
				RecordDrawFailure,
				func() { RecordMatchupsScheduled(6) },
				func() { RecordPlayersWaitlisted(2) },
				func() { RecordDrawDuration(12.5) },
				RecordRatingRun,
				RecordRatingFailure,
				func() { RecordPlayersRated(8) },
				func() { RecordRatingDuration(3.2) },
				RecordDuplicateBatch,
				RecordNotificationSent,
				RecordNotificationError,
				RecordNotificationDropped,
				func() { UpdateNotifyQueueSize(4) },
				func() { RecordNotifySendDuration(20) },
				func() { UpdateEventsTracked(3) },
				func() { UpdatePlayersTracked(12) },
				func() { RecordHTTPRequest("events", "POST", "201") },
				func() { RecordHTTPRequestDuration("events", "POST", 5) },
			}

			Convey("Then none of them should panic", func() {
				for _, record := range recorders {
					So(record, ShouldNotPanic)
				}
			})
		})

		Convey("When fetching the registry", func() {
			Convey("Then it should expose the registered collectors", func() {
				registry := GetRegistry()
				So(registry, ShouldNotBeNil)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
