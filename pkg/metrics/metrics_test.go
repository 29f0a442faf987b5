package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a dedicated registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors should be registered under the namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.recomputes.WithLabelValues("x").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_computed_recomputes_total")
			})
		})

		Convey("When options receive empty values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "assetlens")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording client requests", func() {
			before := testutil.ToFloat64(globalManager.clientRequests.WithLabelValues("/asset/distribution", "ok"))
			RecordClientRequest("/asset/distribution", "ok", 12)

			Convey("Then the counter should increase by one", func() {
				after := testutil.ToFloat64(globalManager.clientRequests.WithLabelValues("/asset/distribution", "ok"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When recording reactive activity", func() {
			before := testutil.ToFloat64(globalManager.recomputes.WithLabelValues("chart_option"))
			RecordRecompute("chart_option")
			RecordStateChange("dark_mode")
			RecordChartRender("dark")

			Convey("Then recompute counter should increase", func() {
				So(testutil.ToFloat64(globalManager.recomputes.WithLabelValues("chart_option"))-before, ShouldEqual, 1)
			})
		})

		Convey("When updating gauges", func() {
			UpdateDistributionTotal("asset", 1234.5)
			UpdateSystemGoroutineCount(7)
			UpdateSystemMemoryUsage(1024)

			Convey("Then gauges should hold the last value", func() {
				So(testutil.ToFloat64(globalManager.distributionTotal.WithLabelValues("asset")), ShouldEqual, 1234.5)
				So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 7)
			})
		})

		Convey("When recording server requests", func() {
			So(func() {
				RecordHTTPRequest("distribution", "GET", "200")
				RecordHTTPRequestDuration("distribution", "GET", "200", 3)
				RecordErrorByEndpoint("distribution_detail", "GET", "not_found")
			}, ShouldNotPanic)
		})

		Convey("Then the registry should be exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
