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
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with an isolated registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "gridboss")
				So(manager.subsystem, ShouldEqual, "analytics")
			})

			Convey("And its metrics should be gathered from that registry", func() {
				manager.datasetRowsLoaded.Set(42)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["gridboss_analytics_dataset_rows_loaded"], ShouldBeTrue)
			})
		})

		Convey("When creating with custom namespace and subsystem", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("custom"),
				WithSubsystem("pipeline"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the overrides apply", func() {
				So(manager.namespace, ShouldEqual, "custom")
				So(manager.subsystem, ShouldEqual, "pipeline")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording through the package helpers", func() {
			Convey("Then none of them panic", func() {
				So(func() {
					UpdateDatasetRows(100)
					UpdateDatasetSkipped(3)
					RecordDatasetLoadDuration(12.5)
					RecordDatasetReload()
					RecordSnapshotRebuild(4.2, 1700000000)
					UpdateTableRows("drivers", 50)
					UpdateCandidatesScored(12)
					RecordHTTPRequest("ranking", "GET", "200")
					RecordHTTPRequestDuration("ranking", "GET", "200", 1.5)
					RecordErrorByEndpoint("ranking", "GET", "client_error")
					RecordErrorByType("client_error", "medium")
					RecordErrorLatency("http", "client_error", 0.8)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(8)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("When reading the registry", func() {
			Convey("Then the custom registry is exposed", func() {
				So(GetRegistry(), ShouldNotBeNil)
				So(GetRegistry(), ShouldEqual, customRegistry)
			})
		})
	})
}
