package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "pitwall")
				So(manager.subsystem, ShouldEqual, "fantasy")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.runsTotal.WithLabelValues("success").Inc()

			Convey("Then metric names should carry the namespace, subsystem and prefix", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, mf := range families {
					if mf.GetName() == "test_namespace_test_subsystem_prefix_runs_total" {
						found = true
						So(mf.GetMetric()[0].GetLabel(), ShouldNotBeEmpty)
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording entrant outcomes", func() {
			before := testutil.ToFloat64(globalManager.entrantsTotal.WithLabelValues("retry"))
			RecordEntrantOutcome("retry")
			RecordEntrantOutcome("retry")

			Convey("Then the labelled counter should advance", func() {
				after := testutil.ToFloat64(globalManager.entrantsTotal.WithLabelValues("retry"))
				So(after-before, ShouldEqual, 2.0)
			})
		})

		Convey("When recording token events", func() {
			before := testutil.ToFloat64(globalManager.tokenEvents.WithLabelValues("hit"))
			RecordTokenEvent("hit")

			Convey("Then the hit counter should advance by one", func() {
				So(testutil.ToFloat64(globalManager.tokenEvents.WithLabelValues("hit"))-before, ShouldEqual, 1.0)
			})
		})

		Convey("When updating gauges", func() {
			UpdateQueueSize(7)
			UpdateQueueCapacity(12)
			AddRunsInFlight(1)
			AddRunsInFlight(-1)

			Convey("Then they should hold the last value", func() {
				So(testutil.ToFloat64(globalManager.queueSize), ShouldEqual, 7.0)
				So(testutil.ToFloat64(globalManager.queueCapacity), ShouldEqual, 12.0)
				So(testutil.ToFloat64(globalManager.runsInFlight), ShouldEqual, 0.0)
			})
		})

		Convey("When recording the remaining series", func() {
			So(func() {
				RecordAPIRequest("league", "200", 12)
				RecordAPINotModified()
				RecordRun("success", 3*time.Second)
				RecordRetrySweep()
				UpdateLastSuccess("rlm", time.Now())
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				RecordWorkerProcessingLatency(4)
				RecordWorkerPacingWait(1000)
				RecordWorkerError()
				RecordSnapshotWrite("summary")
				RecordSnapshotError()
				RecordHTTPRequest("standings", "GET", "200")
				RecordHTTPRequestDuration("standings", "GET", "200", 1)
				RecordErrorByComponent("fetcher", "transient")
				RecordErrorByEndpoint("update", "POST", "conflict")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.5)
			}, ShouldNotPanic)
		})

		Convey("When gathering the custom registry", func() {
			families, err := GetRegistry().Gather()

			Convey("Then only pitwall series should be exposed", func() {
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
				for _, mf := range families {
					So(strings.HasPrefix(mf.GetName(), "pitwall_fantasy_"), ShouldBeTrue)
				}
			})
		})
	})
}
