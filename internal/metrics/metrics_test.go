package metrics_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/frahmantamala/maritime-backoffice/internal/core/events"
	"github.com/frahmantamala/maritime-backoffice/internal/metrics"
)

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.New(nil)
	})

	It("labels requests by route pattern and status", func() {
		r := chi.NewRouter()
		r.Use(m.Middleware)
		r.Get("/jobs/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		for _, id := range []string{"1", "2"} {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/jobs/"+id, nil))
		}

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(rec.Body.String()).To(ContainSubstring(`maritime_http_requests_total{method="GET",route="/jobs/{id}",status="404"} 2`))
	})

	It("counts events seen on the bus", func() {
		bus := events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
		m.Subscribe(bus)

		ctx := context.Background()
		Expect(bus.PublishSync(ctx, events.NewRoleUpdatedEvent(1, "User", 3))).To(Succeed())
		Expect(bus.PublishSync(ctx, events.NewUserDeletedEvent(4, "deckhand"))).To(Succeed())

		n, err := testutil.GatherAndCount(m.Registry(), "maritime_events_published_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(rec.Body.String()).To(ContainSubstring("maritime_directory_role_sync_users_total 3"))
	})
})
