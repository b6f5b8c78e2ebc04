package rest_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/maritime-backoffice/internal/transport/rest"
)

var _ = Describe("HealthHandler", func() {
	var (
		mock    sqlmock.Sqlmock
		handler *rest.HealthHandler
	)

	BeforeEach(func() {
		db, m, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		Expect(err).NotTo(HaveOccurred())
		mock = m
		DeferCleanup(func() {
			mock.ExpectClose()
			Expect(db.Close()).To(Succeed())
			Expect(mock.ExpectationsWereMet()).To(Succeed())
		})
		handler = rest.NewHealthHandler(sqlx.NewDb(db, "pgx"))
	})

	check := func() (*httptest.ResponseRecorder, rest.HealthResponse) {
		rec := httptest.NewRecorder()
		handler.Check(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		var body rest.HealthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return rec, body
	}

	It("reports healthy when postgres answers", func() {
		mock.ExpectPing()

		rec, body := check()
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(body.Status).To(Equal(rest.HealthHealthy))
		Expect(body.Components).To(HaveKey("postgres"))
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	It("reports unhealthy when the ping fails", func() {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		rec, body := check()
		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(body.Status).To(Equal(rest.HealthUnhealthy))
		Expect(body.Components["postgres"].Message).To(ContainSubstring("connection refused"))
	})

	It("answers ping without touching the database", func() {
		rec := httptest.NewRecorder()
		handler.Ping(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})
})
