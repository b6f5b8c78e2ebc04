package records_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/maritime-backoffice/internal"
	recordsDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/records"
	"github.com/frahmantamala/maritime-backoffice/internal/core/testutil"
	"github.com/frahmantamala/maritime-backoffice/internal/docnumber"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/records"
)

var _ = Describe("Records", func() {
	var (
		ctx      context.Context
		stores   *records.Stores
		handlers *records.Handlers
		router   chi.Router
		sess     identity.SessionContext
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, err := testutil.OpenDB()
		Expect(err).NotTo(HaveOccurred())
		stores = records.NewStores(db)
		handlers = records.NewHandlers(stores)
		sess = identity.SessionContext{UserID: 7, Username: "jdavis", RoleClass: identity.ClassUser}

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(identity.WithSession(r.Context(), sess)))
			})
		})
		router.Get("/purchase-orders", handlers.PurchaseOrders.List)
		router.Post("/purchase-orders", handlers.PurchaseOrders.Create)
		router.Post("/vessels", handlers.Vessels.Create)
		router.Put("/vessels/{id}", handlers.Vessels.Update)
		router.Delete("/vessels/{id}", handlers.Vessels.Delete)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	Describe("purchase orders", func() {
		It("numbers the order and stamps its creator", func() {
			rec := do(http.MethodPost, "/purchase-orders", `{"quantity":3,"item_description":"Hydraulic hose","order_number":"99999999","created_by":"someone"}`)
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var po recordsDatamodel.PurchaseOrder
			Expect(json.Unmarshal(rec.Body.Bytes(), &po)).To(Succeed())
			Expect(po.OrderNumber).To(Equal(docnumber.Prefix(time.Now()) + "0001"))
			Expect(po.CreatedBy).To(Equal("jdavis"))
		})

		It("pages the list 25 at a time", func() {
			for i := 0; i < 30; i++ {
				Expect(stores.PurchaseOrders.Create(ctx, &recordsDatamodel.PurchaseOrder{Quantity: i})).To(Succeed())
			}

			rec := do(http.MethodGet, "/purchase-orders?page=2", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var listing records.Listing[recordsDatamodel.PurchaseOrder]
			Expect(json.Unmarshal(rec.Body.Bytes(), &listing)).To(Succeed())
			Expect(listing.Total).To(Equal(int64(30)))
			Expect(listing.Page).To(Equal(2))
			Expect(listing.PageSize).To(Equal(records.PurchaseOrderPageSize))
			Expect(listing.Items).To(HaveLen(5))
		})

		It("keeps the order number on update", func() {
			po := &recordsDatamodel.PurchaseOrder{Quantity: 1, CreatedBy: "jdavis"}
			Expect(stores.PurchaseOrders.Create(ctx, po)).To(Succeed())

			updated, err := stores.PurchaseOrders.Update(ctx, po.ID, &recordsDatamodel.PurchaseOrder{Quantity: 4, Notes: "rush"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Quantity).To(Equal(4))
			Expect(updated.OrderNumber).To(Equal(po.OrderNumber))
			Expect(updated.CreatedBy).To(Equal("jdavis"))
		})
	})

	Describe("vessels", func() {
		It("validates and sanitizes input", func() {
			rec := do(http.MethodPost, "/vessels", `{"vessel_name":""}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			rec = do(http.MethodPost, "/vessels", `{"vessel_name":"<i>Sea Otter</i>","imo_number":"IMO9321483"}`)
			Expect(rec.Code).To(Equal(http.StatusCreated))
			var v recordsDatamodel.Vessel
			Expect(json.Unmarshal(rec.Body.Bytes(), &v)).To(Succeed())
			Expect(v.VesselName).To(Equal("Sea Otter"))
		})

		It("rejects a duplicate IMO number", func() {
			Expect(do(http.MethodPost, "/vessels", `{"vessel_name":"A","imo_number":"IMO1"}`).Code).To(Equal(http.StatusCreated))
			Expect(do(http.MethodPost, "/vessels", `{"vessel_name":"B","imo_number":"IMO1"}`).Code).To(Equal(http.StatusConflict))
		})

		It("reports missing rows on update and delete", func() {
			Expect(do(http.MethodPut, "/vessels/42", `{"vessel_name":"Ghost"}`).Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodDelete, "/vessels/42", "").Code).To(Equal(http.StatusNotFound))

			_, err := stores.Vessels.Get(ctx, 42)
			Expect(errors.Is(err, internal.ErrRecordNotFound)).To(BeTrue())
		})
	})
})
