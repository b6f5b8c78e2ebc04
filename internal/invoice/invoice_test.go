package invoice_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/core/testutil"
	"github.com/frahmantamala/maritime-backoffice/internal/invoice"
	"github.com/frahmantamala/maritime-backoffice/internal/timebook"
)

type fakeSource struct {
	job       *invoice.JobInfo
	entries   []timebook.Entry
	customers map[int64]*invoice.CustomerInfo
	entryErr  error
}

func (f *fakeSource) Job(_ context.Context, id int64) (*invoice.JobInfo, error) {
	if f.job == nil || f.job.ID != id {
		return nil, internal.ErrJobNotFound
	}
	return f.job, nil
}

func (f *fakeSource) EntriesForJob(context.Context, string) ([]timebook.Entry, error) {
	return f.entries, f.entryErr
}

func (f *fakeSource) Customer(_ context.Context, id int64) (*invoice.CustomerInfo, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, internal.ErrRecordNotFound
	}
	return c, nil
}

var _ = Describe("Labor", func() {
	It("wraps overnight shifts", func() {
		Expect(invoice.DurationHours("22:00", "02:00")).To(Equal(4.0))
		Expect(invoice.DurationHours("07:00", "15:30")).To(Equal(8.5))
		Expect(invoice.DurationHours("-", "15:30")).To(BeZero())
	})

	It("totals billable hours at the regular rate", func() {
		entries := []timebook.Entry{
			{StartTime: "22:00", StopTime: "02:00", Billable: true, PayRateRT: 10},
			{StartTime: "08:00", StopTime: "12:00", Billable: false, PayRateRT: 85},
		}

		Expect(invoice.ComputeLaborTotal(entries)).To(Equal(40.0))
	})

	It("numbers invoices by issue date and job", func() {
		issued := time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)

		Expect(invoice.Number(issued, "11250001")).To(Equal("INV-20251121-11250001"))
		Expect(invoice.Filename(issued, "11250001", "html")).To(Equal("Invoice_11250001_20251121.html"))
	})
})

var _ = Describe("HTMLRenderer", func() {
	It("formats money with grouping", func() {
		r, err := invoice.NewHTMLRenderer("")
		Expect(err).NotTo(HaveOccurred())

		Expect(r.Money(1234.5)).To(Equal("$1,234.50"))
		Expect(r.Money(0)).To(Equal("$0.00"))
	})
})

var _ = Describe("Service.Generate", func() {
	var (
		source  *fakeSource
		service *invoice.Service
		issued  time.Time
	)

	BeforeEach(func() {
		customerID := int64(7)
		source = &fakeSource{
			job: &invoice.JobInfo{ID: 1, JobNumber: "11250001", RequestedService: "Annual engine overhaul", CustomerID: &customerID},
			entries: []timebook.Entry{
				{Employee: "John Davis", Date: time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC), StartTime: "07:00", StopTime: "15:00", Billable: true, PayRateRT: 85},
				{Employee: "Mike Torres", Date: time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC), StartTime: "20:00", StopTime: "04:00", Billable: true, PayRateRT: 75},
			},
			customers: map[int64]*invoice.CustomerInfo{
				7: {ID: 7, Name: "Gulf Marine Services", Address: "12 Harbor Rd"},
			},
		}
		renderer, err := invoice.NewHTMLRenderer("")
		Expect(err).NotTo(HaveOccurred())

		issued = time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)
		service = invoice.NewService(source, renderer, testutil.Logger()).
			WithClock(func() time.Time { return issued })
	})

	It("renders the invoice with totals and the job's customer", func() {
		file, err := service.Generate(context.Background(), invoice.GenerateRequest{JobID: 1, InvoiceDate: "2025-11-20"})

		Expect(err).NotTo(HaveOccurred())
		Expect(file.Name).To(Equal("Invoice_11250001_20251121.html"))
		Expect(file.Document.LaborTotal).To(Equal(1280.0))
		Expect(file.Document.Total).To(Equal(1280.0))

		html := string(file.Content)
		Expect(html).To(ContainSubstring("INV-20251121-11250001"))
		Expect(html).To(ContainSubstring("November 20, 2025"))
		Expect(html).To(ContainSubstring("Gulf Marine Services"))
		Expect(html).To(ContainSubstring("$1,280.00"))
	})

	It("reports a missing job", func() {
		_, err := service.Generate(context.Background(), invoice.GenerateRequest{JobID: 99})
		Expect(err).To(MatchError(internal.ErrJobNotFound))
	})

	It("passes store failures through", func() {
		source.entryErr = errors.New("connection reset")

		_, err := service.Generate(context.Background(), invoice.GenerateRequest{JobID: 1})
		Expect(err).To(MatchError(ContainSubstring("connection reset")))
	})

	It("validates the invoice date", func() {
		_, err := service.Generate(context.Background(), invoice.GenerateRequest{JobID: 1, InvoiceDate: "20/11/2025"})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
	})
})
