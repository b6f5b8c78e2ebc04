package job_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/core/testutil"
	"github.com/frahmantamala/maritime-backoffice/internal/docnumber"
	"github.com/frahmantamala/maritime-backoffice/internal/job"
	"github.com/frahmantamala/maritime-backoffice/internal/job/postgres"
)

var _ = Describe("Service", func() {
	var (
		ctx     context.Context
		service *job.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, err := testutil.OpenDB()
		Expect(err).NotTo(HaveOccurred())
		service = job.NewService(postgres.NewJobRepository(db), testutil.Logger())
	})

	It("numbers jobs sequentially within the month", func() {
		prefix := docnumber.Prefix(time.Now())

		first, err := service.Create(ctx, job.JobRequest{ScheduledDate: "2025-11-20", Location: "Pier 4"})
		Expect(err).NotTo(HaveOccurred())
		second, err := service.Create(ctx, job.JobRequest{ScheduledDate: "2025-11-21"})
		Expect(err).NotTo(HaveOccurred())

		Expect(first.JobNumber).To(Equal(prefix + "0001"))
		Expect(second.JobNumber).To(Equal(prefix + "0002"))

		numbers, err := service.JobNumbers(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(numbers).To(Equal([]string{first.JobNumber, second.JobNumber}))
	})

	It("lists the newest job first", func() {
		first, err := service.Create(ctx, job.JobRequest{ScheduledDate: "2025-11-20"})
		Expect(err).NotTo(HaveOccurred())
		second, err := service.Create(ctx, job.JobRequest{ScheduledDate: "2025-11-21"})
		Expect(err).NotTo(HaveOccurred())

		jobs, err := service.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(jobs).To(HaveLen(2))
		Expect(jobs[0].ID).To(Equal(second.ID))
		Expect(jobs[1].ID).To(Equal(first.ID))
	})

	It("requires a scheduled date", func() {
		_, err := service.Create(ctx, job.JobRequest{Location: "Pier 4"})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
	})

	It("updates, deletes and reports missing jobs", func() {
		j, err := service.Create(ctx, job.JobRequest{ScheduledDate: "2025-11-20"})
		Expect(err).NotTo(HaveOccurred())

		updated, err := service.Update(ctx, j.ID, job.JobRequest{ScheduledDate: "2025-11-22", Location: "Dry dock"})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Location).To(Equal("Dry dock"))
		Expect(updated.JobNumber).To(Equal(j.JobNumber))

		Expect(service.Delete(ctx, j.ID)).To(Succeed())
		_, err = service.Get(ctx, j.ID)
		Expect(errors.Is(err, internal.ErrJobNotFound)).To(BeTrue())
	})
})
