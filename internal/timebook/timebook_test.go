package timebook_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/timebook"
)

func day(s string) time.Time {
	t, err := time.Parse(timebook.DateLayout, s)
	Expect(err).NotTo(HaveOccurred())
	return t
}

func keys(week []time.Time) []string {
	out := make([]string, 0, len(week))
	for _, d := range week {
		out = append(out, d.Format(timebook.DateLayout))
	}
	return out
}

var _ = Describe("ParseClock", func() {
	It("canonicalises hour and minute", func() {
		c, err := timebook.ParseClock("7:05")
		Expect(err).NotTo(HaveOccurred())
		Expect(c.String()).To(Equal("07:05"))

		c, err = timebook.ParseClock("15:30:00")
		Expect(err).NotTo(HaveOccurred())
		Expect(c.String()).To(Equal("15:30"))
	})

	It("treats empty and dash as unset", func() {
		for _, in := range []string{"", "-", "  "} {
			c, err := timebook.ParseClock(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.IsSet()).To(BeFalse())
			Expect(c.Ptr()).To(BeNil())
		}
	})

	It("rejects anything else", func() {
		_, err := timebook.ParseClock("25:99")
		Expect(err).To(MatchError(internal.ErrInvalidTimeFormat))
	})
})

var _ = Describe("ComputeHours", func() {
	It("computes the difference in hours", func() {
		Expect(timebook.ComputeHours("07:00", "15:30")).To(Equal(8.5))
	})

	It("is zero when a time was not recorded", func() {
		Expect(timebook.ComputeHours("-", "15:00")).To(BeZero())
		Expect(timebook.ComputeHours("07:00", "")).To(BeZero())
	})

	It("is zero for unparsable input", func() {
		Expect(timebook.ComputeHours("bad", "10:00")).To(BeZero())
	})

	It("does not wrap past midnight", func() {
		Expect(timebook.ComputeHours("22:00", "02:00")).To(Equal(-20.0))
	})

	It("backs Entry.Hours", func() {
		e := timebook.Entry{StartTime: "08:00", StopTime: "12:15"}
		Expect(e.Hours()).To(Equal(4.25))
		Expect(timebook.Entry{}.Hours()).To(BeZero())
	})
})

var _ = Describe("ComputeWeekWindow", func() {
	It("starts on the Monday of the current week by default", func() {
		week := timebook.ComputeWeekWindow("", time.Date(2025, 11, 19, 15, 0, 0, 0, time.UTC))

		Expect(keys(week)).To(Equal([]string{
			"2025-11-17", "2025-11-18", "2025-11-19", "2025-11-20",
			"2025-11-21", "2025-11-22", "2025-11-23",
		}))
	})

	It("handles a Sunday as the end of the week", func() {
		week := timebook.ComputeWeekWindow("", time.Date(2025, 11, 23, 9, 0, 0, 0, time.UTC))
		Expect(week[0]).To(Equal(day("2025-11-17")))
	})

	It("uses a requested start date as day one", func() {
		week := timebook.ComputeWeekWindow("2025-11-20", time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC))

		Expect(week).To(HaveLen(7))
		Expect(week[0]).To(Equal(day("2025-11-20")))
		Expect(week[6]).To(Equal(day("2025-11-26")))
	})

	It("falls back to the current week for malformed input", func() {
		week := timebook.ComputeWeekWindow("19/11/2025", time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC))
		Expect(week[0]).To(Equal(day("2025-11-17")))
	})
})

var _ = Describe("BucketEntries", func() {
	It("keys every day and keeps input order", func() {
		week := timebook.ComputeWeekWindow("2025-11-17", time.Now())
		entries := []timebook.Entry{
			{ID: 1, Date: day("2025-11-18")},
			{ID: 2, Date: day("2025-11-17")},
			{ID: 3, Date: day("2025-11-18")},
			{ID: 4, Date: day("2025-12-01")},
		}

		buckets := timebook.BucketEntries(entries, week)

		Expect(buckets).To(HaveLen(7))
		Expect(buckets["2025-11-23"]).To(BeEmpty())
		Expect(buckets["2025-11-17"]).To(HaveLen(1))
		Expect(buckets["2025-11-18"][0].ID).To(Equal(int64(1)))
		Expect(buckets["2025-11-18"][1].ID).To(Equal(int64(3)))
	})

	It("totals hours per day and for the week", func() {
		week := timebook.ComputeWeekWindow("2025-11-17", time.Now())
		buckets := timebook.BucketEntries([]timebook.Entry{
			{Date: day("2025-11-17"), StartTime: "07:00", StopTime: "15:00"},
			{Date: day("2025-11-17"), StartTime: "16:00", StopTime: "17:30"},
			{Date: day("2025-11-18"), StartTime: "07:00", StopTime: "-"},
		}, week)

		days, total := timebook.DayTotals(buckets)

		Expect(days["2025-11-17"]).To(Equal(9.5))
		Expect(days["2025-11-18"]).To(BeZero())
		Expect(total).To(Equal(9.5))
	})
})

var _ = Describe("WeekOptions", func() {
	It("offers the current week and the three before it", func() {
		opts := timebook.WeekOptions(time.Date(2025, 11, 19, 12, 0, 0, 0, time.UTC))

		Expect(opts).To(HaveLen(4))
		Expect(opts[0]).To(Equal(timebook.WeekOption{Value: "2025-11-17", Label: "Current Week (November 17, 2025)"}))
		Expect(opts[1]).To(Equal(timebook.WeekOption{Value: "2025-11-10", Label: "Week -1 (November 10, 2025)"}))
		Expect(opts[3].Value).To(Equal("2025-10-27"))
	})
})

var _ = Describe("AuthorizeMutation", func() {
	admin := identity.SessionContext{Username: "admin", RoleClass: identity.ClassAdmin}
	user := identity.SessionContext{Username: "jdavis", RoleClass: identity.ClassUser, EmployeeName: "John Davis"}

	It("locks paid entries even for admins", func() {
		entry := timebook.Entry{Employee: "John Davis", Paid: true}

		Expect(timebook.AuthorizeMutation(entry, admin, "")).To(MatchError(internal.ErrPaidLocked))
		Expect(timebook.AuthorizeMutation(entry, user, "John Davis")).To(MatchError(internal.ErrPaidLocked))
	})

	It("lets admins change anyone's unpaid entry", func() {
		Expect(timebook.AuthorizeMutation(timebook.Entry{Employee: "Mike Torres"}, admin, "")).To(Succeed())
	})

	It("limits other classes to their own entries", func() {
		Expect(timebook.AuthorizeMutation(timebook.Entry{Employee: "John Davis"}, user, "John Davis")).To(Succeed())
		Expect(timebook.AuthorizeMutation(timebook.Entry{Employee: "Mike Torres"}, user, "John Davis")).To(MatchError(internal.ErrNotOwner))
	})

	It("falls back to the username when there is no acting employee", func() {
		np := identity.SessionContext{Username: "dispatch", RoleClass: identity.ClassNP}

		Expect(timebook.AuthorizeMutation(timebook.Entry{Employee: "dispatch"}, np, "")).To(Succeed())
		Expect(timebook.AuthorizeMutation(timebook.Entry{Employee: "John Davis"}, np, "")).To(MatchError(internal.ErrNotOwner))
	})
})
