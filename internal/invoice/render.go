package invoice

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/invoice.html
var defaultTemplate string

// Renderer turns a Document into a downloadable file.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
	Extension() string
	ContentType() string
}

type HTMLRenderer struct {
	tpl     *pongo2.Template
	printer *message.Printer
}

// NewHTMLRenderer compiles the template at path, or the built-in one when
// path is empty.
func NewHTMLRenderer(path string) (*HTMLRenderer, error) {
	src := defaultTemplate
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read invoice template: %w", err)
		}
		src = string(b)
	}

	tpl, err := pongo2.FromString(src)
	if err != nil {
		return nil, fmt.Errorf("compile invoice template: %w", err)
	}
	return &HTMLRenderer{
		tpl:     tpl,
		printer: message.NewPrinter(language.AmericanEnglish),
	}, nil
}

func (r *HTMLRenderer) Extension() string { return "html" }

func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

// Money formats an amount as $1,234.56.
func (r *HTMLRenderer) Money(v float64) string {
	return r.printer.Sprintf("$%.2f", v)
}

type renderLine struct {
	Date        string
	Employee    string
	Description string
	StartTime   string
	StopTime    string
	Hours       string
	Rate        string
	Amount      string
	Billable    string
}

func (r *HTMLRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := make([]renderLine, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		billable := "No"
		if l.Entry.Billable {
			billable = "Yes"
		}
		lines = append(lines, renderLine{
			Date:        l.Entry.DateKey(),
			Employee:    l.Entry.Employee,
			Description: l.Entry.Description,
			StartTime:   l.Entry.StartTime,
			StopTime:    l.Entry.StopTime,
			Hours:       fmt.Sprintf("%.2f", l.Hours),
			Rate:        r.Money(l.Entry.PayRateRT),
			Amount:      r.Money(l.Amount),
			Billable:    billable,
		})
	}

	data := pongo2.Context{
		"invoice_number":  doc.Number,
		"invoice_date":    doc.InvoiceDate.Format(DisplayDateLayout),
		"job":             doc.Job,
		"lines":           lines,
		"labor_total":     r.Money(doc.LaborTotal),
		"materials_total": r.Money(doc.MaterialsTotal),
		"total":           r.Money(doc.Total),
	}
	if doc.Customer != nil {
		data["customer"] = *doc.Customer
	}

	out, err := r.tpl.ExecuteBytes(data)
	if err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return out, nil
}
