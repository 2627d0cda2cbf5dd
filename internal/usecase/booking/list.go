package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/lesson-booking/internal/domain/booking"
	"github.com/BruksfildServices01/lesson-booking/internal/export"
	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute returns all bookings newest first, never nil.
func (uc *ListBookings) Execute(ctx context.Context) ([]models.Booking, error) {
	out, err := uc.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Booking{}
	}
	return out, nil
}

// ======================================================
// EXPORT
// ======================================================

type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportBookings struct {
	repo domain.Repository
	csv  *export.CSVExporter
	pdf  *export.PDFExporter
	loc  *time.Location
	now  func() time.Time
}

func NewExportBookings(repo domain.Repository, loc *time.Location) *ExportBookings {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportBookings{
		repo: repo,
		csv:  export.NewCSVExporter(),
		pdf:  export.NewPDFExporter(),
		loc:  loc,
		now:  time.Now,
	}
}

func (uc *ExportBookings) Execute(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		return nil, httperr.ErrInvalidField("format", "must be one of csv, pdf")
	}

	bookings, err := uc.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	data := export.BookingsDataset(bookings, uc.loc)
	stamp := uc.now().In(uc.loc).Format("20060102-1504")

	switch format {
	case "pdf":
		body, err := uc.pdf.Render(data, "Bookings "+uc.now().In(uc.loc).Format("2006-01-02"))
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("bookings-%s.pdf", stamp),
			ContentType: "application/pdf",
			Body:        body,
		}, nil
	default:
		body, err := uc.csv.Render(data)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("bookings-%s.csv", stamp),
			ContentType: "text/csv; charset=utf-8",
			Body:        body,
		}, nil
	}
}
