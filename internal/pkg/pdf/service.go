// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/stock"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateStockReport renders a stock listing as a printable PDF
func (s *Service) GenerateStockReport(title, locationLabel string, entries []stock.StockOnHandEntry) (*bytes.Buffer, error) {
	data := stockReportData{
		ClinicName:  s.config.App.ClinicName,
		Title:       title,
		Location:    locationLabel,
		GeneratedAt: time.Now().Format("January 2, 2006 15:04"),
		Entries:     entries,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	err = pdfg.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data stockReportData) (string, error) {
	tmpl := template.Must(template.New("stock-report").Parse(stockReportTemplate))

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// stockReportData represents the data passed to the report template
type stockReportData struct {
	ClinicName  string
	Title       string
	Location    string
	GeneratedAt string
	Entries     []stock.StockOnHandEntry
}

// Stock report HTML template
const stockReportTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .report-title {
            font-size: 24px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 6px;
        }
        .report-meta {
            color: #666;
            font-size: 13px;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 10px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col {
            text-align: right;
            width: 100px;
        }
        .items-table .type-col {
            width: 140px;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.ClinicName}}</h1>
        <div class="report-title">{{.Title}}</div>
        <div class="report-meta">
            <p><strong>Location:</strong> {{.Location}}</p>
            <p><strong>Generated:</strong> {{.GeneratedAt}}</p>
        </div>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="type-col">Type</th>
                <th class="qty-col">Quantity</th>
            </tr>
        </thead>
        <tbody>
            {{range .Entries}}
            <tr>
                <td>{{.Name}}</td>
                <td class="type-col">{{.ItemType}}</td>
                <td class="qty-col">{{.Quantity}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="footer">
        <p>{{.ClinicName}} stock report</p>
    </div>
</body>
</html>
`
