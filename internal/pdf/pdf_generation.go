package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type Generator interface {
	GenerateLeadSummary(data LeadSummaryData) (string, error)
}

type DocumentGenerator struct {
	RootDir  string // storage root, e.g. "./files"
	FontPath string // TTF with full Latin coverage, e.g. "assets/fonts/DejaVuSans.ttf"
	fontName string
}

type LeadSummaryData struct {
	Reference     string
	Name          string
	Email         string
	Phone         string
	InsuranceType string
	Message       string
	CreatedAt     time.Time
	Filename      string // basename only; derived from Reference when empty
}

func NewDocumentGenerator(rootDir, fontPath string) *DocumentGenerator {
	return &DocumentGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

// GenerateLeadSummary writes the one-page "Anfrage-Zusammenfassung"
// that is attached to the office notification email. Returns the
// absolute path of the written file.
func (g *DocumentGenerator) GenerateLeadSummary(data LeadSummaryData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("anfrage_%s.pdf", data.Reference)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Anfrage %s", data.Reference), false)
	pdf.SetAuthor("Assekura", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addUTF8Font(pdf)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "ANFRAGE-ZUSAMMENFASSUNG", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("Nr. %s  vom  %s", data.Reference, data.CreatedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	g.sectionTitle(pdf, "Interessent")
	g.kvLine(pdf, "Name", data.Name)
	g.kvLine(pdf, "E-Mail", data.Email)
	g.kvLine(pdf, "Telefon (verifiziert)", data.Phone)
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Anliegen")
	g.kvLine(pdf, "Versicherungsart", data.InsuranceType)
	pdf.Ln(1)

	if data.Message != "" {
		pdf.SetFont(g.fontName, "", 11)
		pdf.MultiCell(0, 6, data.Message, "", "L", false)
		pdf.Ln(2)
	}
	g.hr(pdf)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Seite %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ===== helpers =====

func (g *DocumentGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *DocumentGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(55, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *DocumentGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *DocumentGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename)
	return filepath.Join(g.RootDir, filename), nil
}

func (g *DocumentGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}
