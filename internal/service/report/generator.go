package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/unidoc/unipdf/v3/creator"
	"github.com/unidoc/unipdf/v3/model"
	"go.uber.org/zap"

	"github.com/visijn/haccp/internal/domain/models"
)

// Generator renders daily compliance reports. It is stateless between
// invocations; the location fixes the calendar-day convention shared with
// the mutation API.
type Generator struct {
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewGenerator wires a report generator.
func NewGenerator(loc *time.Location, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{loc: loc, logger: logger, now: time.Now}
}

// Filename returns the download name for a report on the given day.
func (g *Generator) Filename(day time.Time) string {
	return fmt.Sprintf("Rapport_HACCP_%s.pdf", day.In(g.loc).Format(models.DateLayout))
}

// Daily produces the paginated PDF for the target day from a snapshot copy.
func (g *Generator) Daily(snap models.Snapshot, day time.Time) ([]byte, error) {
	target := models.NewTimestamp(day)
	sections := buildSections(snap, target, g.loc)
	now := g.now().In(g.loc)

	header := Header{
		Company:     snap.Settings.CompanyName,
		Manager:     snap.Settings.ManagerName,
		Date:        day.In(g.loc).Format(models.DateLayout),
		GeneratedAt: now.Format("15:04"),
	}

	pdf, err := g.render(header, sections)
	if err != nil {
		return nil, fmt.Errorf("failed rendering daily report: %w", err)
	}

	g.logger.Info("daily report generated",
		zap.String("date", header.Date),
		zap.Int("bytes", len(pdf)))
	return pdf, nil
}

func (g *Generator) render(header Header, sections []Section) ([]byte, error) {
	regular, err := model.NewStandard14Font(model.HelveticaName)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	bold, err := model.NewStandard14Font(model.HelveticaBoldName)
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	italic, err := model.NewStandard14Font(model.HelveticaObliqueName)
	if err != nil {
		return nil, fmt.Errorf("load italic font: %w", err)
	}

	c := creator.New()
	c.SetPageMargins(40, 40, 90, 60)

	headerBg := creator.ColorRGBFrom8bit(30, 58, 138)
	white := creator.ColorRGBFrom8bit(255, 255, 255)
	grey := creator.ColorRGBFrom8bit(150, 150, 150)

	c.DrawHeader(func(block *creator.Block, args creator.HeaderFunctionArgs) {
		rect := c.NewRectangle(0, 0, block.Width(), 70)
		rect.SetFillColor(headerBg)
		rect.SetBorderWidth(0)
		if err := block.Draw(rect); err != nil {
			return
		}

		title := c.NewParagraph("VISI-JN HACCP")
		title.SetFont(bold)
		title.SetFontSize(18)
		title.SetColor(white)
		title.SetPos(40, 18)
		_ = block.Draw(title)

		company := c.NewParagraph(header.Company)
		company.SetFont(regular)
		company.SetFontSize(11)
		company.SetColor(white)
		company.SetPos(40, 44)
		_ = block.Draw(company)

		meta := c.NewParagraph(fmt.Sprintf("Date : %s\nGénéré à : %s\nResponsable : %s", header.Date, header.GeneratedAt, header.Manager))
		meta.SetFont(regular)
		meta.SetFontSize(9)
		meta.SetColor(white)
		meta.SetPos(block.Width()-180, 16)
		_ = block.Draw(meta)
	})

	c.DrawFooter(func(block *creator.Block, args creator.FooterFunctionArgs) {
		p := c.NewParagraph(fmt.Sprintf("Page %d / %d - VISI-JN HACCP - Document interne", args.PageNum, args.TotalPages))
		p.SetFont(regular)
		p.SetFontSize(8)
		p.SetColor(grey)
		p.SetTextAlignment(creator.TextAlignmentCenter)
		p.SetWidth(block.Width())
		p.SetPos(0, 24)
		_ = block.Draw(p)
	})

	c.NewPage()

	for _, section := range sections {
		title := c.NewParagraph(section.Title)
		title.SetFont(bold)
		title.SetFontSize(13)
		title.SetMargins(0, 0, 10, 6)
		if err := c.Draw(title); err != nil {
			return nil, fmt.Errorf("draw section title: %w", err)
		}

		if len(section.Rows) == 0 {
			empty := c.NewParagraph(section.EmptyText)
			empty.SetFont(italic)
			empty.SetFontSize(10)
			empty.SetMargins(0, 0, 0, 10)
			if err := c.Draw(empty); err != nil {
				return nil, fmt.Errorf("draw empty state: %w", err)
			}
			continue
		}

		table := c.NewTable(len(section.Columns))
		table.SetMargins(0, 0, 0, 12)
		headColor := creator.ColorRGBFrom8bit(section.HeadColor[0], section.HeadColor[1], section.HeadColor[2])

		for _, col := range section.Columns {
			cell := table.NewCell()
			cell.SetBackgroundColor(headColor)
			cell.SetBorder(creator.CellBorderSideAll, creator.CellBorderStyleSingle, 1)
			p := c.NewParagraph(col)
			p.SetFont(bold)
			p.SetFontSize(9)
			p.SetColor(white)
			if err := cell.SetContent(p); err != nil {
				return nil, fmt.Errorf("set header cell: %w", err)
			}
		}

		for _, row := range section.Rows {
			for _, value := range row {
				cell := table.NewCell()
				cell.SetBorder(creator.CellBorderSideAll, creator.CellBorderStyleSingle, 1)
				p := c.NewParagraph(strings.TrimSpace(value))
				p.SetFont(regular)
				p.SetFontSize(9)
				if err := cell.SetContent(p); err != nil {
					return nil, fmt.Errorf("set row cell: %w", err)
				}
			}
		}

		if err := c.Draw(table); err != nil {
			return nil, fmt.Errorf("draw section table: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
