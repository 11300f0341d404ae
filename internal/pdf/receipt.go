// Package pdf renders donation receipts to single-page PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"recus/internal/domain"
)

// ReceiptData is the full set of fields printed on a receipt. Rendering is
// deterministic given this input and performs no external side effects.
type ReceiptData struct {
	AssociationName    string
	AssociationAddress string
	AssociationObject  string
	Number             int64
	Donor              string
	Amount             float64
	DonationDate       time.Time
	PaymentMethod      domain.PaymentMethod
	Purpose            string
	Signer             string
}

// Render lays out the receipt onto one A4 page and serializes it.
func Render(d ReceiptData) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetCreationDate(time.Unix(0, 0).UTC())
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")
	pageW, _ := doc.GetPageSize()
	const margin = 15.0

	// Header: association identity block.
	doc.SetFont("Helvetica", "B", 16)
	textCentered(doc, pageW, 22, tr(d.AssociationName))
	doc.SetFont("Helvetica", "", 11)
	textCentered(doc, pageW, 29, tr(d.AssociationAddress))
	textCentered(doc, pageW, 35, tr("Objet : "+d.AssociationObject))
	doc.SetLineWidth(0.4)
	doc.Line(margin, 40, pageW-margin, 40)

	// Title with the receipt number.
	doc.SetFont("Helvetica", "B", 14)
	textCentered(doc, pageW, 52, tr(fmt.Sprintf("REÇU DE DON N° %d", d.Number)))
	doc.SetLineWidth(0.2)
	doc.Line(margin, 56, pageW-margin, 56)

	// Details.
	doc.SetFont("Helvetica", "", 12)
	y := 70.0
	const lh = 8.0
	doc.Text(margin, y, tr("Donateur : "+d.Donor))
	y += lh
	doc.Text(margin, y, tr(fmt.Sprintf("Montant  : %.2f €", d.Amount)))
	y += lh
	doc.Text(margin, y, tr("Date du don : "+domain.FormatDateFR(d.DonationDate)))
	y += lh
	doc.Text(margin, y, tr("Mode de paiement : "+d.PaymentMethod.Label()))
	y += lh

	// Purpose statement, wrapped.
	y += 5
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(margin, y, tr("Utilisation prévue du don :"))
	y += lh
	doc.SetFont("Helvetica", "", 12)
	doc.SetXY(margin, y-5)
	doc.MultiCell(pageW-2*margin, 6, tr(d.Purpose), "", "L", false)
	y = doc.GetY() + 10

	// Signatory.
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(margin, y, tr("Signataire :"))
	doc.SetFont("Helvetica", "", 12)
	doc.Text(margin+30, y, tr(d.Signer))
	y += 20

	// Footer.
	doc.SetDrawColor(150, 150, 150)
	doc.Line(margin, y, pageW-margin, y)
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(80, 80, 80)
	textCentered(doc, pageW, y+8, tr("Merci pour votre soutien à l'Association MIM."))
	doc.SetTextColor(0, 0, 0)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func textCentered(doc *fpdf.Fpdf, pageW, y float64, s string) {
	w := doc.GetStringWidth(s)
	doc.Text((pageW-w)/2, y, s)
}
