package pdf

import (
	"bytes"
	"testing"
	"time"

	"recus/internal/domain"
)

func sampleReceipt() ReceiptData {
	return ReceiptData{
		AssociationName:    "ASSOCIATION MIM",
		AssociationAddress: "2 Place Victor Hugo, 95400 Villiers-le-Bel",
		AssociationObject:  "Religion",
		Number:             7,
		Donor:              "Jean Dupont",
		Amount:             50,
		DonationDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PaymentMethod:      domain.PaymentCard,
		Purpose:            "UTILISATION PRÉVUE DU DON : CONSTRUCTION DE MOSQUÉE POUR L'ASSOCIATION MIM.",
		Signer:             "TRÉSORIER : RAJA TARIQ",
	}
}

func TestRenderContainsReceiptFields(t *testing.T) {
	out, err := Render(sampleReceipt())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}

	// Content streams are uncompressed, so field values appear literally.
	for _, want := range []string{
		"Jean Dupont",
		"50.00",
		"15/01/2024",
		"Carte bancaire (CB)",
		"ASSOCIATION MIM",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Fatalf("rendered document missing %q", want)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	a, err := Render(sampleReceipt())
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	b, err := Render(sampleReceipt())
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("rendering is not deterministic for identical inputs")
	}
}
