package domain

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PaymentMethod enumerates the accepted donation payment methods. Values
// match the codes persisted with each receipt.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Espece"
	PaymentCard     PaymentMethod = "CB"
	PaymentTransfer PaymentMethod = "Virement"
)

// Label returns the printable French label for the method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCard:
		return "Carte bancaire (CB)"
	case PaymentTransfer:
		return "Virement"
	default:
		return "Espèce"
	}
}

// Valid reports whether the method is one of the closed set.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// Receipt is the durable record of one issued receipt. Written exactly once
// per successful submission, never updated or deleted.
type Receipt struct {
	Number            int64
	Association       string
	Address           string
	AssociationObject string
	Donor             string
	Amount            float64
	Email             string
	DonationDate      time.Time
	PaymentMethod     PaymentMethod
	Purpose           string
	SignerName        string
	SignerUID         string
	FileURL           *string
	CreatedAt         time.Time
}

// Submission carries the raw form fields of one issuance request.
type Submission struct {
	Donor         string
	Amount        string
	Email         string
	DonationDate  string
	PaymentMethod string
}

// Donation is a validated submission ready for rendering and archival.
type Donation struct {
	Donor         string
	Amount        float64
	Email         string
	DonationDate  time.Time
	PaymentMethod PaymentMethod
}

// Validation failures carry the user-facing message shown by the admin form.
var (
	ErrDonorRequired = errors.New("Nom du donateur et montant requis.")
	ErrInvalidEmail  = errors.New("Adresse e-mail invalide.")
	ErrInvalidAmount = errors.New("Montant invalide.")
	ErrInvalidDate   = errors.New("Date du don invalide.")
	ErrInvalidMethod = errors.New("Mode de paiement invalide.")
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s has the basic local@domain shape.
func IsValidEmail(s string) bool {
	return emailRegexp.MatchString(strings.TrimSpace(s))
}

// ParseSubmission validates the raw form fields and returns the typed
// donation. It performs no side effects: a rejected submission must never
// consume a receipt number.
func ParseSubmission(s Submission) (*Donation, error) {
	donor := strings.TrimSpace(s.Donor)
	amountRaw := strings.TrimSpace(s.Amount)
	if donor == "" || amountRaw == "" {
		return nil, ErrDonorRequired
	}

	email := strings.TrimSpace(s.Email)
	if email != "" && !IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	amount, err := strconv.ParseFloat(amountRaw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if strings.TrimSpace(s.DonationDate) == "" {
		return nil, ErrInvalidDate
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(s.DonationDate))
	if err != nil {
		return nil, ErrInvalidDate
	}

	method := PaymentMethod(strings.TrimSpace(s.PaymentMethod))
	if !method.Valid() {
		return nil, ErrInvalidMethod
	}

	return &Donation{
		Donor:         donor,
		Amount:        amount,
		Email:         email,
		DonationDate:  date,
		PaymentMethod: method,
	}, nil
}

// FormatDateFR renders a date using the French day/month/year convention.
func FormatDateFR(t time.Time) string {
	return t.Format("02/01/2006")
}
