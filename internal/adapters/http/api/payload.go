package api

import (
	"strconv"
	"strings"

	"github.com/vintry/tastingd/internal/domain/tasting"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// noteRequest mirrors the JSON body of both endpoints. The identity fields
// (shop, customer_id, customer_email) are only required on the direct
// endpoint and are checked there.
type noteRequest struct {
	Shop          string          `json:"shop"`
	CustomerID    any             `json:"customer_id"`
	CustomerEmail string          `json:"customer_email"`
	EventHandle   string          `json:"event_handle" validate:"required"`
	EventName     string          `json:"event_name"`
	Product       *productPayload `json:"product" validate:"required"`
}

type productPayload struct {
	ProductID any    `json:"product_id" validate:"required"`
	Handle    string `json:"handle"`
	Title     string `json:"title"`
	Rating    any    `json:"rating"`
	Note      string `json:"note"`
}

// submission coerces the loosely typed payload into a domain submission.
// The product id must coerce to a number; a non-numeric rating is dropped
// to null rather than rejected.
func (r *noteRequest) submission(op string) (tasting.Submission, error) {
	pid, ok := toProductID(r.Product.ProductID)
	if !ok {
		return tasting.Submission{}, NewKind(op+": invalid product_id", ErrBadRequest)
	}
	return tasting.Submission{
		EventHandle: r.EventHandle,
		EventName:   r.EventName,
		Product: tasting.ProductNote{
			ProductID: pid,
			Handle:    r.Product.Handle,
			Title:     r.Product.Title,
			Rating:    numericRating(r.Product.Rating),
			Note:      r.Product.Note,
		},
	}, nil
}

func toProductID(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return int64(parsed), true
	default:
		return 0, false
	}
}

func numericRating(v any) *float64 {
	if n, ok := v.(float64); ok {
		return &n
	}
	return nil
}

// toCustomerID normalizes the claimed customer id, which clients send as
// either a number or a string.
func toCustomerID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		id = strings.TrimSpace(id)
		return id, id != ""
	case float64:
		return strconv.FormatInt(int64(id), 10), true
	default:
		return "", false
	}
}
