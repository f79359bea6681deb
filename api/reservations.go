package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateReservation records the reservation detail for an order created by
// the wizard. This is the enrichment write; the order remains the source of
// truth if it fails.
func (c *Client) CreateReservation(ctx context.Context, req CreateReservationRequest) (*Reservation, error) {
	var resp Reservation
	if err := c.do(ctx, "reservations.Create", http.MethodPost, "/orders/reservations/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListReservations fetches all reservations visible to the seller,
// optionally filtered by status.
func (c *Client) ListReservations(ctx context.Context, status string) ([]Reservation, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var resp struct {
		Reservations []Reservation `json:"reservations"`
	}
	if err := c.get(ctx, "reservations.List", "/orders/reservations/all", query, &resp); err != nil {
		return nil, err
	}
	return resp.Reservations, nil
}

// GetReservation fetches one reservation with customer details.
func (c *Client) GetReservation(ctx context.Context, reservationID int) (*Reservation, error) {
	var r Reservation
	path := fmt.Sprintf("/orders/reservations/%d", reservationID)
	if err := c.get(ctx, "reservations.Get", path, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateReservationStatus moves a reservation through
// Pending/Confirmed/Completed/Cancelled.
func (c *Client) UpdateReservationStatus(ctx context.Context, reservationID int, status string) error {
	path := fmt.Sprintf("/orders/reservations/%d/update-status", reservationID)
	body := map[string]string{"status": status}
	return c.do(ctx, "reservations.UpdateStatus", http.MethodPut, path, body, nil)
}
