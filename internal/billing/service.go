package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/navette-vtc/navette/internal/platform/sequence"
)

const docNumberPrefix = "DEV"

// Service owns the document lifecycle: quotes are created fully formed and
// may transition to invoice at most once. There is no revert and no deletion.
type Service struct {
	repo     Repository
	seq      sequence.Sequence
	clock    Clock
	validity time.Duration
}

// NewService wires the lifecycle with its collaborators. validity is the
// window added to the creation date to obtain the validity date.
func NewService(repo Repository, seq sequence.Sequence, clock Clock, validity time.Duration) *Service {
	return &Service{repo: repo, seq: seq, clock: clock, validity: validity}
}

// CreateQuote validates the request, prices it against the tariffs in force
// right now and persists the resulting document. The price is frozen on the
// document: later tariff changes never touch it.
func (s *Service) CreateQuote(ctx context.Context, req CreateDocumentRequest, tariffs Tariffs) (*Document, error) {
	svc, verr := validateRequest(req)
	if verr != nil {
		return nil, verr
	}

	price, err := ComputePrice(svc, tariffs)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	docNumber, err := s.nextDocNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	doc := Document{
		ID:           uuid.NewString(),
		DocNumber:    docNumber,
		CreationDate: now,
		ValidityDate: now.Add(s.validity),
		Client: Client{
			LastName:  req.Client.LastName,
			FirstName: req.Client.FirstName,
			Address:   req.Client.Address,
			Phone:     req.Client.Phone,
			Email:     req.Client.Email,
		},
		Service:   svc,
		Price:     price,
		IsInvoice: false,
	}

	if err := s.repo.Insert(ctx, doc); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	return &doc, nil
}

// ConvertToInvoice flips a quote into an invoice. A second call on the same
// document is an error, not a no-op: conversion is a one-time business event.
func (s *Service) ConvertToInvoice(ctx context.Context, id string) (*Document, error) {
	doc, err := s.repo.MarkInvoice(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("convert document %s: %w", id, err)
	}
	return doc, nil
}

// GetDocument returns a single document by id.
func (s *Service) GetDocument(ctx context.Context, id string) (*Document, error) {
	return s.repo.Get(ctx, id)
}

// ListQuotes returns all unconverted documents, oldest first.
func (s *Service) ListQuotes(ctx context.Context) ([]Document, error) {
	isInvoice := false
	return s.repo.List(ctx, &isInvoice)
}

// ListInvoices returns all converted documents, oldest first.
func (s *Service) ListInvoices(ctx context.Context) ([]Document, error) {
	isInvoice := true
	return s.repo.List(ctx, &isInvoice)
}

func (s *Service) nextDocNumber(ctx context.Context, now time.Time) (string, error) {
	n, err := s.seq.Next(ctx)
	if err != nil {
		return "", fmt.Errorf("next document number: %w", err)
	}
	return fmt.Sprintf("%s-%s-%04d", docNumberPrefix, now.Format("20060102"), n), nil
}

func validateRequest(req CreateDocumentRequest) (ServiceDetails, *ValidationError) {
	verr := &ValidationError{}

	checkClientField(verr, "client.last_name", req.Client.LastName)
	checkClientField(verr, "client.first_name", req.Client.FirstName)
	checkClientField(verr, "client.address", req.Client.Address)
	checkClientField(verr, "client.phone", req.Client.Phone)
	checkClientField(verr, "client.email", req.Client.Email)

	var svc ServiceDetails
	switch req.ServiceType {
	case ServiceTransfer:
		if strings.TrimSpace(req.PickupAddress) == "" {
			verr.add("pickup_address", "required for a transfer")
		}
		if strings.TrimSpace(req.DestinationAddress) == "" {
			verr.add("destination_address", "required for a transfer")
		}
		if req.DistanceKm <= 0 {
			verr.addKind("distance_km", "must be greater than zero", ErrInvalidServiceParameter)
		}
		if req.DurationHours != 0 {
			verr.addKind("duration_hours", "not applicable to a transfer", ErrInvalidServiceParameter)
		}
		svc = Transfer{
			PickupAddress:      req.PickupAddress,
			DestinationAddress: req.DestinationAddress,
			DistanceKm:         req.DistanceKm,
		}
	case ServiceHourlyHire:
		if req.DurationHours <= 0 {
			verr.addKind("duration_hours", "must be greater than zero", ErrInvalidServiceParameter)
		}
		if req.DistanceKm != 0 {
			verr.addKind("distance_km", "not applicable to an hourly hire", ErrInvalidServiceParameter)
		}
		svc = HourlyHire{DurationHours: req.DurationHours}
	default:
		verr.addKind("service_type", fmt.Sprintf("unknown service type %q", req.ServiceType), ErrInvalidServiceParameter)
	}

	if !verr.empty() {
		return nil, verr
	}
	return svc, nil
}

func checkClientField(verr *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.add(field, "must not be empty")
	}
}
