package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/transfer-console/internal/domain/money"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
	"github.com/preston-bernstein/transfer-console/internal/session"
	"github.com/preston-bernstein/transfer-console/internal/testutil"
	"github.com/preston-bernstein/transfer-console/internal/transfer"
	"github.com/preston-bernstein/transfer-console/internal/views"
)

func TestWriteFailureStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &transfer.ValidationError{Fields: []transfer.FieldError{{Field: transfer.FieldEnd, Message: "x"}}}, http.StatusUnprocessableEntity},
		{"auth", &session.AuthError{Username: "a", Err: errors.New("nope")}, http.StatusUnauthorized},
		{"missing credentials", &session.AuthError{Err: session.ErrMissingCredentials}, http.StatusBadRequest},
		{"login required", views.ErrLoginRequired, http.StatusUnauthorized},
		{"admin required", fmt.Errorf("market: %w", views.ErrAdminRequired), http.StatusForbidden},
		{"in flight", transfer.ErrSubmitInProgress, http.StatusConflict},
		{"api", &gateway.APIError{Op: "x", Status: http.StatusNotFound, Message: "Player not found"}, http.StatusNotFound},
		{"api odd status", &gateway.APIError{Op: "x", Status: 302}, http.StatusBadGateway},
		{"network", &gateway.NetworkError{Op: "x", Err: context.DeadlineExceeded}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeFailure(rr, httptest.NewRequest(http.MethodGet, "/", nil), tc.err, nil)
			testutil.AssertStatus(t, rr, tc.want)
		})
	}
}

func TestValidationFailureListsFields(t *testing.T) {
	rr := httptest.NewRecorder()
	err := &transfer.ValidationError{Fields: []transfer.FieldError{
		{Field: transfer.FieldDestination, Message: "must be selected"},
		{Field: transfer.FieldReleaseClause, Message: "must be greater than zero"},
	}}
	writeFailure(rr, httptest.NewRequest(http.MethodPost, "/transfers", nil), err, nil)

	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	if len(body.Fields) != 2 || body.Fields[1].Field != transfer.FieldReleaseClause {
		t.Fatalf("unexpected fields %+v", body.Fields)
	}
}

func TestAPIErrorWithoutMessageUsesStatusText(t *testing.T) {
	status, msg := statusFor(&gateway.APIError{Op: "x", Status: http.StatusServiceUnavailable})
	if status != http.StatusServiceUnavailable || msg != http.StatusText(http.StatusServiceUnavailable) {
		t.Fatalf("unexpected mapping %d %q", status, msg)
	}
}

func TestHealthShuttingDown(t *testing.T) {
	h := NewHandler(Deps{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestContractDatesRejectsGarbage(t *testing.T) {
	_, _, err := contractDates(transferBody{ContractStart: "2024-01-01", ContractEnd: "later"})
	vErr, ok := transfer.AsValidationError(err)
	if !ok || !vErr.Has(transfer.FieldEnd) || vErr.Has(transfer.FieldStart) {
		t.Fatalf("expected end-only error, got %v", err)
	}
	start, end, err := contractDates(transferBody{})
	if err != nil || !start.IsZero() || !end.IsZero() {
		t.Fatalf("expected empty dates to pass, got %v %v %v", start, end, err)
	}
}

func TestValidateTransferBody(t *testing.T) {
	huge := int64(money.MaxMillions + 1)
	ok := int64(40)
	cases := []struct {
		name   string
		body   transferBody
		fields []string
	}{
		{"defaults", transferBody{PlayerID: 1, ClubID: 2}, nil},
		{"full terms", transferBody{PlayerID: 1, ClubID: 2, ReleaseClauseMillions: &ok, ContractStart: "2024-07-01", ContractEnd: "2027-07-01"}, nil},
		{"overflowing release clause", transferBody{ReleaseClauseMillions: &huge}, []string{transfer.FieldReleaseClause}},
		{"bad dates", transferBody{ContractStart: "soon", ContractEnd: "2024-13-01"}, []string{transfer.FieldStart, transfer.FieldEnd}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateBody(tc.body)
			if len(tc.fields) == 0 {
				if err != nil {
					t.Fatalf("expected valid body, got %v", err)
				}
				return
			}
			vErr, isValidation := transfer.AsValidationError(err)
			if !isValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			for _, f := range tc.fields {
				if !vErr.Has(f) {
					t.Fatalf("expected %s in %v", f, vErr)
				}
			}
		})
	}
}
