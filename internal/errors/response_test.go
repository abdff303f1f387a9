package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "550e8400-e29b-41d4-a716-446655440000"
}

func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) TestNewErrorResponse_BasicUsage() {
	response := NewErrorResponse(ApprovalNotApprovable, s.traceID)

	s.Equal("APPROVAL_001", response.Error.Code)
	s.Equal("Request is not approvable", response.Error.Message)
	s.Equal(s.traceID, response.Error.TraceID)
	s.Empty(response.Error.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_WithOptions() {
	response := NewErrorResponse(
		ValidationGeneral,
		s.traceID,
		WithDetails("amount: must be positive"),
		WithMessage("Invalid payment"),
	)

	s.Equal("VALIDATION_001", response.Error.Code)
	s.Equal("Invalid payment", response.Error.Message)
	s.Equal([]string{"amount: must be positive"}, response.Error.Details)
}

func (s *ResponseTestSuite) TestWithDetails_LastWins() {
	response := NewErrorResponse(ValidationGeneral, s.traceID, WithDetails("a", "b"), WithDetails("c"))
	s.Equal([]string{"c"}, response.Error.Details)
}

func (s *ResponseTestSuite) TestNewValidationError_SortedByField() {
	response := NewValidationError(map[string]string{
		"receiver_iban": "must be a valid IBAN",
		"amount":        "is required",
	}, s.traceID)

	s.Equal(string(ValidationGeneral), response.Error.Code)
	s.Equal([]string{"amount: is required", "receiver_iban: must be a valid IBAN"}, response.Error.Details)
}

func (s *ResponseTestSuite) TestWrapSystemError_NoInternalDetailsExposed() {
	internal := errors.New("pq: relation \"accounts\" does not exist")

	response, err := WrapSystemError(internal, s.traceID)

	s.Equal(internal, err)
	s.Equal(string(SystemInternalError), response.Error.Code)
	s.NotContains(response.Error.Message, "accounts")
	s.Empty(response.Error.Details)
}

func (s *ResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		code     ErrorCode
		expected int
	}{
		{ValidationInvalidIBAN, http.StatusBadRequest},
		{DeviceInvalidPublicKey, http.StatusBadRequest},
		{AuthExpiredToken, http.StatusUnauthorized},
		{AuthInsufficientPermission, http.StatusForbidden},
		{AccountOperationNotPermitted, http.StatusForbidden},
		{PaymentNotFound, http.StatusNotFound},
		{AccountNonZeroBalance, http.StatusConflict},
		{PaymentNotModifiable, http.StatusConflict},
		{ApprovalNotPending, http.StatusConflict},
		{AccountInsufficientFunds, http.StatusUnprocessableEntity},
		{ApprovalNotApprovable, http.StatusUnprocessableEntity},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},
		{SystemDatabaseError, http.StatusInternalServerError},
		{"UNKNOWN_001", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, GetHTTPStatus(tc.code))
		})
	}
}

func (s *ResponseTestSuite) TestClientAndServerErrors() {
	client := NewErrorResponse(PaymentNotPending, s.traceID)
	s.True(client.IsClientError())
	s.False(client.IsServerError())

	server := NewErrorResponse(SystemInternalError, s.traceID)
	s.False(server.IsClientError())
	s.True(server.IsServerError())
}

func (s *ResponseTestSuite) TestString_FormatsCorrectly() {
	response := NewErrorResponse(AccountNotFound, s.traceID)
	s.Equal("[ACCOUNT_001] Account not found (trace: "+s.traceID+")", response.String())
}

func (s *ResponseTestSuite) TestErrorResponseStructure() {
	response := NewErrorResponse(ValidationGeneral, s.traceID, WithDetails("amount: invalid"))

	raw, err := json.Marshal(response)
	s.Require().NoError(err)

	var body map[string]map[string]any
	s.Require().NoError(json.Unmarshal(raw, &body))

	s.Contains(body, "error")
	for _, key := range []string{"code", "message", "trace_id", "details"} {
		s.Contains(body["error"], key)
	}
}
