package errors

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CodesTestSuite struct {
	suite.Suite
}

func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{name: "missing token", code: AuthMissingToken, expected: "Authorization token is required"},
		{name: "validation", code: ValidationGeneral, expected: "Validation failed"},
		{name: "insufficient funds", code: AccountInsufficientFunds, expected: "Insufficient account balance"},
		{name: "payment locked", code: PaymentNotModifiable, expected: "Payment can no longer be modified"},
		{name: "not approvable", code: ApprovalNotApprovable, expected: "Request is not approvable"},
		{name: "no device", code: DeviceNoActiveDevice, expected: "No active mobile device registered"},
		{name: "internal", code: SystemInternalError, expected: "An unexpected error occurred. Please contact support with trace ID"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	s.Equal("An error occurred", GetErrorMessage("INVALID_CODE"))
}

func (s *CodesTestSuite) TestEveryCodeHasMessageAndStatus() {
	for code := range errorMessages {
		s.Run(string(code), func() {
			s.True(IsValidErrorCode(code))
			s.NotEmpty(GetErrorMessage(code))
			s.GreaterOrEqual(GetHTTPStatus(code), 400)
		})
	}
}

func (s *CodesTestSuite) TestIsValidErrorCode_InvalidCode() {
	for _, code := range []ErrorCode{"INVALID_001", "UNKNOWN_CODE", "", "AUTH_999"} {
		s.Run(string(code), func() {
			s.False(IsValidErrorCode(code), "Expected %s to be invalid", code)
		})
	}
}

func (s *CodesTestSuite) TestCodesAreUnique() {
	seen := make(map[ErrorCode]bool)
	for code := range errorMessages {
		s.False(seen[code], "duplicate code %s", code)
		seen[code] = true
	}
	s.Len(seen, len(errorMessages))
}
