package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"ledger-engine/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// handlerSuite carries the echo instance and request helpers shared by the
// handler suites.
type handlerSuite struct {
	suite.Suite
	echo   *echo.Echo
	userID uuid.UUID
}

func (s *handlerSuite) setupEcho() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.userID = uuid.New()
}

type params map[string]string

// newContext builds an authenticated request context. body may be a string
// of raw JSON or any value to marshal.
func (s *handlerSuite) newContext(method, path string, body interface{}, role string, pathParams params) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewBufferString(b))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(raw))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	names := make([]string, 0, len(pathParams))
	values := make([]string, 0, len(pathParams))
	for name, value := range pathParams {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	if role != "" {
		c.Set("user_id", s.userID)
		c.Set("user_role", role)
	}
	c.Set(TraceIDContextKey, "trace-123")

	return c, rec
}

func (s *handlerSuite) decodeError(rec *httptest.ResponseRecorder) errors.ErrorResponse {
	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("trace-123", resp.Error.TraceID)
	return resp
}

func (s *handlerSuite) assertError(rec *httptest.ResponseRecorder, status int, code errors.ErrorCode) errors.ErrorResponse {
	s.Equal(status, rec.Code, rec.Body.String())
	resp := s.decodeError(rec)
	s.Equal(string(code), resp.Error.Code)
	return resp
}
