package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/danielrhuynh/cs-446-ece-452/internal/api/apierr"
	"github.com/danielrhuynh/cs-446-ece-452/internal/api/response"
	"github.com/danielrhuynh/cs-446-ece-452/internal/factory"
	"github.com/danielrhuynh/cs-446-ece-452/internal/metrics"
	"github.com/danielrhuynh/cs-446-ece-452/internal/testutil"
)

type APISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()
	router := NewRouter(RouterConfig{
		Logger:      testutil.NopLogger(),
		Matchmaking: s.app.Matchmaking,
	})
	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) post(path string, body any) *http.Response {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	resp, err := http.Post(s.server.URL+path, "application/json", bytes.NewReader(payload))
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) get(path string) *http.Response {
	resp, err := http.Get(s.server.URL + path)
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) decode(resp *http.Response, into any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(into))
}

func (s *APISuite) createSession(code, deviceID, name string) response.Session {
	s.app.MockRandom.QueueString(code)

	resp := s.post("/sessions/create", map[string]string{
		"device_id":    deviceID,
		"display_name": name,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var session response.Session
	s.decode(resp, &session)
	return session
}

func (s *APISuite) TestCreateSession() {
	session := s.createSession("AB23CD", "dev-1", "Alice")

	s.Equal("AB23CD", session.ID)
	s.Equal("open", session.Status)
	s.NotEmpty(session.Player1ID)
	s.Nil(session.Player2ID)
	s.Equal(s.app.MockClock.Now(), session.CreatedAt)
}

func (s *APISuite) TestCreateSessionMissingFields() {
	for _, body := range []map[string]string{
		{"display_name": "Alice"},
		{"device_id": "dev-1"},
		{},
	} {
		resp := s.post("/sessions/create", body)
		s.Equal(http.StatusBadRequest, resp.StatusCode)

		var errResp apierr.ErrorResponse
		s.decode(resp, &errResp)
		s.NotEmpty(errResp.Error)
	}
}

func (s *APISuite) TestJoinSession() {
	created := s.createSession("AB23CD", "dev-1", "Alice")

	resp := s.post("/sessions/join", map[string]string{
		"device_id":    "dev-2",
		"display_name": "Bob",
		"session_id":   "AB23CD",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var session response.Session
	s.decode(resp, &session)
	s.Equal(created.ID, session.ID)
	s.Equal("active", session.Status)
	s.Require().NotNil(session.Player2ID)
	s.NotEqual(session.Player1ID, *session.Player2ID)
}

func (s *APISuite) TestJoinSessionAcceptsDisplayFormat() {
	s.createSession("AB23CD", "dev-1", "Alice")

	// Lowercase with the display separator, as a user would type it
	resp := s.post("/sessions/join", map[string]string{
		"device_id":    "dev-2",
		"display_name": "Bob",
		"session_id":   "ab23-cd",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var session response.Session
	s.decode(resp, &session)
	s.Equal("AB23CD", session.ID)
}

func (s *APISuite) TestJoinSessionSelfJoinConflict() {
	s.createSession("AB23CD", "dev-1", "Alice")

	resp := s.post("/sessions/join", map[string]string{
		"device_id":    "dev-1",
		"display_name": "Alice",
		"session_id":   "AB23CD",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp apierr.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("could not join session", errResp.Error)
}

func (s *APISuite) TestJoinSessionFullConflict() {
	s.createSession("AB23CD", "dev-1", "Alice")

	resp := s.post("/sessions/join", map[string]string{
		"device_id":    "dev-2",
		"display_name": "Bob",
		"session_id":   "AB23CD",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.post("/sessions/join", map[string]string{
		"device_id":    "dev-3",
		"display_name": "Carol",
		"session_id":   "AB23CD",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestJoinSessionUnknownCodeConflict() {
	// Unknown codes and rule failures share one response so the endpoint
	// cannot be used to probe which codes exist
	resp := s.post("/sessions/join", map[string]string{
		"device_id":    "dev-2",
		"display_name": "Bob",
		"session_id":   "ZZZZZZ",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp apierr.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("could not join session", errResp.Error)
}

func (s *APISuite) TestJoinSessionMalformedCode() {
	resp := s.post("/sessions/join", map[string]string{
		"device_id":    "dev-2",
		"display_name": "Bob",
		"session_id":   "nope",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestGetSessionExpanded() {
	s.createSession("AB23CD", "dev-1", "Alice")

	resp := s.get("/sessions/AB23CD")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var session response.SessionWithPlayers
	s.decode(resp, &session)
	s.Equal("AB23CD", session.ID)
	s.Equal("open", session.Status)
	s.Equal("Alice", session.Player1.Name)
	s.Nil(session.Player2)
}

func (s *APISuite) TestGetSessionAfterJoin() {
	s.createSession("AB23CD", "dev-1", "Alice")

	resp := s.post("/sessions/join", map[string]string{
		"device_id":    "dev-2",
		"display_name": "Bob",
		"session_id":   "AB23CD",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.get("/sessions/ab23-cd")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var session response.SessionWithPlayers
	s.decode(resp, &session)
	s.Equal("active", session.Status)
	s.Equal("Alice", session.Player1.Name)
	s.Require().NotNil(session.Player2)
	s.Equal("Bob", session.Player2.Name)
}

func (s *APISuite) TestGetSessionNotFound() {
	resp := s.get("/sessions/ZZZZZZ")
	s.Equal(http.StatusNotFound, resp.StatusCode)

	var errResp apierr.ErrorResponse
	s.decode(resp, &errResp)
	s.NotEmpty(errResp.Error)
}

func (s *APISuite) TestRenamePropagatesToSessionReads() {
	s.createSession("AB23CD", "dev-1", "Alice")

	// The same device creating again under a new name renames the player
	s.createSession("EF45GH", "dev-1", "Alicia")

	resp := s.get("/sessions/AB23CD")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var session response.SessionWithPlayers
	s.decode(resp, &session)
	s.Equal("Alicia", session.Player1.Name)
}

func (s *APISuite) TestHealth() {
	resp := s.get("/health")
	s.Equal(http.StatusOK, resp.StatusCode)

	var health map[string]string
	s.decode(resp, &health)
	s.Equal("ok", health["status"])
}

func (s *APISuite) TestCORSPreflight() {
	req, err := http.NewRequest(http.MethodOptions, s.server.URL+"/sessions/create", nil)
	s.Require().NoError(err)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNoContent, resp.StatusCode)
	s.Equal("*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func (s *APISuite) TestMetricsEndpoint() {
	collector := metrics.NewCollector()
	router := NewRouter(RouterConfig{
		Logger:      testutil.NopLogger(),
		Matchmaking: s.app.Matchmaking,
		Metrics:     collector,
	})
	server := httptest.NewServer(router)
	defer server.Close()

	s.app.MockRandom.QueueString("AB23CD")
	payload, err := json.Marshal(map[string]string{
		"device_id":    "dev-1",
		"display_name": "Alice",
	})
	s.Require().NoError(err)
	resp, err := http.Post(server.URL+"/sessions/create", "application/json", bytes.NewReader(payload))
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/metrics")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "gammon_http_requests_total")
}

func (s *APISuite) TestConcurrentJoinsSingleWinner() {
	s.createSession("AB23CD", "dev-host", "Host")

	const contenders = 8

	results := make(chan int, contenders)
	for i := 0; i < contenders; i++ {
		go func(n int) {
			payload, _ := json.Marshal(map[string]string{
				"device_id":    fmt.Sprintf("dev-%d", n),
				"display_name": fmt.Sprintf("Player %d", n),
				"session_id":   "AB23CD",
			})
			resp, err := http.Post(s.server.URL+"/sessions/join", "application/json", bytes.NewReader(payload))
			if err != nil {
				results <- 0
				return
			}
			resp.Body.Close()
			results <- resp.StatusCode
		}(i)
	}

	var wins, conflicts int
	for i := 0; i < contenders; i++ {
		switch <-results {
		case http.StatusOK:
			wins++
		case http.StatusConflict:
			conflicts++
		}
	}
	s.Equal(1, wins)
	s.Equal(contenders-1, conflicts)
}

func (s *APISuite) TestInvalidJSONBody() {
	resp, err := http.Post(s.server.URL+"/sessions/create", "application/json", strings.NewReader("{not json"))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
