package cli

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/danielrhuynh/cs-446-ece-452/internal/api"
	"github.com/danielrhuynh/cs-446-ece-452/internal/api/response"
	"github.com/danielrhuynh/cs-446-ece-452/internal/factory"
	"github.com/danielrhuynh/cs-446-ece-452/internal/testutil"
)

type ClientSuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
	client *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.app = factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		Matchmaking: s.app.Matchmaking,
	})
	s.server = httptest.NewServer(router)
	s.client = NewClient(s.server.URL)
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestCreateJoinGetFlow() {
	s.app.MockRandom.QueueString("AB23CD")

	var created response.Session
	err := s.client.Post("/sessions/create", map[string]string{
		"device_id":    "dev-1",
		"display_name": "Alice",
	}, &created)
	s.Require().NoError(err)
	s.Equal("AB23CD", created.ID)
	s.Equal("open", created.Status)

	var joined response.Session
	err = s.client.Post("/sessions/join", map[string]string{
		"device_id":    "dev-2",
		"display_name": "Bob",
		"session_id":   "ab23-cd",
	}, &joined)
	s.Require().NoError(err)
	s.Equal("active", joined.Status)

	var fetched response.SessionWithPlayers
	err = s.client.Get("/sessions/AB23CD", &fetched)
	s.Require().NoError(err)
	s.Equal("Alice", fetched.Player1.Name)
	s.Require().NotNil(fetched.Player2)
	s.Equal("Bob", fetched.Player2.Name)
}

func (s *ClientSuite) TestAPIErrorSurfacesMessage() {
	err := s.client.Post("/sessions/join", map[string]string{
		"device_id":    "dev-2",
		"display_name": "Bob",
		"session_id":   "ZZZZZZ",
	}, nil)
	s.Require().Error(err)
	s.Equal("could not join session", err.Error())
}

func (s *ClientSuite) TestBaseURLTrailingSlashTrimmed() {
	client := NewClient(s.server.URL + "/")

	var health map[string]string
	s.Require().NoError(client.Get("/health", &health))
	s.Equal("ok", health["status"])
}

func (s *ClientSuite) TestServerUnreachable() {
	client := NewClient("http://127.0.0.1:1")
	err := client.Get("/health", nil)
	s.Require().Error(err)
}

func (s *ClientSuite) TestLoadDeviceIDGeneratesAndPersists() {
	file := filepath.Join(s.T().TempDir(), "gammon", "device-id")
	cfg := &Config{DeviceIDFile: file}

	s.Require().NoError(cfg.LoadDeviceID())
	s.NotEmpty(cfg.DeviceID)
	first := cfg.DeviceID

	// A fresh Config reading the same file resolves the same identity
	again := &Config{DeviceIDFile: file}
	s.Require().NoError(again.LoadDeviceID())
	s.Equal(first, again.DeviceID)
}

func (s *ClientSuite) TestLoadDeviceIDPrefersExplicitValue() {
	cfg := &Config{
		DeviceID:     "explicit-id",
		DeviceIDFile: filepath.Join(s.T().TempDir(), "device-id"),
	}
	s.Require().NoError(cfg.LoadDeviceID())
	s.Equal("explicit-id", cfg.DeviceID)
}

func (s *ClientSuite) TestDoSetsJSONHeaders() {
	received := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	s.Require().NoError(client.Post("/anything", map[string]string{"k": "v"}, nil))

	headers := <-received
	s.Equal("application/json", headers.Get("Content-Type"))
	s.Equal("application/json", headers.Get("Accept"))
}
