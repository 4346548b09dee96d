package projection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/danielrhuynh/cs-446-ece-452/internal/model"
	"github.com/danielrhuynh/cs-446-ece-452/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) storePlayer(id, deviceID, name string) {
	_, err := s.storage.ResolveDevice(s.ctx, &model.Player{
		ID:          model.PlayerID(id),
		DisplayName: name,
		DeviceID:    deviceID,
		CreatedAt:   time.Now(),
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestExpandOpenSession() {
	s.storePlayer("p1", "dev-1", "Alice")

	session := &model.Session{
		Code:      "AB23CD",
		Status:    model.SessionStatusOpen,
		Player1ID: "p1",
		CreatedAt: time.Now(),
	}

	expanded, err := s.service.Expand(s.ctx, session)
	s.Require().NoError(err)

	s.Equal(model.PlayerID("p1"), expanded.Player1.ID)
	s.Equal("Alice", expanded.Player1.Name)
	s.Nil(expanded.Player2)
	s.Equal(session.Code, expanded.Code)
}

func (s *ServiceSuite) TestExpandActiveSession() {
	s.storePlayer("p1", "dev-1", "Alice")
	s.storePlayer("p2", "dev-2", "Bob")

	p2 := model.PlayerID("p2")
	session := &model.Session{
		Code:      "AB23CD",
		Status:    model.SessionStatusActive,
		Player1ID: "p1",
		Player2ID: &p2,
		CreatedAt: time.Now(),
	}

	expanded, err := s.service.Expand(s.ctx, session)
	s.Require().NoError(err)

	s.Equal("Alice", expanded.Player1.Name)
	s.Require().NotNil(expanded.Player2)
	s.Equal(model.PlayerID("p2"), expanded.Player2.ID)
	s.Equal("Bob", expanded.Player2.Name)
}

func (s *ServiceSuite) TestExpandMissingPlayer1IsAnError() {
	session := &model.Session{
		Code:      "AB23CD",
		Status:    model.SessionStatusOpen,
		Player1ID: "ghost",
		CreatedAt: time.Now(),
	}

	_, err := s.service.Expand(s.ctx, session)
	s.Require().Error(err)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
