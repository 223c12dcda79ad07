//go:build integration

package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	tContainer "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisIntegrationTestSuite struct {
	suite.Suite
	ctx       context.Context
	container tContainer.Container
	store     *Redis
}

func (s *RedisIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := tContainer.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}
	container, err := tContainer.GenericContainer(s.ctx, tContainer.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "6379")
	s.Require().NoError(err)

	client, err := NewRedisClient(s.ctx, RedisConfig{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	s.Require().NoError(err)
	s.store = NewRedis(client, 0)
}

func (s *RedisIntegrationTestSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close()
	}
	s.Require().NoError(s.container.Terminate(s.ctx))
}

func (s *RedisIntegrationTestSuite) TestRoundTrip() {
	s.Require().NoError(s.store.Ping(s.ctx))
	s.Require().NoError(s.store.Set(s.ctx, "becas:user", `{"id":"42"}`))

	value, err := s.store.Get(s.ctx, "becas:user")
	s.Require().NoError(err)
	s.Equal(`{"id":"42"}`, value)

	s.Require().NoError(s.store.Del(s.ctx, "becas:user", "becas:tokens"))
	_, err = s.store.Get(s.ctx, "becas:user")
	s.ErrorIs(err, ErrNotFound)
}

func TestRedisIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisIntegrationTestSuite))
}
