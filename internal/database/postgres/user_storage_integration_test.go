//go:build integration

package postgres_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/GoArmGo/UserRegistry/internal/database/postgres"
	"github.com/GoArmGo/UserRegistry/internal/testutil/containers"
	"github.com/GoArmGo/UserRegistry/internal/testutil/storetest"
)

type GormUserStorageSuite struct {
	storetest.UserStorageSuite
	postgres *containers.PostgresContainer
}

func TestGormUserStorageSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GormUserStorageSuite))
}

func (s *GormUserStorageSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())

	db, err := postgres.OpenGorm(s.postgres.DB.DB)
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.Store = postgres.NewGormUserStorage(db, logger)
	s.Reset = s.postgres.TruncateUsers
}
