package parcelrepo_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/parcelrepo"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *parcelrepo.GormParcelRepository
	tracker    *MockAggregateTracker
	admin      kernel.Actor
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
	pgtest.SkipWithoutDocker(suite.T())
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	suite.Require().NoError(err)
	suite.admin = admin
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = parcelrepo.NewGormParcelRepository(suite.database.DB, suite.tracker)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database == nil {
		return
	}
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsState() {
	ctx := context.Background()
	breadth := 0.8
	p := suite.newParcel(&breadth)

	suite.Require().NoError(suite.repository.Add(ctx, p))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", p.TrackingNumber().String(), p)

	got, err := suite.repository.Get(ctx, p.TrackingNumber())
	suite.Require().NoError(err)

	suite.True(got.TrackingNumber().IsEqual(p.TrackingNumber()))
	suite.True(got.ClientID().IsEqual(p.ClientID()))
	suite.Equal(parcel.Requested, got.Status())
	suite.Equal("3011.72", got.Price().StringFixed(2))
	suite.Equal("290.17", got.DistanceKm().StringFixed(2))
	suite.Equal(p.Pickup().Text(), got.Pickup().Text())
	suite.InDelta(80.2707, got.Drop().Location().Lng(), 1e-9)
	suite.Require().NotNil(got.Measurements().BreadthM())
	suite.InDelta(0.8, *got.Measurements().BreadthM(), 1e-9)
	suite.Nil(got.Measurements().HeightM())
	suite.Require().Len(got.History(), 1)
	suite.Equal("Parcel created and awaiting admin acceptance", got.History()[0].Notes())
	suite.Empty(got.DomainEvents())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingNumber() {
	ctx := context.Background()
	p := suite.newParcel(nil)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	err := suite.repository.Add(ctx, p)

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_AppendsHistoryAndClearsDriver() {
	ctx := context.Background()
	p := suite.newParcel(nil)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	now := time.Now().UTC()
	suite.Require().NoError(p.Accept(suite.admin, now))
	suite.Require().NoError(p.Assign(suite.admin, 5, now))
	suite.Require().NoError(suite.repository.Update(ctx, p))

	suite.Require().NoError(p.Unassign(suite.admin, "reshuffle", now))
	suite.Require().NoError(suite.repository.Update(ctx, p))

	got, err := suite.repository.Get(ctx, p.TrackingNumber())
	suite.Require().NoError(err)
	suite.Equal(parcel.Accepted, got.Status())
	suite.Nil(got.DriverID())

	history := got.History()
	suite.Require().Len(history, 4)
	for i, h := range history {
		suite.Equal(i+1, h.Sequence())
	}
	suite.Equal(parcel.Assigned, history[2].Status())
	suite.Equal("reshuffle", history[3].Notes())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_SecondInFlightParcelForDriver() {
	ctx := context.Background()
	now := time.Now().UTC()

	first := suite.newParcel(nil)
	second := suite.newParcel(nil)
	for _, p := range []*parcel.Parcel{first, second} {
		suite.Require().NoError(suite.repository.Add(ctx, p))
		suite.Require().NoError(p.Accept(suite.admin, now))
		suite.Require().NoError(p.Assign(suite.admin, 9, now))
	}

	suite.Require().NoError(suite.repository.Update(ctx, first))
	err := suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrDriverUnavailable)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewTrackingNumber())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction() {
	ctx := context.Background()
	p := suite.newParcel(nil)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	tx := suite.database.DB.Begin()
	defer tx.Rollback()

	repo := parcelrepo.NewGormParcelRepository(tx, suite.tracker)
	got, err := repo.GetForUpdate(ctx, p.TrackingNumber())

	suite.Require().NoError(err)
	suite.True(got.TrackingNumber().IsEqual(p.TrackingNumber()))
}

func (suite *ParcelRepositoryIntegrationTestSuite) newParcel(breadth *float64) *parcel.Parcel {
	pickupLoc, err := kernel.NewLocation(12.9716, 77.5946)
	suite.Require().NoError(err)
	dropLoc, err := kernel.NewLocation(13.0827, 80.2707)
	suite.Require().NoError(err)
	pickup, err := parcel.NewAddress("MG Road, Bengaluru", pickupLoc)
	suite.Require().NoError(err)
	drop, err := parcel.NewAddress("Anna Salai, Chennai", dropLoc)
	suite.Require().NoError(err)
	m, err := parcel.NewMeasurements(2, nil, nil, breadth)
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(
		kernel.NewTrackingNumber(),
		kernel.NewUUID(),
		pickup,
		drop,
		m,
		decimal.RequireFromString("3011.72"),
		decimal.RequireFromString("290.17"),
		"documents",
		"",
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return p
}

func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
