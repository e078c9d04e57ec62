package queries_test

import (
	"context"
	"testing"
	"time"

	"dronedelivery/internal/core/application/usecases/queries"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/run"

	"github.com/stretchr/testify/suite"
)

type GetAllRunsQueryHandlerTestSuite struct {
	runsDatabaseSuite
	handler queries.GetAllRunsQueryHandler
}

func (suite *GetAllRunsQueryHandlerTestSuite) SetupSuite() {
	suite.runsDatabaseSuite.SetupSuite()
	suite.handler = queries.NewGetAllRunsQueryHandler(suite.db)
}

func (suite *GetAllRunsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetAllRunsQuery("", 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAllRunsQueryHandlerTestSuite) TestHandle_NewestFirst() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := suite.addRun(base)
	middle := suite.addRun(base.Add(time.Minute))
	newest := suite.addRun(base.Add(2 * time.Minute))

	query, err := queries.NewGetAllRunsQuery("", 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{newest.ID(), middle.ID(), oldest.ID()}, ids(result))
}

func (suite *GetAllRunsQueryHandlerTestSuite) TestHandle_RespectsLimit() {
	base := time.Now().UTC()
	for i := range 5 {
		suite.addRun(base.Add(time.Duration(i) * time.Second))
	}

	query, err := queries.NewGetAllRunsQuery("", 2)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *GetAllRunsQueryHandlerTestSuite) TestHandle_FiltersByStatus() {
	base := time.Now().UTC()
	suite.addRun(base)
	completed := suite.addRun(base.Add(time.Second))
	suite.Require().NoError(completed.Complete(run.Outcome{Score: 355, Delivered: 5}, base.Add(time.Minute)))
	suite.Require().NoError(suite.repo.Update(context.Background(), completed))

	query, err := queries.NewGetAllRunsQuery("Completed", 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(completed.ID(), result[0].ID)
	suite.Equal("Completed", result[0].Status)
	suite.Equal(355, result[0].Score)
	suite.Equal(5, result[0].Delivered)
	suite.NotNil(result[0].FinishedAt)
}

func (suite *GetAllRunsQueryHandlerTestSuite) TestHandle_InvalidQuery() {
	_, err := suite.handler.Handle(context.Background(), queries.GetAllRunsQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetAllRunsQueryIsNotConstructed)
}

func ids(runs []queries.GetAllRunsQueryResponse) []kernel.UUID {
	result := make([]kernel.UUID, 0, len(runs))
	for _, r := range runs {
		result = append(result, r.ID)
	}
	return result
}

func TestGetAllRunsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAllRunsQueryHandlerTestSuite))
}
