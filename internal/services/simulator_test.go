package services

import (
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/codecops/cleanify-api/internal/models"
)

func (suite *BinServiceTestSuite) TestSimulatorTick_GrowsFillMonotonically() {
	low := suite.createBin(10)
	high := suite.createBin(98)
	simulator := NewSimulator(suite.service, time.Minute)

	for i := 0; i < 5; i++ {
		simulator.Tick()
	}

	var bins []models.Bin
	suite.Require().NoError(suite.db.Order("id").Find(&bins).Error)
	suite.Require().Len(bins, 2)

	assert.GreaterOrEqual(suite.T(), bins[0].FillLevel, low.FillLevel)
	assert.LessOrEqual(suite.T(), bins[0].FillLevel, 100)
	assert.GreaterOrEqual(suite.T(), bins[1].FillLevel, high.FillLevel)
	assert.LessOrEqual(suite.T(), bins[1].FillLevel, 100)

	for _, bin := range bins {
		assert.Equal(suite.T(), models.BinStatusForFill(bin.FillLevel), bin.Status)
	}
}
