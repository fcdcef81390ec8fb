package services

import (
	"github.com/stretchr/testify/assert"

	"github.com/codecops/cleanify-api/internal/models"
)

func (suite *LifecycleServiceTestSuite) createBinAt(location string, lat, lon float64) *models.Bin {
	bin := &models.Bin{
		Location:      location,
		Area:          "Central",
		Latitude:      &lat,
		Longitude:     &lon,
		FillLevel:     30,
		Status:        models.BinStatusEmpty,
		SensorBattery: 90,
	}
	suite.db.Create(bin)
	return bin
}

func (suite *LifecycleServiceTestSuite) TestTaskSuggestion_PrefillsFromComplaint() {
	citizen := suite.createUser("amit", models.RoleCitizen)
	complaint := suite.submitComplaint(citizen.ID)

	suggestion, err := suite.service.TaskSuggestion(complaint.ID)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), complaint.ID, suggestion.ComplaintID)
	assert.Equal(suite.T(), "Resolve waste complaint at Supe Road", suggestion.Title)
	assert.Equal(suite.T(), complaint.Description, suggestion.Description)
	assert.Equal(suite.T(), models.PriorityHigh, suggestion.Priority)
	assert.Nil(suite.T(), suggestion.NearestBin)
}

func (suite *LifecycleServiceTestSuite) TestTaskSuggestion_FindsNearestBin() {
	citizen := suite.createUser("amit", models.RoleCitizen)
	far := suite.createBinAt("MIDC Phase 2", 18.2100, 74.6100)
	near := suite.createBinAt("Bus Stand", 18.1520, 74.5820)

	lat, lon := 18.1514, 74.5815
	complaint, err := suite.service.SubmitComplaint(SubmitComplaintInput{
		UserID:      citizen.ID,
		Location:    "Bus Stand Road",
		Description: "Overflowing bin near the stand",
		Latitude:    &lat,
		Longitude:   &lon,
	})
	suite.Require().NoError(err)

	suggestion, err := suite.service.TaskSuggestion(complaint.ID)
	suite.Require().NoError(err)

	suite.Require().NotNil(suggestion.NearestBin)
	assert.Equal(suite.T(), near.ID, suggestion.NearestBin.BinID)
	assert.NotEqual(suite.T(), far.ID, suggestion.NearestBin.BinID)
	assert.Equal(suite.T(), "Bus Stand", suggestion.NearestBin.Location)
	// ~0.05 degrees of separation would be kilometres; this bin is well under one
	assert.Less(suite.T(), suggestion.NearestBin.DistanceMeters, 200.0)
	assert.Greater(suite.T(), suggestion.NearestBin.DistanceMeters, 0.0)
}

func (suite *LifecycleServiceTestSuite) TestTaskSuggestion_ComplaintNotFound() {
	_, err := suite.service.TaskSuggestion(404)
	assert.ErrorIs(suite.T(), err, ErrComplaintNotFound)
}
