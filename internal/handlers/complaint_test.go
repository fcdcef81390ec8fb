package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/codecops/cleanify-api/internal/constants"
	"github.com/codecops/cleanify-api/internal/dto"
	"github.com/codecops/cleanify-api/internal/models"
	"github.com/codecops/cleanify-api/internal/repository"
	"github.com/codecops/cleanify-api/internal/services"
)

// ComplaintHandlerTestSuite defines the test suite for ComplaintHandler
type ComplaintHandlerTestSuite struct {
	suite.Suite
	db        *gorm.DB
	handler   *ComplaintHandler
	lifecycle *services.LifecycleService
}

// SetupTest runs before each test
func (suite *ComplaintHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Bin{},
		&models.Alert{},
		&models.Complaint{},
		&models.Task{},
		&models.RewardEntry{},
	)
	suite.Require().NoError(err)

	suite.lifecycle = services.NewLifecycleService(
		suite.db,
		repository.NewComplaintRepository(suite.db),
		repository.NewTaskRepository(suite.db),
		repository.NewRewardRepository(suite.db),
		repository.NewUserRepository(suite.db),
		repository.NewBinRepository(suite.db),
	)
	suite.handler = NewComplaintHandler(suite.lifecycle)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ComplaintHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ComplaintHandlerTestSuite) createTestUser(name string, role models.UserRole) *models.User {
	user := &models.User{
		Name:         name,
		Email:        name + "@cleanify.com",
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *ComplaintHandlerTestSuite) createTestComplaint(userID uint64) *models.Complaint {
	complaint, err := suite.lifecycle.SubmitComplaint(services.SubmitComplaintInput{
		UserID:      userID,
		Location:    "Supe Road",
		Description: "Garbage overflow since 2 days",
	})
	suite.Require().NoError(err)
	return complaint
}

func (suite *ComplaintHandlerTestSuite) createAuthContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if user != nil {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, *user)
	}

	return c, w
}

func (suite *ComplaintHandlerTestSuite) setIDParam(c *gin.Context, id uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(id, 10)}}
}

// TestSubmitComplaint_Success tests a citizen filing a complaint
func (suite *ComplaintHandlerTestSuite) TestSubmitComplaint_Success() {
	citizen := suite.createTestUser("amit", models.RoleCitizen)

	requestBody := map[string]interface{}{
		"location":    "Market Yard",
		"description": "Stray dogs tearing garbage bags",
		"latitude":    18.1514,
		"longitude":   74.5815,
		"media_urls":  []string{"/api/tasks/media/photo.jpg"},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/complaints", body, citizen)

	suite.handler.SubmitComplaint(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.ComplaintDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ComplaintStatusPending, response.Status)
	assert.Equal(suite.T(), citizen.ID, response.UserID)
	assert.Equal(suite.T(), "amit", response.UserName)
	suite.Require().NotNil(response.Latitude)
	assert.Equal(suite.T(), 18.1514, *response.Latitude)
	assert.Len(suite.T(), response.MediaURLs, 1)
}

// TestSubmitComplaint_Unauthorized tests filing without authentication
func (suite *ComplaintHandlerTestSuite) TestSubmitComplaint_Unauthorized() {
	body, _ := json.Marshal(map[string]interface{}{
		"location": "Market Yard", "description": "overflow",
	})
	c, w := suite.createAuthContext("POST", "/api/complaints", body, nil)

	suite.handler.SubmitComplaint(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestSubmitComplaint_MissingFields tests binding validation
func (suite *ComplaintHandlerTestSuite) TestSubmitComplaint_MissingFields() {
	citizen := suite.createTestUser("amit", models.RoleCitizen)

	body, _ := json.Marshal(map[string]interface{}{"location": "Market Yard"})
	c, w := suite.createAuthContext("POST", "/api/complaints", body, citizen)

	suite.handler.SubmitComplaint(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSubmitComplaint_HalfCoordinates tests the coordinate pair rule
func (suite *ComplaintHandlerTestSuite) TestSubmitComplaint_HalfCoordinates() {
	citizen := suite.createTestUser("amit", models.RoleCitizen)

	requestBody := map[string]interface{}{
		"location":    "Market Yard",
		"description": "overflow",
		"latitude":    18.1514,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/complaints", body, citizen)

	suite.handler.SubmitComplaint(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListComplaints_CitizenSeesOwn tests citizen scoping with task links
func (suite *ComplaintHandlerTestSuite) TestListComplaints_CitizenSeesOwn() {
	citizen := suite.createTestUser("amit", models.RoleCitizen)
	neighbour := suite.createTestUser("sara", models.RoleCitizen)
	worker := suite.createTestUser("ravi", models.RoleWorker)
	complaint := suite.createTestComplaint(citizen.ID)
	suite.createTestComplaint(neighbour.ID)

	task, err := suite.lifecycle.AssignTask(services.AssignTaskInput{
		WorkerID:    worker.ID,
		Title:       "Clear overflow",
		Location:    "Supe Road",
		ComplaintID: &complaint.ID,
	})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("GET", "/api/complaints", nil, citizen)

	suite.handler.ListComplaints(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]dto.ComplaintDTO
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response["complaints"], 1)
	assert.Equal(suite.T(), complaint.ID, response["complaints"][0].ID)
	suite.Require().NotNil(response["complaints"][0].LinkedTaskID)
	assert.Equal(suite.T(), task.ID, *response["complaints"][0].LinkedTaskID)
}

// TestListComplaints_AdminSeesAll tests admin scoping
func (suite *ComplaintHandlerTestSuite) TestListComplaints_AdminSeesAll() {
	admin := suite.createTestUser("admin", models.RoleAdmin)
	citizen := suite.createTestUser("amit", models.RoleCitizen)
	neighbour := suite.createTestUser("sara", models.RoleCitizen)
	suite.createTestComplaint(citizen.ID)
	suite.createTestComplaint(neighbour.ID)

	c, w := suite.createAuthContext("GET", "/api/complaints", nil, admin)

	suite.handler.ListComplaints(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]dto.ComplaintDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response["complaints"], 2)
}

// TestRespond_DefaultsToInProgress tests the response default status
func (suite *ComplaintHandlerTestSuite) TestRespond_DefaultsToInProgress() {
	admin := suite.createTestUser("admin", models.RoleAdmin)
	citizen := suite.createTestUser("amit", models.RoleCitizen)
	complaint := suite.createTestComplaint(citizen.ID)

	body, _ := json.Marshal(map[string]interface{}{"response": "Crew dispatched"})
	c, w := suite.createAuthContext("PUT", "/api/complaints/1/respond", body, admin)
	suite.setIDParam(c, complaint.ID)

	suite.handler.Respond(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ComplaintDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ComplaintStatusInProgress, response.Status)
	suite.Require().NotNil(response.Response)
	assert.Equal(suite.T(), "Crew dispatched", *response.Response)
	assert.NotNil(suite.T(), response.RespondedAt)
}

// TestRespond_ResolvedComplaint tests responding after resolution
func (suite *ComplaintHandlerTestSuite) TestRespond_ResolvedComplaint() {
	admin := suite.createTestUser("admin", models.RoleAdmin)
	citizen := suite.createTestUser("amit", models.RoleCitizen)
	complaint := suite.createTestComplaint(citizen.ID)
	_, err := suite.lifecycle.ResolveComplaint(complaint.ID)
	suite.Require().NoError(err)

	body, _ := json.Marshal(map[string]interface{}{"response": "too late"})
	c, w := suite.createAuthContext("PUT", "/api/complaints/1/respond", body, admin)
	suite.setIDParam(c, complaint.ID)

	suite.handler.Respond(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestResolve_Success tests direct resolution
func (suite *ComplaintHandlerTestSuite) TestResolve_Success() {
	admin := suite.createTestUser("admin", models.RoleAdmin)
	citizen := suite.createTestUser("amit", models.RoleCitizen)
	complaint := suite.createTestComplaint(citizen.ID)

	c, w := suite.createAuthContext("PUT", "/api/complaints/1/resolve", nil, admin)
	suite.setIDParam(c, complaint.ID)

	suite.handler.Resolve(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ComplaintDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ComplaintStatusResolved, response.Status)
}

// TestResolve_NotFound tests resolving a missing complaint
func (suite *ComplaintHandlerTestSuite) TestResolve_NotFound() {
	admin := suite.createTestUser("admin", models.RoleAdmin)

	c, w := suite.createAuthContext("PUT", "/api/complaints/404/resolve", nil, admin)
	suite.setIDParam(c, 404)

	suite.handler.Resolve(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestTaskSuggestion_Success tests the assignment prefill endpoint
func (suite *ComplaintHandlerTestSuite) TestTaskSuggestion_Success() {
	admin := suite.createTestUser("admin", models.RoleAdmin)
	citizen := suite.createTestUser("amit", models.RoleCitizen)
	complaint := suite.createTestComplaint(citizen.ID)

	c, w := suite.createAuthContext("GET", "/api/complaints/1/task-suggestion", nil, admin)
	suite.setIDParam(c, complaint.ID)

	suite.handler.TaskSuggestion(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "high", response["priority"])
	assert.Contains(suite.T(), response["title"], "Supe Road")
}

// TestInvalidIDParam tests the shared ID parsing
func (suite *ComplaintHandlerTestSuite) TestInvalidIDParam() {
	admin := suite.createTestUser("admin", models.RoleAdmin)

	c, w := suite.createAuthContext("PUT", "/api/complaints/abc/resolve", nil, admin)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	suite.handler.Resolve(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSuite runs the test suite
func TestComplaintHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ComplaintHandlerTestSuite))
}
