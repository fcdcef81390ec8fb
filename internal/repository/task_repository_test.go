package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/codecops/cleanify-api/internal/models"
)

// TaskRepositoryTestSuite defines the test suite for GormTaskRepository
type TaskRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo TaskRepository
}

// SetupTest runs before each test
func (suite *TaskRepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{})
	suite.Require().NoError(err)

	suite.repo = NewTaskRepository(suite.db)
}

// TearDownTest runs after each test
func (suite *TaskRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskRepositoryTestSuite) createCompletedTask() *models.Task {
	worker := &models.User{
		Name:         "Field Worker",
		Email:        "worker@cleanify.local",
		PasswordHash: "x",
		Role:         models.RoleWorker,
	}
	suite.Require().NoError(suite.db.Create(worker).Error)

	now := time.Now()
	task := &models.Task{
		WorkerID:    worker.ID,
		WorkerName:  worker.Name,
		Title:       "Clear overflowing bin",
		Location:    "Station Road",
		Priority:    models.PriorityMedium,
		Status:      models.TaskStatusCompleted,
		Review:      models.ReviewUnreviewed,
		AssignedAt:  now.Add(-time.Hour),
		CompletedAt: &now,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func (suite *TaskRepositoryTestSuite) TestClaimApproval_ClaimsExactlyOnce() {
	task := suite.createCompletedTask()
	now := time.Now()

	claimed, err := suite.repo.ClaimApproval(task.ID, now)
	suite.Require().NoError(err)
	suite.Equal(int64(1), claimed)

	// A second reviewer issuing the same update must claim nothing.
	claimed, err = suite.repo.ClaimApproval(task.ID, now)
	suite.Require().NoError(err)
	suite.Equal(int64(0), claimed)

	fresh, err := suite.repo.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ReviewApproved, fresh.Review)
	suite.Require().NotNil(fresh.ApprovedAt)
}

func (suite *TaskRepositoryTestSuite) TestClaimApproval_SkipsNonCompleted() {
	task := suite.createCompletedTask()
	suite.Require().NoError(suite.db.Model(task).
		Updates(map[string]interface{}{
			"status":       models.TaskStatusInProgress,
			"completed_at": nil,
		}).Error)

	claimed, err := suite.repo.ClaimApproval(task.ID, time.Now())
	suite.Require().NoError(err)
	suite.Equal(int64(0), claimed)
}

func (suite *TaskRepositoryTestSuite) TestClaimRejection_ResetsToPending() {
	task := suite.createCompletedTask()

	claimed, err := suite.repo.ClaimRejection(task.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), claimed)

	fresh, err := suite.repo.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusPending, fresh.Status)
	suite.Equal(models.ReviewUnreviewed, fresh.Review)
	suite.Nil(fresh.CompletedAt)

	// The reset row is no longer claimable by either path.
	claimed, err = suite.repo.ClaimRejection(task.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), claimed)

	claimed, err = suite.repo.ClaimApproval(task.ID, time.Now())
	suite.Require().NoError(err)
	suite.Equal(int64(0), claimed)
}

func (suite *TaskRepositoryTestSuite) TestClaimRejection_CannotUndoApproval() {
	task := suite.createCompletedTask()

	claimed, err := suite.repo.ClaimApproval(task.ID, time.Now())
	suite.Require().NoError(err)
	suite.Equal(int64(1), claimed)

	claimed, err = suite.repo.ClaimRejection(task.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), claimed)

	fresh, err := suite.repo.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ReviewApproved, fresh.Review)
	suite.Equal(models.TaskStatusCompleted, fresh.Status)
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}
