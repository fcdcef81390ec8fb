package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplaintStatusRank(t *testing.T) {
	assert.Less(t, ComplaintStatusPending.Rank(), ComplaintStatusInProgress.Rank())
	assert.Less(t, ComplaintStatusInProgress.Rank(), ComplaintStatusResolved.Rank())
	assert.Equal(t, -1, ComplaintStatus("nonsense").Rank())
}
