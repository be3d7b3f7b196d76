package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/domain"
)

func newAuditFixture() (*MockAuditRepository, *capturePublisher, *AuditUseCase) {
	auditRepo := new(MockAuditRepository)
	publisher := &capturePublisher{}
	return auditRepo, publisher, NewAuditUseCase(auditRepo, publisher)
}

func TestAuditFindAll_RoleGate(t *testing.T) {
	auditRepo, _, uc := newAuditFixture()
	entries := []*domain.AuditLogEntry{{ID: "a1"}}
	auditRepo.On("FindAll", mock.Anything, 50).Return(entries, nil)

	got, err := uc.FindAll(context.Background(), adminA, 50)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	got, err = uc.FindAll(context.Background(), ownerA, 50)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	_, err = uc.FindAll(context.Background(), viewerA, 50)
	assert.True(t, domain.IsAccessDenied(err))
	auditRepo.AssertNumberOfCalls(t, "FindAll", 2)
}

func TestRecord_EmptyActionRejected(t *testing.T) {
	_, publisher, uc := newAuditFixture()

	err := uc.Record(context.Background(), viewerA, RecordActionRequest{})

	assert.True(t, domain.IsInvalidRequest(err))
	assert.Empty(t, publisher.events)
}

func TestRecord_PublishesNormalizedEvent(t *testing.T) {
	_, publisher, uc := newAuditFixture()

	err := uc.Record(context.Background(), viewerA, RecordActionRequest{
		Action:     "updated profile settings",
		ResourceID: "viewer-1",
	})

	require.NoError(t, err)
	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, viewerA.ID, event.UserID)
	assert.Equal(t, domain.ActionUpdate, event.Action)
	assert.Equal(t, "User", event.ResourceType)
	assert.Equal(t, "viewer-1", event.ResourceID)
}

func TestNormalizeAction(t *testing.T) {
	cases := []struct {
		action string
		want   domain.ActionType
	}{
		{"CREATE", domain.ActionCreate},
		{"TASK_STATUS_CHANGED", domain.ActionTaskStatusChanged},
		{"created a saved filter", domain.ActionCreate},
		{"deleted attachment", domain.ActionDelete},
		{"read dashboard", domain.ActionRead},
		{"changed theme", domain.ActionUpdate},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeAction(tc.action), "action %q", tc.action)
	}
}

func TestNormalizeResourceType(t *testing.T) {
	cases := []struct {
		resourceType string
		action       string
		want         string
	}{
		{"Task", "whatever", "Task"},
		{"TASK", "whatever", "Task"},
		{"USER", "whatever", "User"},
		{"ORGANIZATION", "whatever", "Organization"},
		{"", "updated security settings", "User"},
		{"", "reassigned task", "Task"},
		{"UNKNOWN", "renamed org", "Organization"},
		{"", "pressed a button", "UNKNOWN"},
	}
	for _, tc := range cases {
		got := normalizeResourceType(tc.resourceType, tc.action)
		assert.Equal(t, tc.want, got, "resourceType %q action %q", tc.resourceType, tc.action)
	}
}
