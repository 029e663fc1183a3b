package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/suraksha-setu/relief-service/internal/domain"
	"github.com/suraksha-setu/relief-service/internal/events"
	"github.com/suraksha-setu/relief-service/internal/repository/repositorytest"
	apperrors "github.com/suraksha-setu/relief-service/pkg/util"
)

var validLocation = json.RawMessage(`{"type":"Point","coordinates":[77.59,12.97],"address":"MG Road"}`)

func newTestIncidentService() (*IncidentService, *repositorytest.IncidentStore, *repositorytest.UserStore) {
	incidents := repositorytest.NewIncidentStore()
	users := repositorytest.NewUserStore()
	return NewIncidentService(incidents, users, events.NewInMemoryDispatcher()), incidents, users
}

func seedUser(users *repositorytest.UserStore, name string, role domain.Role) domain.User {
	return users.Seed(domain.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	})
}

func TestReport_Defaults(t *testing.T) {
	svc, _, users := newTestIncidentService()
	reporter := seedUser(users, "asha", domain.RoleUser)

	incident, err := svc.Report(context.Background(), &reporter, IncidentCreateInput{
		Type:        domain.IncidentTypeFlood,
		Description: "  road submerged  ",
		Location:    validLocation,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStatusReported, incident.Status)
	assert.Equal(t, domain.UrgencyMedium, incident.Urgency)
	assert.Equal(t, "road submerged", incident.Description)
	assert.Equal(t, reporter.ID, incident.ReportedBy)
	assert.Nil(t, incident.AssignedTo)
}

func TestReport_UrgencyCaseInsensitive(t *testing.T) {
	svc, _, users := newTestIncidentService()
	reporter := seedUser(users, "asha", domain.RoleUser)

	incident, err := svc.Report(context.Background(), &reporter, IncidentCreateInput{
		Type:        domain.IncidentTypeFire,
		Description: "warehouse fire",
		Location:    validLocation,
		Urgency:     "high",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UrgencyHigh, incident.Urgency)
}

func TestReport_StringWrappedLocation(t *testing.T) {
	svc, _, users := newTestIncidentService()
	reporter := seedUser(users, "asha", domain.RoleUser)

	// Multipart forms send location as a JSON-encoded string value.
	wrapped, err := json.Marshal(string(validLocation))
	require.NoError(t, err)

	incident, err := svc.Report(context.Background(), &reporter, IncidentCreateInput{
		Type:        domain.IncidentTypeFlood,
		Description: "submerged",
		Location:    wrapped,
	})
	require.NoError(t, err)
	assert.Equal(t, "Point", incident.Location.Type)
	assert.Equal(t, []float64{77.59, 12.97}, incident.Location.Coordinates)
	assert.Equal(t, "MG Road", incident.Location.Address)
}

func TestReport_RejectsBadLocation(t *testing.T) {
	svc, _, users := newTestIncidentService()
	reporter := seedUser(users, "asha", domain.RoleUser)
	ctx := context.Background()

	cases := map[string]json.RawMessage{
		"missing":          nil,
		"null":             json.RawMessage(`null`),
		"not a point":      json.RawMessage(`{"type":"Polygon","coordinates":[1,2]}`),
		"one coordinate":   json.RawMessage(`{"type":"Point","coordinates":[77.59]}`),
		"malformed string": json.RawMessage(`"{not json"`),
	}
	for name, loc := range cases {
		_, err := svc.Report(ctx, &reporter, IncidentCreateInput{
			Type:        domain.IncidentTypeFlood,
			Description: "x",
			Location:    loc,
		})
		require.Error(t, err, name)
		assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus, name)
	}
}

func TestReport_RejectsUnknownTypeAndUrgency(t *testing.T) {
	svc, _, users := newTestIncidentService()
	reporter := seedUser(users, "asha", domain.RoleUser)
	ctx := context.Background()

	_, err := svc.Report(ctx, &reporter, IncidentCreateInput{
		Type:        domain.IncidentType("Meteor"),
		Description: "x",
		Location:    validLocation,
	})
	require.Error(t, err)

	_, err = svc.Report(ctx, &reporter, IncidentCreateInput{
		Type:        domain.IncidentTypeFlood,
		Description: "x",
		Location:    validLocation,
		Urgency:     "EXTREME",
	})
	require.Error(t, err)
}

func TestAssign_SelfAssignment(t *testing.T) {
	svc, _, users := newTestIncidentService()
	reporter := seedUser(users, "asha", domain.RoleUser)
	volunteer := seedUser(users, "ravi", domain.RoleVolunteer)

	incident, err := svc.Report(context.Background(), &reporter, IncidentCreateInput{
		Type:        domain.IncidentTypeFlood,
		Description: "submerged",
		Location:    validLocation,
	})
	require.NoError(t, err)

	view, err := svc.Assign(context.Background(), &volunteer, incident.ID.Hex(), volunteer.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, view.Incident.AssignedTo)
	assert.Equal(t, volunteer.ID, *view.Incident.AssignedTo)
	require.NotNil(t, view.Assignee)
	assert.Equal(t, "ravi", view.Assignee.Name)
	require.NotNil(t, view.Reporter)
	assert.Equal(t, "asha", view.Reporter.Name)
}

func TestAssign_NonAdminCannotAssignOthers(t *testing.T) {
	svc, incidents, users := newTestIncidentService()
	reporter := seedUser(users, "asha", domain.RoleUser)
	volunteer := seedUser(users, "ravi", domain.RoleVolunteer)
	other := seedUser(users, "meera", domain.RoleVolunteer)

	incident, err := svc.Report(context.Background(), &reporter, IncidentCreateInput{
		Type:        domain.IncidentTypeFlood,
		Description: "submerged",
		Location:    validLocation,
	})
	require.NoError(t, err)

	_, err = svc.Assign(context.Background(), &volunteer, incident.ID.Hex(), other.ID.Hex())
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 403, domainErr.HTTPStatus)
	assert.Equal(t, "you can only assign yourself to incidents", domainErr.Message)

	// Rejected assignment must leave the document untouched.
	stored, err := incidents.GetByID(context.Background(), incident.ID.Hex())
	require.NoError(t, err)
	assert.Nil(t, stored.AssignedTo)
}

func TestAssign_AdminAssignsAnyoneAndReassigns(t *testing.T) {
	svc, _, users := newTestIncidentService()
	admin := seedUser(users, "admin", domain.RoleAdmin)
	first := seedUser(users, "ravi", domain.RoleVolunteer)
	second := seedUser(users, "meera", domain.RoleVolunteer)

	incident, err := svc.Report(context.Background(), &admin, IncidentCreateInput{
		Type:        domain.IncidentTypeRescue,
		Description: "collapsed wall",
		Location:    validLocation,
	})
	require.NoError(t, err)

	view, err := svc.Assign(context.Background(), &admin, incident.ID.Hex(), first.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, first.ID, *view.Incident.AssignedTo)

	// Last write wins.
	view, err = svc.Assign(context.Background(), &admin, incident.ID.Hex(), second.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, second.ID, *view.Incident.AssignedTo)
}

func TestAssign_UnknownIncident(t *testing.T) {
	svc, _, users := newTestIncidentService()
	admin := seedUser(users, "admin", domain.RoleAdmin)

	_, err := svc.Assign(context.Background(), &admin, primitive.NewObjectID().Hex(), admin.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	svc, _, users := newTestIncidentService()
	admin := seedUser(users, "admin", domain.RoleAdmin)

	incident, err := svc.Report(context.Background(), &admin, IncidentCreateInput{
		Type:        domain.IncidentTypeFlood,
		Description: "submerged",
		Location:    validLocation,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), &admin, incident.ID.Hex(), domain.IncidentStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStatusInProgress, updated.Status)

	// Empty status leaves the current value unchanged.
	updated, err = svc.UpdateStatus(context.Background(), &admin, incident.ID.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStatusInProgress, updated.Status)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _, users := newTestIncidentService()
	admin := seedUser(users, "admin", domain.RoleAdmin)

	incident, err := svc.Report(context.Background(), &admin, IncidentCreateInput{
		Type:        domain.IncidentTypeFlood,
		Description: "submerged",
		Location:    validLocation,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), &admin, incident.ID.Hex(), domain.IncidentStatus("Done"))
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestList_RoleBlindAndPopulated(t *testing.T) {
	svc, _, users := newTestIncidentService()
	reporter := seedUser(users, "asha", domain.RoleUser)
	volunteer := seedUser(users, "ravi", domain.RoleVolunteer)
	ctx := context.Background()

	first, err := svc.Report(ctx, &reporter, IncidentCreateInput{
		Type:        domain.IncidentTypeFlood,
		Description: "first",
		Location:    validLocation,
	})
	require.NoError(t, err)
	_, err = svc.Report(ctx, &volunteer, IncidentCreateInput{
		Type:        domain.IncidentTypeFire,
		Description: "second",
		Location:    validLocation,
	})
	require.NoError(t, err)

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "second", views[0].Incident.Description)
	assert.Equal(t, "first", views[1].Incident.Description)
	assert.Equal(t, first.ID, views[1].Incident.ID)
	require.NotNil(t, views[1].Reporter)
	assert.Equal(t, "asha", views[1].Reporter.Name)
}

func TestListAssignedTo(t *testing.T) {
	svc, _, users := newTestIncidentService()
	admin := seedUser(users, "admin", domain.RoleAdmin)
	volunteer := seedUser(users, "ravi", domain.RoleVolunteer)
	ctx := context.Background()

	mine, err := svc.Report(ctx, &admin, IncidentCreateInput{
		Type:        domain.IncidentTypeFlood,
		Description: "assigned to me",
		Location:    validLocation,
	})
	require.NoError(t, err)
	_, err = svc.Report(ctx, &admin, IncidentCreateInput{
		Type:        domain.IncidentTypeFire,
		Description: "unassigned",
		Location:    validLocation,
	})
	require.NoError(t, err)

	_, err = svc.Assign(ctx, &admin, mine.ID.Hex(), volunteer.ID.Hex())
	require.NoError(t, err)

	views, err := svc.ListAssignedTo(ctx, &volunteer)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "assigned to me", views[0].Incident.Description)
}
