package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suraksha-setu/relief-service/internal/api/http/handlers"
	"github.com/suraksha-setu/relief-service/internal/auth"
	"github.com/suraksha-setu/relief-service/internal/config"
	"github.com/suraksha-setu/relief-service/internal/events"
	"github.com/suraksha-setu/relief-service/internal/observability"
	"github.com/suraksha-setu/relief-service/internal/repository/repositorytest"
	"github.com/suraksha-setu/relief-service/internal/service"
	"github.com/suraksha-setu/relief-service/internal/storage"
)

// newTestApp assembles the full HTTP stack on in-memory stores.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	users := repositorytest.NewUserStore()
	incidents := repositorytest.NewIncidentStore()
	resources := repositorytest.NewResourceStore()
	broadcasts := repositorytest.NewBroadcastStore()
	checks := repositorytest.NewSafetyCheckStore()

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.BcryptCost = 4

	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(cfg, users)
	incidentService := service.NewIncidentService(incidents, users, dispatcher)
	resourceService := service.NewResourceService(resources, users, dispatcher)
	broadcastService := service.NewBroadcastService(broadcasts, users, dispatcher)
	safetyService := service.NewSafetyService(checks, users, dispatcher)
	volunteerService := service.NewVolunteerService(users)

	images, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService),
		Incidents:      handlers.NewIncidentsHandler(incidentService, images),
		Resources:      handlers.NewResourcesHandler(resourceService),
		Volunteers:     handlers.NewVolunteersHandler(volunteerService, incidentService),
		Broadcasts:     handlers.NewBroadcastsHandler(broadcastService),
		Safety:         handlers.NewSafetyHandler(safetyService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

// register creates an account and returns its id and token.
func register(t *testing.T, app *fiber.App, name, email, role string) (string, string) {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/api/users/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register %s: %v", email, body)

	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	authData := data["auth"].(map[string]any)
	return user["_id"].(string), authData["token"].(string)
}

func TestIncidentLifecycleFlow(t *testing.T) {
	app := newTestApp(t)

	_, reporterToken := register(t, app, "Asha", "asha@example.com", "USER")
	volunteerID, volunteerToken := register(t, app, "Ravi", "ravi@example.com", "VOLUNTEER")
	_, adminToken := register(t, app, "Admin", "admin@example.com", "ADMIN")

	// Report an incident.
	resp, body := doJSON(t, app, "POST", "/api/incidents", reporterToken, fiber.Map{
		"type":        "Flood",
		"description": "road submerged",
		"location":    fiber.Map{"type": "Point", "coordinates": []float64{77.59, 12.97}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "%v", body)
	incident := body["data"].(map[string]any)
	incidentID := incident["_id"].(string)
	assert.Equal(t, "Reported", incident["status"])
	assert.Equal(t, "MEDIUM", incident["urgency"])

	// Volunteer self-assigns.
	resp, body = doJSON(t, app, "PUT", "/api/incidents/"+incidentID+"/assign", volunteerToken, fiber.Map{
		"volunteerId": volunteerID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", body)
	assigned := body["data"].(map[string]any)["assignedTo"].(map[string]any)
	assert.Equal(t, volunteerID, assigned["_id"])
	assert.Equal(t, "Ravi", assigned["name"])

	// Shows up in the volunteer's queue.
	resp, body = doJSON(t, app, "GET", "/api/volunteers/my-incidents", volunteerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	mine := body["data"].([]any)
	require.Len(t, mine, 1)

	// Admin resolves.
	resp, body = doJSON(t, app, "PUT", "/api/incidents/"+incidentID+"/status", adminToken, fiber.Map{
		"status": "Resolved",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", body)
	assert.Equal(t, "Resolved", body["data"].(map[string]any)["status"])

	// The list is visible to every authenticated role.
	resp, body = doJSON(t, app, "GET", "/api/incidents", reporterToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["data"].([]any), 1)
}

func TestAssignmentAuthorization(t *testing.T) {
	app := newTestApp(t)

	_, reporterToken := register(t, app, "Asha", "asha@example.com", "USER")
	_, volunteerToken := register(t, app, "Ravi", "ravi@example.com", "VOLUNTEER")
	otherID, _ := register(t, app, "Meera", "meera@example.com", "VOLUNTEER")

	resp, body := doJSON(t, app, "POST", "/api/incidents", reporterToken, fiber.Map{
		"type":        "Fire",
		"description": "warehouse fire",
		"location":    fiber.Map{"type": "Point", "coordinates": []float64{77.59, 12.97}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	incidentID := body["data"].(map[string]any)["_id"].(string)

	// A volunteer cannot hand the incident to someone else.
	resp, body = doJSON(t, app, "PUT", "/api/incidents/"+incidentID+"/assign", volunteerToken, fiber.Map{
		"volunteerId": otherID,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "you can only assign yourself to incidents", errBody["message"])

	// Status changes stay admin-only.
	resp, body = doJSON(t, app, "PUT", "/api/incidents/"+incidentID+"/status", volunteerToken, fiber.Map{
		"status": "Resolved",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "not authorized as an admin", body["error"].(map[string]any)["message"])
}

func TestAuthenticationGuards(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/incidents", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "not authorized, no token", body["error"].(map[string]any)["message"])

	resp, body = doJSON(t, app, "GET", "/api/incidents", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "not authorized, token failed", body["error"].(map[string]any)["message"])
}

func TestResourceFlow(t *testing.T) {
	app := newTestApp(t)

	_, userToken := register(t, app, "Asha", "asha@example.com", "USER")
	_, adminToken := register(t, app, "Admin", "admin@example.com", "ADMIN")

	// Resource creation is admin-only.
	resp, _ := doJSON(t, app, "POST", "/api/resources", userToken, fiber.Map{
		"name":     "Water Bottles",
		"category": "Food",
		"quantity": 100,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/resources", adminToken, fiber.Map{
		"name":     "Water Bottles",
		"category": "Food",
		"quantity": 100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "%v", body)
	resource := body["data"].(map[string]any)
	resourceID := resource["_id"].(string)
	assert.Equal(t, "In Stock", resource["status"])
	assert.Equal(t, "Central Warehouse", resource["location"])

	// Quantity update re-derives status; negatives clamp to zero.
	resp, body = doJSON(t, app, "PUT", "/api/resources/"+resourceID, adminToken, fiber.Map{
		"quantity": 7,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Low", body["data"].(map[string]any)["status"])

	resp, body = doJSON(t, app, "PUT", "/api/resources/"+resourceID, adminToken, fiber.Map{
		"quantity": -3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := body["data"].(map[string]any)
	assert.Equal(t, float64(0), updated["quantity"])
	assert.Equal(t, "Out of Stock", updated["status"])

	// Everyone authenticated can read the list.
	resp, body = doJSON(t, app, "GET", "/api/resources", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["data"].([]any), 1)
}

func TestBroadcastVisibility(t *testing.T) {
	app := newTestApp(t)

	_, userToken := register(t, app, "Asha", "asha@example.com", "USER")
	_, volunteerToken := register(t, app, "Ravi", "ravi@example.com", "VOLUNTEER")
	_, adminToken := register(t, app, "Admin", "admin@example.com", "ADMIN")

	// Only admins may broadcast.
	resp, _ := doJSON(t, app, "POST", "/api/broadcasts", userToken, fiber.Map{
		"message":        "hello",
		"targetAudience": "ALL_USERS",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	for audience, message := range map[string]string{
		"ALL_USERS":      "shelter open",
		"ALL_VOLUNTEERS": "extra shift",
		"ADMINS_ONLY":    "budget review",
	} {
		resp, body := doJSON(t, app, "POST", "/api/broadcasts", adminToken, fiber.Map{
			"message":        message,
			"targetAudience": audience,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, "%v", body)
	}

	count := func(token string) int {
		resp, body := doJSON(t, app, "GET", "/api/broadcasts", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return len(body["data"].([]any))
	}
	assert.Equal(t, 1, count(userToken))
	assert.Equal(t, 2, count(volunteerToken))
	assert.Equal(t, 3, count(adminToken))
}

func TestSafetyCheckFlow(t *testing.T) {
	app := newTestApp(t)

	_, token := register(t, app, "Asha", "asha@example.com", "USER")

	resp, body := doJSON(t, app, "POST", "/api/safety", token, fiber.Map{
		"status":   "NEEDS_HELP",
		"location": fiber.Map{"type": "Point", "coordinates": []float64{77.59, 12.97}},
		"message":  "trapped near the bridge",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "%v", body)

	resp, body = doJSON(t, app, "POST", "/api/safety", token, fiber.Map{
		"status":   "SAFE",
		"location": fiber.Map{"type": "Point", "coordinates": []float64{77.60, 12.98}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// History is newest-first and scoped to the caller.
	resp, body = doJSON(t, app, "GET", "/api/safety/history", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := body["data"].([]any)
	require.Len(t, history, 2)
	assert.Equal(t, "SAFE", history[0].(map[string]any)["status"])

	// The profile snapshot reflects the latest check-in.
	resp, body = doJSON(t, app, "GET", "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snapshot := body["data"].(map[string]any)["safetyStatus"].(map[string]any)
	assert.Equal(t, "SAFE", snapshot["status"])
	assert.NotEmpty(t, snapshot["timestamp"])
}

func TestVolunteerAvailabilityAndRoster(t *testing.T) {
	app := newTestApp(t)

	_, userToken := register(t, app, "Asha", "asha@example.com", "USER")
	_, volunteerToken := register(t, app, "Ravi", "ravi@example.com", "VOLUNTEER")
	_, adminToken := register(t, app, "Admin", "admin@example.com", "ADMIN")

	// Roster is admin-only.
	resp, _ := doJSON(t, app, "GET", "/api/volunteers/available", userToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/api/volunteers/available", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["data"].([]any), 1)

	// Going off-duty removes the volunteer from the roster.
	resp, body = doJSON(t, app, "PUT", "/api/volunteers/availability", volunteerToken, fiber.Map{
		"isAvailable": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", body)
	assert.Equal(t, false, body["data"].(map[string]any)["isAvailable"])

	resp, body = doJSON(t, app, "GET", "/api/volunteers/available", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"].([]any))

	// Availability self-service is volunteer-only.
	resp, _ = doJSON(t, app, "PUT", "/api/volunteers/availability", userToken, fiber.Map{
		"isAvailable": false,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSuspensionBlocksLogin(t *testing.T) {
	app := newTestApp(t)

	userID, _ := register(t, app, "Asha", "asha@example.com", "USER")
	_, adminToken := register(t, app, "Admin", "admin@example.com", "ADMIN")

	resp, body := doJSON(t, app, "PUT", fmt.Sprintf("/api/users/%s/status", userID), adminToken, fiber.Map{
		"isSuspended": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", body)
	assert.Equal(t, true, body["data"].(map[string]any)["isSuspended"])

	resp, body = doJSON(t, app, "POST", "/api/users/login", "", fiber.Map{
		"email":    "asha@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "account suspended", body["error"].(map[string]any)["message"])
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/users/register", "", fiber.Map{
		"name":     "Asha",
		"email":    "not-an-email",
		"password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/users/register", "", fiber.Map{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/health/live", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
}
