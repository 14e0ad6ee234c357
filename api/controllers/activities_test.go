package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kindbridge/kindbridge-backend/internal/activities"
	"github.com/kindbridge/kindbridge-backend/internal/dashboard"
	"github.com/kindbridge/kindbridge-backend/pkg/enums"
)

type stubActivityService struct {
	assignFn   func(ctx context.Context, callerID string, dto activities.AssignActivityDTO) (activities.ActivityDTO, error)
	cancelFn   func(ctx context.Context, callerID string, activityID int64) (activities.ActivityDTO, error)
	completeFn func(ctx context.Context, callerID string, activityID int64) (activities.ActivityDTO, error)
	listFn     func(ctx context.Context, userID string) ([]activities.ActivityDTO, error)
}

func (s stubActivityService) Assign(ctx context.Context, callerID string, dto activities.AssignActivityDTO) (activities.ActivityDTO, error) {
	if s.assignFn != nil {
		return s.assignFn(ctx, callerID, dto)
	}
	return activities.ActivityDTO{}, nil
}

func (s stubActivityService) Cancel(ctx context.Context, callerID string, activityID int64) (activities.ActivityDTO, error) {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, callerID, activityID)
	}
	return activities.ActivityDTO{}, nil
}

func (s stubActivityService) Complete(ctx context.Context, callerID string, activityID int64) (activities.ActivityDTO, error) {
	if s.completeFn != nil {
		return s.completeFn(ctx, callerID, activityID)
	}
	return activities.ActivityDTO{}, nil
}

func (s stubActivityService) ListForVolunteer(ctx context.Context, userID string) ([]activities.ActivityDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID)
	}
	return []activities.ActivityDTO{}, nil
}

type stubDashboardService struct {
	summaryFn func(ctx context.Context, userID string) (dashboard.DashboardDTO, error)
}

func (s stubDashboardService) Summary(ctx context.Context, userID string) (dashboard.DashboardDTO, error) {
	if s.summaryFn != nil {
		return s.summaryFn(ctx, userID)
	}
	return dashboard.DashboardDTO{}, nil
}

func TestActivityAssignCreated(t *testing.T) {
	svc := stubActivityService{
		assignFn: func(_ context.Context, callerID string, dto activities.AssignActivityDTO) (activities.ActivityDTO, error) {
			if callerID != "user_1" {
				t.Fatalf("expected caller id, got %q", callerID)
			}
			return activities.ActivityDTO{ID: 7, Name: dto.Name, Status: enums.ActivityStatusScheduled}, nil
		},
	}

	body := `{
		"volunteer_id": "7b07c665-3c7c-4d52-9f1b-6e6fd161dc0e",
		"name": "Reading hour",
		"date": "2026-10-02",
		"time_slot": "morning"
	}`

	handler := ActivityAssign(svc, newTestLogger())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/orphanage/activities/assign", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestActivityAssignRejectsNonUUIDVolunteer(t *testing.T) {
	handler := ActivityAssign(stubActivityService{}, newTestLogger())
	resp := httptest.NewRecorder()
	body := `{"volunteer_id":"nope","name":"Reading hour","date":"2026-10-02","time_slot":"morning"}`
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/orphanage/activities/assign", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestActivityCancelParsesID(t *testing.T) {
	svc := stubActivityService{
		cancelFn: func(_ context.Context, callerID string, activityID int64) (activities.ActivityDTO, error) {
			if callerID != "user_1" || activityID != 7 {
				t.Fatalf("unexpected call %q %d", callerID, activityID)
			}
			return activities.ActivityDTO{ID: 7, Status: enums.ActivityStatusCancelled}, nil
		},
	}

	router := chi.NewRouter()
	router.Post("/api/v1/activities/{activityId}/cancel", ActivityCancel(svc, newTestLogger()))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/activities/7/cancel", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestActivityCompleteRejectsNonNumericID(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/v1/activities/{activityId}/complete", ActivityComplete(stubActivityService{}, newTestLogger()))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/activities/abc/complete", ""))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestVolunteerActivitiesList(t *testing.T) {
	svc := stubActivityService{
		listFn: func(_ context.Context, userID string) ([]activities.ActivityDTO, error) {
			if userID != "user_1" {
				t.Fatalf("expected caller id, got %q", userID)
			}
			return []activities.ActivityDTO{{ID: 1, Name: "Reading hour"}}, nil
		},
	}

	handler := VolunteerActivities(svc, newTestLogger())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/volunteer/activities", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []activities.ActivityDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Reading hour" {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}

func TestOrphanageDashboardSummary(t *testing.T) {
	svc := stubDashboardService{
		summaryFn: func(_ context.Context, userID string) (dashboard.DashboardDTO, error) {
			if userID != "user_1" {
				t.Fatalf("expected caller id, got %q", userID)
			}
			return dashboard.DashboardDTO{OrphanageName: "Sunrise Home", TotalChildren: 12}, nil
		},
	}

	handler := OrphanageDashboard(svc, newTestLogger())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/orphanage/dashboard", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data dashboard.DashboardDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrphanageName != "Sunrise Home" || envelope.Data.TotalChildren != 12 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}
