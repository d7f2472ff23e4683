package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/financaspro/backend/internal/domain/entity"
)

func newAlertJob(goalID uuid.UUID) *entity.EmailJob {
	return entity.NewGoalDeadlineAlertJob(
		goalID,
		"dona@example.com",
		"Dona",
		"Sua meta \"Viagem\" está perto do prazo",
		map[string]interface{}{
			"goal_name":      "Viagem",
			"days_left":      10,
			"completion_pct": 25.0,
		},
	)
}

func TestEmailQueueRepositoryCreateAndGetByID(t *testing.T) {
	repo := NewEmailQueueRepository(openTestDB(t))
	ctx := context.Background()
	goalID := uuid.New()

	job := newAlertJob(goalID)
	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	found, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID() returned error: %v", err)
	}
	if found == nil {
		t.Fatal("GetByID() returned nil for an existing job")
	}
	if found.TemplateType != entity.TemplateGoalDeadlineAlert {
		t.Errorf("TemplateType = %q", found.TemplateType)
	}
	if found.GoalID == nil || *found.GoalID != goalID {
		t.Errorf("GoalID = %v, want %v", found.GoalID, goalID)
	}
	if found.Status != entity.EmailStatusPending {
		t.Errorf("Status = %q, want pending", found.Status)
	}

	// Template data survives the JSON roundtrip; numbers come back as float64.
	if found.TemplateData["goal_name"] != "Viagem" {
		t.Errorf("goal_name = %v", found.TemplateData["goal_name"])
	}
	if found.TemplateData["days_left"] != float64(10) {
		t.Errorf("days_left = %v (%T), want float64(10)", found.TemplateData["days_left"], found.TemplateData["days_left"])
	}
}

func TestEmailQueueRepositoryGetByIDMissing(t *testing.T) {
	repo := NewEmailQueueRepository(openTestDB(t))

	found, err := repo.GetByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetByID() returned error: %v", err)
	}
	if found != nil {
		t.Errorf("GetByID() = %+v, want nil for a missing job", found)
	}
}

func TestEmailQueueRepositoryGetPendingJobs(t *testing.T) {
	repo := NewEmailQueueRepository(openTestDB(t))
	ctx := context.Background()

	ready := newAlertJob(uuid.New())
	ready.ScheduledAt = time.Now().UTC().Add(-time.Minute)

	future := newAlertJob(uuid.New())
	future.ScheduledAt = time.Now().UTC().Add(time.Hour)

	sent := newAlertJob(uuid.New())
	sent.MarkSent("resend-123")

	for _, job := range []*entity.EmailJob{ready, future, sent} {
		if err := repo.Create(ctx, job); err != nil {
			t.Fatalf("Create() returned error: %v", err)
		}
	}

	pending, err := repo.GetPendingJobs(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingJobs() returned error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("GetPendingJobs() returned %d jobs, want 1", len(pending))
	}
	if pending[0].ID != ready.ID {
		t.Errorf("pending job = %v, want %v", pending[0].ID, ready.ID)
	}
}

func TestEmailQueueRepositoryGetPendingJobsLimit(t *testing.T) {
	repo := NewEmailQueueRepository(openTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		job := newAlertJob(uuid.New())
		job.ScheduledAt = time.Now().UTC().Add(-time.Minute)
		if err := repo.Create(ctx, job); err != nil {
			t.Fatalf("Create() returned error: %v", err)
		}
	}

	pending, err := repo.GetPendingJobs(ctx, 3)
	if err != nil {
		t.Fatalf("GetPendingJobs() returned error: %v", err)
	}
	if len(pending) != 3 {
		t.Errorf("GetPendingJobs() returned %d jobs, want 3", len(pending))
	}
}

func TestEmailQueueRepositoryUpdate(t *testing.T) {
	repo := NewEmailQueueRepository(openTestDB(t))
	ctx := context.Background()

	job := newAlertJob(uuid.New())
	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	job.MarkFailed(errors.New("send failed"), false)
	if err := repo.Update(ctx, job); err != nil {
		t.Fatalf("Update() returned error: %v", err)
	}

	found, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID() returned error: %v", err)
	}
	if found.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", found.Attempts)
	}
	if found.Status != entity.EmailStatusPending {
		t.Errorf("Status = %q, want pending (retry scheduled)", found.Status)
	}
	if found.LastError != "send failed" {
		t.Errorf("LastError = %q", found.LastError)
	}
}

func TestEmailQueueRepositoryHasRecentAlert(t *testing.T) {
	repo := NewEmailQueueRepository(openTestDB(t))
	ctx := context.Background()
	goalID := uuid.New()
	now := time.Now().UTC()

	if err := repo.Create(ctx, newAlertJob(goalID)); err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	recent, err := repo.HasRecentAlert(ctx, goalID, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("HasRecentAlert() returned error: %v", err)
	}
	if !recent {
		t.Error("HasRecentAlert() = false, want true for a just-queued alert")
	}

	// A different goal is not suppressed.
	recent, err = repo.HasRecentAlert(ctx, uuid.New(), now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("HasRecentAlert() returned error: %v", err)
	}
	if recent {
		t.Error("HasRecentAlert() = true for an unrelated goal")
	}

	// A cutoff after the job's creation sees nothing.
	recent, err = repo.HasRecentAlert(ctx, goalID, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("HasRecentAlert() returned error: %v", err)
	}
	if recent {
		t.Error("HasRecentAlert() = true past the cutoff")
	}
}
