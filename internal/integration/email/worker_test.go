package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/financaspro/backend/internal/domain/entity"
	"github.com/financaspro/backend/internal/integration/email/templates"
)

type fakeQueue struct {
	jobs []*entity.EmailJob
}

func (f *fakeQueue) Create(_ context.Context, job *entity.EmailJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	pending := make([]*entity.EmailJob, 0, len(f.jobs))
	now := time.Now().UTC()
	for _, job := range f.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			pending = append(pending, job)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (f *fakeQueue) Update(_ context.Context, _ *entity.EmailJob) error { return nil }

func (f *fakeQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	for _, job := range f.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, nil
}

func (f *fakeQueue) HasRecentAlert(_ context.Context, _ uuid.UUID, _ time.Time) (bool, error) {
	return false, nil
}

func newTestWorker(t *testing.T, queue *fakeQueue, sender *MockEmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func alertJob() *entity.EmailJob {
	return entity.NewGoalDeadlineAlertJob(
		uuid.New(),
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

func TestWorkerSendsAlert(t *testing.T) {
	queue := &fakeQueue{jobs: []*entity.EmailJob{alertJob()}}
	sender := NewMockEmailSender()
	worker := newTestWorker(t, queue, sender)

	worker.ProcessNow(context.Background())

	if len(sender.SentEmails) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.SentEmails))
	}
	sent := sender.SentEmails[0]
	if sent.To != "dona@example.com" {
		t.Errorf("To = %q", sent.To)
	}
	if !strings.Contains(sent.HTML, "Viagem") || !strings.Contains(sent.Text, "Viagem") {
		t.Error("rendered bodies should mention the goal name")
	}
	if !strings.Contains(sent.Text, "10") {
		t.Error("rendered text should mention the days left")
	}

	job := queue.jobs[0]
	if job.Status != entity.EmailStatusSent {
		t.Errorf("Status = %q, want sent", job.Status)
	}
	if job.ResendID == "" || job.ProcessedAt == nil {
		t.Errorf("sent job missing resend ID or processed timestamp: %+v", job)
	}
}

func TestWorkerRetriesTemporaryFailure(t *testing.T) {
	queue := &fakeQueue{jobs: []*entity.EmailJob{alertJob()}}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("rate limited"), false)
	worker := newTestWorker(t, queue, sender)

	worker.ProcessNow(context.Background())

	job := queue.jobs[0]
	if job.Status != entity.EmailStatusPending {
		t.Errorf("Status = %q, want pending for retry", job.Status)
	}
	if job.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", job.Attempts)
	}
}

func TestWorkerFailsPermanentlyOnPermanentError(t *testing.T) {
	queue := &fakeQueue{jobs: []*entity.EmailJob{alertJob()}}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("invalid recipient"), true)
	worker := newTestWorker(t, queue, sender)

	worker.ProcessNow(context.Background())

	job := queue.jobs[0]
	if job.Status != entity.EmailStatusFailed {
		t.Errorf("Status = %q, want failed", job.Status)
	}
}

func TestWorkerExhaustsAttempts(t *testing.T) {
	job := alertJob()
	queue := &fakeQueue{jobs: []*entity.EmailJob{job}}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("timeout"), false)
	worker := newTestWorker(t, queue, sender)

	ctx := context.Background()
	for i := 0; i < job.MaxAttempts; i++ {
		// Force the retry backoff to elapse between passes.
		job.ScheduledAt = time.Now().UTC().Add(-time.Second)
		worker.ProcessNow(ctx)
	}

	if job.Status != entity.EmailStatusFailed {
		t.Errorf("Status = %q after %d attempts, want failed", job.Status, job.Attempts)
	}
	if job.Attempts != job.MaxAttempts {
		t.Errorf("Attempts = %d, want %d", job.Attempts, job.MaxAttempts)
	}
}

func TestWorkerRejectsUnknownTemplate(t *testing.T) {
	job := entity.NewEmailJob("unknown_template", "dona@example.com", "Dona", "???", nil)
	queue := &fakeQueue{jobs: []*entity.EmailJob{job}}
	sender := NewMockEmailSender()
	worker := newTestWorker(t, queue, sender)

	worker.ProcessNow(context.Background())

	if len(sender.SentEmails) != 0 {
		t.Errorf("sent %d emails, want 0", len(sender.SentEmails))
	}
	// Template errors are permanent regardless of remaining attempts.
	if job.Status != entity.EmailStatusFailed {
		t.Errorf("Status = %q, want failed", job.Status)
	}
}

func TestRendererGoalDeadlineAlert(t *testing.T) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}

	html, text, err := renderer.Render(string(entity.TemplateGoalDeadlineAlert), templates.GoalDeadlineAlertData{
		OwnerName:     "Dona",
		GoalName:      "Viagem",
		DaysLeft:      10,
		CompletionPct: 25.5,
	})
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	for _, body := range []string{html, text} {
		if !strings.Contains(body, "Dona") || !strings.Contains(body, "Viagem") {
			t.Error("rendered body should carry the owner and goal names")
		}
		if !strings.Contains(body, "25.5") {
			t.Error("rendered body should carry the completion percentage")
		}
	}
}
