package inmemory

import (
	"context"
	"testing"

	"github.com/jgiraldoc/receipt-parser/internal/jobs"
)

func TestStoreSaveAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	job := &jobs.ParseReceiptJob{
		JobID:  "job-1",
		GCSURI: "gs://receipts-raw/a.json",
		Status: jobs.JobStatusPending,
	}

	if err := store.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob() error = %v", err)
	}

	got, err := store.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if got.GCSURI != job.GCSURI || got.Status != jobs.JobStatusPending {
		t.Errorf("GetJob() = %+v, want saved job", got)
	}

	// The store must hand out copies, not its own pointers.
	got.Status = jobs.JobStatusFailed
	again, err := store.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if again.Status != jobs.JobStatusPending {
		t.Error("mutating a returned job leaked into the store")
	}
}

func TestStoreSaveRequiresID(t *testing.T) {
	store := NewStore()

	err := store.SaveJob(context.Background(), &jobs.ParseReceiptJob{GCSURI: "gs://b/x.json"})
	if err == nil {
		t.Error("SaveJob() accepted a job without an ID")
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore()

	if _, err := store.GetJob(context.Background(), "nope"); err == nil {
		t.Error("GetJob() expected error for unknown job")
	}
}

func TestStoreListJobs(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	seed := []*jobs.ParseReceiptJob{
		{JobID: "a", GCSURI: "gs://b/1.json", Status: jobs.JobStatusPending},
		{JobID: "b", GCSURI: "gs://b/2.json", Status: jobs.JobStatusCompleted},
		{JobID: "c", GCSURI: "gs://b/1.json", Status: jobs.JobStatusCompleted},
	}
	for _, j := range seed {
		if err := store.SaveJob(ctx, j); err != nil {
			t.Fatalf("SaveJob(%s) error = %v", j.JobID, err)
		}
	}

	tests := []struct {
		name   string
		filter jobs.JobFilter
		want   int
	}{
		{name: "no filter returns everything", filter: jobs.JobFilter{}, want: 3},
		{name: "by status", filter: jobs.JobFilter{Status: jobs.JobStatusCompleted}, want: 2},
		{name: "by gcs uri", filter: jobs.JobFilter{GCSURI: "gs://b/1.json"}, want: 2},
		{name: "by uri and status", filter: jobs.JobFilter{GCSURI: "gs://b/1.json", Status: jobs.JobStatusPending}, want: 1},
		{name: "limit caps results", filter: jobs.JobFilter{Limit: 2}, want: 2},
		{name: "offset past the end", filter: jobs.JobFilter{Offset: 10}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListJobs(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListJobs() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("ListJobs() returned %d jobs, want %d", len(got), tt.want)
			}
		})
	}
}

func TestStoreUpdateJobStatus(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.SaveJob(ctx, &jobs.ParseReceiptJob{JobID: "a", Status: jobs.JobStatusPending}); err != nil {
		t.Fatalf("SaveJob() error = %v", err)
	}

	if err := store.UpdateJobStatus(ctx, "a", jobs.JobStatusFailed, "fetch timed out"); err != nil {
		t.Fatalf("UpdateJobStatus() error = %v", err)
	}

	got, err := store.GetJob(ctx, "a")
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if got.Status != jobs.JobStatusFailed || got.Error != "fetch timed out" {
		t.Errorf("UpdateJobStatus() stored %+v", got)
	}

	if err := store.UpdateJobStatus(ctx, "missing", jobs.JobStatusFailed, ""); err == nil {
		t.Error("UpdateJobStatus() expected error for unknown job")
	}
}
