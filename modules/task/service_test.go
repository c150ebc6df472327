package task

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	domain "github.com/example/task-manager/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeRecorder captures audit actions synchronously. With failing=true it
// behaves like a recorder whose persistence is broken: it swallows the write.
type fakeRecorder struct {
	failing bool
	actions []string
}

func (r *fakeRecorder) Record(_ context.Context, _, _, action string) {
	if r.failing {
		return
	}
	r.actions = append(r.actions, action)
}

// fakeResolver treats the configured set as the owner's accepted friends.
type fakeResolver struct {
	friends map[string]bool
}

func (f *fakeResolver) ResolveCollaborators(_ context.Context, _ string, candidates []string) ([]string, error) {
	var out []string
	for _, id := range candidates {
		if f.friends[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeResolver) IsFriend(_ context.Context, _, friendID string) (bool, error) {
	return f.friends[friendID], nil
}

// fakeGenerator returns canned titles or a canned error.
type fakeGenerator struct {
	titles []string
	err    error
}

func (f *fakeGenerator) GenerateSubtasks(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.titles, nil
}

type serviceFixture struct {
	svc      *TaskService
	db       *gorm.DB
	recorder *fakeRecorder
	resolver *fakeResolver
	gen      *fakeGenerator
}

func setupService(t *testing.T) *serviceFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Task{}, &domain.SubTask{}, &domain.Collaborator{}, &domain.SubTaskWorker{},
	))

	f := &serviceFixture{
		db:       db,
		recorder: &fakeRecorder{},
		resolver: &fakeResolver{friends: map[string]bool{}},
		gen:      &fakeGenerator{},
	}
	f.svc = NewTaskService(NewRepository(db), f.resolver, f.gen, f.recorder, nil)
	return f
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("missing title", func(t *testing.T) {
		f := setupService(t)
		_, err := f.svc.Create(ctx, &CreateTaskRequest{OwnerID: "owner"})
		assert.ErrorIs(t, err, domain.ErrTitleRequired)
	})

	t.Run("starts pending with audit entry", func(t *testing.T) {
		f := setupService(t)
		resp, err := f.svc.Create(ctx, &CreateTaskRequest{OwnerID: "owner", Title: "Write report"})
		require.NoError(t, err)
		assert.Equal(t, "Pending", resp.Status)
		assert.Equal(t, "Medium", resp.Priority)
		assert.Nil(t, resp.StartedAt)
		assert.Equal(t, []string{"TASK_CREATED"}, f.recorder.actions)
	})

	t.Run("non-friend collaborators silently dropped", func(t *testing.T) {
		f := setupService(t)
		f.resolver.friends["friend"] = true

		resp, err := f.svc.Create(ctx, &CreateTaskRequest{
			OwnerID:       "owner",
			Title:         "Shared task",
			Collaborators: []string{"friend", "stranger"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"friend"}, resp.Collaborators)
	})

	t.Run("description triggers subtask generation", func(t *testing.T) {
		f := setupService(t)
		f.gen.titles = []string{"Outline", "Draft", "Review"}

		resp, err := f.svc.Create(ctx, &CreateTaskRequest{
			OwnerID:     "owner",
			Title:       "Write report",
			Description: "Quarterly report for the board",
		})
		require.NoError(t, err)
		require.Len(t, resp.Subtasks, 3)
		assert.Equal(t, "Outline", resp.Subtasks[0].Title)
		assert.Equal(t, 0, resp.Subtasks[0].Order)
		assert.Contains(t, f.recorder.actions, "SUBTASKS_GENERATED")
	})

	t.Run("generation failure does not fail creation", func(t *testing.T) {
		f := setupService(t)
		f.gen.err = errors.New("upstream timeout")

		resp, err := f.svc.Create(ctx, &CreateTaskRequest{
			OwnerID:     "owner",
			Title:       "Write report",
			Description: "Quarterly report",
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Subtasks)
		assert.Equal(t, []string{"TASK_CREATED"}, f.recorder.actions)
	})
}

func TestUpdateTask_WorkflowScenario(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, &CreateTaskRequest{OwnerID: "owner", Title: "Ship feature"})
	require.NoError(t, err)

	status := func(s string) *string { return &s }

	started, err := f.svc.Update(ctx, &UpdateTaskRequest{
		UserID: "owner", TaskID: created.ID, Status: status("In Progress"),
	})
	require.NoError(t, err)
	assert.Equal(t, "In Progress", started.Status)
	require.NotNil(t, started.StartedAt)
	assert.Nil(t, started.CompletedAt)
	assert.Nil(t, started.ReopenedAt)

	completed, err := f.svc.Update(ctx, &UpdateTaskRequest{
		UserID: "owner", TaskID: created.ID, Status: status("Completed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Completed", completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, started.StartedAt.Unix(), completed.StartedAt.Unix())

	reopened, err := f.svc.Update(ctx, &UpdateTaskRequest{
		UserID: "owner", TaskID: created.ID, Status: status("In Progress"),
	})
	require.NoError(t, err)
	assert.Equal(t, "In Progress", reopened.Status)
	require.NotNil(t, reopened.ReopenedAt)
	require.NotNil(t, reopened.CompletedAt)

	assert.Equal(t, []string{
		"TASK_CREATED",
		"TASK_STATUS_UPDATED: Pending → In Progress",
		"TASK_STATUS_UPDATED: In Progress → Completed",
		"TASK_STATUS_UPDATED: Completed → In Progress",
	}, f.recorder.actions)
}

func TestUpdateTask_RejectedTransition(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, &CreateTaskRequest{OwnerID: "owner", Title: "Ship feature"})
	require.NoError(t, err)

	next := "Completed"
	_, err = f.svc.Update(ctx, &UpdateTaskRequest{
		UserID: "owner", TaskID: created.ID, Status: &next,
	})

	var invalid *domain.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, domain.StatusPending, invalid.From)
	assert.Equal(t, domain.StatusCompleted, invalid.To)
	assert.Contains(t, err.Error(), "Pending → Completed")

	unchanged, err := f.svc.Get(ctx, "owner", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pending", unchanged.Status)
	assert.Nil(t, unchanged.CompletedAt)

	assert.Equal(t, []string{"TASK_CREATED"}, f.recorder.actions,
		"rejected transition must not write an audit entry")
}

func TestUpdateTask_FieldsOnly(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, &CreateTaskRequest{OwnerID: "owner", Title: "Old title"})
	require.NoError(t, err)

	title := "New title"
	priority := "High"
	updated, err := f.svc.Update(ctx, &UpdateTaskRequest{
		UserID: "owner", TaskID: created.ID, Title: &title, Priority: &priority,
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "High", updated.Priority)
	assert.Equal(t, "Pending", updated.Status)
	assert.Nil(t, updated.StartedAt)

	assert.Equal(t, []string{"TASK_CREATED", "TASK_FIELDS_UPDATED"}, f.recorder.actions)
}

func TestUpdateTask_Authorization(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	f.resolver.friends["collab"] = true

	created, err := f.svc.Create(ctx, &CreateTaskRequest{
		OwnerID: "owner", Title: "Shared task", Collaborators: []string{"collab"},
	})
	require.NoError(t, err)

	status := func(s string) *string { return &s }

	t.Run("stranger gets not found", func(t *testing.T) {
		_, err := f.svc.Update(ctx, &UpdateTaskRequest{
			UserID: "stranger", TaskID: created.ID, Status: status("In Progress"),
		})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("collaborator may read but not mutate", func(t *testing.T) {
		got, err := f.svc.Get(ctx, "collab", created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)

		_, err = f.svc.Update(ctx, &UpdateTaskRequest{
			UserID: "collab", TaskID: created.ID, Status: status("In Progress"),
		})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)

		err = f.svc.Delete(ctx, "collab", created.ID)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestRecorderFailure_DoesNotAffectResult(t *testing.T) {
	ctx := context.Background()
	status := "In Progress"

	run := func(failing bool) *TaskResponse {
		f := setupService(t)
		f.recorder.failing = failing
		created, err := f.svc.Create(ctx, &CreateTaskRequest{OwnerID: "owner", Title: "Ship feature"})
		require.NoError(t, err)
		updated, err := f.svc.Update(ctx, &UpdateTaskRequest{
			UserID: "owner", TaskID: created.ID, Status: &status,
		})
		require.NoError(t, err)
		require.NoError(t, f.svc.Delete(ctx, "owner", created.ID))
		return updated
	}

	healthy := run(false)
	broken := run(true)

	assert.Equal(t, healthy.Status, broken.Status)
	assert.Equal(t, healthy.Title, broken.Title)
	assert.NotNil(t, broken.StartedAt)
}

func TestDeleteTask_SoftDelete(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, &CreateTaskRequest{OwnerID: "owner", Title: "Ship feature"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, "owner", created.ID))

	_, err = f.svc.Get(ctx, "owner", created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	// The row must survive the delete.
	var row domain.Task
	require.NoError(t, f.db.First(&row, "id = ?", created.ID).Error)
	assert.True(t, row.IsDeleted)
	assert.NotNil(t, row.DeletedAt)

	assert.Equal(t, []string{"TASK_CREATED", "TASK_SOFT_DELETED"}, f.recorder.actions)
}

func TestListTasks(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, &CreateTaskRequest{
			OwnerID: "owner",
			Title:   fmt.Sprintf("Task %d", i),
		})
		require.NoError(t, err)
	}
	_, err := f.svc.Create(ctx, &CreateTaskRequest{OwnerID: "someone-else", Title: "Not mine"})
	require.NoError(t, err)

	resp, err := f.svc.List(ctx, &ListTasksRequest{UserID: "owner", Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalTasks)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Tasks, 2)

	t.Run("search filter", func(t *testing.T) {
		resp, err := f.svc.List(ctx, &ListTasksRequest{UserID: "owner", Search: "task 1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.TotalTasks)
	})

	t.Run("status filter", func(t *testing.T) {
		resp, err := f.svc.List(ctx, &ListTasksRequest{UserID: "owner", Status: "Completed"})
		require.NoError(t, err)
		assert.Zero(t, resp.TotalTasks)
	})
}

func TestSubTasks(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	f.resolver.friends["collab"] = true

	created, err := f.svc.Create(ctx, &CreateTaskRequest{
		OwnerID: "owner", Title: "Parent", Collaborators: []string{"collab"},
	})
	require.NoError(t, err)

	st, err := f.svc.CreateSubTask(ctx, &CreateSubTaskRequest{
		UserID: "owner", TaskID: created.ID, Title: "Step one",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", st.Status)

	t.Run("only owner creates", func(t *testing.T) {
		_, err := f.svc.CreateSubTask(ctx, &CreateSubTaskRequest{
			UserID: "collab", TaskID: created.ID, Title: "Nope",
		})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("collaborator without assignment cannot edit", func(t *testing.T) {
		title := "Edited"
		_, err := f.svc.UpdateSubTask(ctx, &UpdateSubTaskRequest{
			UserID: "collab", TaskID: created.ID, SubTaskID: st.ID, Title: &title,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	require.NoError(t, f.svc.AssignWorker(ctx, &AssignWorkerRequest{
		UserID: "owner", TaskID: created.ID, SubTaskID: st.ID, WorkerID: "collab",
	}))

	t.Run("assigned worker completes", func(t *testing.T) {
		status := "Completed"
		updated, err := f.svc.UpdateSubTask(ctx, &UpdateSubTaskRequest{
			UserID: "collab", TaskID: created.ID, SubTaskID: st.ID, Status: &status,
		})
		require.NoError(t, err)
		assert.Equal(t, "Completed", updated.Status)
		assert.NotNil(t, updated.CompletedAt)
		assert.Contains(t, updated.Workers, "collab")
	})

	t.Run("leaving completed clears timestamp", func(t *testing.T) {
		status := "Pending"
		updated, err := f.svc.UpdateSubTask(ctx, &UpdateSubTaskRequest{
			UserID: "owner", TaskID: created.ID, SubTaskID: st.ID, Status: &status,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.CompletedAt)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, f.svc.DeleteSubTask(ctx, &DeleteSubTaskRequest{
			UserID: "owner", TaskID: created.ID, SubTaskID: st.ID,
		}))
		list, err := f.svc.ListSubTasks(ctx, "owner", created.ID)
		require.NoError(t, err)
		assert.Empty(t, list.Subtasks)
	})
}

func TestGenerateSubtasks(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	f.gen.titles = []string{"First", "Second"}

	created, err := f.svc.Create(ctx, &CreateTaskRequest{
		OwnerID: "owner", Title: "Parent", Description: "Do the thing",
	})
	require.NoError(t, err)
	require.Len(t, created.Subtasks, 2)

	t.Run("appends after existing order", func(t *testing.T) {
		resp, err := f.svc.GenerateSubtasks(ctx, &GenerateSubtasksRequest{
			UserID: "owner", TaskID: created.ID,
		})
		require.NoError(t, err)
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, 2, resp.Subtasks[0].Order)
	})

	t.Run("explicit request surfaces upstream failure", func(t *testing.T) {
		f.gen.err = errors.New("upstream down")
		_, err := f.svc.GenerateSubtasks(ctx, &GenerateSubtasksRequest{
			UserID: "owner", TaskID: created.ID,
		})
		assert.Error(t, err)
	})
}

func TestFriendActivity(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	f.resolver.friends["friend"] = true

	status := func(s string) *string { return &s }
	done, err := f.svc.Create(ctx, &CreateTaskRequest{OwnerID: "friend", Title: "Done thing"})
	require.NoError(t, err)
	_, err = f.svc.Update(ctx, &UpdateTaskRequest{UserID: "friend", TaskID: done.ID, Status: status("In Progress")})
	require.NoError(t, err)
	_, err = f.svc.Update(ctx, &UpdateTaskRequest{UserID: "friend", TaskID: done.ID, Status: status("Completed")})
	require.NoError(t, err)

	due := time.Now().Add(48 * time.Hour)
	_, err = f.svc.Create(ctx, &CreateTaskRequest{OwnerID: "friend", Title: "Soon thing", DueDate: &due})
	require.NoError(t, err)

	t.Run("non-friend rejected", func(t *testing.T) {
		_, err := f.svc.FriendActivity(ctx, "me", "stranger")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("friend sees activity", func(t *testing.T) {
		resp, err := f.svc.FriendActivity(ctx, "me", "friend")
		require.NoError(t, err)
		require.Len(t, resp.RecentCompleted, 1)
		assert.Equal(t, "Done thing", resp.RecentCompleted[0].Title)
		require.Len(t, resp.Upcoming, 1)
		assert.Equal(t, "Soon thing", resp.Upcoming[0].Title)
	})
}
