package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/repository"
	"github.com/lammatna/lammatna-backend/pkg/store"
)

func newTaskTestEnv(t *testing.T) (*TaskService, *GatheringService, *repository.GatheringRepository) {
	t.Helper()
	repo := repository.NewGatheringRepository(store.NewMemoryStore())
	return NewTaskService(repo, zap.NewNop()), NewGatheringService(repo, zap.NewNop()), repo
}

func TestAddTask(t *testing.T) {
	tasks, gatherings, repo := newTaskTestEnv(t)

	g, err := gatherings.Create("a@x.com", gatheringRequest())
	require.NoError(t, err)

	assignee := " B@X.com "
	task, err := tasks.AddTask(g.ID, models.TaskRequest{
		Title:      "  Bring chairs  ",
		Type:       models.TaskTypeItem,
		AssignedTo: &assignee,
	})
	require.NoError(t, err)

	require.NotEmpty(t, task.ID)
	require.Equal(t, "Bring chairs", task.Title)
	require.Equal(t, models.TaskTypeItem, task.Type)
	require.Equal(t, models.TaskStatusPending, task.Status)
	require.Equal(t, "b@x.com", *task.AssignedTo)

	stored, err := repo.GetByID(g.ID)
	require.NoError(t, err)
	require.Len(t, stored.Tasks, 1)
}

func TestAddTaskValidation(t *testing.T) {
	tasks, gatherings, _ := newTaskTestEnv(t)

	g, err := gatherings.Create("a@x.com", gatheringRequest())
	require.NoError(t, err)

	_, err = tasks.AddTask(g.ID, models.TaskRequest{Title: "   "})
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "title", ve.Field)

	_, err = tasks.AddTask("missing", models.TaskRequest{Title: "Bring chairs"})
	require.ErrorIs(t, err, models.ErrNotFound)

	// Unknown type falls back to task; a blank assignee stays unassigned.
	blank := "   "
	task, err := tasks.AddTask(g.ID, models.TaskRequest{Title: "Book venue", Type: "chore", AssignedTo: &blank})
	require.NoError(t, err)
	require.Equal(t, models.TaskTypeTask, task.Type)
	require.Nil(t, task.AssignedTo)
}

func TestToggleEditDeleteTask(t *testing.T) {
	tasks, gatherings, repo := newTaskTestEnv(t)

	g, err := gatherings.Create("a@x.com", gatheringRequest())
	require.NoError(t, err)
	task, err := tasks.AddTask(g.ID, models.TaskRequest{Title: "Bring chairs"})
	require.NoError(t, err)

	toggled, err := tasks.ToggleStatus(g.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusDone, toggled.Tasks[0].Status)

	edited, err := tasks.EditTask(g.ID, task.ID, models.EditTaskRequest{Title: "", Notes: "folding ones"})
	require.NoError(t, err)
	require.Equal(t, "Bring chairs", edited.Tasks[0].Title)
	require.Equal(t, "folding ones", edited.Tasks[0].Notes)

	deleted, err := tasks.DeleteTask(g.ID, task.ID)
	require.NoError(t, err)
	require.Empty(t, deleted.Tasks)

	// Absent task ids are a no-op, not an error.
	_, err = tasks.ToggleStatus(g.ID, "missing")
	require.NoError(t, err)
	_, err = tasks.DeleteTask(g.ID, "missing")
	require.NoError(t, err)

	stored, err := repo.GetByID(g.ID)
	require.NoError(t, err)
	require.Empty(t, stored.Tasks)
}

func TestLeaveUnassignsDepartingParticipant(t *testing.T) {
	tasks, gatherings, _ := newTaskTestEnv(t)

	g, err := gatherings.Create("a@x.com", gatheringRequest())
	require.NoError(t, err)
	_, err = gatherings.Join(g.ID, "b@x.com")
	require.NoError(t, err)

	assignee := "b@x.com"
	_, err = tasks.AddTask(g.ID, models.TaskRequest{
		Title:      "Bring chairs",
		Type:       models.TaskTypeItem,
		AssignedTo: &assignee,
	})
	require.NoError(t, err)

	left, err := gatherings.Leave(g.ID, "b@x.com")
	require.NoError(t, err)

	require.Equal(t, []string{"a@x.com"}, left.Participants)
	require.Len(t, left.Tasks, 1)
	require.Equal(t, "Bring chairs", left.Tasks[0].Title)
	require.Nil(t, left.Tasks[0].AssignedTo)
}
