package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
	"github.com/pas-volunteer/planner-backend/internal/planner/storage"
)

func setupRepo(t *testing.T) *ProjectRepository {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewProjectRepository(storage.NewRedisAdapter(client))
}

func vietnamMeta() domain.ProjectMetadata {
	return domain.ProjectMetadata{
		Name:      "2025 Vietnam Trip",
		Country:   "Vietnam",
		TargetAge: "Elementary (8-12)",
		Theme:     "English Education",
	}
}

func TestCreateProject(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p, err := repo.Create(ctx, vietnamMeta())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPlanning, p.Status)
	assert.Empty(t, p.ChatHistory)
	assert.Empty(t, p.Documents)
	assert.Empty(t, p.TeamMembers)

	// appears in the persisted list exactly once
	projects, err := repo.List(ctx)
	require.NoError(t, err)
	count := 0
	for _, item := range projects {
		if item.ID == p.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)

	// creation marks the project as the current selection
	currentID, ok, err := repo.CurrentProjectID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, p.ID, currentID)
}

func TestCreateProjectValidation(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Create(context.Background(), domain.ProjectMetadata{Name: "Trip"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	projects, listErr := repo.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, projects)
}

func TestDeleteProjectClearsSelection(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p1, err := repo.Create(ctx, vietnamMeta())
	require.NoError(t, err)
	p2, err := repo.Create(ctx, domain.ProjectMetadata{
		Name: "Cambodia IT", Country: "Cambodia", TargetAge: "13-15", Theme: "IT",
	})
	require.NoError(t, err)

	// p2 is now selected; deleting p1 must not touch the selection
	require.NoError(t, repo.Delete(ctx, p1.ID))
	currentID, ok, err := repo.CurrentProjectID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, p2.ID, currentID)

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, p2.ID, projects[0].ID)

	// deleting the selected project clears the selection
	require.NoError(t, repo.Delete(ctx, p2.ID))
	_, ok, err = repo.CurrentProjectID(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteMissingProject(t *testing.T) {
	repo := setupRepo(t)
	err := repo.Delete(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppendChatMessagesKeepOrder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p, err := repo.Create(ctx, vietnamMeta())
	require.NoError(t, err)

	contents := []string{"첫 번째", "두 번째", "세 번째", "네 번째", "다섯 번째"}
	for i, content := range contents {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		_, err := repo.AppendChatMessage(ctx, p.ID, domain.NewChatMessage(role, content))
		require.NoError(t, err)
	}

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.ChatHistory, len(contents))
	for i, content := range contents {
		assert.Equal(t, content, got.ChatHistory[i].Content)
	}
	assert.True(t, got.UpdatedAt.After(p.UpdatedAt) || got.UpdatedAt.Equal(p.UpdatedAt))
}

func TestAppendDocumentKeepsHistory(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p, err := repo.Create(ctx, vietnamMeta())
	require.NoError(t, err)

	doc1 := domain.ProjectDocument{ID: "d1", Type: domain.DocChecklist, Title: "준비물 체크리스트", Content: "first"}
	doc2 := domain.ProjectDocument{ID: "d2", Type: domain.DocChecklist, Title: "준비물 체크리스트", Content: "second"}

	_, err = repo.AppendDocument(ctx, p.ID, doc1)
	require.NoError(t, err)
	_, err = repo.AppendDocument(ctx, p.ID, doc2)
	require.NoError(t, err)

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Documents, 2)
	assert.Equal(t, "first", got.Documents[0].Content)
	assert.Equal(t, "second", got.Documents[1].Content)
}

func TestTeamMembers(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p, err := repo.Create(ctx, vietnamMeta())
	require.NoError(t, err)

	m1 := domain.NewTeamMember("Kim", "same@example.com", domain.MemberRoleLeader)
	m2 := domain.NewTeamMember("Lee", "same@example.com", domain.MemberRoleMember)

	_, err = repo.AddTeamMember(ctx, p.ID, m1)
	require.NoError(t, err)
	got, err := repo.AddTeamMember(ctx, p.ID, m2)
	require.NoError(t, err)

	// duplicate emails are allowed
	require.Len(t, got.TeamMembers, 2)

	got, err = repo.RemoveTeamMember(ctx, p.ID, m1.ID)
	require.NoError(t, err)
	require.Len(t, got.TeamMembers, 1)
	assert.Equal(t, m2.ID, got.TeamMembers[0].ID)

	_, err = repo.RemoveTeamMember(ctx, p.ID, "no-such-member")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestSetStatus(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p, err := repo.Create(ctx, vietnamMeta())
	require.NoError(t, err)

	got, err := repo.SetStatus(ctx, p.ID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	_, err = repo.SetStatus(ctx, p.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestSelect(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p1, err := repo.Create(ctx, vietnamMeta())
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.ProjectMetadata{
		Name: "Mongolia Arts", Country: "Mongolia", TargetAge: "10-14", Theme: "Arts",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Select(ctx, p1.ID))
	currentID, ok, err := repo.CurrentProjectID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, p1.ID, currentID)

	assert.ErrorIs(t, repo.Select(ctx, "no-such-id"), domain.ErrNotFound)

	require.NoError(t, repo.ClearSelection(ctx))
	_, ok, err = repo.CurrentProjectID(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
