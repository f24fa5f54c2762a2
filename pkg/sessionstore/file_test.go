package sessionstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/campusgate/admission_service/internal/domain"
	"github.com/campusgate/admission_service/pkg/sessionstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := sessionstore.NewFileStore(filepath.Join(t.TempDir(), "students.json"))

	students, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "students.json")
	store := sessionstore.NewFileStore(path)
	ctx := context.Background()

	in := []domain.StudentProfile{
		{ID: "ST001", Name: "Ananya Sharma", BranchID: "BR01", WorkflowState: domain.StageInquiry},
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ST001", out[0].ID)
	assert.Equal(t, domain.StageInquiry, out[0].WorkflowState)
}
