package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInitProject(t *testing.T) {
	ctx := context.Background()
	cfg := &config.RuntimeConfig{
		ProjectRoot: "/project",
		Deploy:      config.DeployConfig{ArtifactsDir: "/project/artifacts"},
	}

	t.Run("fresh project", func(t *testing.T) {
		writer := &MockFileWriter{}
		writer.On("FileExists", mock.Anything, "/project/artifacts").Return(false, nil)
		writer.On("FileExists", mock.Anything, "/project/mintmuse.toml").Return(false, nil)
		writer.On("FileExists", mock.Anything, "/project/.env.example").Return(false, nil)
		writer.On("WriteFile", mock.Anything, "/project/mintmuse.toml", mock.MatchedBy(func(data []byte) bool {
			return strings.Contains(string(data), `contract = "MintMuseNFT"`) &&
				strings.Contains(string(data), `output = "../../solidity/MintMuseNFT.json"`)
		})).Return(nil)
		writer.On("WriteFile", mock.Anything, "/project/.env.example", mock.Anything).Return(nil)

		progress := &MockProgressSink{}
		result, err := usecase.NewInitProject(cfg, writer, progress).Execute(ctx)
		require.NoError(t, err)

		assert.False(t, result.ArtifactsFound)
		assert.True(t, result.ProjectFileCreated)
		assert.True(t, result.EnvExampleCreated)
		assert.False(t, result.AlreadyInitialized)
		require.Len(t, result.Steps, 3)
		for _, step := range result.Steps {
			assert.True(t, step.Success, step.Name)
		}
		assert.Len(t, progress.infos, 2)
		writer.AssertExpectations(t)
	})

	t.Run("already initialized", func(t *testing.T) {
		writer := &MockFileWriter{}
		writer.On("FileExists", mock.Anything, mock.Anything).Return(true, nil)

		result, err := usecase.NewInitProject(cfg, writer, &MockProgressSink{}).Execute(ctx)
		require.NoError(t, err)

		assert.True(t, result.ArtifactsFound)
		assert.True(t, result.AlreadyInitialized)
		assert.False(t, result.ProjectFileCreated)
		assert.False(t, result.EnvExampleCreated)
		writer.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("write failure", func(t *testing.T) {
		writer := &MockFileWriter{}
		writer.On("FileExists", mock.Anything, mock.Anything).Return(false, nil)
		writer.On("WriteFile", mock.Anything, "/project/mintmuse.toml", mock.Anything).Return(errors.New("read-only file system"))

		result, err := usecase.NewInitProject(cfg, writer, &MockProgressSink{}).Execute(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mintmuse.toml")
		require.Len(t, result.Steps, 2)
		assert.False(t, result.Steps[1].Success)
	})

	t.Run("default artifacts dir", func(t *testing.T) {
		writer := &MockFileWriter{}
		writer.On("FileExists", mock.Anything, "/project/artifacts").Return(true, nil)
		writer.On("FileExists", mock.Anything, mock.Anything).Return(true, nil)

		result, err := usecase.NewInitProject(&config.RuntimeConfig{ProjectRoot: "/project"}, writer, &MockProgressSink{}).Execute(ctx)
		require.NoError(t, err)
		assert.True(t, result.ArtifactsFound)
	})
}
