package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a hand-rolled testify mock for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	var mockArgs []any
	mockArgs = append(mockArgs, ctx, repoPath)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// RevParse implements the GitClient interface.
func (m *MockGitClient) RevParse(ctx context.Context, repoPath string, rev string) (string, error) {
	ret := m.Called(ctx, repoPath, rev)
	id, _ := ret.Get(0).(string)
	return id, ret.Error(1)
}

// ListRefs implements the GitClient interface.
func (m *MockGitClient) ListRefs(ctx context.Context, repoPath string) (map[string]string, error) {
	ret := m.Called(ctx, repoPath)
	refs, _ := ret.Get(0).(map[string]string)
	return refs, ret.Error(1)
}

// RevList implements the GitClient interface.
func (m *MockGitClient) RevList(ctx context.Context, repoPath string, include, exclude []string) ([]string, error) {
	ret := m.Called(ctx, repoPath, include, exclude)
	ids, _ := ret.Get(0).([]string)
	return ids, ret.Error(1)
}

// ReadCommit implements the GitClient interface.
func (m *MockGitClient) ReadCommit(ctx context.Context, repoPath string, id string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, id)
	raw, _ := ret.Get(0).([]byte)
	return raw, ret.Error(1)
}

// ShowBlob implements the GitClient interface.
func (m *MockGitClient) ShowBlob(ctx context.Context, repoPath string, revision, path string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, revision, path)
	content, _ := ret.Get(0).([]byte)
	return content, ret.Error(1)
}

// ListConfig implements the GitClient interface.
func (m *MockGitClient) ListConfig(ctx context.Context, repoPath string) ([]byte, error) {
	ret := m.Called(ctx, repoPath)
	raw, _ := ret.Get(0).([]byte)
	return raw, ret.Error(1)
}

// CheckMailmap implements the GitClient interface.
func (m *MockGitClient) CheckMailmap(ctx context.Context, repoPath string, identity string) (string, error) {
	ret := m.Called(ctx, repoPath, identity)
	canonical, _ := ret.Get(0).(string)
	return canonical, ret.Error(1)
}
