package entitybuilders

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/branchwatch/domain"
)

// RunConfigBuilder helps create test run configs with a fluent interface.
type RunConfigBuilder struct {
	*testkit.BaseBuilder
	name    string
	path    string
	args    []string
	workDir string
}

// NewRunConfigBuilder creates a new run config builder with sensible defaults.
func NewRunConfigBuilder() *RunConfigBuilder {
	return &RunConfigBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "test-target",
		path:        "./bin/test-target",
		args:        nil,
		workDir:     ".",
	}
}

// WithName sets the target name.
func (b *RunConfigBuilder) WithName(name string) *RunConfigBuilder {
	b.name = name
	return b
}

// WithPath sets the executable path.
func (b *RunConfigBuilder) WithPath(path string) *RunConfigBuilder {
	b.path = path
	return b
}

// WithArgs sets the arguments.
func (b *RunConfigBuilder) WithArgs(args ...string) *RunConfigBuilder {
	b.args = args
	return b
}

// WithWorkDir sets the working directory.
func (b *RunConfigBuilder) WithWorkDir(dir string) *RunConfigBuilder {
	b.workDir = dir
	return b
}

// Build creates the run config (satisfies testkit.Builder interface).
func (b *RunConfigBuilder) Build() interface{} {
	return b.BuildRunConfig()
}

// BuildRunConfig creates the run config with a concrete return type.
func (b *RunConfigBuilder) BuildRunConfig() domain.RunConfig {
	return domain.RunConfig{
		Name:    b.name,
		Path:    b.path,
		Args:    b.args,
		WorkDir: b.workDir,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RunConfigBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-target"
	b.path = "./bin/test-target"
	b.args = nil
	b.workDir = "."
	return b
}

// Clone creates a deep copy of the RunConfigBuilder.
func (b *RunConfigBuilder) Clone() testkit.Builder {
	return &RunConfigBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		path:        b.path,
		args:        append([]string(nil), b.args...),
		workDir:     b.workDir,
	}
}
