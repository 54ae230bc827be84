package configfactory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prism/internal/adapters/configfactory"
	"go.trai.ch/prism/internal/adapters/fs"
	"go.trai.ch/prism/internal/core/domain"
)

func bundle(fragments map[string]string) *domain.OptionsBundle {
	return &domain.OptionsBundle{Fragments: fragments}
}

func TestFactory_SingleTarget(t *testing.T) {
	f := configfactory.NewFactory(fs.NewHasher())

	cc, err := f.CreateConfigurations(bundle(map[string]string{
		domain.OptionCompilationMode: domain.ModeDbg,
		domain.OptionCPU:             "arm64",
		domain.OptionHostCPU:         "k8",
	}), nil, "/ws/.prism/out")
	require.NoError(t, err)

	target, err := cc.TargetConfiguration()
	require.NoError(t, err)
	assert.Equal(t, "arm64", target.CPU)
	assert.Equal(t, "arm64-dbg", target.OutputDirName)
	assert.Equal(t, "/ws/.prism/out/arm64-dbg/bin", target.BinDirectory().Path)
	assert.False(t, target.IsHost)

	require.NotNil(t, cc.Host)
	assert.True(t, cc.Host.IsHost)
	assert.Equal(t, configfactory.HostDirName, cc.Host.OutputDirName)
	assert.Equal(t, domain.ModeOpt, cc.Host.CompilationMode)
	assert.NotEqual(t, target.Checksum, cc.Host.Checksum)

	found, ok := cc.ByChecksum(cc.Host.Checksum)
	require.True(t, ok)
	assert.Same(t, cc.Host, found)
}

func TestFactory_Defaults(t *testing.T) {
	f := configfactory.NewFactory(fs.NewHasher())
	cc, err := f.CreateConfigurations(bundle(nil), nil, "out")
	require.NoError(t, err)

	target, err := cc.TargetConfiguration()
	require.NoError(t, err)
	assert.Equal(t, "k8-fastbuild", target.OutputDirName)
	assert.False(t, target.Dynamic)
}

func TestFactory_MultiCPU(t *testing.T) {
	f := configfactory.NewFactory(fs.NewHasher())
	cc, err := f.CreateConfigurations(bundle(nil), []string{"x86", "arm64", "x86"}, "out")
	require.NoError(t, err)

	require.Len(t, cc.Targets, 2)
	assert.Equal(t, "arm64", cc.Targets[0].CPU)
	assert.Equal(t, "x86", cc.Targets[1].CPU)

	_, err = cc.TargetConfiguration()
	assert.ErrorIs(t, err, domain.ErrAmbiguousTargetConfiguration)
}

func TestFactory_ChecksumIsDeterministic(t *testing.T) {
	f := configfactory.NewFactory(fs.NewHasher())
	opts := map[string]string{domain.OptionCompilationMode: domain.ModeOpt, "custom": "v"}

	a, err := f.CreateConfigurations(bundle(opts), nil, "out")
	require.NoError(t, err)
	b, err := f.CreateConfigurations(bundle(opts), nil, "other")
	require.NoError(t, err)
	assert.Equal(t, a.Targets[0].Checksum, b.Targets[0].Checksum)

	changed, err := f.CreateConfigurations(bundle(map[string]string{
		domain.OptionCompilationMode: domain.ModeOpt,
		"custom":                     "w",
	}), nil, "out")
	require.NoError(t, err)
	assert.NotEqual(t, a.Targets[0].Checksum, changed.Targets[0].Checksum)
}

func TestFactory_Errors(t *testing.T) {
	f := configfactory.NewFactory(fs.NewHasher())

	_, err := f.CreateConfigurations(nil, nil, "out")
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = f.CreateConfigurations(bundle(map[string]string{domain.OptionCompilationMode: "fast"}), nil, "out")
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = f.CreateConfigurations(bundle(map[string]string{domain.OptionDynamicConfigs: "maybe"}), nil, "out")
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = f.CreateConfigurations(bundle(nil), []string{""}, "out")
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}
