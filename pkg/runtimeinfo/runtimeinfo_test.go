package runtimeinfo

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeInfo_Defaults(t *testing.T) {
	ri := New()

	assert.NotNil(t, ri)
	assert.NotEmpty(t, ri.GetVersion())
}

func TestRuntimeInfo_Options(t *testing.T) {
	ri := New(WithName("cybedefend"), WithVersion("1.2.3"), WithCommit("3f2a9c1d0e"))

	assert.Equal(t, "cybedefend", ri.GetName())
	assert.Equal(t, "1.2.3", ri.GetVersion())
	assert.Equal(t, "cybedefend 1.2.3 (3f2a9c1)", ri.String())
}

func TestRuntimeInfo_EmptyVersionIsIgnored(t *testing.T) {
	ri := New(WithVersion("1.0.0"), WithVersion(""))

	assert.Equal(t, "1.0.0", ri.GetVersion())

	ri.SetVersion("2.0.0")
	assert.Equal(t, "2.0.0", ri.GetVersion())
}

func TestRuntimeInfo_ReadBuildInfo(t *testing.T) {
	t.Run("module version and revision", func(t *testing.T) {
		ri := &info{version: develVersion}
		readBuildInfo(ri, func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Main:     debug.Module{Version: "v0.4.1"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abcdef123456"}},
			}, true
		})

		assert.Equal(t, "v0.4.1", ri.GetVersion())
		assert.Equal(t, "abcdef123456", ri.GetCommit())
	})

	t.Run("devel builds keep the default", func(t *testing.T) {
		ri := &info{version: develVersion}
		readBuildInfo(ri, func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
		})

		assert.Equal(t, develVersion, ri.GetVersion())
		assert.Empty(t, ri.GetCommit())
	})

	t.Run("no build info", func(t *testing.T) {
		ri := &info{version: develVersion}
		readBuildInfo(ri, func() (*debug.BuildInfo, bool) { return nil, false })

		assert.Equal(t, develVersion, ri.GetVersion())
	})
}
