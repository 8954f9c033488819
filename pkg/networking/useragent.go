package networking

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
)

type UserAgentOptions func(ua *UserAgentInfo)

type UserAgentInfo struct {
	App                string
	AppVersion         string
	Integration        string
	IntegrationVersion string
	OS                 string
	Arch               string
	ProcessName        string
}

func UaWithConfig(config configuration.Configuration) UserAgentOptions {
	return func(ua *UserAgentInfo) {
		ua.Integration = config.GetString(configuration.INTEGRATION_NAME)
		ua.IntegrationVersion = config.GetString(configuration.INTEGRATION_VERSION)
	}
}

func UaWithApplication(app string, appVersion string) UserAgentOptions {
	return func(ua *UserAgentInfo) {
		ua.App = app
		ua.AppVersion = appVersion
	}
}

func UaWithOS(osName string) UserAgentOptions {
	return func(ua *UserAgentInfo) {
		ua.OS = osName
	}
}

func UserAgent(opts ...UserAgentOptions) UserAgentInfo {
	processName, _ := os.Executable()
	ua := UserAgentInfo{
		App:         constants.CYBEDEFEND_PRODUCT_NAME,
		AppVersion:  "dev",
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		ProcessName: filepath.Base(processName),
	}

	for _, opt := range opts {
		opt(&ua)
	}

	return ua
}

// String renders the User-Agent header:
// <app>/<appVer> (<os>;<arch>;<procName>) <integration>/<integrationVersion>
// The integration part is only added if an integration is set.
func (s UserAgentInfo) String() string {
	str := fmt.Sprint(
		s.App, "/", s.AppVersion,
		" (", s.OS, ";", s.Arch, ";", s.ProcessName, ")",
	)
	if s.Integration != "" {
		str += fmt.Sprint(" ", s.Integration, "/", s.IntegrationVersion)
	}
	return str
}
