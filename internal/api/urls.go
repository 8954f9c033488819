package api

import (
	"net/url"
	"regexp"
	"strings"
)

var appHostRegexp = regexp.MustCompile(`^app(-[a-z0-9]+)?\.`)
var apiHostRegexp = regexp.MustCompile(`^api(-[a-z0-9]+)?\.`)

// GetCanonicalApiUrl normalizes a user provided API url: web application hosts are mapped to
// their api counterpart, query and fragment are dropped and trailing slashes are removed.
func GetCanonicalApiUrl(userDefinedUrl string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(userDefinedUrl))
	if err != nil {
		return "", err
	}

	if !isLocalHost(u.Hostname()) {
		if m := appHostRegexp.FindStringSubmatch(u.Host); m != nil {
			u.Host = "api" + m[1] + "." + u.Host[len(m[0]):]
		}
	}

	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.Fragment = ""
	u.RawQuery = ""
	u.ForceQuery = false

	return u.String(), nil
}

// DeriveAppUrl maps a canonical API url to the url of the web application.
// "api-us.cybedefend.com" becomes "us.cybedefend.com", "api.example.com" becomes "app.example.com".
func DeriveAppUrl(canonicalUrl string) (string, error) {
	u, err := url.Parse(canonicalUrl)
	if err != nil {
		return "", err
	}

	if m := apiHostRegexp.FindStringSubmatch(u.Host); m != nil {
		rest := u.Host[len(m[0]):]
		if len(m[1]) > 0 {
			u.Host = strings.TrimPrefix(m[1], "-") + "." + rest
		} else {
			u.Host = "app." + rest
		}
	}

	u.Path = ""
	return u.String(), nil
}

// ProjectUrl returns the web application page of a project.
func ProjectUrl(appUrl string, projectId string) string {
	return strings.TrimRight(appUrl, "/") + "/project/" + url.PathEscape(projectId)
}

func isLocalHost(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
