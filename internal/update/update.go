package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	releasesURL  = "https://api.github.com/repos/Navodith09/NewsSpeak/releases/latest"
	checkTimeout = 5 * time.Second
)

// Release describes a newer published version of the app.
type Release struct {
	Version string
	URL     string
}

type ghRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check asks the GitHub Releases API whether a version newer than
// currentVersion has been published. It returns nil when the running
// build is current or when the check fails for any reason; the caller
// treats the result as advisory only.
func Check(ctx context.Context, currentVersion string) *Release {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var rel ghRelease
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil
	}

	return newer(currentVersion, rel)
}

func newer(currentVersion string, rel ghRelease) *Release {
	latest := strings.TrimPrefix(rel.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	if latest == "" || latest == current {
		return nil
	}

	url := rel.HTMLURL
	if url == "" {
		url = fmt.Sprintf("https://github.com/Navodith09/NewsSpeak/releases/tag/%s", rel.TagName)
	}

	return &Release{Version: latest, URL: url}
}
