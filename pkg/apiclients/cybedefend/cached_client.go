package cybedefend

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
)

// CachedClient keeps finding details for a while, they are fetched repeatedly when a finding is
// shown and discussed in a chat. All other operations are passed through.
type CachedClient struct {
	Client
	details *cache.Cache
}

var _ Client = (*CachedClient)(nil)

func NewCachedClient(client Client, ttl time.Duration) *CachedClient {
	return &CachedClient{
		Client:  client,
		details: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedClient) GetFindingDetail(ctx context.Context, projectID string, findingID string, kind findings.Kind) (*findings.Finding, error) {
	key := strings.Join([]string{projectID, string(kind), findingID}, "/")
	if cached, ok := c.details.Get(key); ok {
		if finding, isFinding := cached.(findings.Finding); isFinding {
			return &finding, nil
		}
	}

	finding, err := c.Client.GetFindingDetail(ctx, projectID, findingID, kind)
	if err != nil {
		return nil, err
	}

	c.details.SetDefault(key, *finding)
	return finding, nil
}

// ListResults invalidates cached details, a new result list means a new scan may have changed them.
func (c *CachedClient) ListResults(ctx context.Context, query ResultsQuery) (*ResultsPage, error) {
	page, err := c.Client.ListResults(ctx, query)
	if err == nil && page.Page <= 1 {
		c.details.Flush()
	}
	return page, err
}
