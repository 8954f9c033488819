// Package cybedefend is the client of the CybeDefend scanning service API. It is the only place
// requests to the service are built; authentication is added by the http.Client it is given.
package cybedefend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
)

//go:generate go tool github.com/golang/mock/mockgen -source=client.go -destination ../../mocks/cybedefend_client.go -package mocks -self_package github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend/

const (
	opStartScan            = "start scan"
	opGetScanStatus        = "fetch scan status"
	opListResults          = "fetch results"
	opGetFindingDetail     = "fetch finding detail"
	opStartConversation    = "start conversation"
	opContinueConversation = "continue conversation"
)

const (
	ContentType         = "Content-Type"
	ApplicationJson     = "application/json"
	ScanFormField       = "scan"
	SeverityQueryParam  = "severity[]"
	PageQueryParam      = "pageNumber"
	PageSizeQueryParam  = "pageSizeNumber"
	defaultResultsPage  = 1
	maxErrorMessageSize = 4096
)

// Client defines the operations offered by the scanning service.
type Client interface {
	StartScan(ctx context.Context, projectID string, archivePath string) (ScanHandle, error)
	GetScanStatus(ctx context.Context, projectID string, scanID string) (ScanStatus, error)
	ListResults(ctx context.Context, query ResultsQuery) (*ResultsPage, error)
	GetFindingDetail(ctx context.Context, projectID string, findingID string, kind findings.Kind) (*findings.Finding, error)
	StartConversation(ctx context.Context, request StartConversationRequest) (*Conversation, error)
	ContinueConversation(ctx context.Context, request ContinueConversationRequest) (*Conversation, error)
}

// Config contains configuration for the client.
type Config struct {
	BaseURL string
	// RequestTimeout bounds every request except the upload, 0 means no limit.
	RequestTimeout time.Duration
	// UploadTimeout bounds StartScan, 0 means no limit.
	UploadTimeout time.Duration
	// ResultsPageSize is used when a query does not set a page size.
	ResultsPageSize int
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:         baseURL,
		RequestTimeout:  constants.CYBEDEFEND_DEFAULT_TIMEOUT_SECS * time.Second,
		UploadTimeout:   constants.CYBEDEFEND_DEFAULT_UPLOAD_TIMEOUT_SECS * time.Second,
		ResultsPageSize: constants.CYBEDEFEND_DEFAULT_RESULTS_PAGE_SIZE,
	}
}

// HTTPClient implements Client on top of an authenticated http.Client.
type HTTPClient struct {
	httpClient *http.Client
	cfg        Config
	logger     *zerolog.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewClient(httpClient *http.Client, cfg Config, opts ...Option) *HTTPClient {
	nop := zerolog.Nop()
	client := &HTTPClient{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     &nop,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.cfg.ResultsPageSize <= 0 {
		client.cfg.ResultsPageSize = constants.CYBEDEFEND_DEFAULT_RESULTS_PAGE_SIZE
	}

	return client
}

// StartScan uploads the archive as multipart form field "scan" and starts a scan. The body is
// streamed. An empty ScanID in the returned handle means the service did not provide one.
func (c *HTTPClient) StartScan(ctx context.Context, projectID string, archivePath string) (ScanHandle, error) {
	if err := requireValue(opStartScan, "project id", projectID); err != nil {
		return ScanHandle{}, err
	}

	archive, err := os.Open(archivePath)
	if err != nil {
		return ScanHandle{}, errorcatalog.NewIOError(opStartScan, err)
	}
	defer func() { _ = archive.Close() }()

	ctx, cancel := withTimeout(ctx, c.cfg.UploadTimeout)
	defer cancel()

	pipeReader, pipeWriter := io.Pipe()
	defer func() { _ = pipeReader.Close() }()

	mpartWriter := multipart.NewWriter(pipeWriter)
	go streamArchiveToPipe(pipeWriter, mpartWriter, archive)

	request, err := c.newRequest(ctx, http.MethodPost, c.endpoint("project", projectID, "scan", "start"), pipeReader)
	if err != nil {
		return ScanHandle{}, errorcatalog.NewConfigurationError(opStartScan, err.Error())
	}
	request.Header.Set(ContentType, mpartWriter.FormDataContentType())

	var response startScanResponse
	if err = c.do(request, opStartScan, &response); err != nil {
		return ScanHandle{}, err
	}

	if response.Success != nil && !*response.Success {
		detail := "the service did not start the scan"
		if len(response.Message) > 0 {
			detail += ": " + response.Message
		}
		return ScanHandle{}, errorcatalog.NewUnexpectedResponseError(opStartScan, detail, nil)
	}

	return ScanHandle{ScanID: c.resolveScanID(response), ProjectID: projectID}, nil
}

// resolveScanID prefers the dedicated identifier fields. Older service versions only return the
// identifier in the message field, it is accepted only if it is a well-formed UUID.
func (c *HTTPClient) resolveScanID(response startScanResponse) string {
	if id := strings.TrimSpace(response.ScanId); len(id) > 0 {
		return id
	}
	if id := strings.TrimSpace(response.Id); len(id) > 0 {
		return id
	}

	message := strings.TrimSpace(response.Message)
	if _, err := uuid.Parse(message); err == nil {
		c.logger.Warn().Str("scanId", message).Msg("scan start response carries the scan id only in the message field")
		return message
	}
	return ""
}

func streamArchiveToPipe(pipeWriter *io.PipeWriter, mpartWriter *multipart.Writer, archive *os.File) {
	var streamError error
	defer func() {
		if closeErr := mpartWriter.Close(); closeErr != nil && streamError == nil {
			streamError = closeErr
		}
		pipeWriter.CloseWithError(streamError)
	}()

	part, err := mpartWriter.CreateFormFile(ScanFormField, filepath.Base(archive.Name()))
	if err != nil {
		streamError = err
		return
	}

	if _, err = io.Copy(part, archive); err != nil {
		streamError = fmt.Errorf("failed to stream archive: %w", err)
	}
}

func (c *HTTPClient) GetScanStatus(ctx context.Context, projectID string, scanID string) (ScanStatus, error) {
	if err := requireValue(opGetScanStatus, "project id", projectID); err != nil {
		return ScanStatusUnknown, err
	}
	if err := requireValue(opGetScanStatus, "scan id", scanID); err != nil {
		return ScanStatusUnknown, err
	}

	ctx, cancel := withTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	request, err := c.newRequest(ctx, http.MethodGet, c.endpoint("project", projectID, "scan", scanID), nil)
	if err != nil {
		return ScanStatusUnknown, errorcatalog.NewConfigurationError(opGetScanStatus, err.Error())
	}

	var response scanStatusResponse
	if err = c.do(request, opGetScanStatus, &response); err != nil {
		return ScanStatusUnknown, err
	}

	if response.State == nil {
		return ScanStatusUnknown, nil
	}
	return ParseScanStatus(*response.State), nil
}

// ListResults fetches one page of findings of a single kind. A response without vulnerabilities
// is an empty page.
func (c *HTTPClient) ListResults(ctx context.Context, query ResultsQuery) (*ResultsPage, error) {
	if err := requireValue(opListResults, "project id", query.ProjectID); err != nil {
		return nil, err
	}
	kind, err := findings.ParseKind(string(query.Kind))
	if err != nil {
		return nil, errorcatalog.NewConfigurationError(opListResults, err.Error())
	}

	page := query.Page
	if page <= 0 {
		page = defaultResultsPage
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = c.cfg.ResultsPageSize
	}

	endpoint := c.endpoint("project", query.ProjectID, "results", string(kind))
	values := url.Values{}
	values.Set(PageQueryParam, strconv.Itoa(page))
	values.Set(PageSizeQueryParam, strconv.Itoa(pageSize))
	for _, severity := range query.Severities {
		values.Add(SeverityQueryParam, strings.ToLower(string(severity)))
	}
	endpoint += "?" + values.Encode()

	ctx, cancel := withTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	request, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errorcatalog.NewConfigurationError(opListResults, err.Error())
	}

	var response resultsResponse
	if err = c.do(request, opListResults, &response); err != nil {
		return nil, err
	}

	result := &ResultsPage{
		Kind:       kind,
		Findings:   make([]findings.Finding, 0, len(response.Vulnerabilities)),
		Page:       page,
		PageSize:   pageSize,
		Total:      response.Total,
		TotalPages: response.TotalPages,
	}
	if response.Page > 0 {
		result.Page = response.Page
	}
	if response.Limit > 0 {
		result.PageSize = response.Limit
	}

	for _, entry := range response.Vulnerabilities {
		finding, convErr := toFinding(kind, entry)
		if convErr != nil {
			c.logger.Warn().Err(convErr).Str("findingId", entry.Id).Str("type", string(kind)).Msg("skipping malformed finding")
			continue
		}
		result.Findings = append(result.Findings, finding)
	}
	if result.Total < len(result.Findings) {
		result.Total = len(result.Findings)
	}

	return result, nil
}

func (c *HTTPClient) GetFindingDetail(ctx context.Context, projectID string, findingID string, kind findings.Kind) (*findings.Finding, error) {
	if err := requireValue(opGetFindingDetail, "project id", projectID); err != nil {
		return nil, err
	}
	if err := requireValue(opGetFindingDetail, "finding id", findingID); err != nil {
		return nil, err
	}
	kind, err := findings.ParseKind(string(kind))
	if err != nil {
		return nil, errorcatalog.NewConfigurationError(opGetFindingDetail, err.Error())
	}

	ctx, cancel := withTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	request, err := c.newRequest(ctx, http.MethodGet, c.endpoint("project", projectID, "results", string(kind), findingID), nil)
	if err != nil {
		return nil, errorcatalog.NewConfigurationError(opGetFindingDetail, err.Error())
	}

	var response vulnerabilityEntry
	if err = c.do(request, opGetFindingDetail, &response); err != nil {
		return nil, err
	}

	finding, err := toFinding(kind, response)
	if err != nil {
		return nil, errorcatalog.NewUnexpectedResponseError(opGetFindingDetail, err.Error(), err)
	}
	return &finding, nil
}

func (c *HTTPClient) StartConversation(ctx context.Context, request StartConversationRequest) (*Conversation, error) {
	if err := requireValue(opStartConversation, "project id", request.ProjectID); err != nil {
		return nil, err
	}

	body := startConversationBody{
		IsVulnerabilityConversation: len(request.FindingID) > 0,
		VulnerabilityId:             request.FindingID,
		ProjectId:                   request.ProjectID,
	}
	if body.IsVulnerabilityConversation {
		kind, err := findings.ParseKind(string(request.Kind))
		if err != nil {
			return nil, errorcatalog.NewConfigurationError(opStartConversation, err.Error())
		}
		body.VulnerabilityType = string(kind)
	}

	return c.postConversation(ctx, opStartConversation, c.endpoint("project", request.ProjectID, "ai", "conversation", "start"), body)
}

func (c *HTTPClient) ContinueConversation(ctx context.Context, request ContinueConversationRequest) (*Conversation, error) {
	if err := requireValue(opContinueConversation, "project id", request.ProjectID); err != nil {
		return nil, err
	}
	if err := requireValue(opContinueConversation, "conversation id", request.ConversationID); err != nil {
		return nil, err
	}

	endpoint := c.endpoint("project", request.ProjectID, "ai", "conversation", request.ConversationID, "message")
	conversation, err := c.postConversation(ctx, opContinueConversation, endpoint, continueConversationBody{Message: request.Message})
	if err != nil {
		return nil, err
	}
	return conversation, nil
}

// postConversation sends body and requires a string conversationId in the response.
func (c *HTTPClient) postConversation(ctx context.Context, op string, endpoint string, body any) (*Conversation, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errorcatalog.NewConfigurationError(op, err.Error())
	}

	ctx, cancel := withTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	request, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errorcatalog.NewConfigurationError(op, err.Error())
	}
	request.Header.Set(ContentType, ApplicationJson)

	var response conversationResponse
	if err = c.do(request, op, &response); err != nil {
		return nil, err
	}

	conversationID, ok := response.ConversationId.(string)
	if !ok || len(conversationID) == 0 {
		return nil, errorcatalog.NewUnexpectedResponseError(op, "unexpected response format: missing conversationId", nil)
	}

	return &Conversation{ConversationID: conversationID, Messages: response.Messages}, nil
}

func (c *HTTPClient) endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + strings.Join(escaped, "/")
}

func (c *HTTPClient) newRequest(ctx context.Context, method string, endpoint string, body io.Reader) (*http.Request, error) {
	request, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", ApplicationJson)
	return request, nil
}

// do sends the request and decodes a successful JSON response into target. Every failure is
// returned as an errorcatalog error tagged with op.
func (c *HTTPClient) do(request *http.Request, op string, target any) error {
	response, err := c.httpClient.Do(request)
	if err != nil {
		return c.transportError(request.Context(), op, err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return handleUnexpectedStatusCodes(response.Body, response.StatusCode, op)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return c.transportError(request.Context(), op, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}
	if err = json.Unmarshal(data, target); err != nil {
		return errorcatalog.NewUnexpectedResponseError(op, "unexpected response format", err)
	}
	return nil
}

func (c *HTTPClient) transportError(ctx context.Context, op string, err error) error {
	var catalogErr *errorcatalog.Error
	switch {
	case errors.As(err, &catalogErr):
		// rejected locally, e.g. missing API key
		return errorcatalog.Label(op, catalogErr)
	case ctx.Err() != nil:
		return errorcatalog.Label(op, ctx.Err())
	}
	return errorcatalog.NewNetworkError(op, c.cfg.BaseURL, err)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func requireValue(op string, name string, value string) error {
	if len(strings.TrimSpace(value)) == 0 {
		return errorcatalog.NewConfigurationError(op, name+" is missing")
	}
	return nil
}
