package networking

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/auth"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/networking/middleware"
)

//go:generate go tool github.com/golang/mock/mockgen -source=networking.go -destination ../mocks/networking.go -package mocks -self_package github.com/CybeDefend/cybedefend-vscode-sub000/pkg/networking/

// NetworkAccess creates the http clients used to talk to the API. Clients created from it
// authenticate requests to the configured API URL, tag them with a request id and log them.
type NetworkAccess interface {
	GetDefaultHeader(url *url.URL) http.Header
	GetRoundTripper() http.RoundTripper
	// GetHttpClient returns a client without a global timeout, callers bound each call with a context deadline.
	GetHttpClient() *http.Client
	AddHeaderField(key string, value string)
	SetUserAgent(userAgent UserAgentInfo)
	SetLogger(logger *zerolog.Logger)
	GetLogger() *zerolog.Logger
	SetAuthenticator(authenticator auth.Authenticator)
	GetAuthenticator() auth.Authenticator
}

type networkImpl struct {
	config        configuration.Configuration
	userAgent     UserAgentInfo
	staticHeader  http.Header
	logger        *zerolog.Logger
	authenticator auth.Authenticator
	proxy         func(req *http.Request) (*url.URL, error)
	mutex         sync.RWMutex
}

// customRoundtripper adds the default headers and logs requests and responses.
type customRoundtripper struct {
	encapsulatedRoundtripper http.RoundTripper
	networkAccess            NetworkAccess
	logger                   *zerolog.Logger
}

func (crt *customRoundtripper) decorateRequest(request *http.Request) *http.Request {
	defaultHeader := crt.networkAccess.GetDefaultHeader(request.URL)
	newRequest := request.Clone(request.Context())

	// existing entries win over defaults
	for k, v := range defaultHeader {
		if _, found := newRequest.Header[k]; !found {
			for i := range v {
				newRequest.Header.Add(k, v[i])
			}
		}
	}

	return newRequest
}

func (crt *customRoundtripper) RoundTrip(request *http.Request) (*http.Response, error) {
	request = crt.decorateRequest(request)
	LogRequest(request, crt.logger)

	response, err := crt.encapsulatedRoundtripper.RoundTrip(request)
	if err != nil {
		crt.logger.Debug().Err(err).Msgf("< request [%p] failed", request)
		return response, err
	}

	LogResponse(response, crt.logger)
	return response, nil
}

func NewNetworkAccess(config configuration.Configuration) NetworkAccess {
	logger := zerolog.Nop()
	n := &networkImpl{
		config:        config,
		userAgent:     UserAgent(UaWithConfig(config)),
		staticHeader:  http.Header{},
		logger:        &logger,
		authenticator: auth.NewApiKeyAuthenticator(auth.NewConfigurationKeyStore(config)),
		proxy:         http.ProxyFromEnvironment,
	}
	return n
}

func (n *networkImpl) AddHeaderField(key string, value string) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.staticHeader.Add(key, value)
}

func (n *networkImpl) SetUserAgent(userAgent UserAgentInfo) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.userAgent = userAgent
}

func (n *networkImpl) GetDefaultHeader(_ *url.URL) http.Header {
	n.mutex.RLock()
	defer n.mutex.RUnlock()

	h := n.staticHeader.Clone()
	h.Set("User-Agent", n.userAgent.String())
	return h
}

func (n *networkImpl) GetRoundTripper() http.RoundTripper {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = n.proxy

	logger := n.GetLogger()
	var rt http.RoundTripper = &customRoundtripper{
		encapsulatedRoundtripper: transport,
		networkAccess:            n,
		logger:                   logger,
	}
	rt = middleware.NewRetryMiddleware(n.config, logger, rt)
	rt = middleware.NewRequestIdMiddleware(rt)
	rt = middleware.NewAuthHeaderMiddleware(n.config, n.GetAuthenticator(), rt)
	return rt
}

func (n *networkImpl) GetHttpClient() *http.Client {
	return &http.Client{
		Transport: n.GetRoundTripper(),
	}
}

func (n *networkImpl) SetLogger(logger *zerolog.Logger) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.logger = logger
}

func (n *networkImpl) GetLogger() *zerolog.Logger {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return n.logger
}

func (n *networkImpl) SetAuthenticator(authenticator auth.Authenticator) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.authenticator = authenticator
}

func (n *networkImpl) GetAuthenticator() auth.Authenticator {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return n.authenticator
}
