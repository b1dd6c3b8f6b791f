package netx

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"time"

	"ytConvertBot/config"

	xproxy "golang.org/x/net/proxy"
)

// NewHTTPClient builds the client shared by the Bot API and the native
// metadata provider: private and NO_PROXY hosts are dialed directly, everything
// else goes through the configured SOCKS5 proxy.
func NewHTTPClient(proxyCfg *config.ProxyConfig, timeout time.Duration) *http.Client {
	baseDialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	tr := &http.Transport{
		// SOCKS is handled in DialContext, not as an HTTP proxy
		Proxy:             nil,
		ForceAttemptHTTP2: true,
		TLSClientConfig:   &tls.Config{MinVersion: tls.VersionTLS12},
	}

	tr.DialContext = func(ctx context.Context, network, address string) (net.Conn, error) {
		host, _, _ := net.SplitHostPort(address)
		if !proxyCfg.ShouldProxy(host) {
			return baseDialer.DialContext(ctx, network, address)
		}

		// socks5h: keep the hostname so the proxy resolves it
		socksAddr := strings.TrimPrefix(strings.TrimPrefix(proxyCfg.ProxyURL, "socks5h://"), "socks5://")
		d, err := xproxy.SOCKS5("tcp", socksAddr, nil, baseDialer)
		if err != nil {
			return nil, err
		}
		if cd, ok := d.(xproxy.ContextDialer); ok {
			return cd.DialContext(ctx, network, address)
		}
		return d.Dial(network, address)
	}

	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
}
