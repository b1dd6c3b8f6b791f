package config

import (
	"net"
	"strings"

	"github.com/spf13/viper"
)

// ProxyConfig содержит настройки прокси
type ProxyConfig struct {
	UseProxy bool
	ProxyURL string
	NoProxy  []string
}

func setProxyDefaults(v *viper.Viper) {
	v.SetDefault("USE_PROXY", false)
	v.SetDefault("PROXY_URL", "socks5h://127.0.0.1:1080")
	v.SetDefault("NO_PROXY", "localhost,127.0.0.1,172.16.0.0/12,192.168.0.0/16")
}

func loadProxyConfig(v *viper.Viper) *ProxyConfig {
	var noProxy []string
	for _, token := range strings.Split(v.GetString("NO_PROXY"), ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			noProxy = append(noProxy, token)
		}
	}

	return &ProxyConfig{
		UseProxy: v.GetBool("USE_PROXY"),
		ProxyURL: strings.TrimSpace(v.GetString("PROXY_URL")),
		NoProxy:  noProxy,
	}
}

// EngineProxy returns the value for yt-dlp's --proxy flag, or "" when disabled.
func (p *ProxyConfig) EngineProxy() string {
	if p == nil || !p.UseProxy {
		return ""
	}
	return p.ProxyURL
}

// ShouldProxy проверяет, нужно ли проксировать указанный хост
func (p *ProxyConfig) ShouldProxy(host string) bool {
	if p == nil || !p.UseProxy || p.ProxyURL == "" {
		return false
	}

	host = strings.ToLower(host)
	if host == "localhost" {
		return false
	}

	ip := net.ParseIP(host)
	if ip != nil && (ip.IsLoopback() || ip.IsPrivate()) {
		return false
	}

	for _, token := range p.NoProxy {
		if host == token || strings.HasSuffix(host, "."+token) {
			return false
		}
		if ip != nil {
			if _, cidr, err := net.ParseCIDR(token); err == nil && cidr.Contains(ip) {
				return false
			}
		}
	}

	return true
}
