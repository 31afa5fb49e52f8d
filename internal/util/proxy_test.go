package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewProxyFuncSchemeRouting(t *testing.T) {
	proxy := NewProxyFunc("http://http-proxy:8080", "http://https-proxy:8443", "")

	httpsReq := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	got, err := proxy(httpsReq)
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if got == nil || got.Host != "https-proxy:8443" {
		t.Errorf("https proxy = %v, want https-proxy:8443", got)
	}

	httpReq := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	got, err = proxy(httpReq)
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if got == nil || got.Host != "http-proxy:8080" {
		t.Errorf("http proxy = %v, want http-proxy:8080", got)
	}
}

func TestNewProxyFuncNoProxy(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:8080", "", "internal.example.com")

	exempt := httptest.NewRequest(http.MethodGet, "http://internal.example.com/page", nil)
	got, err := proxy(exempt)
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if got != nil {
		t.Errorf("proxy = %v, want direct connection for exempt host", got)
	}

	sub := httptest.NewRequest(http.MethodGet, "http://api.internal.example.com/page", nil)
	got, err = proxy(sub)
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if got != nil {
		t.Errorf("proxy = %v, want subdomain of exempt host unproxied", got)
	}

	other := httptest.NewRequest(http.MethodGet, "http://other.example.com/page", nil)
	got, err = proxy(other)
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if got == nil || got.Host != "proxy:8080" {
		t.Errorf("proxy = %v, want proxy:8080 for non-exempt host", got)
	}
}

func TestNewProxyFuncHTTPFallbackForHTTPS(t *testing.T) {
	proxy := NewProxyFunc("http://only-proxy:8080", "", "")

	req := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	got, err := proxy(req)
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if got == nil || got.Host != "only-proxy:8080" {
		t.Errorf("proxy = %v, want only-proxy:8080", got)
	}
}
