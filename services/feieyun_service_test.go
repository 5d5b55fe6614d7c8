package services

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFeieyunConfig_IsConfigured(t *testing.T) {
	tests := []struct {
		name   string
		config FeieyunConfig
		want   bool
	}{
		{"complete", FeieyunConfig{User: "u", UKey: "k", SN: "sn"}, true},
		{"missing user", FeieyunConfig{UKey: "k", SN: "sn"}, false},
		{"missing ukey", FeieyunConfig{User: "u", SN: "sn"}, false},
		{"missing sn", FeieyunConfig{User: "u", UKey: "k"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.IsConfigured(); got != tt.want {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFeieyunService_PrintMsg_SignedRequest(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}
		w.Write([]byte(`{"msg":"ok","ret":0,"data":"123_20260314","serverExecutedTime":3}`))
	}))
	defer server.Close()

	cfg := FeieyunConfig{URL: server.URL, User: "shop@example.com", UKey: "secret-ukey", SN: "987654321"}
	resp, err := NewFeieyunService(cfg).PrintMsg("<B>Tisch: T7</B>")
	if err != nil {
		t.Fatalf("PrintMsg() error = %v", err)
	}
	if resp.Ret != 0 {
		t.Errorf("Ret = %d, want 0", resp.Ret)
	}

	if gotForm["apiname"] != "Open_printMsg" {
		t.Errorf("apiname = %q", gotForm["apiname"])
	}
	if gotForm["sn"] != "987654321" {
		t.Errorf("sn = %q", gotForm["sn"])
	}
	if gotForm["times"] != "1" {
		t.Errorf("times = %q", gotForm["times"])
	}
	if gotForm["content"] != "<B>Tisch: T7</B>" {
		t.Errorf("content = %q", gotForm["content"])
	}

	payload := fmt.Sprintf("%s%s%s", cfg.User, cfg.UKey, gotForm["stime"])
	sum := sha1.Sum([]byte(payload))
	if want := hex.EncodeToString(sum[:]); gotForm["sig"] != want {
		t.Errorf("sig = %q, want sha1(user+ukey+stime) = %q", gotForm["sig"], want)
	}
}

func TestFeieyunService_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"msg":"printer offline","ret":1002,"data":null,"serverExecutedTime":2}`))
	}))
	defer server.Close()

	cfg := FeieyunConfig{URL: server.URL, User: "u", UKey: "k", SN: "sn"}
	resp, err := NewFeieyunService(cfg).PrintMsg("content")
	if err != nil {
		t.Fatalf("PrintMsg() error = %v", err)
	}
	if resp.Ret != 1002 {
		t.Errorf("Ret = %d, want 1002", resp.Ret)
	}
	if resp.Msg != "printer offline" {
		t.Errorf("Msg = %q", resp.Msg)
	}
}

func TestFeieyunService_Unconfigured(t *testing.T) {
	_, err := NewFeieyunService(FeieyunConfig{URL: "http://example.invalid"}).PrintMsg("content")
	if !errors.Is(err, ErrConfigIncomplete) {
		t.Errorf("PrintMsg() error = %v, want ErrConfigIncomplete", err)
	}
}

func TestFeieyunService_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := FeieyunConfig{URL: server.URL, User: "u", UKey: "k", SN: "sn"}
	if _, err := NewFeieyunService(cfg).QueryPrinterStatus(); err == nil {
		t.Error("QueryPrinterStatus() expected error on HTTP 500")
	}
}
