package config

import (
	"testing"
)

func TestEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", " http://a.example , ,http://b.example,")
	got := envList("TEST_LIST", "")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Fatalf("unexpected list: %#v", got)
	}
}

func TestEnvListFallback(t *testing.T) {
	got := envList("TEST_LIST_UNSET", "http://a.example,http://b.example")
	if len(got) != 2 {
		t.Fatalf("expected fallback entries, got %#v", got)
	}
}
