package net_test

import (
	"context"
	"testing"

	pnet "github.com/predator4hack/gitscout/internal/platform/net"
)

func TestRequestAndOwner(t *testing.T) {
	base := context.Background()

	cases := []struct {
		name      string
		reqID     string
		owner     string
		wantReq   string
		wantOwner string
	}{
		{"both", "req-1", "recruiter@acme", "req-1", "recruiter@acme"},
		{"request only", "req-2", "", "req-2", ""},
		{"owner trimmed", "", "  ana  ", "", "ana"},
		{"blank owner ignored", "", "   ", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := pnet.WithOwner(pnet.WithRequest(base, c.reqID), c.owner)
			if got := pnet.RequestID(ctx); got != c.wantReq {
				t.Fatalf("RequestID = %q want %q", got, c.wantReq)
			}
			if got := pnet.Owner(ctx); got != c.wantOwner {
				t.Fatalf("Owner = %q want %q", got, c.wantOwner)
			}
		})
	}
}

func TestWithRequestEmptyKeepsContext(t *testing.T) {
	base := context.Background()
	if pnet.WithRequest(base, "") != base {
		t.Fatalf("empty request id should not wrap the context")
	}
}
