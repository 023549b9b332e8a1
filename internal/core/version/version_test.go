package version

import "testing"

func TestInfo(t *testing.T) {
	b := Info()
	if b.Service != "gitscout" || b.Version == "" {
		t.Fatalf("info = %+v", b)
	}
	if got := (BuildInfo{Service: "s", Version: "v1", Commit: "c", Date: "d"}).String(); got != "s v1 (c, d)" {
		t.Fatalf("String = %q", got)
	}
}
