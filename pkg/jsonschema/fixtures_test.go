package jsonschema

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-samplify/pkg/sample"
	"github.com/goliatone/go-samplify/pkg/testsupport"
	"github.com/goliatone/go-samplify/pkg/value"
)

func TestAdapter_AccountFixtureProfiles(t *testing.T) {
	fixtures := filepath.Join("..", "..", "examples", "fixtures")
	doc := testsupport.LoadDocument(t, filepath.Join(fixtures, "account.schema.json"))
	profiles := testsupport.MustLoadConfig(t, filepath.Join(fixtures, "account.config.yaml"))

	reg, err := NewAdapter(WithRequiredDialect()).Shapes(testsupport.Context(), doc)
	if err != nil {
		t.Fatalf("shapes: %v", err)
	}
	if diff := cmp.Diff([]string{"Account", "Payee", "Status"}, reg.List()); diff != "" {
		t.Fatalf("shape names mismatch (-want +got):\n%s", diff)
	}
	account, err := reg.Get("Account")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}

	sampler := sample.New(sample.WithSeed(11), sample.WithStrictVariants())
	for _, profile := range profiles.Members() {
		if _, err := sampler.SampleN(testsupport.Context(), account, profile.Value, 8); err != nil {
			t.Fatalf("profile %s: %v", profile.Key, err)
		}
	}

	suspended, _ := profiles.Get("suspended")
	got, err := sampler.Sample(account, suspended)
	if err != nil {
		t.Fatalf("sample suspended: %v", err)
	}
	plain, ok := value.Plain(got).(map[string]any)
	if !ok {
		t.Fatalf("expected record, got %T", value.Plain(got))
	}
	if plain["owner"] != "Mallory" {
		t.Fatalf("unexpected owner %v", plain["owner"])
	}
	if diff := cmp.Diff(map[string]any{"Suspended": map[string]any{"reason": "Violation"}}, plain["status"]); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
	if plain["payee"] != nil || plain["nickname"] != nil {
		t.Fatalf("expected absent optionals, got payee=%v nickname=%v", plain["payee"], plain["nickname"])
	}
}
