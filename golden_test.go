package modelgen_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-modelgen"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/schema"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

func TestArticleGolden(t *testing.T) {
	defs := testsupport.MustDecodeSchema(t, filepath.Join("testdata", "article.yaml"))
	input := testsupport.MustLoadJSON(t, filepath.Join("testdata", "article_input.json"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	instance, err := modelgen.Model(input, defs, modelgen.WithLogger(logger))
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	got, err := instance.Dump()
	if err != nil {
		t.Fatalf("dump: %v", err)
	}

	golden := filepath.Join("testdata", "article_output.golden.json")
	if testsupport.WriteGolden(t, golden, got) {
		return
	}
	if diff := testsupport.CompareGolden(t, golden, got); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleGoldenThroughOrchestrator(t *testing.T) {
	o := modelgen.NewOrchestrator(
		orchestrator.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	out, err := o.Transform(testsupport.Context(), orchestrator.Request{
		Schema: orchestrator.SchemaRequest{Source: schema.SourceFromFile(filepath.Join("testdata", "article.yaml"))},
		Input:  testsupport.MustLoadJSON(t, filepath.Join("testdata", "article_input.json")),
	})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if diff := testsupport.CompareGolden(t, filepath.Join("testdata", "article_output.golden.json"), out); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}
