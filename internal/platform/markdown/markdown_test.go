package markdown_test

import (
	"strings"
	"testing"

	"studyplanner/internal/platform/markdown"
)

func TestRenderKeepsStructOrderAndSplitReadsItBack(t *testing.T) {
	t.Parallel()
	type meta struct {
		Subject string `yaml:"subject"`
		Date    string `yaml:"date"`
		Level   int    `yaml:"level"`
	}
	out, err := markdown.RenderFrontmatter(meta{Subject: "Biology", Date: "2026-03-01", Level: 2}, "body\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "---\nsubject: Biology\ndate: \"2026-03-01\"\nlevel: 2\n---\n\nbody\n"
	if out != want {
		t.Fatalf("unexpected render:\n%q\nwant\n%q", out, want)
	}
	decoded, body, err := markdown.SplitFrontmatter(out)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if decoded["subject"] != "Biology" || decoded["level"] != 2 || body != "\nbody\n" {
		t.Fatalf("unexpected split: %v %q", decoded, body)
	}
}

func TestSplitWithoutFrontmatterAndUnclosed(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("plain text")
	if err != nil || len(meta) != 0 || body != "plain text" {
		t.Fatalf("unexpected result: %v %q %v", meta, body, err)
	}
	if _, _, err := markdown.SplitFrontmatter("---\nsubject: x\n"); err == nil {
		t.Fatalf("expected unclosed frontmatter error")
	}
}

func TestReplaceManagedBlockPreservesUserText(t *testing.T) {
	t.Parallel()
	first := markdown.ReplaceManagedBlock("my own notes\n", "level 1")
	if !strings.HasPrefix(first, "my own notes\n\n"+markdown.BlockStart) {
		t.Fatalf("block should be appended after user text: %q", first)
	}
	second := markdown.ReplaceManagedBlock(first, "level 2")
	if strings.Contains(second, "level 1") || !strings.Contains(second, "level 2") {
		t.Fatalf("block should be replaced: %q", second)
	}
	if strings.Count(second, markdown.BlockStart) != 1 || !strings.HasPrefix(second, "my own notes") {
		t.Fatalf("unexpected body: %q", second)
	}
	if got := markdown.ReplaceManagedBlock("  ", "x"); got != markdown.BlockStart+"\nx\n"+markdown.BlockEnd+"\n" {
		t.Fatalf("unexpected empty-body block: %q", got)
	}
}
