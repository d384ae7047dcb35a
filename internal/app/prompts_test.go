package app

import (
	"strings"
	"testing"
)

func TestComposeScriptUsesBothInputs(t *testing.T) {
	composer := NewPromptComposer()
	inputs := SessionInputs{Title: "Why raises vanish", Brief: "Tax brackets and lifestyle creep"}

	prompt, err := composer.Compose(StageScript, inputs, SessionResults{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(prompt, inputs.Title) {
		t.Fatal("script prompt must include the title")
	}
	if !strings.Contains(prompt, inputs.Brief) {
		t.Fatal("script prompt must include the brief")
	}
}

func TestComposeDependentStagesEmbedUpstreamVerbatim(t *testing.T) {
	composer := NewPromptComposer()
	inputs := SessionInputs{Title: "t", Brief: "b"}
	results := SessionResults{
		"script":     "the full script text",
		"storyboard": "scene 1: an empty desk at night",
	}

	cases := []struct {
		stage StageID
		want  string
	}{
		{StageTTS, "the full script text"},
		{StageStoryboard, "the full script text"},
		{StageVideoPrompts, "scene 1: an empty desk at night"},
		{StageSEO, "the full script text"},
	}
	for _, tc := range cases {
		prompt, err := composer.Compose(tc.stage, inputs, results)
		if err != nil {
			t.Fatalf("%s: %v", tc.stage, err)
		}
		if !strings.Contains(prompt, tc.want) {
			t.Fatalf("%s prompt should embed %q", tc.stage, tc.want)
		}
	}
}

func TestComposeTitleOnlyStagesIgnoreResults(t *testing.T) {
	composer := NewPromptComposer()
	inputs := SessionInputs{Title: "The cost of comfort", Brief: "b"}

	for _, stage := range []StageID{StageThumbnails, StageHooks} {
		prompt, err := composer.Compose(stage, inputs, SessionResults{})
		if err != nil {
			t.Fatalf("%s: %v", stage, err)
		}
		if !strings.Contains(prompt, inputs.Title) {
			t.Fatalf("%s prompt must include the title", stage)
		}
	}
}

func TestComposeSEOTruncatesScriptTo500Runes(t *testing.T) {
	composer := NewPromptComposer()
	long := strings.Repeat("ă", 600)
	results := SessionResults{"script": long}

	prompt, err := composer.Compose(StageSEO, SessionInputs{Title: "t", Brief: "b"}, results)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(prompt, long) {
		t.Fatal("seo prompt must not embed the whole script")
	}
	if !strings.Contains(prompt, strings.Repeat("ă", 500)) {
		t.Fatal("seo prompt should embed the first 500 runes")
	}
	if strings.Contains(prompt, strings.Repeat("ă", 501)) {
		t.Fatal("seo prompt embedded more than 500 runes")
	}
}

func TestComposeShortScriptIsNotTruncated(t *testing.T) {
	composer := NewPromptComposer()
	results := SessionResults{"script": "short script"}

	prompt, err := composer.Compose(StageSEO, SessionInputs{Title: "t", Brief: "b"}, results)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(prompt, "short script") {
		t.Fatal("short scripts pass through whole")
	}
}

func TestComposeMissingDependencyErrors(t *testing.T) {
	composer := NewPromptComposer()
	inputs := SessionInputs{Title: "t", Brief: "b"}

	for _, stage := range []StageID{StageTTS, StageStoryboard, StageVideoPrompts, StageSEO} {
		if _, err := composer.Compose(stage, inputs, SessionResults{}); err == nil {
			t.Fatalf("%s should fail without its upstream result", stage)
		}
	}
}
