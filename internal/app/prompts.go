package app

import (
	"fmt"
	"strings"
)

// SystemInstruction accompanies every generation request. It pins the channel
// format the whole pipeline is tuned for.
const SystemInstruction = `YOU ARE AN AI SYSTEM THAT PRODUCES FACELESS PERSONAL-FINANCE YOUTUBE CONTENT FOR WORKING PROFESSIONALS.
HARD RULES:
- 100% faceless. No characters, no personal anecdotes.
- Tone: calm, slow, analytical, introspective.
- Written for professionals watching at night.
- No preaching, no lecturing.
- No tables; plain text only.
- All outputs must stay consistent in duration and logic.`

// seoScriptPrefix is how much of the script the SEO stage sees. The prefix is
// counted in runes so multi-byte text does not get split mid-character.
const seoScriptPrefix = 500

// PromptComposer builds the generation input for a stage from the session
// inputs and the results recorded so far. Later stages consume earlier stages'
// text verbatim.
type PromptComposer struct{}

func NewPromptComposer() *PromptComposer {
	return &PromptComposer{}
}

// Compose returns the prompt for the given stage. It errors if a slot the
// stage depends on has not been recorded; under strictly sequential execution
// that never happens.
func (p *PromptComposer) Compose(id StageID, inputs SessionInputs, results SessionResults) (string, error) {
	switch id {
	case StageScript:
		return fmt.Sprintf(`[PART 1] WRITE THE MASTER SCRIPT
Video title: %q
User's script brief: %q

REQUIREMENTS:
- Write the full script word by word.
- Target length: ~6-7 minutes (~900-1,100 words).
- Break into paragraphs that follow the spoken rhythm.
- Calm, reflective register aimed at working professionals.`, inputs.Title, inputs.Brief), nil

	case StageTTS:
		script, err := dependency(results, StageScript)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`[PART 2] CONVERT SCRIPT TO TTS-READY TEXT
Based on this script:
%s

REQUIREMENTS:
You are a text-to-speech markup expert.
- Convert the entire script into one continuous read.
- Insert reflective pauses using: <break time=0.5s/>, <break time=1s/>, <break time=1.5s/>.
- Do NOT use quotation marks inside break tags.
- Output only the TTS-ready passage.`, script), nil

	case StageStoryboard:
		script, err := dependency(results, StageScript)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`[PART 3] CREATE A TEXT STORYBOARD
Based on this script:
%s

REQUIREMENTS:
You are a top 1%% YouTube content creator.
- Produce a text storyboard.
- Each scene must match the script's timing exactly.
- Describe faceless, everyday imagery with low-key lighting.
- No tables. Do not invent new content.`, script), nil

	case StageVideoPrompts:
		storyboard, err := dependency(results, StageStoryboard)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`[PART 4] TEXT-TO-VIDEO PROMPTS
Based on this storyboard:
%s

REQUIREMENTS:
You are an expert video-prompt writer.
- One prompt per storyboard scene.
- Write in English.
- Cinematic shot descriptions.
- Do not generate images or video. Do not merge scenes.
- Style: cinematic, minimal, faceless, dark tone.`, storyboard), nil

	case StageThumbnails:
		return fmt.Sprintf(`[PART 5] A/B TEST THUMBNAILS - 3 CONCEPTS
TOPIC: %s

REQUIREMENTS:
Create 3 faceless thumbnail concepts (1. Disorientation, 2. Self-doubt, 3. Silent pressure).
Each concept includes:
1. A detailed image description.
2. Thumbnail text (one short sentence, upper case).
3. An image-generation prompt (English, cinematic style).
Shared style: faceless, dark, serious.`, inputs.Title), nil

	case StageHooks:
		return fmt.Sprintf(`[PART 6] 5-SECOND RETENTION HOOKS
TOPIC: %s

REQUIREMENTS:
Create 5 different 5-SECOND HOOK variants.
- 1-2 short sentences each.
- Framed as a question or a contradiction.
- Aimed straight at the psychology of working professionals.
- Suited to late-night viewing.
List only the hook lines.`, inputs.Title), nil

	case StageSEO:
		script, err := dependency(results, StageScript)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`[PART 7] YOUTUBE SEO TITLE & DESCRIPTION
Primary title: %s
Video content: %s...

REQUIREMENTS:
You are a YouTube SEO expert.
- Create 3 A/B-test titles (high CTR / neutral / analytical).
- Write an SEO description (150-250 words).
- Write hashtags.
- Write a keyword list (plain text, comma separated).`, inputs.Title, prefixRunes(script, seoScriptPrefix)), nil

	default:
		return "", fmt.Errorf("unknown stage: %s", id)
	}
}

func dependency(results SessionResults, id StageID) (string, error) {
	text, ok := results[SlotFor(id)]
	if !ok || strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("stage %s output not recorded yet", id)
	}
	return text, nil
}

func prefixRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
