package app

// StageID identifies one of the seven fixed pipeline stages.
type StageID string

const (
	StageScript       StageID = "SCRIPT"
	StageTTS          StageID = "TTS"
	StageStoryboard   StageID = "STORYBOARD"
	StageVideoPrompts StageID = "VIDEO_PROMPTS"
	StageThumbnails   StageID = "THUMBNAILS"
	StageHooks        StageID = "HOOKS"
	StageSEO          StageID = "SEO"
)

// Stage is one member of the fixed, ordered production pipeline. The slot is
// the key its generated text is stored under in SessionResults.
type Stage struct {
	ID      StageID
	Slot    string
	Label   string
	Ordinal int
}

// StageCount is the length of the pipeline. Position ordinals run 0..StageCount-1.
const StageCount = 7

var stages = [StageCount]Stage{
	{ID: StageScript, Slot: "script", Label: "Script", Ordinal: 0},
	{ID: StageTTS, Slot: "tts", Label: "Voice AI", Ordinal: 1},
	{ID: StageStoryboard, Slot: "storyboard", Label: "Storyboard", Ordinal: 2},
	{ID: StageVideoPrompts, Slot: "videoPrompts", Label: "Video Prompts", Ordinal: 3},
	{ID: StageThumbnails, Slot: "thumbnails", Label: "Thumbnails", Ordinal: 4},
	{ID: StageHooks, Slot: "hooks", Label: "Hook 5s", Ordinal: 5},
	{ID: StageSEO, Slot: "seo", Label: "SEO Assets", Ordinal: 6},
}

// Stages returns the pipeline stages in execution order.
func Stages() []Stage {
	out := make([]Stage, StageCount)
	copy(out, stages[:])
	return out
}

// StageAt returns the stage at the given ordinal. It panics on an
// out-of-range ordinal; callers derive ordinals from Position, which never
// holds one.
func StageAt(ordinal int) Stage {
	return stages[ordinal]
}

// SlotFor returns the result slot for a stage identity, or "" if unknown.
func SlotFor(id StageID) string {
	for _, s := range stages {
		if s.ID == id {
			return s.Slot
		}
	}
	return ""
}
