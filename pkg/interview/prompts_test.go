package interview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuestionPromptGeneric(t *testing.T) {
	p := BuildQuestionPrompt("Backend Developer", "Senior", 5, "   ")
	assert.Contains(t, p, "exactly 5")
	assert.Contains(t, p, "Senior-level")
	assert.Contains(t, p, "Backend Developer")
	assert.NotContains(t, p, "resume")
}

func TestBuildQuestionPromptWithResume(t *testing.T) {
	p := BuildQuestionPrompt("Data Engineer", "Beginner", 3, "Built Kafka pipelines at Acme")
	assert.Contains(t, p, "Built Kafka pipelines at Acme")
	assert.Contains(t, p, "at least half")
	assert.Contains(t, p, "sparse")
}

func TestBuildQuestionPromptTruncatesResume(t *testing.T) {
	resume := strings.Repeat("а", MaxResumeChars) + "TAIL"
	p := BuildQuestionPrompt("QA", "Beginner", 3, resume)
	assert.NotContains(t, p, "TAIL")
	assert.Contains(t, p, strings.Repeat("а", MaxResumeChars))
}

func TestPromptsMerge(t *testing.T) {
	p := Prompts{Coach: "Be strict."}.Merge(DefaultPrompts())
	assert.Equal(t, "Be strict.", p.Coach)
	assert.Equal(t, DefaultPrompts().Interviewer, p.Interviewer)
	assert.Equal(t, DefaultPrompts().Senior, p.Senior)
}

func TestBuildIdealAnswersPromptNumbersQuestions(t *testing.T) {
	p := buildIdealAnswersPrompt("SRE", "Intermediate", []string{"What is SLO?", "What is toil?"})
	assert.Contains(t, p, "1. What is SLO?\n2. What is toil?")
	assert.Contains(t, p, "Job Role: SRE")
}
