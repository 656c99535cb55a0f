package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/triage.txt
	triageRaw string

	//go:embed template/research.txt
	researchRaw string

	//go:embed template/response.txt
	responseRaw string
)

// PromptSet holds the augmentation instructions for each pipeline stage.
type PromptSet struct {
	Triage   string
	Research string
	Response string
}

// LoadPromptSet returns the embedded prompt strings, trimmed.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Triage:   strings.TrimSpace(triageRaw),
		Research: strings.TrimSpace(researchRaw),
		Response: strings.TrimSpace(responseRaw),
	}
}
