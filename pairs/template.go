package pairs

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/wbrown/gpt_pairs/errlog"
	"github.com/wbrown/gpt_pairs/resources"
	"github.com/wbrown/gpt_pairs/types"
)

// Placeholders substituted into every template field.
const (
	ContextPlaceholder = "{context_str}"
	TargetPlaceholder  = "{target}"
)

// Template holds the three format strings a QA pair is rendered from.
type Template struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}

// DefaultTemplate asks the model to predict the proper noun that follows
// the context.
var DefaultTemplate = Template{
	Instruction: "다음 문맥 뒤에 이어질 고유명사를 예측하세요.",
	Input:       ContextPlaceholder,
	Output:      TargetPlaceholder,
}

// LoadTemplate
// Reads a JSON object with `instruction`, `input` and `output` string
// fields. Fields absent from the file are left empty. Failures are logged
// and returned as a *types.TemplateLoadError.
func LoadTemplate(path string) (*Template, error) {
	contents, err := resources.ReadFile(path)
	if err != nil {
		return nil, templateError(path, err)
	}
	var tmpl Template
	if err = json.Unmarshal(contents, &tmpl); err != nil {
		return nil, templateError(path, err)
	}
	log.Printf("Loaded template from %s", path)
	return &tmpl, nil
}

func templateError(path string, err error) error {
	loadErr := &types.TemplateLoadError{Path: path, Err: err}
	errlog.Printf("%v", loadErr)
	return loadErr
}

// Render substitutes the joined context and the target into each field.
func (tmpl *Template) Render(context types.Tokens,
	target types.Token) types.QAPair {
	replacer := strings.NewReplacer(
		ContextPlaceholder, context.String(),
		TargetPlaceholder, target,
	)
	return types.QAPair{
		Instruction: replacer.Replace(tmpl.Instruction),
		Input:       replacer.Replace(tmpl.Input),
		Output:      replacer.Replace(tmpl.Output),
	}
}
