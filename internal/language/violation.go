package language

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

type Violation struct {
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

type ValidationError []*Violation

func (e ValidationError) Error() string {
	msg := "violations found:\n"
	for _, v := range e {
		line := "- " + v.Message
		if v.File != "" {
			line += fmt.Sprintf(" %s:%d:%d", v.File, v.Line, v.Column)
		}
		msg += line + "\n"
	}
	return msg
}

func violations(file string, err error) ValidationError {
	var list gqlerror.List
	if errors.As(err, &list) {
		out := make(ValidationError, 0, len(list))
		for _, e := range list {
			out = append(out, violation(file, e))
		}
		return out
	}
	var one *gqlerror.Error
	if errors.As(err, &one) {
		return ValidationError{violation(file, one)}
	}
	return ValidationError{{Message: err.Error(), File: file}}
}

func violation(file string, e *gqlerror.Error) *Violation {
	v := &Violation{Message: e.Message, File: file}
	if len(e.Locations) > 0 {
		v.Line = e.Locations[0].Line
		v.Column = e.Locations[0].Column
	}
	return v
}
