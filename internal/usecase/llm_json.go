package usecase

import (
	"strings"

	"github.com/fadilmartias/careermate-api/internal/util"
	"github.com/tidwall/gjson"
)

// parseModelJSON pulls the JSON document out of a chat reply, tolerating
// code fences and prose around it.
func parseModelJSON(reply string) (gjson.Result, bool) {
	clean := util.CleanJSON(reply)
	if gjson.Valid(clean) {
		return gjson.Parse(clean), true
	}

	start := strings.IndexAny(clean, "[{")
	if start < 0 {
		return gjson.Result{}, false
	}
	closer := "]"
	if clean[start] == '{' {
		closer = "}"
	}
	end := strings.LastIndex(clean, closer)
	if end <= start {
		return gjson.Result{}, false
	}
	candidate := clean[start : end+1]
	if !gjson.Valid(candidate) {
		return gjson.Result{}, false
	}
	return gjson.Parse(candidate), true
}

func stringList(r gjson.Result) []string {
	out := []string{}
	if r.IsArray() {
		for _, item := range r.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				out = append(out, s)
			}
		}
	} else if s := strings.TrimSpace(r.String()); s != "" {
		out = append(out, s)
	}
	return out
}
