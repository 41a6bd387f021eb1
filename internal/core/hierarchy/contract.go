package hierarchy

import (
	"fmt"

	"github.com/agenthands/smartform/internal/core/model"
)

// ContractError reports where an explanation result departs from the
// grouping it was given.
type ContractError struct {
	Path   string
	Reason string
}

func (e *ContractError) Error() string {
	if e.Path == "" {
		return "hierarchy contract: " + e.Reason
	}
	return fmt.Sprintf("hierarchy contract: %s: %s", e.Path, e.Reason)
}

func violation(path, format string, args ...any) error {
	return &ContractError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

var narrativeFields = []string{"mapping", "coding", "usage"}

// Verify checks a decoded explanation result against tree.
//
// A JSON array is the flat row table and is accepted as is. An object must
// repeat tree.PageName exactly and keep every window in place with its name
// and path. Every element must stay in place with elemName, path, nodeType,
// attributes and textPayload unchanged, and carry string mapping, coding and
// usage fields. Page-level elements may not be invented.
func Verify(result any, tree model.PageTree) error {
	switch v := result.(type) {
	case []any:
		return nil
	case map[string]any:
		return verifyPage(v, tree)
	default:
		return violation("", "unexpected result of type %T", result)
	}
}

func verifyPage(page map[string]any, tree model.PageTree) error {
	name, ok := page["pageName"].(string)
	if !ok {
		return violation("pageName", "missing or not a string")
	}
	if name != tree.PageName {
		return violation("pageName", "got %q, want %q", name, tree.PageName)
	}

	windows, ok := page["windows"].([]any)
	if !ok {
		return violation("windows", "missing or not an array")
	}
	if len(windows) != len(tree.Windows) {
		return violation("windows", "got %d windows, want %d", len(windows), len(tree.Windows))
	}
	for i, raw := range windows {
		path := fmt.Sprintf("windows[%d]", i)
		w, ok := raw.(map[string]any)
		if !ok {
			return violation(path, "not an object")
		}
		want := tree.Windows[i]
		for _, f := range [...]struct{ name, want string }{
			{"name", want.Name},
			{"path", want.Path},
		} {
			if err := sameString(path+"."+f.name, w[f.name], f.want); err != nil {
				return err
			}
		}
		if err := verifyElements(path+".elements", w["elements"], tree.Windows[i].Elements); err != nil {
			return err
		}
	}

	return verifyElements("elements", page["elements"], tree.Elements)
}

func verifyElements(path string, raw any, want []model.Element) error {
	elems, ok := raw.([]any)
	if !ok {
		if raw == nil && len(want) == 0 {
			return nil
		}
		return violation(path, "missing or not an array")
	}
	if len(elems) != len(want) {
		return violation(path, "got %d elements, want %d", len(elems), len(want))
	}
	for i, e := range elems {
		at := fmt.Sprintf("%s[%d]", path, i)
		m, ok := e.(map[string]any)
		if !ok {
			return violation(at, "not an object")
		}
		for _, f := range [...]struct{ name, want string }{
			{"elemName", want[i].ElemName},
			{"path", want[i].Path},
			{"nodeType", want[i].NodeType},
			{"textPayload", want[i].TextPayload},
		} {
			if err := sameString(at+"."+f.name, m[f.name], f.want); err != nil {
				return err
			}
		}
		if err := sameAttributes(at+".attributes", m["attributes"], want[i].Attributes); err != nil {
			return err
		}
		for _, field := range narrativeFields {
			if _, ok := m[field].(string); !ok {
				return violation(at+"."+field, "missing or not a string")
			}
		}
	}
	return nil
}

func sameString(path string, raw any, want string) error {
	got, ok := raw.(string)
	if !ok && !(raw == nil && want == "") {
		return violation(path, "missing or not a string")
	}
	if got != want {
		return violation(path, "got %q, want %q", got, want)
	}
	return nil
}

// sameAttributes compares an ordered {name, value} list. An absent list
// stands for an empty one.
func sameAttributes(path string, raw any, want []model.Attribute) error {
	if raw == nil {
		if len(want) == 0 {
			return nil
		}
		return violation(path, "missing, want %d attributes", len(want))
	}
	attrs, ok := raw.([]any)
	if !ok {
		return violation(path, "not an array")
	}
	if len(attrs) != len(want) {
		return violation(path, "got %d attributes, want %d", len(attrs), len(want))
	}
	for i, a := range attrs {
		at := fmt.Sprintf("%s[%d]", path, i)
		m, ok := a.(map[string]any)
		if !ok {
			return violation(at, "not an object")
		}
		if err := sameString(at+".name", m["name"], want[i].Name); err != nil {
			return err
		}
		if err := sameString(at+".value", m["value"], want[i].Value); err != nil {
			return err
		}
	}
	return nil
}
