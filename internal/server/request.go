package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/agenthands/smartform/internal/core/model"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Wire types. Pointers mark fields that must be present but may be zero.

type attributeRequest struct {
	Name  *string `json:"name" binding:"required"`
	Value *string `json:"value" binding:"required"`
}

type nodeRequest struct {
	ID          *int               `json:"id" binding:"required"`
	ParentID    *int               `json:"parentId" binding:"required"`
	Depth       *int               `json:"depth" binding:"required,min=0"`
	Path        *string            `json:"path" binding:"required"`
	ElemName    *string            `json:"elemName" binding:"required"`
	ElemNs      string             `json:"elemNs"`
	NodeType    string             `json:"nodeType"`
	Attributes  []attributeRequest `json:"attributes" binding:"omitempty,dive"`
	TextPayload string             `json:"textPayload"`
}

type smartFormRequest struct {
	FormName    string        `json:"formName" binding:"required"`
	System      string        `json:"system" binding:"required"`
	Client      string        `json:"client" binding:"required"`
	Language    string        `json:"language"`
	SourceKind  string        `json:"sourceKind" binding:"required"`
	ExtractedAt string        `json:"extractedat" binding:"required"`
	Nodes       []nodeRequest `json:"nodes" binding:"required,dive"`
}

func (r smartFormRequest) toModel() model.SmartForm {
	nodes := make([]model.Node, 0, len(r.Nodes))
	for _, n := range r.Nodes {
		attrs := make([]model.Attribute, 0, len(n.Attributes))
		for _, a := range n.Attributes {
			attrs = append(attrs, model.Attribute{Name: *a.Name, Value: *a.Value})
		}
		nodes = append(nodes, model.Node{
			ID:          *n.ID,
			ParentID:    *n.ParentID,
			Depth:       *n.Depth,
			Path:        *n.Path,
			ElemName:    *n.ElemName,
			ElemNs:      n.ElemNs,
			NodeType:    n.NodeType,
			Attributes:  attrs,
			TextPayload: n.TextPayload,
		})
	}
	return model.SmartForm{
		FormName:    r.FormName,
		System:      r.System,
		Client:      r.Client,
		Language:    r.Language,
		SourceKind:  r.SourceKind,
		ExtractedAt: r.ExtractedAt,
		Nodes:       nodes,
	}
}

// DecodeSmartForm reads and validates one request body outside of gin,
// applying the same rules as the HTTP endpoints.
func DecodeSmartForm(r io.Reader) (model.SmartForm, error) {
	useJSONFieldNames()
	var req smartFormRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return model.SmartForm{}, toValidationError(err)
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return model.SmartForm{}, toValidationError(err)
	}
	return req.toModel(), nil
}

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report JSON field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// toValidationError converts a binding failure into the boundary error type.
func toValidationError(err error) *model.ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &model.ValidationError{}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, model.FieldError{
				Field:  trimRoot(fe.Namespace()),
				Reason: reason(fe),
			})
		}
		return out
	}
	return &model.ValidationError{Fields: []model.FieldError{{Field: "body", Reason: err.Error()}}}
}

func trimRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("must be >= %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
