package polarion

import (
	"encoding/json"
	"strings"
)

// MinWorkItemFields is the consistent, small field set requested for
// work item listings to keep payloads light.
const MinWorkItemFields = "id,title,type,description"

// Resource is a raw JSON:API resource passed through to the caller
// unshaped. Single-resource tools return the backend document as-is.
type Resource = map[string]any

// WorkItem is the minimal projection of a Polarion work item used by
// the coverage workflow.
type WorkItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// listDocument is the JSON:API envelope for collection endpoints.
type listDocument struct {
	Data []json.RawMessage `json:"data"`
}

// workItemResource is the wire shape of one work item resource.
type workItemResource struct {
	ID         string `json:"id"`
	Attributes struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		Type        string    `json:"type"`
		Description textField `json:"description"`
	} `json:"attributes"`
}

// textField tolerates Polarion's two description encodings: a plain
// string, or an object like {"type": "text/html", "value": "..."}.
type textField struct {
	Value string
}

func (f *textField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Value = s
		return nil
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unknown encoding: treat as empty rather than failing the
		// whole listing over one field.
		f.Value = ""
		return nil
	}
	f.Value = obj.Value
	return nil
}

// decodeWorkItems converts a JSON:API work item collection into the
// minimal projection. Resources that fail to decode are skipped.
func decodeWorkItems(body []byte) ([]WorkItem, error) {
	var doc listDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}

	items := make([]WorkItem, 0, len(doc.Data))
	for _, raw := range doc.Data {
		var res workItemResource
		if err := json.Unmarshal(raw, &res); err != nil {
			continue
		}
		items = append(items, WorkItem{
			ID:          workItemID(res),
			Title:       res.Attributes.Title,
			Type:        res.Attributes.Type,
			Description: res.Attributes.Description.Value,
		})
	}
	return items, nil
}

// workItemID prefers the attribute-level ID; Polarion's resource-level
// ID is "<project>/<item>", so fall back to the last path segment.
func workItemID(res workItemResource) string {
	if res.Attributes.ID != "" {
		return res.Attributes.ID
	}
	if i := strings.LastIndex(res.ID, "/"); i >= 0 {
		return res.ID[i+1:]
	}
	return res.ID
}

// decodeResources returns the raw items of a collection endpoint.
func decodeResources(body []byte) ([]Resource, error) {
	var doc struct {
		Data []Resource `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc.Data, nil
}
